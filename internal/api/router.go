package api

import (
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/api/handler"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/api/middleware"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	authService *service.AuthService,
	spotService *service.SpotService,
	entryService *service.EntryService,
	settlementService *service.SettlementService,
	fineService *service.FineService,
	settingsService *service.SettingsService,
	authMw *middleware.AuthMiddleware,
	feed *handler.OccupancyFeed,
) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Realtime occupancy feed; no auth so lobby boards can subscribe.
	wsHandler := handler.NewWebSocketHandler(feed)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(authService)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		spotH := handler.NewSpotHandler(spotService)
		spotRoutes := v1.Group("/spots")
		{
			spotRoutes.POST("", authMw.AuthorizeRole("admin"), spotH.CreateSpot)
			spotRoutes.GET("", spotH.GetAllSpots)
			spotRoutes.GET("/available", spotH.GetAvailableSpots)
			spotRoutes.GET("/:spot_id", spotH.GetSpotByID)
		}

		sessionH := handler.NewSessionHandler(entryService)
		settlementH := handler.NewSettlementHandler(settlementService)
		sessionRoutes := v1.Group("/sessions")
		{
			sessionRoutes.POST("/entry", sessionH.RegisterEntry)
			sessionRoutes.GET("/open", sessionH.GetOpenSessions)
			sessionRoutes.POST("/exit/preview", settlementH.PreviewExit)
			sessionRoutes.POST("/exit/confirm", settlementH.ConfirmExit)
			sessionRoutes.GET("/:ticket_no", sessionH.GetSessionByTicket)
		}

		fineH := handler.NewFineHandler(fineService)
		v1.GET("/fines/:plate", fineH.GetOutstandingFines)
		v1.GET("/payments/:plate", settlementH.GetPaymentsByPlate)

		settingsH := handler.NewSettingsHandler(settingsService)
		settingsRoutes := v1.Group("/settings")
		{
			settingsRoutes.GET("/fine-scheme", settingsH.GetFineScheme)
			settingsRoutes.PUT("/fine-scheme", authMw.AuthorizeRole("admin"), settingsH.SetFineScheme)
		}
	}
	return r
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/api"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/api/handler"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/api/middleware"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/config"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository/postgresql"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/service"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Database connection
	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established.")

	// 3. Repositories
	userRepo := postgresql.NewPgUserRepository(db)
	spotRepo := postgresql.NewPgParkingSpotRepository(db)
	sessionRepo := postgresql.NewPgParkingSessionRepository(db)
	fineRepo := postgresql.NewPgFineRepository(db)
	paymentRepo := postgresql.NewPgPaymentRepository(db)
	settingsRepo := postgresql.NewPgFacilitySettingsRepository(db)

	// 4. Realtime occupancy feed
	occupancyFeed := handler.NewOccupancyFeed()
	go occupancyFeed.Start()

	// 5. Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	spotService := service.NewSpotService(spotRepo)
	fineService := service.NewFineService(fineRepo)
	settingsService := service.NewSettingsService(settingsRepo, cfg.DefaultFineScheme)
	entryService := service.NewEntryService(spotRepo, sessionRepo, settingsRepo, occupancyFeed, cfg.DefaultFineScheme)
	settlementService := service.NewSettlementService(sessionRepo, spotRepo, paymentRepo, fineService, occupancyFeed)

	// 6. HTTP router
	authMiddleware := middleware.NewAuthMiddleware(authService)
	router := api.SetupRouter(authService, spotService, entryService, settlementService,
		fineService, settingsService, authMiddleware, occupancyFeed)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shut down: %v", err)
	}
	log.Println("Server stopped.")
}

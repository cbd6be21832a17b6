package handler

import (
	"errors"
	"net/http"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

type SpotHandler struct {
	spotService *service.SpotService
}

func NewSpotHandler(spotService *service.SpotService) *SpotHandler {
	return &SpotHandler{spotService: spotService}
}

// POST /spots
func (h *SpotHandler) CreateSpot(c *gin.Context) {
	var dto domain.CreateSpotDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	spot, err := h.spotService.CreateSpot(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, spot)
}

// GET /spots
func (h *SpotHandler) GetAllSpots(c *gin.Context) {
	spots, err := h.spotService.GetAllSpots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list spots", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, spots)
}

// GET /spots/available?category=regular
func (h *SpotHandler) GetAvailableSpots(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category query parameter is required"})
		return
	}
	spots, err := h.spotService.GetAvailableSpots(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, spots)
}

// GET /spots/:spot_id
func (h *SpotHandler) GetSpotByID(c *gin.Context) {
	spot, err := h.spotService.GetSpotByID(c.Request.Context(), c.Param("spot_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "spot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch spot", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, spot)
}

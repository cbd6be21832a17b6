package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	entryService *service.EntryService
}

func NewSessionHandler(entryService *service.EntryService) *SessionHandler {
	return &SessionHandler{entryService: entryService}
}

// POST /sessions/entry
func (h *SessionHandler) RegisterEntry(c *gin.Context) {
	var dto domain.VehicleEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	category, ok := domain.ParseVehicleCategory(dto.VehicleCategory)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle category: " + dto.VehicleCategory})
		return
	}

	vehicle := domain.Vehicle{
		Plate:           dto.Plate,
		Category:        category,
		HasHandicapCard: dto.HasHandicapCard,
		IsVIP:           dto.IsVIP,
	}

	session, err := h.entryService.RegisterEntry(c.Request.Context(), vehicle, dto.SpotID, parseTimeOrNow(dto.EntryTime))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEntry):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSpotUnsuitable), errors.Is(err, service.ErrSpotOccupied):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register entry", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GET /sessions/open
func (h *SessionHandler) GetOpenSessions(c *gin.Context) {
	sessions, err := h.entryService.OpenSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list open sessions", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GET /sessions/:ticket_no
func (h *SessionHandler) GetSessionByTicket(c *gin.Context) {
	session, err := h.entryService.SessionByTicket(c.Request.Context(), c.Param("ticket_no"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// parseTimeOrNow accepts an RFC 3339 timestamp and falls back to the
// server clock on anything else, matching how the gate terminals report.
func parseTimeOrNow(value string) time.Time {
	if value == "" {
		return time.Now().UTC()
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Printf("Could not parse timestamp '%s': %v. Using server time.", value, err)
		return time.Now().UTC()
	}
	return parsed.UTC()
}

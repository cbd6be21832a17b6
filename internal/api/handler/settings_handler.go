package handler

import (
	"net/http"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

type fineSchemeDTO struct {
	Scheme string `json:"scheme" binding:"required"`
}

// GET /settings/fine-scheme
func (h *SettingsHandler) GetFineScheme(c *gin.Context) {
	name, err := h.settingsService.ActiveFineScheme(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read fine scheme", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheme": name})
}

// PUT /settings/fine-scheme
func (h *SettingsHandler) SetFineScheme(c *gin.Context) {
	var dto fineSchemeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	if err := h.settingsService.SetActiveFineScheme(c.Request.Context(), dto.Scheme); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheme": dto.Scheme})
}

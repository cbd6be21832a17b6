package handler

import (
	"errors"
	"net/http"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/repository"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

type SettlementHandler struct {
	settlementService *service.SettlementService
}

func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// POST /sessions/exit/preview
func (h *SettlementHandler) PreviewExit(c *gin.Context) {
	var dto domain.ExitPreviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	quote, err := h.settlementService.PreviewExit(c.Request.Context(), dto.Plate, parseTimeOrNow(dto.ExitTime))
	if err != nil {
		h.writeSettlementError(c, err, "could not preview exit")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// POST /sessions/exit/confirm
func (h *SettlementHandler) ConfirmExit(c *gin.Context) {
	var dto domain.ExitConfirmDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	method, ok := domain.ParsePaymentMethod(dto.Method)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method: " + dto.Method})
		return
	}

	record, err := h.settlementService.ConfirmExit(c.Request.Context(),
		dto.Plate, parseTimeOrNow(dto.ExitTime), dto.AmountTendered, method)
	if err != nil {
		h.writeSettlementError(c, err, "could not confirm exit")
		return
	}
	c.JSON(http.StatusOK, record)
}

// GET /payments/:plate
func (h *SettlementHandler) GetPaymentsByPlate(c *gin.Context) {
	payments, err := h.settlementService.PaymentsByPlate(c.Request.Context(), c.Param("plate"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch payments", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *SettlementHandler) writeSettlementError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNoOpenSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientPayment), errors.Is(err, service.ErrNegativeAmount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionAlreadyClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}

package handler

import (
	"net/http"

	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/domain"
	"github.com/Iswahaniizzati/Parking-Lot-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

type FineHandler struct {
	fineService *service.FineService
}

func NewFineHandler(fineService *service.FineService) *FineHandler {
	return &FineHandler{fineService: fineService}
}

// GET /fines/:plate
func (h *FineHandler) GetOutstandingFines(c *gin.Context) {
	plate := domain.NormalizePlate(c.Param("plate"))

	fines, err := h.fineService.OutstandingFines(c.Request.Context(), plate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch fines", "details": err.Error()})
		return
	}
	total, err := h.fineService.TotalOutstanding(c.Request.Context(), plate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not total fines", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plate": plate, "fines": fines, "total_outstanding": total})
}

// internal/interfaces/http/handlers/dispensing.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/stock"
)

// DispensingHandler handles dispensing endpoints
type DispensingHandler struct {
	stockService *stock.Service
	config       *config.Config
}

// NewDispensingHandler creates a new dispensing handler
func NewDispensingHandler(stockService *stock.Service, cfg *config.Config) *DispensingHandler {
	return &DispensingHandler{
		stockService: stockService,
		config:       cfg,
	}
}

// CreateDispensing handles POST /dispensing
func (h *DispensingHandler) CreateDispensing(c *gin.Context) {
	var req stock.DispensingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	record, err := h.stockService.CreateDispensing(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Dispensing recorded successfully",
		"data":    record,
	})
}

// GetDispensingRecords handles GET /dispensing
func (h *DispensingHandler) GetDispensingRecords(c *gin.Context) {
	from, ok := dateQuery(c, "date_from", false)
	if !ok {
		return
	}
	to, ok := dateQuery(c, "date_to", true)
	if !ok {
		return
	}

	records, err := h.stockService.GetDispensingRecords(stock.DispensingFilter{
		BranchID: c.Query("branch_id"),
		DateFrom: from,
		DateTo:   to,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dispensing records retrieved successfully",
		"data":    records,
	})
}

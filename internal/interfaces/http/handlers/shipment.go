// internal/interfaces/http/handlers/shipment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/stock"
)

// ShipmentHandler handles two-phase shipment endpoints
type ShipmentHandler struct {
	stockService *stock.Service
	config       *config.Config
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(stockService *stock.Service, cfg *config.Config) *ShipmentHandler {
	return &ShipmentHandler{
		stockService: stockService,
		config:       cfg,
	}
}

// CreateShipment handles POST /shipments
func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req stock.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	shipment, err := h.stockService.CreateShipment(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Shipment created successfully",
		"data":    shipment,
	})
}

// GetShipments handles GET /shipments
func (h *ShipmentHandler) GetShipments(c *gin.Context) {
	shipments, err := h.stockService.GetShipments(stock.ShipmentFilter{
		ToBranchID: c.Query("branch_id"),
		Status:     stock.ShipmentStatus(c.Query("status")),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipments retrieved successfully",
		"data":    shipments,
	})
}

// GetShipment handles GET /shipments/:id
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	shipment, err := h.stockService.GetShipment(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipment retrieved successfully",
		"data":    shipment,
	})
}

// AcceptShipment handles POST /shipments/:id/accept
func (h *ShipmentHandler) AcceptShipment(c *gin.Context) {
	shipment, err := h.stockService.AcceptShipment(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipment accepted successfully",
		"data":    shipment,
	})
}

// RejectShipmentRequest carries the optional rejection reason
type RejectShipmentRequest struct {
	Reason string `json:"reason"`
}

// RejectShipment handles POST /shipments/:id/reject
func (h *ShipmentHandler) RejectShipment(c *gin.Context) {
	var req RejectShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		bindError(c, err)
		return
	}

	shipment, err := h.stockService.RejectShipment(c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipment rejected",
		"data":    shipment,
	})
}

// CancelShipment handles POST /shipments/:id/cancel
func (h *ShipmentHandler) CancelShipment(c *gin.Context) {
	shipment, err := h.stockService.CancelShipment(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipment cancelled",
		"data":    shipment,
	})
}

// internal/interfaces/http/handlers/stock.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/stock"
)

// StockHandler handles stock listing and movement endpoints
type StockHandler struct {
	stockService *stock.Service
	config       *config.Config
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *stock.Service, cfg *config.Config) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		config:       cfg,
	}
}

// dateQuery parses an optional YYYY-MM-DD query parameter. endOfDay
// shifts the bound to the last instant of that day for inclusive
// upper bounds.
func dateQuery(c *gin.Context, name string, endOfDay bool) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date"})
		return nil, false
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, true
}

// GetStock handles GET /stock
func (h *StockHandler) GetStock(c *gin.Context) {
	loc := locationFromQuery(c)

	if asOfParam := c.Query("as_of"); asOfParam != "" {
		asOf, err := time.Parse(time.RFC3339, asOfParam)
		if err != nil {
			asOf, err = time.Parse("2006-01-02", asOfParam)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid as_of date"})
			return
		}

		entries, err := h.stockService.StockAsOf(loc, asOf)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Stock snapshot retrieved successfully",
			"data":    entries,
		})
		return
	}

	entries, err := h.stockService.StockOnHand(loc)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock retrieved successfully",
		"data":    entries,
	})
}

// GetStockAsOf handles GET /stock/as-of. Unlike GET /stock the as_of
// parameter is mandatory here.
func (h *StockHandler) GetStockAsOf(c *gin.Context) {
	asOfParam := c.Query("as_of")
	if asOfParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "as_of parameter is required"})
		return
	}

	asOf, err := time.Parse(time.RFC3339, asOfParam)
	if err != nil {
		asOf, err = time.Parse("2006-01-02", asOfParam)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid as_of date"})
		return
	}

	entries, err := h.stockService.StockAsOf(locationFromQuery(c), asOf)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock snapshot retrieved successfully",
		"data":    entries,
	})
}

// CreateArrivals handles POST /arrivals
func (h *StockHandler) CreateArrivals(c *gin.Context) {
	var req stock.BatchArrivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	arrivals, err := h.stockService.CreateArrivals(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Arrivals recorded successfully",
		"data":    arrivals,
	})
}

// GetArrivals handles GET /arrivals
func (h *StockHandler) GetArrivals(c *gin.Context) {
	from, ok := dateQuery(c, "date_from", false)
	if !ok {
		return
	}
	to, ok := dateQuery(c, "date_to", true)
	if !ok {
		return
	}

	arrivals, err := h.stockService.GetArrivals(stock.ArrivalFilter{DateFrom: from, DateTo: to})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Arrivals retrieved successfully",
		"data":    arrivals,
	})
}

// CreateTransfers handles POST /transfers
func (h *StockHandler) CreateTransfers(c *gin.Context) {
	var req stock.BatchTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	transfers, err := h.stockService.CreateTransfers(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Transfers recorded successfully",
		"data":    transfers,
	})
}

// GetTransfers handles GET /transfers
func (h *StockHandler) GetTransfers(c *gin.Context) {
	from, ok := dateQuery(c, "date_from", false)
	if !ok {
		return
	}
	to, ok := dateQuery(c, "date_to", true)
	if !ok {
		return
	}

	transfers, err := h.stockService.GetTransfers(stock.TransferFilter{
		ToBranchID: c.Query("branch_id"),
		DateFrom:   from,
		DateTo:     to,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transfers retrieved successfully",
		"data":    transfers,
	})
}

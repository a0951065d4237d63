// internal/interfaces/http/handlers/report.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/report"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	reportService *report.Service
	config        *config.Config
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.Service, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		config:        cfg,
	}
}

// Generate handles POST /reports/generate
func (h *ReportHandler) Generate(c *gin.Context) {
	var req report.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	data, err := h.reportService.Generate(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report generated successfully",
		"data":    data,
	})
}

// ExportStockPDF handles GET /reports/stock/pdf
func (h *ReportHandler) ExportStockPDF(c *gin.Context) {
	buf, err := h.reportService.ExportStockPDF(c.Query("branch_id"), c.Query("label"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="stock-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// DispensingCalendar handles GET /reports/calendar
func (h *ReportHandler) DispensingCalendar(c *gin.Context) {
	branchID := c.Query("branch_id")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id is required"})
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	calendar, err := h.reportService.DispensingCalendar(branchID, year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Calendar retrieved successfully",
		"data":    calendar,
	})
}

// IncomingReport handles GET /reports/incoming
func (h *ReportHandler) IncomingReport(c *gin.Context) {
	branchID := c.Query("branch_id")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id is required"})
		return
	}

	from, ok := dateQuery(c, "date_from", false)
	if !ok {
		return
	}
	to, ok := dateQuery(c, "date_to", true)
	if !ok {
		return
	}

	req := &report.GenerateRequest{Type: report.TypeIncoming, BranchID: branchID}
	if from != nil {
		s := from.Format("2006-01-02")
		req.DateFrom = &s
	}
	if to != nil {
		s := to.Format("2006-01-02")
		req.DateTo = &s
	}

	data, err := h.reportService.Generate(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Incoming report generated successfully",
		"data":    data,
	})
}

// internal/domain/report/service.go
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/patient"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/stock"
	"github.com/your-org/clinic-warehouse-backend/internal/pkg/pdf"
)

// Report types accepted by Generate.
const (
	TypeStock          = "stock"
	TypeDispensing     = "dispensing"
	TypeArrivals       = "arrivals"
	TypeTransfers      = "transfers"
	TypeIncoming       = "incoming"
	TypePatients       = "patients"
	TypeMedicalDevices = "medical_devices"
)

// Service assembles reports over stock movements and directories
type Service struct {
	config   *config.Config
	stock    *stock.Service
	patients *patient.Service
	pdf      *pdf.Service
}

// NewService creates a new report service
func NewService(cfg *config.Config, stockSvc *stock.Service, patients *patient.Service, pdfSvc *pdf.Service) *Service {
	return &Service{
		config:   cfg,
		stock:    stockSvc,
		patients: patients,
		pdf:      pdfSvc,
	}
}

// GenerateRequest selects a report type and its scope. BranchID empty
// means the central warehouse for stock reports and all branches for
// movement reports. AsOf requests a historical stock snapshot.
type GenerateRequest struct {
	Type     string  `json:"type" binding:"required"`
	BranchID string  `json:"branch_id"`
	DateFrom *string `json:"date_from"`
	DateTo   *string `json:"date_to"`
	AsOf     *string `json:"as_of"`
}

// Generate builds the requested report payload
func (s *Service) Generate(req *GenerateRequest) (interface{}, error) {
	from, to, err := parseRange(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrValidation, err)
	}

	switch req.Type {
	case TypeStock:
		loc := catalog.LocationFromBranchID(optional(req.BranchID))
		if req.AsOf != nil {
			asOf, err := time.Parse(time.RFC3339, *req.AsOf)
			if err != nil {
				asOf, err = time.Parse("2006-01-02", *req.AsOf)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: invalid as_of date", stock.ErrValidation)
			}
			return s.stock.StockAsOf(loc, asOf)
		}
		return s.stock.StockOnHand(loc)

	case TypeDispensing:
		return s.stock.GetDispensingRecords(stock.DispensingFilter{
			BranchID: req.BranchID,
			DateFrom: from,
			DateTo:   to,
		})

	case TypeArrivals:
		return s.stock.GetArrivals(stock.ArrivalFilter{DateFrom: from, DateTo: to})

	case TypeTransfers:
		return s.stock.GetTransfers(stock.TransferFilter{
			ToBranchID: req.BranchID,
			DateFrom:   from,
			DateTo:     to,
		})

	case TypeIncoming:
		if req.BranchID == "" {
			return nil, fmt.Errorf("%w: branch is required for incoming report", stock.ErrValidation)
		}
		rangeFrom := time.Time{}
		rangeTo := time.Now().UTC()
		if from != nil {
			rangeFrom = *from
		}
		if to != nil {
			rangeTo = *to
		}
		return s.stock.IncomingReport(req.BranchID, rangeFrom, rangeTo)

	case TypePatients:
		return s.patients.GetPatients(patient.PatientFilter{BranchID: req.BranchID})

	case TypeMedicalDevices:
		loc := catalog.LocationFromBranchID(optional(req.BranchID))
		entries, err := s.stock.StockOnHand(loc)
		if err != nil {
			return nil, err
		}
		devices := make([]stock.StockOnHandEntry, 0, len(entries))
		for _, e := range entries {
			if e.ItemType == catalog.ItemTypeMedicalDevice {
				devices = append(devices, e)
			}
		}
		return devices, nil

	default:
		return nil, fmt.Errorf("%w: unknown report type %q", stock.ErrValidation, req.Type)
	}
}

// ExportStockPDF renders the current stock listing of a location as a
// PDF document
func (s *Service) ExportStockPDF(branchID, locationLabel string) (*bytes.Buffer, error) {
	loc := catalog.LocationFromBranchID(optional(branchID))
	entries, err := s.stock.StockOnHand(loc)
	if err != nil {
		return nil, err
	}
	if locationLabel == "" {
		if loc.IsCentral() {
			locationLabel = "Central warehouse"
		} else {
			locationLabel = branchID
		}
	}
	return s.pdf.GenerateStockReport("Stock on hand", locationLabel, entries)
}

// CalendarDay is one day of the dispensing calendar
type CalendarDay struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

// DispensingCalendar groups a branch's dispensing records of one month
// into per-day counts
func (s *Service) DispensingCalendar(branchID string, year int, month time.Month) ([]CalendarDay, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	records, err := s.stock.GetDispensingRecords(stock.DispensingFilter{
		BranchID: branchID,
		DateFrom: &start,
		DateTo:   &end,
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, r := range records {
		counts[r.Date.Day()]++
	}

	daysInMonth := start.AddDate(0, 1, -1).Day()
	calendar := make([]CalendarDay, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		calendar = append(calendar, CalendarDay{Day: day, Count: counts[day]})
	}
	return calendar, nil
}

func parseRange(fromStr, toStr *string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != nil && *fromStr != "" {
		t, err := time.Parse("2006-01-02", *fromStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_from")
		}
		from = &t
	}
	if toStr != nil && *toStr != "" {
		t, err := time.Parse("2006-01-02", *toStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_to")
		}
		// Make the upper bound inclusive of the whole day.
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("date_to precedes date_from")
	}
	return from, to, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

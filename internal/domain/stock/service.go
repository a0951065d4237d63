// internal/domain/stock/service.go
package stock

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// PatientDirectory resolves patient identity for dispensing
type PatientDirectory interface {
	PatientName(id string) (string, error)
}

// EmployeeDirectory resolves employee identity for dispensing
type EmployeeDirectory interface {
	EmployeeName(id string) (string, error)
}

// Notifier receives movement events for display. Failures are logged
// and never affect ledger correctness.
type Notifier interface {
	NotifyBranch(branchID, title, message string) error
}

// Service handles stock movement business logic: arrivals, transfers,
// shipments and dispensing, all routed through the Ledger.
type Service struct {
	db        *gorm.DB
	config    *config.Config
	log       *logrus.Logger
	ledger    *Ledger
	patients  PatientDirectory
	employees EmployeeDirectory
	notifier  Notifier
}

// NewService creates a new stock service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Logger, patients PatientDirectory, employees EmployeeDirectory, notifier Notifier) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		log:       log,
		ledger:    NewLedger(db),
		patients:  patients,
		employees: employees,
		notifier:  notifier,
	}
}

// Ledger exposes the underlying ledger for read paths
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// Line is the canonical internal representation of one movement line.
// Both external dispensing shapes normalize into it before processing.
type Line struct {
	ItemType catalog.ItemType
	ItemID   string
	Quantity int
}

// IDQuantity is the compact external line shape used by shipment and
// dispensing payloads.
type IDQuantity struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// normalizeLines folds the legacy tagged list and the split
// medicines/medical_devices lists into one canonical list. Zero
// quantities are dropped; negative quantities and unknown type tags are
// rejected; an empty result is a validation error.
func normalizeLines(legacy []LegacyLine, medicines, devices []IDQuantity) ([]Line, error) {
	lines := make([]Line, 0, len(legacy)+len(medicines)+len(devices))

	appendLine := func(itemType catalog.ItemType, itemID string, qty int) error {
		if itemID == "" {
			return fmt.Errorf("%w: missing item id", ErrValidation)
		}
		if qty < 0 {
			return fmt.Errorf("%w: negative quantity %d for item %s", ErrValidation, qty, itemID)
		}
		if qty == 0 {
			return nil
		}
		lines = append(lines, Line{ItemType: itemType, ItemID: itemID, Quantity: qty})
		return nil
	}

	for _, l := range legacy {
		itemType, err := catalog.ParseItemType(l.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		id := l.ItemID
		if id == "" {
			id = l.ID
		}
		if err := appendLine(itemType, id, l.Quantity); err != nil {
			return nil, err
		}
	}
	for _, m := range medicines {
		if err := appendLine(catalog.ItemTypeMedicine, m.ID, m.Quantity); err != nil {
			return nil, err
		}
	}
	for _, d := range devices {
		if err := appendLine(catalog.ItemTypeMedicalDevice, d.ID, d.Quantity); err != nil {
			return nil, err
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no lines to process", ErrValidation)
	}
	return lines, nil
}

// LegacyLine is the old tagged dispensing line shape. Item id arrives
// either as "item_id" or as "id" depending on the client generation.
type LegacyLine struct {
	Type     string `json:"type"`
	ItemID   string `json:"item_id"`
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// notifyBranch emits a fire-and-forget notification; a failure is
// logged and never propagated to the caller.
func (s *Service) notifyBranch(branchID, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyBranch(branchID, title, message); err != nil {
		s.log.WithFields(logrus.Fields{
			"branch_id": branchID,
			"title":     title,
		}).WithError(err).Warn("Failed to deliver branch notification")
	}
}

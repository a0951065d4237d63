// internal/domain/stock/dispensing.go
package stock

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// DispensingRequest represents consumption of branch stock against a
// patient visit. Lines arrive either as the legacy tagged "items" list
// or as split "medicines"/"medical_devices" lists; both normalize into
// the same canonical line list.
type DispensingRequest struct {
	PatientID      string       `json:"patient_id" binding:"required"`
	EmployeeID     string       `json:"employee_id" binding:"required"`
	BranchID       string       `json:"branch_id" binding:"required"`
	Items          []LegacyLine `json:"items"`
	Medicines      []IDQuantity `json:"medicines"`
	MedicalDevices []IDQuantity `json:"medical_devices"`
}

// DispensingFilter narrows dispensing listings
type DispensingFilter struct {
	BranchID string
	DateFrom *time.Time
	DateTo   *time.Time
}

// CreateDispensing validates every line against branch stock, then
// decrements each line through the ledger's conditional update and
// writes one immutable record, all inside a single transaction. Any
// failure leaves stock and records untouched.
func (s *Service) CreateDispensing(req *DispensingRequest) (*DispensingRecord, error) {
	if req.BranchID == "" {
		return nil, fmt.Errorf("%w: branch is required", ErrValidation)
	}
	lines, err := normalizeLines(req.Items, req.Medicines, req.MedicalDevices)
	if err != nil {
		return nil, err
	}

	patientName, err := s.patients.PatientName(req.PatientID)
	if err != nil {
		return nil, err
	}
	employeeName, err := s.employees.EmployeeName(req.EmployeeID)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	branch := catalog.AtBranch(req.BranchID)

	// Validate every line before touching any quantity.
	names := make([]string, len(lines))
	for i, line := range lines {
		var item catalog.Item
		err := tx.Scopes(catalog.AtLocation(branch)).
			Where("item_type = ? AND id = ?", line.ItemType, line.ItemID).
			First(&item).Error
		if err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &InsufficientStockError{
					ItemType:  line.ItemType,
					ItemID:    line.ItemID,
					Available: 0,
					Requested: line.Quantity,
				}
			}
			return nil, fmt.Errorf("failed to look up item: %w", err)
		}
		if item.Quantity < line.Quantity {
			tx.Rollback()
			return nil, &InsufficientStockError{
				ItemType:  line.ItemType,
				ItemID:    line.ItemID,
				ItemName:  item.Name,
				Available: item.Quantity,
				Requested: line.Quantity,
			}
		}
		names[i] = item.Name
	}

	ledger := s.ledger.WithTx(tx)
	record := &DispensingRecord{
		ID:           uuid.NewString(),
		PatientID:    req.PatientID,
		PatientName:  patientName,
		EmployeeID:   req.EmployeeID,
		EmployeeName: employeeName,
		BranchID:     req.BranchID,
		Date:         time.Now().UTC(),
	}
	if err := tx.Create(record).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create dispensing record: %w", err)
	}

	for i, line := range lines {
		// The conditional update guards against a concurrent dispensing of
		// the same item passing the validation read above.
		if err := ledger.Decrement(line.ItemType, line.ItemID, branch, line.Quantity); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		item := DispensingItem{
			ID:       uuid.NewString(),
			RecordID: record.ID,
			ItemType: line.ItemType,
			ItemID:   line.ItemID,
			ItemName: names[i],
			Quantity: line.Quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create dispensing line: %w", err)
		}
		record.Items = append(record.Items, item)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit dispensing: %w", err)
	}
	return record, nil
}

// GetDispensingRecords lists dispensing records with their lines,
// newest first
func (s *Service) GetDispensingRecords(filter DispensingFilter) ([]DispensingRecord, error) {
	query := s.db.Model(&DispensingRecord{}).Preload("Items")
	if filter.BranchID != "" {
		query = query.Where("branch_id = ?", filter.BranchID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	var records []DispensingRecord
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve dispensing records: %w", err)
	}
	return records, nil
}

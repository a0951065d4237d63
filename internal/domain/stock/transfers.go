// internal/domain/stock/transfers.go
package stock

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// TransferLine represents one outright movement of a medicine from the
// central warehouse to a branch.
type TransferLine struct {
	MedicineID   string  `json:"medicine_id" binding:"required"`
	MedicineName string  `json:"medicine_name"`
	Quantity     int     `json:"quantity" binding:"required"`
	FromBranchID *string `json:"from_branch_id"`
	ToBranchID   string  `json:"to_branch_id" binding:"required"`
}

// BatchTransferRequest represents a batch of transfer lines
type BatchTransferRequest struct {
	Transfers []TransferLine `json:"transfers" binding:"required"`
}

// TransferFilter narrows transfer listings
type TransferFilter struct {
	ToBranchID string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// CreateTransfers moves stock from the central warehouse to branches
// outright, with no intermediate state. All-or-nothing across the
// batch: a failure on any line rolls back all prior lines.
func (s *Service) CreateTransfers(req *BatchTransferRequest) ([]Transfer, error) {
	if len(req.Transfers) == 0 {
		return nil, fmt.Errorf("%w: empty transfer batch", ErrValidation)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	ledger := s.ledger.WithTx(tx)
	central := catalog.CentralWarehouse()
	now := time.Now().UTC()

	transfers := make([]Transfer, 0, len(req.Transfers))
	for i, line := range req.Transfers {
		if line.Quantity <= 0 {
			tx.Rollback()
			return nil, fmt.Errorf("%w: line %d: quantity must be positive", ErrValidation, i+1)
		}
		if line.ToBranchID == "" {
			tx.Rollback()
			return nil, fmt.Errorf("%w: line %d: destination branch is required", ErrValidation, i+1)
		}

		var medicine catalog.Item
		err := tx.Scopes(catalog.AtLocation(central)).
			Where("item_type = ? AND id = ?", catalog.ItemTypeMedicine, line.MedicineID).
			First(&medicine).Error
		if err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: line %d: medicine %s", catalog.ErrItemNotFound, i+1, line.MedicineID)
			}
			return nil, fmt.Errorf("failed to look up medicine: %w", err)
		}

		if err := ledger.Decrement(catalog.ItemTypeMedicine, line.MedicineID, central, line.Quantity); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if err := ledger.DepositByName(line.ToBranchID, &medicine, line.Quantity); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		fromBranch := s.config.Stock.CentralLocationID
		if line.FromBranchID != nil && *line.FromBranchID != "" {
			fromBranch = *line.FromBranchID
		}

		transfer := Transfer{
			ID:           uuid.NewString(),
			MedicineID:   line.MedicineID,
			MedicineName: medicine.Name,
			Quantity:     line.Quantity,
			FromBranchID: fromBranch,
			ToBranchID:   line.ToBranchID,
			Date:         now,
		}
		if err := tx.Create(&transfer).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to record transfer: %w", err)
		}
		transfers = append(transfers, transfer)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transfers: %w", err)
	}
	return transfers, nil
}

// GetTransfers lists transfer records, newest first
func (s *Service) GetTransfers(filter TransferFilter) ([]Transfer, error) {
	query := s.db.Model(&Transfer{})
	if filter.ToBranchID != "" {
		query = query.Where("to_branch_id = ?", filter.ToBranchID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	var transfers []Transfer
	if err := query.Order("date DESC").Find(&transfers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve transfers: %w", err)
	}
	return transfers, nil
}

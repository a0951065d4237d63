// internal/domain/stock/shipments.go
package stock

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

func orderBySeq(db *gorm.DB) *gorm.DB {
	return db.Order("seq")
}

// CreateShipmentRequest represents shipment creation data. Medicines
// and medical devices arrive as separate lists and are folded into one
// ordered line list.
type CreateShipmentRequest struct {
	ToBranchID     string       `json:"to_branch_id" binding:"required"`
	Medicines      []IDQuantity `json:"medicines"`
	MedicalDevices []IDQuantity `json:"medical_devices"`
}

// ShipmentFilter narrows shipment listings
type ShipmentFilter struct {
	ToBranchID string
	Status     ShipmentStatus
}

// CreateShipment opens a pending two-phase movement toward a branch.
// Central availability is checked at creation time only; the actual
// decrement happens at accept time through the same conditional update
// used everywhere else, so acceptance order decides when shipments
// compete for scarce stock.
func (s *Service) CreateShipment(req *CreateShipmentRequest) (*Shipment, error) {
	if req.ToBranchID == "" {
		return nil, fmt.Errorf("%w: destination branch is required", ErrValidation)
	}
	lines, err := normalizeLines(nil, req.Medicines, req.MedicalDevices)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	central := catalog.CentralWarehouse()
	shipment := &Shipment{
		ID:         uuid.NewString(),
		ToBranchID: req.ToBranchID,
		Status:     ShipmentStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := tx.Create(shipment).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}

	for i, line := range lines {
		var item catalog.Item
		err := tx.Scopes(catalog.AtLocation(central)).
			Where("item_type = ? AND id = ?", line.ItemType, line.ItemID).
			First(&item).Error
		if err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: line %d: %s %s", catalog.ErrItemNotFound, i+1, line.ItemType, line.ItemID)
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

		shipmentItem := ShipmentItem{
			ID:         uuid.NewString(),
			ShipmentID: shipment.ID,
			Seq:        i + 1,
			ItemType:   line.ItemType,
			ItemID:     line.ItemID,
			ItemName:   item.Name,
			Quantity:   line.Quantity,
		}
		if err := tx.Create(&shipmentItem).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create shipment line: %w", err)
		}
		shipment.Items = append(shipment.Items, shipmentItem)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit shipment: %w", err)
	}

	go s.notifyBranch(req.ToBranchID, "New shipment", "Incoming shipment from the central warehouse")

	return shipment, nil
}

// AcceptShipment moves a pending shipment's stock from the central
// warehouse into the destination branch and marks it accepted. The
// whole operation is one transaction: it either fully moves stock or
// not at all, and a shipment can never be applied twice.
func (s *Service) AcceptShipment(id string) (*Shipment, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	shipment, err := s.lockShipment(tx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !canTransition(shipment.Status, ShipmentStatusAccepted) {
		tx.Rollback()
		return nil, &InvalidTransitionError{ShipmentID: id, From: shipment.Status, To: ShipmentStatusAccepted}
	}

	ledger := s.ledger.WithTx(tx)
	central := catalog.CentralWarehouse()

	for i, item := range shipment.Items {
		if err := ledger.Decrement(item.ItemType, item.ItemID, central, item.Quantity); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		var source catalog.Item
		err := tx.Scopes(catalog.AtLocation(central)).
			Where("item_type = ? AND id = ?", item.ItemType, item.ItemID).
			First(&source).Error
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to look up central item: %w", err)
		}
		if err := ledger.DepositByName(shipment.ToBranchID, &source, item.Quantity); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":      ShipmentStatusAccepted,
		"accepted_at": now,
	}
	if err := tx.Model(&Shipment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update shipment status: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit shipment acceptance: %w", err)
	}

	shipment.Status = ShipmentStatusAccepted
	shipment.AcceptedAt = &now

	go s.notifyBranch(shipment.ToBranchID, "Shipment accepted", "Shipment stock has been added to the branch")

	return shipment, nil
}

// RejectShipment records the rejection reason and terminates the
// shipment. No stock movement occurs, ever.
func (s *Service) RejectShipment(id, reason string) (*Shipment, error) {
	return s.terminateShipment(id, ShipmentStatusRejected, &reason)
}

// CancelShipment terminates a pending shipment without a reason and
// without touching stock.
func (s *Service) CancelShipment(id string) (*Shipment, error) {
	return s.terminateShipment(id, ShipmentStatusCancelled, nil)
}

func (s *Service) terminateShipment(id string, to ShipmentStatus, reason *string) (*Shipment, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	shipment, err := s.lockShipment(tx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !canTransition(shipment.Status, to) {
		tx.Rollback()
		return nil, &InvalidTransitionError{ShipmentID: id, From: shipment.Status, To: to}
	}

	updates := map[string]interface{}{"status": to}
	if reason != nil {
		updates["rejection_reason"] = *reason
	}
	if err := tx.Model(&Shipment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update shipment status: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit shipment update: %w", err)
	}

	shipment.Status = to
	shipment.RejectionReason = reason
	return shipment, nil
}

// lockShipment loads a shipment and its lines under a row lock so two
// concurrent accepts serialize on the status check.
func (s *Service) lockShipment(tx *gorm.DB, id string) (*Shipment, error) {
	var shipment Shipment
	err := tx.Clauses(forUpdate()).Where("id = ?", id).First(&shipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, fmt.Errorf("failed to load shipment: %w", err)
	}
	if err := tx.Where("shipment_id = ?", id).Order("seq").Find(&shipment.Items).Error; err != nil {
		return nil, fmt.Errorf("failed to load shipment lines: %w", err)
	}
	return &shipment, nil
}

// GetShipments lists shipments with their lines, newest first
func (s *Service) GetShipments(filter ShipmentFilter) ([]Shipment, error) {
	query := s.db.Model(&Shipment{}).Preload("Items", orderBySeq)
	if filter.ToBranchID != "" {
		query = query.Where("to_branch_id = ?", filter.ToBranchID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var shipments []Shipment
	if err := query.Order("created_at DESC").Find(&shipments).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve shipments: %w", err)
	}
	return shipments, nil
}

// GetShipment retrieves one shipment with its lines
func (s *Service) GetShipment(id string) (*Shipment, error) {
	var shipment Shipment
	err := s.db.Preload("Items", orderBySeq).Where("id = ?", id).First(&shipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, fmt.Errorf("failed to load shipment: %w", err)
	}
	return &shipment, nil
}

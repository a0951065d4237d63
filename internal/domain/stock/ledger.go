// internal/domain/stock/ledger.go
package stock

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Ledger is the authoritative store of per-(item, location) quantities.
// Every quantity change in the system goes through Increment/Decrement/
// DepositByName; no caller may read-modify-write a quantity field.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a ledger bound to a database handle
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger bound to an open transaction
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{db: tx}
}

// AvailableQuantity returns the current quantity for an item at a
// location, 0 when no row exists.
func (l *Ledger) AvailableQuantity(itemType catalog.ItemType, itemID string, loc catalog.Location) (int, error) {
	var item catalog.Item
	err := l.db.Scopes(catalog.AtLocation(loc)).
		Where("item_type = ? AND id = ?", itemType, itemID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read stock: %w", err)
	}
	return item.Quantity, nil
}

// Increment adds delta to an existing row's quantity
func (l *Ledger) Increment(itemType catalog.ItemType, itemID string, loc catalog.Location, delta int) error {
	if delta <= 0 {
		return fmt.Errorf("%w: increment delta must be positive, got %d", ErrValidation, delta)
	}

	result := l.db.Model(&catalog.Item{}).
		Scopes(catalog.AtLocation(loc)).
		Where("item_type = ? AND id = ?", itemType, itemID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to increment stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %s at %s", catalog.ErrItemNotFound, itemType, itemID, loc)
	}
	return nil
}

// Decrement subtracts delta from a row's quantity as a single
// conditional update guarded by quantity >= delta, so two concurrent
// decrements of the same row can never drive it negative. On failure no
// mutation is performed and an InsufficientStockError is returned.
func (l *Ledger) Decrement(itemType catalog.ItemType, itemID string, loc catalog.Location, delta int) error {
	if delta <= 0 {
		return fmt.Errorf("%w: decrement delta must be positive, got %d", ErrValidation, delta)
	}

	result := l.db.Model(&catalog.Item{}).
		Scopes(catalog.AtLocation(loc)).
		Where("item_type = ? AND id = ? AND quantity >= ?", itemType, itemID, delta).
		Update("quantity", gorm.Expr("quantity - ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// No row matched the guard: either the row is missing or it holds
		// less than delta. Read it back only to build the error.
		available, name := 0, ""
		var item catalog.Item
		err := l.db.Scopes(catalog.AtLocation(loc)).
			Where("item_type = ? AND id = ?", itemType, itemID).
			First(&item).Error
		if err == nil {
			available = item.Quantity
			name = item.Name
		}
		return &InsufficientStockError{
			ItemType:  itemType,
			ItemID:    itemID,
			ItemName:  name,
			Available: available,
			Requested: delta,
		}
	}
	return nil
}

// DepositByName adds qty to the branch row matching the source item's
// type and name, creating the row (copying category and prices from the
// source central row) when the branch has never stocked the item.
func (l *Ledger) DepositByName(branchID string, source *catalog.Item, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: deposit quantity must be positive, got %d", ErrValidation, qty)
	}

	result := l.db.Model(&catalog.Item{}).
		Where("item_type = ? AND name = ? AND branch_id = ?", source.Type, source.Name, branchID).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if result.Error != nil {
		return fmt.Errorf("failed to deposit stock: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	row := &catalog.Item{
		ID:            uuid.NewString(),
		Type:          source.Type,
		Name:          source.Name,
		CategoryID:    source.CategoryID,
		PurchasePrice: source.PurchasePrice,
		SellPrice:     source.SellPrice,
		Quantity:      qty,
		BranchID:      &branchID,
	}
	if err := l.db.Create(row).Error; err != nil {
		return fmt.Errorf("failed to create branch stock row: %w", err)
	}
	return nil
}

// internal/domain/stock/errors.go
package stock

import (
	"errors"
	"fmt"

	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
)

var (
	// ErrValidation marks malformed batch/line input (non-positive quantity,
	// unknown item-type tag, empty batch)
	ErrValidation = errors.New("invalid request")
	// ErrInsufficientStock marks a decrement that exceeds the available
	// quantity at a specific item/location
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidTransition marks a shipment action attempted from a
	// non-pending state
	ErrInvalidTransition = errors.New("invalid shipment transition")
	// ErrShipmentNotFound is returned when no shipment matches the id
	ErrShipmentNotFound = errors.New("shipment not found")
)

// InsufficientStockError names the offending item together with the
// available and requested quantities.
type InsufficientStockError struct {
	ItemType  catalog.ItemType
	ItemID    string
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	name := e.ItemName
	if name == "" {
		name = fmt.Sprintf("%s:%s", e.ItemType, e.ItemID)
	}
	return fmt.Sprintf("not enough stock for %s (available %d, requested %d)", name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvalidTransitionError reports a rejected shipment state change
type InvalidTransitionError struct {
	ShipmentID string
	From       ShipmentStatus
	To         ShipmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid shipment transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

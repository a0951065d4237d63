// internal/domain/stock/arrivals.go
package stock

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// ArrivalLine represents one intake line into the central warehouse
type ArrivalLine struct {
	ItemType string `json:"item_type" binding:"required"`
	ItemID   string `json:"item_id" binding:"required"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity" binding:"required"`
}

// BatchArrivalRequest represents a batch of intake lines
type BatchArrivalRequest struct {
	Arrivals []ArrivalLine `json:"arrivals" binding:"required"`
}

// ArrivalFilter narrows arrival listings
type ArrivalFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
}

// CreateArrivals records a batch intake of stock into the central
// warehouse. The batch is all-or-nothing: a line referencing an unknown
// item or carrying a non-positive quantity aborts the whole batch with
// no partial increments. Prices are never modified by arrivals.
func (s *Service) CreateArrivals(req *BatchArrivalRequest) ([]Arrival, error) {
	if len(req.Arrivals) == 0 {
		return nil, fmt.Errorf("%w: empty arrival batch", ErrValidation)
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

	arrivals := make([]Arrival, 0, len(req.Arrivals))
	for i, line := range req.Arrivals {
		itemType, err := catalog.ParseItemType(line.ItemType)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: line %d: %v", ErrValidation, i+1, err)
		}
		if line.Quantity <= 0 {
			tx.Rollback()
			return nil, fmt.Errorf("%w: line %d: quantity must be positive", ErrValidation, i+1)
		}

		var item catalog.Item
		err = tx.Scopes(catalog.AtLocation(central)).
			Where("item_type = ? AND id = ?", itemType, line.ItemID).
			First(&item).Error
		if err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: line %d: %s %s", catalog.ErrItemNotFound, i+1, itemType, line.ItemID)
			}
			return nil, fmt.Errorf("failed to look up item: %w", err)
		}

		if err := ledger.Increment(itemType, line.ItemID, central, line.Quantity); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		arrival := Arrival{
			ID:       uuid.NewString(),
			ItemType: itemType,
			ItemID:   line.ItemID,
			ItemName: item.Name,
			Quantity: line.Quantity,
			Date:     now,
		}
		if err := tx.Create(&arrival).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to record arrival: %w", err)
		}
		arrivals = append(arrivals, arrival)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit arrivals: %w", err)
	}
	return arrivals, nil
}

// GetArrivals lists arrival records, newest first
func (s *Service) GetArrivals(filter ArrivalFilter) ([]Arrival, error) {
	query := s.db.Model(&Arrival{})
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	var arrivals []Arrival
	if err := query.Order("date DESC").Find(&arrivals).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve arrivals: %w", err)
	}
	return arrivals, nil
}

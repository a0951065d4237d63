// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ItemType tags the two stockable variants
type ItemType string

const (
	ItemTypeMedicine      ItemType = "medicine"
	ItemTypeMedicalDevice ItemType = "medical_device"
)

// ErrUnknownItemType is returned when an item-type tag is not recognized
var ErrUnknownItemType = errors.New("unknown item type")

// ParseItemType validates an item-type tag coming from the outside
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypeMedicine, ItemTypeMedicalDevice:
		return ItemType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownItemType, s)
	}
}

// Location identifies where stock rows live: the central warehouse
// (no branch identity) or a specific branch.
type Location struct {
	branchID *string
}

// CentralWarehouse returns the distinguished central warehouse location
func CentralWarehouse() Location {
	return Location{}
}

// AtBranch returns the location of a specific branch
func AtBranch(branchID string) Location {
	return Location{branchID: &branchID}
}

// LocationFromBranchID builds a Location from an optional branch id;
// nil or empty means the central warehouse.
func LocationFromBranchID(branchID *string) Location {
	if branchID == nil || *branchID == "" {
		return CentralWarehouse()
	}
	return AtBranch(*branchID)
}

// IsCentral reports whether the location is the central warehouse
func (l Location) IsCentral() bool {
	return l.branchID == nil
}

// BranchID returns the branch id, nil for the central warehouse
func (l Location) BranchID() *string {
	return l.branchID
}

func (l Location) String() string {
	if l.branchID == nil {
		return "central"
	}
	return *l.branchID
}

// AtLocation is a gorm scope restricting a query to one location's rows
func AtLocation(loc Location) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if loc.IsCentral() {
			return db.Where("branch_id IS NULL")
		}
		return db.Where("branch_id = ?", *loc.BranchID())
	}
}

// Category groups items of one variant
type Category struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        ItemType  `gorm:"not null;size:20;index" json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item represents one stock row: a medicine or medical device at one
// location. The same logical item is a separate row at the central
// warehouse and at each branch; rows share name and category but carry
// their own quantity.
type Item struct {
	ID            string   `gorm:"primaryKey;size:36" json:"id"`
	Type          ItemType `gorm:"column:item_type;not null;size:20;index:idx_items_type_branch" json:"type"`
	Name          string   `gorm:"not null;size:255;index" json:"name"`
	CategoryID    string   `gorm:"not null;size:36;index" json:"category_id"`
	PurchasePrice float64  `gorm:"not null;default:0" json:"purchase_price"`
	SellPrice     float64  `gorm:"not null;default:0" json:"sell_price"`
	Quantity      int      `gorm:"not null;default:0" json:"quantity"`
	BranchID      *string  `gorm:"size:36;index:idx_items_type_branch" json:"branch_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Location returns the location this row belongs to
func (i *Item) Location() Location {
	return LocationFromBranchID(i.BranchID)
}

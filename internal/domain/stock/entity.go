// internal/domain/stock/entity.go
package stock

import (
	"time"

	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
)

// ShipmentStatus represents the shipment workflow state
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusAccepted  ShipmentStatus = "accepted"
	ShipmentStatusRejected  ShipmentStatus = "rejected"
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
)

// shipmentTransitions is the only legal state change table; everything
// past pending is terminal.
var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentStatusPending: {
		ShipmentStatusAccepted,
		ShipmentStatusRejected,
		ShipmentStatusCancelled,
	},
}

func canTransition(from, to ShipmentStatus) bool {
	for _, allowed := range shipmentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s ShipmentStatus) IsTerminal() bool {
	return len(shipmentTransitions[s]) == 0
}

// Arrival is an immutable audit entry recording an increase at the
// central warehouse, written once per intake line.
type Arrival struct {
	ID       string           `gorm:"primaryKey;size:36" json:"id"`
	ItemType catalog.ItemType `gorm:"not null;size:20" json:"item_type"`
	ItemID   string           `gorm:"not null;size:36;index" json:"item_id"`
	ItemName string           `gorm:"not null;size:255" json:"item_name"`
	Quantity int              `gorm:"not null" json:"quantity"`
	Date     time.Time        `gorm:"not null;index" json:"date"`
}

// Transfer is an immutable audit entry for a completed outright movement
// of a medicine from the central warehouse to a branch.
type Transfer struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	MedicineID   string    `gorm:"not null;size:36;index" json:"medicine_id"`
	MedicineName string    `gorm:"not null;size:255" json:"medicine_name"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	FromBranchID string    `gorm:"not null;size:36" json:"from_branch_id"`
	ToBranchID   string    `gorm:"not null;size:36;index" json:"to_branch_id"`
	Date         time.Time `gorm:"not null;index" json:"date"`
}

// Shipment is a two-phase movement gated by branch acknowledgment. Its
// lines are fixed at creation; only status, rejection reason and the
// acceptance timestamp ever change.
type Shipment struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	ToBranchID      string         `gorm:"not null;size:36;index" json:"to_branch_id"`
	Status          ShipmentStatus `gorm:"not null;default:'pending';index" json:"status"`
	RejectionReason *string        `gorm:"size:500" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	AcceptedAt      *time.Time     `json:"accepted_at,omitempty"`

	// Relationships
	Items []ShipmentItem `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE" json:"items"`
}

// ShipmentItem is one line of a shipment with a stable snapshot of the
// item name and quantity taken at creation time. Seq preserves the
// request's line order; uuid ids carry no ordering.
type ShipmentItem struct {
	ID         string           `gorm:"primaryKey;size:36" json:"id"`
	ShipmentID string           `gorm:"not null;size:36;index" json:"shipment_id"`
	Seq        int              `gorm:"not null;default:0" json:"seq"`
	ItemType   catalog.ItemType `gorm:"not null;size:20" json:"item_type"`
	ItemID     string           `gorm:"not null;size:36" json:"item_id"`
	ItemName   string           `gorm:"not null;size:255" json:"item_name"`
	Quantity   int              `gorm:"not null" json:"quantity"`
}

// DispensingRecord is an immutable aggregate recording consumption of
// branch stock against a patient visit.
type DispensingRecord struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	PatientID    string    `gorm:"not null;size:36;index" json:"patient_id"`
	PatientName  string    `gorm:"not null;size:255" json:"patient_name"`
	EmployeeID   string    `gorm:"not null;size:36" json:"employee_id"`
	EmployeeName string    `gorm:"not null;size:255" json:"employee_name"`
	BranchID     string    `gorm:"not null;size:36;index" json:"branch_id"`
	Date         time.Time `gorm:"not null;index" json:"date"`

	// Relationships
	Items []DispensingItem `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"items"`
}

// DispensingItem is one dispensed line, written atomically with the
// stock decrement.
type DispensingItem struct {
	ID       string           `gorm:"primaryKey;size:36" json:"id"`
	RecordID string           `gorm:"not null;size:36;index" json:"record_id"`
	ItemType catalog.ItemType `gorm:"not null;size:20" json:"item_type"`
	ItemID   string           `gorm:"not null;size:36" json:"item_id"`
	ItemName string           `gorm:"not null;size:255" json:"item_name"`
	Quantity int              `gorm:"not null" json:"quantity"`
}

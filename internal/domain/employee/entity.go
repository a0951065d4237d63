// internal/domain/employee/entity.go
package employee

import (
	"time"

	"gorm.io/gorm"
)

// Employee represents a clinic staff member who can dispense stock
type Employee struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	FullName  string         `gorm:"not null;size:255;index" json:"full_name"`
	Position  string         `gorm:"size:100" json:"position"`
	Phone     string         `gorm:"size:20" json:"phone"`
	BranchID  *string        `gorm:"size:36;index" json:"branch_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

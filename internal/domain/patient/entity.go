// internal/domain/patient/entity.go
package patient

import (
	"time"

	"gorm.io/gorm"
)

// Patient represents a clinic patient
type Patient struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	FullName  string         `gorm:"not null;size:255;index" json:"full_name"`
	Phone     string         `gorm:"size:20" json:"phone"`
	BirthDate *time.Time     `json:"birth_date"`
	Address   string         `gorm:"size:500" json:"address"`
	BranchID  *string        `gorm:"size:36;index" json:"branch_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Patient
func (Patient) TableName() string {
	return "patients"
}

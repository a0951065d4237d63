// internal/domain/branch/entity.go
package branch

import (
	"time"

	"gorm.io/gorm"
)

// Branch represents one clinic location holding its own stock
type Branch struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Address   string         `gorm:"size:500" json:"address"`
	Phone     string         `gorm:"size:20" json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Branch
func (Branch) TableName() string {
	return "branches"
}

// internal/domain/notification/entity.go
package notification

import "time"

// Notification represents one message addressed to a branch. A copy
// lives in the database for listing; delivery also goes out over a
// per-branch Redis channel for connected clients.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	BranchID  string    `gorm:"not null;size:36;index" json:"branch_id"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	Message   string    `gorm:"size:1000" json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

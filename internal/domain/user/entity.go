// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Roles recognized by the authorization middleware.
const (
	RoleAdmin  = "admin"
	RoleBranch = "branch"
)

// User represents an account that can sign in to the system. Branch
// accounts are scoped to one branch; admin accounts see everything.
type User struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Login       string         `gorm:"uniqueIndex;not null;size:100" json:"login"`
	Password    string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	Role        string         `gorm:"not null;size:20;default:'branch'" json:"role"`
	BranchID    *string        `gorm:"size:36;index" json:"branch_id"`
	BranchName  *string        `gorm:"size:255" json:"branch_name"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to normalize the login before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Login = strings.ToLower(strings.TrimSpace(u.Login))
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

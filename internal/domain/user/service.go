// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned on a failed login attempt
	ErrInvalidCredentials = errors.New("invalid login or password")
	// ErrLoginTaken is returned when the requested login already exists
	ErrLoginTaken = errors.New("login already in use")
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// LoginRequest represents user login data
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// CreateUserRequest represents account creation data
type CreateUserRequest struct {
	Login      string  `json:"login" binding:"required"`
	Password   string  `json:"password" binding:"required"`
	Role       string  `json:"role"`
	BranchID   *string `json:"branch_id"`
	BranchName *string `json:"branch_name"`
}

// UpdateUserRequest represents account update data. Nil fields are
// left unchanged; a non-empty password is re-hashed.
type UpdateUserRequest struct {
	Login      *string `json:"login"`
	Password   *string `json:"password"`
	Role       *string `json:"role"`
	BranchID   *string `json:"branch_id"`
	BranchName *string `json:"branch_name"`
	IsActive   *bool   `json:"is_active"`
}

// Login authenticates a user and issues an access token
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	login := strings.ToLower(strings.TrimSpace(req.Login))

	var u User
	result := s.db.Where("login = ? AND is_active = ?", login, true).First(&u)
	if result.Error != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Login, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := time.Now().UTC()
	u.LastLoginAt = &now
	s.db.Model(&User{}).Where("id = ?", u.ID).Update("last_login_at", now)

	u.Password = ""

	return &AuthResponse{
		User:        &u,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// CreateUser creates a new account
func (s *Service) CreateUser(req *CreateUserRequest) (*User, error) {
	login := strings.ToLower(strings.TrimSpace(req.Login))

	var existing User
	if err := s.db.Where("login = ?", login).First(&existing).Error; err == nil {
		return nil, ErrLoginTaken
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = RoleBranch
	}

	u := User{
		ID:         uuid.NewString(),
		Login:      login,
		Password:   hashedPassword,
		Role:       role,
		BranchID:   req.BranchID,
		BranchName: req.BranchName,
		IsActive:   true,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	u.Password = ""
	return &u, nil
}

// GetUsers lists all accounts
func (s *Service) GetUsers() ([]User, error) {
	var users []User
	if err := s.db.Order("login").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// GetUser retrieves one account by ID
func (s *Service) GetUser(id string) (*User, error) {
	var u User
	result := s.db.Where("id = ?", id).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", result.Error)
	}
	u.Password = ""
	return &u, nil
}

// GetUserByLogin retrieves one account by login
func (s *Service) GetUserByLogin(login string) (*User, error) {
	var u User
	result := s.db.Where("login = ?", strings.ToLower(strings.TrimSpace(login))).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", result.Error)
	}
	u.Password = ""
	return &u, nil
}

// UpdateUser applies a partial update to an account
func (s *Service) UpdateUser(id string, req *UpdateUserRequest) (*User, error) {
	var u User
	result := s.db.Where("id = ?", id).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", result.Error)
	}

	updates := map[string]interface{}{}
	if req.Login != nil {
		updates["login"] = strings.ToLower(strings.TrimSpace(*req.Login))
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := s.passwordManager.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = hashed
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.BranchID != nil {
		updates["branch_id"] = *req.BranchID
	}
	if req.BranchName != nil {
		updates["branch_name"] = *req.BranchName
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&u).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	u.Password = ""
	return &u, nil
}

// DeleteUser soft-deletes an account
func (s *Service) DeleteUser(id string) error {
	result := s.db.Where("id = ?", id).Delete(&User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ChangePassword changes a user's password after verifying the current one
func (s *Service) ChangePassword(id, currentPassword, newPassword string) error {
	var u User
	result := s.db.Where("id = ? AND is_active = ?", id, true).First(&u)
	if result.Error != nil {
		return ErrUserNotFound
	}

	if err := s.passwordManager.VerifyPassword(currentPassword, u.Password); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hashedPassword, err := s.passwordManager.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.Model(&u).Update("password", hashedPassword).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

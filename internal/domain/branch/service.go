// internal/domain/branch/service.go
package branch

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/user"
	"gorm.io/gorm"
)

// ErrBranchNotFound is returned when no branch matches the lookup
var ErrBranchNotFound = errors.New("branch not found")

// Service handles branch business logic. Creating a branch also
// provisions the branch-scoped account used to sign in at that
// location.
type Service struct {
	db     *gorm.DB
	config *config.Config
	users  *user.Service
}

// NewService creates a new branch service
func NewService(db *gorm.DB, cfg *config.Config, users *user.Service) *Service {
	return &Service{
		db:     db,
		config: cfg,
		users:  users,
	}
}

// CreateBranchRequest represents branch creation data
type CreateBranchRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateBranchRequest represents branch update data
type UpdateBranchRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// CreateBranch creates a branch together with its sign-in account
func (s *Service) CreateBranch(req *CreateBranchRequest) (*Branch, error) {
	b := Branch{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := s.db.Create(&b).Error; err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	_, err := s.users.CreateUser(&user.CreateUserRequest{
		Login:      req.Login,
		Password:   req.Password,
		Role:       user.RoleBranch,
		BranchID:   &b.ID,
		BranchName: &b.Name,
	})
	if err != nil {
		// Without its account the branch is unusable, so undo the insert.
		s.db.Delete(&b)
		return nil, fmt.Errorf("failed to create branch account: %w", err)
	}

	return &b, nil
}

// GetBranches lists all branches
func (s *Service) GetBranches() ([]Branch, error) {
	var branches []Branch
	if err := s.db.Order("name").Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve branches: %w", err)
	}
	return branches, nil
}

// GetBranch retrieves one branch by ID
func (s *Service) GetBranch(id string) (*Branch, error) {
	var b Branch
	result := s.db.Where("id = ?", id).First(&b)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to retrieve branch: %w", result.Error)
	}
	return &b, nil
}

// UpdateBranch applies a partial update to a branch. A rename is
// propagated to the branch's sign-in accounts.
func (s *Service) UpdateBranch(id string, req *UpdateBranchRequest) (*Branch, error) {
	b, err := s.GetBranch(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		if err := s.db.Model(b).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update branch: %w", err)
		}
	}

	if req.Name != nil {
		err := s.db.Model(&user.User{}).Where("branch_id = ?", id).
			Update("branch_name", *req.Name).Error
		if err != nil {
			return nil, fmt.Errorf("failed to sync branch accounts: %w", err)
		}
	}

	return b, nil
}

// DeleteBranch soft-deletes a branch and deactivates its accounts
func (s *Service) DeleteBranch(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Branch{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete branch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBranchNotFound
	}

	err := s.db.Model(&user.User{}).Where("branch_id = ?", id).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate branch accounts: %w", err)
	}
	return nil
}

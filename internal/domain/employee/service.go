// internal/domain/employee/service.go
package employee

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"gorm.io/gorm"
)

// ErrEmployeeNotFound is returned when no employee matches the lookup
var ErrEmployeeNotFound = errors.New("employee not found")

// Service handles employee business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new employee service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateEmployeeRequest represents employee creation data
type CreateEmployeeRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Position string  `json:"position"`
	Phone    string  `json:"phone"`
	BranchID *string `json:"branch_id"`
}

// UpdateEmployeeRequest represents employee update data
type UpdateEmployeeRequest struct {
	FullName *string `json:"full_name"`
	Position *string `json:"position"`
	Phone    *string `json:"phone"`
	BranchID *string `json:"branch_id"`
}

// EmployeeFilter narrows employee listings
type EmployeeFilter struct {
	BranchID string
}

// CreateEmployee registers a new employee
func (s *Service) CreateEmployee(req *CreateEmployeeRequest) (*Employee, error) {
	e := Employee{
		ID:       uuid.NewString(),
		FullName: req.FullName,
		Position: req.Position,
		Phone:    req.Phone,
		BranchID: req.BranchID,
	}
	if err := s.db.Create(&e).Error; err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return &e, nil
}

// GetEmployees lists employees, optionally filtered by branch
func (s *Service) GetEmployees(filter EmployeeFilter) ([]Employee, error) {
	query := s.db.Model(&Employee{})
	if filter.BranchID != "" {
		query = query.Where("branch_id = ?", filter.BranchID)
	}

	var employees []Employee
	if err := query.Order("full_name").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve employees: %w", err)
	}
	return employees, nil
}

// GetEmployee retrieves one employee by ID
func (s *Service) GetEmployee(id string) (*Employee, error) {
	var e Employee
	result := s.db.Where("id = ?", id).First(&e)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to retrieve employee: %w", result.Error)
	}
	return &e, nil
}

// EmployeeName resolves an employee ID to the full name recorded on
// dispensing records
func (s *Service) EmployeeName(id string) (string, error) {
	e, err := s.GetEmployee(id)
	if err != nil {
		return "", err
	}
	return e.FullName, nil
}

// UpdateEmployee applies a partial update to an employee
func (s *Service) UpdateEmployee(id string, req *UpdateEmployeeRequest) (*Employee, error) {
	e, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.BranchID != nil {
		updates["branch_id"] = *req.BranchID
	}

	if len(updates) > 0 {
		if err := s.db.Model(e).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update employee: %w", err)
		}
	}
	return e, nil
}

// DeleteEmployee soft-deletes an employee
func (s *Service) DeleteEmployee(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Employee{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// internal/domain/patient/service.go
package patient

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"gorm.io/gorm"
)

// ErrPatientNotFound is returned when no patient matches the lookup
var ErrPatientNotFound = errors.New("patient not found")

// Service handles patient business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new patient service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreatePatientRequest represents patient creation data
type CreatePatientRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Phone     string  `json:"phone"`
	BirthDate *string `json:"birth_date"`
	Address   string  `json:"address"`
	BranchID  *string `json:"branch_id"`
}

// UpdatePatientRequest represents patient update data
type UpdatePatientRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	BranchID *string `json:"branch_id"`
}

// PatientFilter narrows patient listings
type PatientFilter struct {
	BranchID string
	Search   string
}

// CreatePatient registers a new patient
func (s *Service) CreatePatient(req *CreatePatientRequest) (*Patient, error) {
	p := Patient{
		ID:       uuid.NewString(),
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		BranchID: req.BranchID,
	}
	if req.BirthDate != nil {
		birthDate, err := parseDate(*req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("invalid birth date: %w", err)
		}
		p.BirthDate = &birthDate
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return &p, nil
}

// GetPatients lists patients, optionally filtered by branch or a
// name substring
func (s *Service) GetPatients(filter PatientFilter) ([]Patient, error) {
	query := s.db.Model(&Patient{})
	if filter.BranchID != "" {
		query = query.Where("branch_id = ?", filter.BranchID)
	}
	if filter.Search != "" {
		query = query.Where("full_name ILIKE ?", "%"+filter.Search+"%")
	}

	var patients []Patient
	if err := query.Order("full_name").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve patients: %w", err)
	}
	return patients, nil
}

// GetPatient retrieves one patient by ID
func (s *Service) GetPatient(id string) (*Patient, error) {
	var p Patient
	result := s.db.Where("id = ?", id).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to retrieve patient: %w", result.Error)
	}
	return &p, nil
}

// PatientName resolves a patient ID to the full name recorded on
// dispensing records
func (s *Service) PatientName(id string) (string, error) {
	p, err := s.GetPatient(id)
	if err != nil {
		return "", err
	}
	return p.FullName, nil
}

// UpdatePatient applies a partial update to a patient
func (s *Service) UpdatePatient(id string, req *UpdatePatientRequest) (*Patient, error) {
	p, err := s.GetPatient(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.BranchID != nil {
		updates["branch_id"] = *req.BranchID
	}

	if len(updates) > 0 {
		if err := s.db.Model(p).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update patient: %w", err)
		}
	}
	return p, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// DeletePatient soft-deletes a patient
func (s *Service) DeletePatient(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Patient{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete patient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPatientNotFound
	}
	return nil
}

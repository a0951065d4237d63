// internal/interfaces/http/handlers/patient.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/patient"
)

// PatientHandler handles patient endpoints
type PatientHandler struct {
	patientService *patient.Service
	config         *config.Config
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *patient.Service, cfg *config.Config) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
		config:         cfg,
	}
}

// GetPatients handles GET /patients
func (h *PatientHandler) GetPatients(c *gin.Context) {
	patients, err := h.patientService.GetPatients(patient.PatientFilter{
		BranchID: c.Query("branch_id"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Patients retrieved successfully",
		"data":    patients,
	})
}

// GetPatient handles GET /patients/:id
func (h *PatientHandler) GetPatient(c *gin.Context) {
	p, err := h.patientService.GetPatient(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Patient retrieved successfully",
		"data":    p,
	})
}

// CreatePatient handles POST /patients
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req patient.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.patientService.CreatePatient(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Patient created successfully",
		"data":    p,
	})
}

// UpdatePatient handles PUT /patients/:id
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req patient.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.patientService.UpdatePatient(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Patient updated successfully",
		"data":    p,
	})
}

// DeletePatient handles DELETE /patients/:id
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.patientService.DeletePatient(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Patient deleted successfully",
	})
}

// internal/interfaces/http/handlers/employee.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/employee"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *employee.Service
	config          *config.Config
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *employee.Service, cfg *config.Config) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		config:          cfg,
	}
}

// GetEmployees handles GET /employees
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	employees, err := h.employeeService.GetEmployees(employee.EmployeeFilter{
		BranchID: c.Query("branch_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employees retrieved successfully",
		"data":    employees,
	})
}

// GetEmployee handles GET /employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	e, err := h.employeeService.GetEmployee(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee retrieved successfully",
		"data":    e,
	})
}

// CreateEmployee handles POST /employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req employee.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	e, err := h.employeeService.CreateEmployee(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Employee created successfully",
		"data":    e,
	})
}

// UpdateEmployee handles PUT /employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req employee.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	e, err := h.employeeService.UpdateEmployee(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee updated successfully",
		"data":    e,
	})
}

// DeleteEmployee handles DELETE /employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.employeeService.DeleteEmployee(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee deleted successfully",
	})
}

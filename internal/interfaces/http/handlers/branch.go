// internal/interfaces/http/handlers/branch.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/branch"
)

// BranchHandler handles branch endpoints
type BranchHandler struct {
	branchService *branch.Service
	config        *config.Config
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *branch.Service, cfg *config.Config) *BranchHandler {
	return &BranchHandler{
		branchService: branchService,
		config:        cfg,
	}
}

// GetBranches handles GET /branches
func (h *BranchHandler) GetBranches(c *gin.Context) {
	branches, err := h.branchService.GetBranches()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branches retrieved successfully",
		"data":    branches,
	})
}

// GetBranch handles GET /branches/:id
func (h *BranchHandler) GetBranch(c *gin.Context) {
	b, err := h.branchService.GetBranch(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branch retrieved successfully",
		"data":    b,
	})
}

// CreateBranch handles POST /branches
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req branch.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.branchService.CreateBranch(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Branch created successfully",
		"data":    b,
	})
}

// UpdateBranch handles PUT /branches/:id
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	var req branch.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.branchService.UpdateBranch(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branch updated successfully",
		"data":    b,
	})
}

// DeleteBranch handles DELETE /branches/:id
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	if err := h.branchService.DeleteBranch(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branch deleted successfully",
	})
}

// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/branch"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/employee"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/notification"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/patient"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/stock"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/user"
)

// respondError maps domain errors onto HTTP status codes. Validation
// problems are 400, missing entities 404, stock shortfalls and state
// conflicts 409; anything unrecognized is a 500 with a generic body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stock.ErrValidation),
		errors.Is(err, catalog.ErrUnknownItemType),
		errors.Is(err, catalog.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, catalog.ErrItemNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, stock.ErrShipmentNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, branch.ErrBranchNotFound),
		errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, stock.ErrInvalidTransition),
		errors.Is(err, user.ErrLoginTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindError reports a malformed request body
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

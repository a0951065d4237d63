// internal/interfaces/http/handlers/respond_test.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/branch"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/stock"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/user"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", stock.ErrValidation, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: empty batch", stock.ErrValidation), http.StatusBadRequest},
		{"unknown item type", catalog.ErrUnknownItemType, http.StatusBadRequest},
		{"invalid category", catalog.ErrInvalidCategory, http.StatusBadRequest},
		{"bad credentials", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"item not found", catalog.ErrItemNotFound, http.StatusNotFound},
		{"shipment not found", stock.ErrShipmentNotFound, http.StatusNotFound},
		{"branch not found", branch.ErrBranchNotFound, http.StatusNotFound},
		{"insufficient stock", &stock.InsufficientStockError{Available: 1, Requested: 2}, http.StatusConflict},
		{"invalid transition", &stock.InvalidTransitionError{From: "accepted", To: "rejected"}, http.StatusConflict},
		{"login taken", user.ErrLoginTaken, http.StatusConflict},
		{"unknown", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("pq: connection refused on 10.0.0.5"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if body == "" || body == "{}" {
		t.Fatal("expected an error body")
	}
	if !strings.Contains(body, "Internal server error") {
		t.Errorf("body %q does not carry the generic message", body)
	}
	if strings.Contains(body, "10.0.0.5") {
		t.Error("internal detail leaked into the response body")
	}
}

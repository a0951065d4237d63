// internal/domain/stock/entity_test.go
package stock

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ShipmentStatus
		want     bool
	}{
		{ShipmentStatusPending, ShipmentStatusAccepted, true},
		{ShipmentStatusPending, ShipmentStatusRejected, true},
		{ShipmentStatusPending, ShipmentStatusCancelled, true},
		{ShipmentStatusPending, ShipmentStatusPending, false},
		{ShipmentStatusAccepted, ShipmentStatusRejected, false},
		{ShipmentStatusAccepted, ShipmentStatusAccepted, false},
		{ShipmentStatusRejected, ShipmentStatusAccepted, false},
		{ShipmentStatusCancelled, ShipmentStatusAccepted, false},
	}

	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if ShipmentStatusPending.IsTerminal() {
		t.Error("pending must not be terminal")
	}
	for _, s := range []ShipmentStatus{ShipmentStatusAccepted, ShipmentStatusRejected, ShipmentStatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}

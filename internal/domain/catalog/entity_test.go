// internal/domain/catalog/entity_test.go
package catalog

import (
	"errors"
	"testing"
)

func TestParseItemType(t *testing.T) {
	for _, tag := range []string{"medicine", "medical_device"} {
		got, err := ParseItemType(tag)
		if err != nil {
			t.Errorf("ParseItemType(%q): %v", tag, err)
		}
		if string(got) != tag {
			t.Errorf("ParseItemType(%q) = %q", tag, got)
		}
	}

	for _, tag := range []string{"", "medicines", "device", "MEDICINE"} {
		if _, err := ParseItemType(tag); !errors.Is(err, ErrUnknownItemType) {
			t.Errorf("ParseItemType(%q) expected ErrUnknownItemType, got %v", tag, err)
		}
	}
}

func TestLocationCentral(t *testing.T) {
	loc := CentralWarehouse()
	if !loc.IsCentral() {
		t.Error("CentralWarehouse must be central")
	}
	if loc.BranchID() != nil {
		t.Error("central location must carry no branch id")
	}
	if loc.String() != "central" {
		t.Errorf("String() = %q, want %q", loc.String(), "central")
	}
}

func TestLocationAtBranch(t *testing.T) {
	loc := AtBranch("branch-1")
	if loc.IsCentral() {
		t.Error("branch location must not be central")
	}
	if got := loc.BranchID(); got == nil || *got != "branch-1" {
		t.Errorf("BranchID() = %v, want branch-1", got)
	}
	if loc.String() != "branch-1" {
		t.Errorf("String() = %q, want %q", loc.String(), "branch-1")
	}
}

func TestLocationFromBranchID(t *testing.T) {
	if !LocationFromBranchID(nil).IsCentral() {
		t.Error("nil branch id must resolve to the central warehouse")
	}

	empty := ""
	if !LocationFromBranchID(&empty).IsCentral() {
		t.Error("empty branch id must resolve to the central warehouse")
	}

	id := "branch-2"
	loc := LocationFromBranchID(&id)
	if loc.IsCentral() || *loc.BranchID() != "branch-2" {
		t.Errorf("unexpected location %v", loc)
	}
}

func TestItemLocation(t *testing.T) {
	central := Item{ID: "i-1", Type: ItemTypeMedicine}
	if !central.Location().IsCentral() {
		t.Error("item without branch id belongs to the central warehouse")
	}

	id := "branch-3"
	branch := Item{ID: "i-2", Type: ItemTypeMedicalDevice, BranchID: &id}
	if branch.Location().IsCentral() {
		t.Error("item with branch id must not be central")
	}
}

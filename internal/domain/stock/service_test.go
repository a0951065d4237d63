// internal/domain/stock/service_test.go
package stock

import (
	"errors"
	"testing"

	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
)

func TestNormalizeLinesLegacyShape(t *testing.T) {
	legacy := []LegacyLine{
		{Type: "medicine", ItemID: "med-1", Quantity: 3},
		{Type: "medical_device", ID: "dev-1", Quantity: 2},
	}

	lines, err := normalizeLines(legacy, nil, nil)
	if err != nil {
		t.Fatalf("normalizeLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ItemType != catalog.ItemTypeMedicine || lines[0].ItemID != "med-1" || lines[0].Quantity != 3 {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[1].ItemType != catalog.ItemTypeMedicalDevice || lines[1].ItemID != "dev-1" {
		t.Errorf("legacy id key was not honored: %+v", lines[1])
	}
}

func TestNormalizeLinesSplitShape(t *testing.T) {
	lines, err := normalizeLines(nil,
		[]IDQuantity{{ID: "med-1", Quantity: 1}},
		[]IDQuantity{{ID: "dev-1", Quantity: 4}},
	)
	if err != nil {
		t.Fatalf("normalizeLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ItemType != catalog.ItemTypeMedicine {
		t.Errorf("medicines list produced type %s", lines[0].ItemType)
	}
	if lines[1].ItemType != catalog.ItemTypeMedicalDevice {
		t.Errorf("medical_devices list produced type %s", lines[1].ItemType)
	}
}

func TestNormalizeLinesItemIDPreferredOverID(t *testing.T) {
	legacy := []LegacyLine{{Type: "medicine", ItemID: "item-key", ID: "other-key", Quantity: 1}}

	lines, err := normalizeLines(legacy, nil, nil)
	if err != nil {
		t.Fatalf("normalizeLines: %v", err)
	}
	if lines[0].ItemID != "item-key" {
		t.Errorf("expected item_id to win, got %s", lines[0].ItemID)
	}
}

func TestNormalizeLinesDropsZeroQuantities(t *testing.T) {
	lines, err := normalizeLines(nil,
		[]IDQuantity{{ID: "med-1", Quantity: 0}, {ID: "med-2", Quantity: 5}},
		nil,
	)
	if err != nil {
		t.Fatalf("normalizeLines: %v", err)
	}
	if len(lines) != 1 || lines[0].ItemID != "med-2" {
		t.Fatalf("zero-quantity line not dropped: %+v", lines)
	}
}

func TestNormalizeLinesRejectsNegativeQuantity(t *testing.T) {
	_, err := normalizeLines(nil, []IDQuantity{{ID: "med-1", Quantity: -1}}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNormalizeLinesRejectsMissingID(t *testing.T) {
	_, err := normalizeLines(nil, []IDQuantity{{Quantity: 2}}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNormalizeLinesRejectsUnknownType(t *testing.T) {
	_, err := normalizeLines([]LegacyLine{{Type: "vaccine", ItemID: "v-1", Quantity: 1}}, nil, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNormalizeLinesEmptyResultIsError(t *testing.T) {
	_, err := normalizeLines(nil, []IDQuantity{{ID: "med-1", Quantity: 0}}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for all-zero input, got %v", err)
	}

	_, err = normalizeLines(nil, nil, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty input, got %v", err)
	}
}

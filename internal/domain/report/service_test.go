// internal/domain/report/service_test.go
package report

import (
	"testing"
	"time"
)

func TestParseRangeEmpty(t *testing.T) {
	from, to, err := parseRange(nil, nil)
	if err != nil {
		t.Fatalf("parseRange: %v", err)
	}
	if from != nil || to != nil {
		t.Error("empty input must yield open range")
	}

	empty := ""
	from, to, err = parseRange(&empty, &empty)
	if err != nil {
		t.Fatalf("parseRange: %v", err)
	}
	if from != nil || to != nil {
		t.Error("empty strings must yield open range")
	}
}

func TestParseRangeInclusiveUpperBound(t *testing.T) {
	fromStr := "2026-03-01"
	toStr := "2026-03-10"

	from, to, err := parseRange(&fromStr, &toStr)
	if err != nil {
		t.Fatalf("parseRange: %v", err)
	}
	if from == nil || !from.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", from)
	}
	// The upper bound covers the whole of date_to.
	if to == nil || to.Day() != 10 || to.Hour() != 23 {
		t.Errorf("to = %v, expected end of March 10", to)
	}
	if !to.Before(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v leaks into the next day", to)
	}
}

func TestParseRangeRejectsBadInput(t *testing.T) {
	bad := "03/01/2026"
	if _, _, err := parseRange(&bad, nil); err == nil {
		t.Error("expected error for malformed date_from")
	}
	if _, _, err := parseRange(nil, &bad); err == nil {
		t.Error("expected error for malformed date_to")
	}

	fromStr := "2026-03-10"
	toStr := "2026-03-01"
	if _, _, err := parseRange(&fromStr, &toStr); err == nil {
		t.Error("expected error when date_to precedes date_from")
	}
}

func TestParseRangeSameDay(t *testing.T) {
	day := "2026-03-05"
	from, to, err := parseRange(&day, &day)
	if err != nil {
		t.Fatalf("parseRange: %v", err)
	}
	if to.Before(*from) {
		t.Error("same-day range must remain valid")
	}
}

func TestOptional(t *testing.T) {
	if optional("") != nil {
		t.Error("empty string must map to nil")
	}
	if got := optional("x"); got == nil || *got != "x" {
		t.Errorf("optional(\"x\") = %v", got)
	}
}

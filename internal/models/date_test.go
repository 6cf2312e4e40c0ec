package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-25")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 25 {
		t.Errorf("expected 2025-06-25, got %s", d)
	}
	if d.String() != "2025-06-25" {
		t.Errorf("expected string 2025-06-25, got %s", d.String())
	}
}

func TestParseDate_RejectsWrongLength(t *testing.T) {
	tests := []string{"", "2025-6-25", "20250625", "2025-06-25T00:00:00Z", "yesterday"}
	for _, input := range tests {
		if _, err := ParseDate(input); !errors.Is(err, ErrBadDate) {
			t.Errorf("ParseDate(%q): expected ErrBadDate, got %v", input, err)
		}
	}
}

func TestParseDate_RejectsNonNumericFields(t *testing.T) {
	if _, err := ParseDate("yyyy-06-25"); !errors.Is(err, ErrBadDate) {
		t.Errorf("expected ErrBadDate for non-numeric year, got %v", err)
	}
	if _, err := ParseDate("2025-xx-25"); !errors.Is(err, ErrBadDate) {
		t.Errorf("expected ErrBadDate for non-numeric month, got %v", err)
	}
	if _, err := ParseDate("2025-06-zz"); !errors.Is(err, ErrBadDate) {
		t.Errorf("expected ErrBadDate for non-numeric day, got %v", err)
	}
}

func TestParseDate_RejectsImpossibleCalendarDates(t *testing.T) {
	tests := []string{
		"2025-13-01", // month past December
		"2025-00-10", // month zero
		"2025-02-30", // day past end of February
		"2025-06-99", // day far out of range
		"2025-02-29", // not a leap year
	}
	for _, input := range tests {
		if _, err := ParseDate(input); !errors.Is(err, ErrBadDate) {
			t.Errorf("ParseDate(%q): expected ErrBadDate, got %v", input, err)
		}
	}
	// Leap day in an actual leap year still parses.
	if _, err := ParseDate("2024-02-29"); err != nil {
		t.Errorf("ParseDate(2024-02-29): %v", err)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.June, 25)

	encoded, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(encoded) != `"2025-06-25"` {
		t.Errorf("expected \"2025-06-25\", got %s", encoded)
	}

	var decoded Date
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded != d {
		t.Errorf("round trip changed date: %s != %s", decoded, d)
	}
}

func TestDate_Ordering(t *testing.T) {
	earlier := NewDate(2025, time.June, 24)
	later := NewDate(2025, time.June, 25)

	if !earlier.Before(later) {
		t.Error("expected earlier.Before(later)")
	}
	if !later.After(earlier) {
		t.Error("expected later.After(earlier)")
	}
	if earlier.IsZero() {
		t.Error("expected non-zero date")
	}
	if !(Date{}).IsZero() {
		t.Error("expected zero value to be zero")
	}
}

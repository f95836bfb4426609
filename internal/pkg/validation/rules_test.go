package validation

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) returned error: %v", s, err)
	}
	return d
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-03-01", false}, // friday
		{"2024-03-02", true},  // saturday
		{"2024-03-03", true},  // sunday
		{"2024-03-04", false}, // monday
	}

	for _, tt := range tests {
		if got := IsWeekend(mustParse(t, tt.date)); got != tt.want {
			t.Errorf("IsWeekend(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestIsFutureDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		date string
		want bool
	}{
		{"2024-03-14", false},
		{"2024-03-15", false}, // same day is not future
		{"2024-03-16", true},
		{"2025-01-01", true},
		{"2023-12-31", false},
	}

	for _, tt := range tests {
		if got := IsFutureDate(mustParse(t, tt.date), now); got != tt.want {
			t.Errorf("IsFutureDate(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("01/03/2024"); err == nil {
		t.Error("ParseDate should reject non yyyy-mm-dd input")
	}
}

package booking

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(at(10, 0), at(11, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateRange(at(11, 0), at(10, 0)); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	// Zero-length bookings are rejected: the end instant is exclusive.
	if err := ValidateRange(at(10, 0), at(10, 0)); err == nil {
		t.Fatalf("expected error for empty range")
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	// Existing approved booking [10:00, 11:00).
	s, e := at(10, 0), at(11, 0)

	cases := []struct {
		name       string
		start, end time.Time
		overlap    bool
	}{
		{"contained", at(10, 30), at(10, 45), true},
		{"covering", at(9, 0), at(12, 0), true},
		{"leading edge", at(9, 30), at(10, 1), true},
		{"trailing edge", at(10, 59), at(11, 30), true},
		{"identical", at(10, 0), at(11, 0), true},
		{"back-to-back after", at(11, 0), at(12, 0), false},
		{"back-to-back before", at(9, 0), at(10, 0), false},
		{"disjoint", at(13, 0), at(14, 0), false},
	}
	for _, c := range cases {
		if got := Overlaps(s, e, c.start, c.end); got != c.overlap {
			t.Fatalf("%s: expected overlap=%v, got %v", c.name, c.overlap, got)
		}
	}
}

func TestActiveAt(t *testing.T) {
	s, e := at(10, 0), at(11, 0)

	if !ActiveAt(s, e, at(10, 30)) {
		t.Fatalf("expected active mid-window")
	}
	// Both endpoints count as active for early release.
	if !ActiveAt(s, e, s) || !ActiveAt(s, e, e) {
		t.Fatalf("expected endpoints active")
	}
	if ActiveAt(s, e, at(9, 59)) {
		t.Fatalf("expected inactive before start")
	}
	if ActiveAt(s, e, at(11, 1)) {
		t.Fatalf("expected inactive after end")
	}
}

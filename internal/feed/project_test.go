package feed

import (
	"strings"
	"testing"
	"time"

	"spacebook/internal/booking"
)

func sample() []booking.ListItem {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	return []booking.ListItem{
		{
			ID:           1,
			Username:     "student",
			ResourceName: "Seat A1",
			StartTime:    start,
			EndTime:      start.Add(time.Hour),
			Status:       booking.StatusApproved,
		},
		{
			ID:           2,
			Username:     "guest",
			ResourceName: "Discussion Room 1",
			StartTime:    start,
			EndTime:      start.Add(2 * time.Hour),
			Status:       booking.StatusPending,
		},
	}
}

func TestProject_RedactsOwnerForNonAdmin(t *testing.T) {
	events := Project(sample(), false)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, e := range events {
		if strings.Contains(e.Title, "student") || strings.Contains(e.Title, "guest") {
			t.Fatalf("non-admin title leaked a username: %q", e.Title)
		}
		if !strings.Contains(e.Title, "(Reserved)") {
			t.Fatalf("expected Reserved placeholder, got %q", e.Title)
		}
	}
}

func TestProject_AdminSeesOwner(t *testing.T) {
	events := Project(sample(), true)
	if events[0].Title != "Seat A1 (student)" {
		t.Fatalf("unexpected admin title: %q", events[0].Title)
	}
	if events[1].Title != "Discussion Room 1 (guest)" {
		t.Fatalf("unexpected admin title: %q", events[1].Title)
	}
}

func TestProject_StatusColors(t *testing.T) {
	items := sample()
	events := Project(items, true)
	if events[0].BackgroundColor != "#c3edc0" || events[0].BorderColor != "#c3edc0" {
		t.Fatalf("approved color mismatch: %+v", events[0])
	}
	if events[1].BackgroundColor != "#fdf2b3" {
		t.Fatalf("pending color mismatch: %+v", events[1])
	}
	if events[0].TextColor != "#594d5b" {
		t.Fatalf("text color mismatch: %q", events[0].TextColor)
	}
	if events[0].ExtendedProps.Status != booking.StatusApproved {
		t.Fatalf("status prop mismatch: %+v", events[0].ExtendedProps)
	}
}

func TestProject_UnknownStatusGetsFallbackColor(t *testing.T) {
	items := sample()
	items[0].Status = booking.Status("Archived")
	events := Project(items, true)
	if events[0].BackgroundColor != "#ff8fa3" {
		t.Fatalf("expected fallback color, got %q", events[0].BackgroundColor)
	}
}

func TestProject_TimestampsAreRFC3339(t *testing.T) {
	events := Project(sample(), false)
	if _, err := time.Parse(time.RFC3339, events[0].Start); err != nil {
		t.Fatalf("start not RFC 3339: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, events[0].End); err != nil {
		t.Fatalf("end not RFC 3339: %v", err)
	}
}

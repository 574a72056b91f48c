package feed

import (
	"time"

	"spacebook/internal/booking"
)

// Event is one calendar entry in the shape the calendar UI consumes.
type Event struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Start           string        `json:"start"`
	End             string        `json:"end"`
	BackgroundColor string        `json:"backgroundColor"`
	BorderColor     string        `json:"borderColor"`
	TextColor       string        `json:"textColor"`
	ExtendedProps   ExtendedProps `json:"extendedProps"`
}

type ExtendedProps struct {
	Status booking.Status `json:"status"`
}

const textColor = "#594d5b"

var statusColors = map[booking.Status]string{
	booking.StatusApproved:  "#c3edc0",
	booking.StatusPending:   "#fdf2b3",
	booking.StatusRejected:  "#fbc7d4",
	booking.StatusCancelled: "#e9ecef",
	booking.StatusDraft:     "#f3f0ff",
}

const fallbackColor = "#ff8fa3"

// Project renders bookings as calendar events. Admins see the booking
// owner's username in the title; for everyone else the owner is redacted
// behind a generic "Reserved" label. Callers are responsible for already
// having filtered the input to what the requester may see.
func Project(items []booking.ListItem, isAdmin bool) []Event {
	out := make([]Event, 0, len(items))
	for _, b := range items {
		color, ok := statusColors[b.Status]
		if !ok {
			color = fallbackColor
		}
		title := b.ResourceName + " (Reserved)"
		if isAdmin {
			title = b.ResourceName + " (" + b.Username + ")"
		}
		out = append(out, Event{
			ID:              b.ID,
			Title:           title,
			Start:           b.StartTime.Format(time.RFC3339),
			End:             b.EndTime.Format(time.RFC3339),
			BackgroundColor: color,
			BorderColor:     color,
			TextColor:       textColor,
			ExtendedProps:   ExtendedProps{Status: b.Status},
		})
	}
	return out
}

package booking

import "fmt"

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// Cancellable reports whether the owner may cancel a booking in this status.
// Rejected and Cancelled are terminal.
func Cancellable(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved:
		return true
	default:
		return false
	}
}

// ReviewTarget maps an admin review action to the status it assigns.
// Unrecognized actions fall back to Pending, which re-queues the booking
// for another look instead of erroring.
func ReviewTarget(action string) Status {
	switch action {
	case "approve":
		return StatusApproved
	case "reject":
		return StatusRejected
	case "draft":
		return StatusDraft
	default:
		return StatusPending
	}
}

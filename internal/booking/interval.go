package booking

import (
	"errors"
	"time"
)

// ErrBadRange rejects bookings whose end does not come after their start.
var ErrBadRange = errors.New("end time must be later than start time")

// ValidateRange enforces the half-open interval contract [start, end):
// the end instant is exclusive and must be strictly after the start.
func ValidateRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrBadRange
	}
	return nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant. Back-to-back bookings, where one ends
// exactly when the other starts, do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ActiveAt reports whether a booking covering [start, end] is in progress
// at the given instant. The owner may release an active Approved booking
// early, truncating it to now.
func ActiveAt(start, end, now time.Time) bool {
	return !now.Before(start) && !now.After(end)
}

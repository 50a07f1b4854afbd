package booking

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// Transition returns the status a WAITING booking moves to.
// Any other current status is final.
func Transition(current Status, approved bool) (Status, error) {
	if current != StatusWaiting {
		return "", apperror.Detail(ErrNotWaiting, "can only approve/reject while WAITING, current status: %s", current)
	}
	if approved {
		return StatusApproved, nil
	}
	return StatusRejected, nil
}

// ValidateRange checks a requested booking window against now.
// Start may equal now at second precision.
func ValidateRange(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrDatesRequired
	}
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	if start.Before(now.Truncate(time.Second)) {
		return ErrStartInPast
	}
	return nil
}

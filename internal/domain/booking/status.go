package booking

import (
	"strings"

	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

// ParseStatus accepts the three known values, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return st, nil
	default:
		return "", httperr.ErrInvalidField("status", "must be one of pending, confirmed, cancelled")
	}
}

// ===============================
// Transitions
// ===============================

var strictTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// CanTransition allows any move unless strict is set. Strict mode only permits
// the forward moves out of pending and confirmed; keeping the current status
// is always allowed.
func CanTransition(from, to Status, strict bool) error {
	if !strict || from == to {
		return nil
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

// Holds reports whether a booking in this status still claims its slots.
func (s Status) Holds() bool {
	return s != StatusCancelled
}

package booking

import "github.com/BruksfildServices01/lesson-booking/internal/httperr"

var (
	ErrBookingNotFound = httperr.ErrNotFound("booking_not_found")

	errSlotTaken = httperr.ErrBusiness("slot_taken")
)

package booking

import "github.com/BruksfildServices01/lesson-booking/internal/models"

// SlotKey identifies a slot across bookings.
type SlotKey struct {
	Day  string
	Time string
}

// HeldSlots collects every slot claimed by a booking that still holds it.
func HeldSlots(existing []models.Booking) map[SlotKey]struct{} {
	held := make(map[SlotKey]struct{})
	for _, b := range existing {
		if !Status(b.Status).Holds() {
			continue
		}
		for _, s := range b.TimeSlots {
			held[SlotKey{Day: s.Day, Time: s.Time}] = struct{}{}
		}
	}
	return held
}

// AssertSlotsFree fails with slot_taken when a requested slot is already held
// or appears twice in the request.
func AssertSlotsFree(requested []models.TimeSlot, held map[SlotKey]struct{}) error {
	seen := make(map[SlotKey]struct{}, len(requested))
	for _, s := range requested {
		k := SlotKey{Day: s.Day, Time: s.Time}
		if _, ok := held[k]; ok {
			return errSlotTaken
		}
		if _, ok := seen[k]; ok {
			return errSlotTaken
		}
		seen[k] = struct{}{}
	}
	return nil
}

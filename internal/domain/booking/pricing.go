package booking

import "math"

// SlotMinutes is the fixed length of every bookable slot.
const SlotMinutes = 30

type Quote struct {
	TotalDuration int   // minutes
	TotalCost     int64 // cents
}

// Calculate prices slots at hourlyRate whole currency units per hour. The
// result is rounded to the nearest cent.
func Calculate(slots, hourlyRate int) Quote {
	minutes := slots * SlotMinutes
	cost := float64(minutes) / 60 * float64(hourlyRate) * 100

	return Quote{
		TotalDuration: minutes,
		TotalCost:     int64(math.Round(cost)),
	}
}

package availability

import (
	"fmt"
	"strconv"
)

// SlotMinutes is the length of one bookable slot.
const SlotMinutes = 30

// Clock is a wall-clock time of day kept as plain hour and minute integers.
// Hour is not clamped to 23: advancing past midnight yields 24:00 and above,
// which only ever compares greater than a same-day end time.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock accepts strictly "HH:MM" with 00-23 hours and 00-59 minutes.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return Clock{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}

	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("invalid minute in %q", s)
	}

	return Clock{Hour: h, Minute: m}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Add moves the clock forward by minutes, carrying overflow into the hour.
func (c Clock) Add(minutes int) Clock {
	m := c.Minute + minutes
	return Clock{
		Hour:   c.Hour + m/60,
		Minute: m % 60,
	}
}

func (c Clock) Before(o Clock) bool {
	return c.Hour < o.Hour || (c.Hour == o.Hour && c.Minute < o.Minute)
}

func (c Clock) After(o Clock) bool {
	return o.Before(c)
}

// SlotLabel renders "HH:MM-HH:MM".
func SlotLabel(start, end Clock) string {
	return start.String() + "-" + end.String()
}

// ParseSlotLabel splits a "HH:MM-HH:MM" label into its two clocks.
func ParseSlotLabel(label string) (Clock, Clock, error) {
	if len(label) != 11 || label[5] != '-' {
		return Clock{}, Clock{}, fmt.Errorf("invalid slot %q: want HH:MM-HH:MM", label)
	}

	start, err := ParseClock(label[:5])
	if err != nil {
		return Clock{}, Clock{}, err
	}
	end, err := ParseClock(label[6:])
	if err != nil {
		return Clock{}, Clock{}, err
	}
	if !start.Before(end) {
		return Clock{}, Clock{}, fmt.Errorf("invalid slot %q: start must precede end", label)
	}

	return start, end, nil
}

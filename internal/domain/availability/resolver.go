package availability

import (
	"time"

	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

const DateLayout = "2006-01-02"

// Day is the bookable content of one calendar date.
type Day struct {
	Date    string   `json:"date"`
	DayName string   `json:"dayName"`
	Slots   []string `json:"slots"`
}

// Schedule is the resolver output. Days keep the order in which their date
// first appeared in the input.
type Schedule struct {
	Days []Day `json:"days"`
}

func (s Schedule) SlotCount() int {
	n := 0
	for _, d := range s.Days {
		n += len(d.Slots)
	}
	return n
}

type Resolver struct {
	locale Locale
	dedupe bool
}

type Option func(*Resolver)

func WithLocale(l Locale) Option {
	return func(r *Resolver) { r.locale = l }
}

// WithDedupe drops repeated labels within a date, keeping the first one.
// Without it, overlapping windows on the same date contribute every slot.
func WithDedupe(enabled bool) Option {
	return func(r *Resolver) { r.dedupe = enabled }
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{locale: DefaultLocale}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve expands the enabled windows dated today or later into slots grouped
// by date. Only the date part of today is used.
func (r *Resolver) Resolve(windows []models.AvailabilityWindow, today time.Time) Schedule {
	loc := today.Location()
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	out := Schedule{Days: []Day{}}
	index := make(map[string]int)

	for _, w := range windows {
		if !w.Enabled {
			continue
		}

		date, err := time.ParseInLocation(DateLayout, w.Date, loc)
		if err != nil || date.Before(cutoff) {
			continue
		}

		i, seen := index[w.Date]
		if !seen {
			i = len(out.Days)
			index[w.Date] = i
			out.Days = append(out.Days, Day{
				Date:    w.Date,
				DayName: DayLabel(date, r.locale),
				Slots:   []string{},
			})
		}

		for _, label := range ExpandWindow(w.StartTime, w.EndTime) {
			if r.dedupe && containsLabel(out.Days[i].Slots, label) {
				continue
			}
			out.Days[i].Slots = append(out.Days[i].Slots, label)
		}
	}

	return out
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

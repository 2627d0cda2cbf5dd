package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

// Dataset is tabular export content. Rows are keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

var bookingHeaders = []string{
	"Created", "Name", "Contact", "Subject", "Slots", "Minutes", "Cost", "Status",
}

// BookingsDataset flattens bookings into one row each, in the given order.
// Slots are rendered as "day time" pairs joined by "; ".
func BookingsDataset(bookings []models.Booking, loc *time.Location) Dataset {
	if loc == nil {
		loc = time.UTC
	}

	rows := make([]map[string]string, 0, len(bookings))
	for _, b := range bookings {
		slots := make([]string, 0, len(b.TimeSlots))
		for _, s := range b.TimeSlots {
			slots = append(slots, s.Day+" "+s.Time)
		}

		rows = append(rows, map[string]string{
			"Created": b.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			"Name":    strings.TrimSpace(b.FirstName + " " + b.LastName),
			"Contact": b.Contact,
			"Subject": b.Subject,
			"Slots":   strings.Join(slots, "; "),
			"Minutes": fmt.Sprintf("%d", b.TotalDuration),
			"Cost":    fmt.Sprintf("%d.%02d", b.TotalCost/100, b.TotalCost%100),
			"Status":  b.Status,
		})
	}

	return Dataset{Headers: bookingHeaders, Rows: rows}
}

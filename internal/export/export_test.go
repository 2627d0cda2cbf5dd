package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

func sampleBookings() []models.Booking {
	return []models.Booking{
		{
			FirstName: "Ada", LastName: "Lovelace", Contact: "ada@example.com", Subject: "math",
			TimeSlots: []models.TimeSlot{
				{Day: "2026-10-20", Time: "10:00-10:30"},
				{Day: "2026-10-20", Time: "10:30-11:00"},
			},
			TotalDuration: 60, TotalCost: 1505, Status: "pending",
			CreatedAt: time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC),
		},
	}
}

func TestBookingsDataset(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	ds := BookingsDataset(sampleBookings(), loc)
	require.Len(t, ds.Rows, 1)

	row := ds.Rows[0]
	assert.Equal(t, "2026-10-15 10:30", row["Created"])
	assert.Equal(t, "Ada Lovelace", row["Name"])
	assert.Equal(t, "2026-10-20 10:00-10:30; 2026-10-20 10:30-11:00", row["Slots"])
	assert.Equal(t, "15.05", row["Cost"])
}

func TestCSVExporter(t *testing.T) {
	out, err := NewCSVExporter().Render(BookingsDataset(sampleBookings(), time.UTC))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, bookingHeaders, records[0])
	assert.Equal(t, "Ada Lovelace", records[1][1])

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporter(t *testing.T) {
	out, err := NewPDFExporter().Render(BookingsDataset(sampleBookings(), time.UTC), "Boekingen €")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := NewPDFExporter().Render(BookingsDataset(nil, time.UTC), "")
	require.NoError(t, err)
	assert.NotEmpty(t, empty)

	_, err = NewPDFExporter().Render(Dataset{}, "x")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 17))
}

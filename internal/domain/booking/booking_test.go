package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

func TestCalculate(t *testing.T) {
	q := Calculate(2, 15)
	assert.Equal(t, 60, q.TotalDuration)
	assert.Equal(t, int64(1500), q.TotalCost)

	q = Calculate(1, 15)
	assert.Equal(t, 30, q.TotalDuration)
	assert.Equal(t, int64(750), q.TotalCost)

	q = Calculate(3, 17)
	assert.Equal(t, int64(2550), q.TotalCost)

	assert.Equal(t, Quote{}, Calculate(0, 15))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Confirmed ")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)

	_, err = ParseStatus("done")
	require.Error(t, err)
	assert.True(t, httperr.IsValidation(err))
	assert.Contains(t, httperr.ValidationFields(err), "status")
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			assert.NoError(t, CanTransition(from, to, false), "%s -> %s", from, to)
		}
	}

	assert.NoError(t, CanTransition(StatusPending, StatusConfirmed, true))
	assert.NoError(t, CanTransition(StatusPending, StatusCancelled, true))
	assert.NoError(t, CanTransition(StatusConfirmed, StatusCancelled, true))
	assert.NoError(t, CanTransition(StatusCancelled, StatusCancelled, true))

	err := CanTransition(StatusCancelled, StatusPending, true)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
	err = CanTransition(StatusConfirmed, StatusPending, true)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestAssertSlotsFree(t *testing.T) {
	existing := []models.Booking{
		{Status: "pending", TimeSlots: []models.TimeSlot{{Day: "2026-10-20", Time: "10:00-10:30"}}},
		{Status: "cancelled", TimeSlots: []models.TimeSlot{{Day: "2026-10-20", Time: "11:00-11:30"}}},
	}
	held := HeldSlots(existing)

	err := AssertSlotsFree([]models.TimeSlot{{Day: "2026-10-20", Time: "10:00-10:30"}}, held)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	assert.NoError(t, AssertSlotsFree([]models.TimeSlot{{Day: "2026-10-20", Time: "11:00-11:30"}}, held))

	dup := []models.TimeSlot{
		{Day: "2026-10-21", Time: "10:00-10:30"},
		{Day: "2026-10-21", Time: "10:00-10:30"},
	}
	assert.True(t, httperr.IsBusiness(AssertSlotsFree(dup, held), "slot_taken"))
}

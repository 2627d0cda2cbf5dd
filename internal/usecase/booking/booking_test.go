package booking

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	"github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/infra/memory"
	"github.com/BruksfildServices01/lesson-booking/internal/metrics"
	"github.com/BruksfildServices01/lesson-booking/internal/notify"
)

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(_ context.Context, ev notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		Contact:   "ada@example.com",
		Subject:   "math",
		TimeSlots: []TimeSlotInput{
			{Day: "2026-10-21", Time: "14:00-14:30"},
			{Day: "2026-10-21", Time: "14:30-15:00", DayName: "custom"},
		},
	}
}

func newCreate(store *memory.Store, n *notify.Dispatcher, preventDouble bool) *CreateBooking {
	return NewCreateBooking(store, store, nil, n, metrics.New(), nil, CreateBookingOptions{
		Locale:               availability.LocaleDutch,
		PreventDoubleBooking: preventDouble,
	})
}

func TestCreateBooking_ComputesTotalsAndNotifies(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := &recorder{}
	d := notify.NewDispatcher(rec, nil)

	uc := newCreate(store, d, false)
	uc.now = func() time.Time { return time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC) }

	b, err := uc.Execute(ctx, validInput())
	require.NoError(t, err)
	d.Close()

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Ada", b.FirstName)
	assert.Equal(t, 60, b.TotalDuration)
	assert.Equal(t, int64(1500), b.TotalCost)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, "Woensdag 21 okt", b.TimeSlots[0].DayName)
	assert.Equal(t, "custom", b.TimeSlots[1].DayName)

	stored, err := store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.TotalCost, stored.TotalCost)

	require.Len(t, rec.events, 1)
	assert.Equal(t, notify.BookingCreated, rec.events[0].Type)
	assert.Equal(t, b.ID, rec.events[0].Booking.ID)
}

func TestCreateBooking_Validation(t *testing.T) {
	ctx := context.Background()
	uc := newCreate(memory.New(), nil, false)

	cases := []struct {
		name  string
		edit  func(*CreateBookingInput)
		field string
	}{
		{"short first name", func(in *CreateBookingInput) { in.FirstName = "A" }, "firstName"},
		{"blank last name", func(in *CreateBookingInput) { in.LastName = "   " }, "lastName"},
		{"short contact", func(in *CreateBookingInput) { in.Contact = "1234" }, "contact"},
		{"unknown subject", func(in *CreateBookingInput) { in.Subject = "biology" }, "subject"},
		{"no slots", func(in *CreateBookingInput) { in.TimeSlots = nil }, "timeSlots"},
		{"empty slots", func(in *CreateBookingInput) { in.TimeSlots = []TimeSlotInput{} }, "timeSlots"},
		{"bad day", func(in *CreateBookingInput) { in.TimeSlots[0].Day = "21-10-2026" }, "timeSlots[0].day"},
		{"bad time", func(in *CreateBookingInput) { in.TimeSlots[1].Time = "14:30" }, "timeSlots[1].time"},
		{"hour-long slot", func(in *CreateBookingInput) { in.TimeSlots[0].Time = "14:00-15:00" }, "timeSlots[0].time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.edit(&in)

			_, err := uc.Execute(ctx, in)
			require.Error(t, err)
			require.True(t, httperr.IsValidation(err), "got %v", err)
			assert.Contains(t, httperr.ValidationFields(err), tc.field)
		})
	}
}

func TestCreateBooking_RejectsControlCharacters(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newCreate(store, nil, false)

	edits := map[string]func(*CreateBookingInput){
		"firstName":           func(in *CreateBookingInput) { in.FirstName = "Eve\r\nX-Injected: yes" },
		"lastName":            func(in *CreateBookingInput) { in.LastName = "Doe\nBcc: victim@example.com" },
		"contact":             func(in *CreateBookingInput) { in.Contact = "eve@example.com\r\nCc: x@y" },
		"subject":             func(in *CreateBookingInput) { in.Subject = "math\r\nX-Injected: yes" },
		"timeSlots[0].dayName": func(in *CreateBookingInput) { in.TimeSlots[0].DayName = "Dinsdag\r\n" + "x" },
	}

	for field, edit := range edits {
		in := validInput()
		edit(&in)

		_, err := uc.Execute(ctx, in)
		require.True(t, httperr.IsValidation(err), "%s: got %v", field, err)
		assert.Equal(t, "must not contain control characters", httperr.ValidationFields(err)[field])
	}

	stored, err := store.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCreateBooking_RateChangeKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newCreate(store, nil, false)

	b, err := uc.Execute(ctx, validInput())
	require.NoError(t, err)

	fs, err := store.GetFormSettings(ctx)
	require.NoError(t, err)
	fs.HourlyRate = 40
	require.NoError(t, store.SaveFormSettings(ctx, fs))

	stored, err := store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), stored.TotalCost)

	next, err := uc.Execute(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(4000), next.TotalCost)
}

func TestCreateBooking_DoubleBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("allowed by default", func(t *testing.T) {
		uc := newCreate(memory.New(), nil, false)
		_, err := uc.Execute(ctx, validInput())
		require.NoError(t, err)
		_, err = uc.Execute(ctx, validInput())
		assert.NoError(t, err)
	})

	t.Run("guarded", func(t *testing.T) {
		store := memory.New()
		uc := newCreate(store, nil, true)

		first, err := uc.Execute(ctx, validInput())
		require.NoError(t, err)

		_, err = uc.Execute(ctx, validInput())
		assert.True(t, httperr.IsBusiness(err, "slot_taken"))

		first.Status = "cancelled"
		require.NoError(t, store.UpdateBooking(ctx, first))
		_, err = uc.Execute(ctx, validInput())
		assert.NoError(t, err)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	b, err := newCreate(store, nil, false).Execute(ctx, validInput())
	require.NoError(t, err)

	rec := &recorder{}
	n := notify.NewDispatcher(rec, nil)
	a := audit.NewDispatcher(audit.New(store), nil)

	uc := NewUpdateBookingStatus(store, a, n, nil, nil, false)

	updated, err := uc.Execute(ctx, "admin-1", b.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)

	// any to any when not strict
	_, err = uc.Execute(ctx, "admin-1", b.ID, "pending")
	require.NoError(t, err)

	n.Close()
	a.Close()

	require.Len(t, rec.events, 2)
	assert.Equal(t, "pending", rec.events[0].PreviousStatus)
	assert.Equal(t, "confirmed", rec.events[1].PreviousStatus)

	logs, total, err := store.ListAuditLogs(ctx, audit.Filter{Action: "booking_status_updated"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, "admin-1", *logs[0].UserID)
}

func TestUpdateBookingStatus_Errors(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	b, err := newCreate(store, nil, false).Execute(ctx, validInput())
	require.NoError(t, err)

	uc := NewUpdateBookingStatus(store, nil, nil, nil, nil, false)

	_, err = uc.Execute(ctx, "", "unknown", "confirmed")
	assert.True(t, httperr.IsNotFound(err))

	_, err = uc.Execute(ctx, "", b.ID, "archived")
	assert.True(t, httperr.IsValidation(err))

	strict := NewUpdateBookingStatus(store, nil, nil, nil, nil, true)
	_, err = strict.Execute(ctx, "", b.ID, "cancelled")
	require.NoError(t, err)
	_, err = strict.Execute(ctx, "", b.ID, "confirmed")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestListAndExport(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	list, err := NewListBookings(store).Execute(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	create := newCreate(store, nil, false)
	create.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	first, err := create.Execute(ctx, validInput())
	require.NoError(t, err)
	create.now = func() time.Time { return time.Date(2026, 10, 15, 11, 0, 0, 0, time.UTC) }
	second, err := create.Execute(ctx, validInput())
	require.NoError(t, err)

	list, err = NewListBookings(store).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	exp := NewExportBookings(store, time.UTC)
	exp.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }

	csvFile, err := exp.Execute(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "bookings-20261015-1200.csv", csvFile.Filename)
	assert.Equal(t, 3, bytes.Count(csvFile.Body, []byte("\n")))

	pdfFile, err := exp.Execute(ctx, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdfFile.ContentType)

	_, err = exp.Execute(ctx, "xlsx")
	assert.True(t, httperr.IsValidation(err))
}

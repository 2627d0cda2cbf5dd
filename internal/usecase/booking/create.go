package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/booking"
	"github.com/BruksfildServices01/lesson-booking/internal/domain/settings"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/metrics"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
	"github.com/BruksfildServices01/lesson-booking/internal/notify"
	"github.com/BruksfildServices01/lesson-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type TimeSlotInput struct {
	Day     string `json:"day" validate:"required,isodate"`
	Time    string `json:"time" validate:"required,slotrange"`
	DayName string `json:"dayName" validate:"max=64,singleline"`
}

// CreateBookingInput has no totals: duration and cost are always computed
// here, so any totals a client sends are dropped at decode time.
type CreateBookingInput struct {
	FirstName string          `json:"firstName" validate:"required,min=2,max=100,singleline"`
	LastName  string          `json:"lastName" validate:"required,min=2,max=100,singleline"`
	Contact   string          `json:"contact" validate:"required,min=5,max=255,singleline"`
	Subject   string          `json:"subject" validate:"required,max=100,singleline"`
	TimeSlots []TimeSlotInput `json:"timeSlots" validate:"required,min=1,max=48,dive"`
}

func (in *CreateBookingInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Subject = strings.TrimSpace(in.Subject)
	for i := range in.TimeSlots {
		in.TimeSlots[i].Day = strings.TrimSpace(in.TimeSlots[i].Day)
		in.TimeSlots[i].Time = strings.TrimSpace(in.TimeSlots[i].Time)
		in.TimeSlots[i].DayName = strings.TrimSpace(in.TimeSlots[i].DayName)
	}
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	bookings domain.Repository
	settings settings.Repository
	validate *validator.Validate
	notifier *notify.Dispatcher
	metrics  *metrics.Service
	log      *zap.Logger

	locale        availability.Locale
	loc           *time.Location
	preventDouble bool
	now           func() time.Time
}

type CreateBookingOptions struct {
	Locale               availability.Locale
	Location             *time.Location
	PreventDoubleBooking bool
}

func NewCreateBooking(
	bookings domain.Repository,
	settings settings.Repository,
	validate *validator.Validate,
	notifier *notify.Dispatcher,
	m *metrics.Service,
	log *zap.Logger,
	opts CreateBookingOptions,
) *CreateBooking {
	if validate == nil {
		validate = validators.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Locale == "" {
		opts.Locale = availability.DefaultLocale
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	return &CreateBooking{
		bookings:      bookings,
		settings:      settings,
		validate:      validate,
		notifier:      notifier,
		metrics:       m,
		log:           log,
		locale:        opts.Locale,
		loc:           opts.Location,
		preventDouble: opts.PreventDoubleBooking,
		now:           time.Now,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	in.normalize()

	// --------------------------------------------------
	// 1. Settings snapshot (subjects + rate)
	// --------------------------------------------------
	fs, err := uc.settings.GetFormSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load form settings: %w", err)
	}

	// --------------------------------------------------
	// 2. Validation
	// --------------------------------------------------
	if err := uc.validateInput(in, fs); err != nil {
		return nil, err
	}

	slots := make([]models.TimeSlot, 0, len(in.TimeSlots))
	for _, s := range in.TimeSlots {
		dayName := s.DayName
		if dayName == "" {
			if d, err := time.Parse(availability.DateLayout, s.Day); err == nil {
				dayName = availability.DayLabel(d, uc.locale)
			}
		}
		slots = append(slots, models.TimeSlot{Day: s.Day, Time: s.Time, DayName: dayName})
	}

	// --------------------------------------------------
	// 3. Optional double-booking guard
	// --------------------------------------------------
	if uc.preventDouble {
		existing, err := uc.bookings.ListBookings(ctx)
		if err != nil {
			return nil, fmt.Errorf("list bookings: %w", err)
		}
		if err := domain.AssertSlotsFree(slots, domain.HeldSlots(existing)); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4. Totals, always server-side
	// --------------------------------------------------
	quote := domain.Calculate(len(slots), fs.HourlyRate)

	now := uc.now().UTC()
	b := &models.Booking{
		ID:            uuid.NewString(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Contact:       in.Contact,
		Subject:       in.Subject,
		TimeSlots:     slots,
		TotalDuration: quote.TotalDuration,
		TotalCost:     quote.TotalCost,
		Status:        string(domain.InitialStatus()),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.bookings.CreateBooking(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// --------------------------------------------------
	// 5. Fire-and-forget side effects
	// --------------------------------------------------
	uc.metrics.BookingCreated(b.TotalCost)
	uc.notifier.Dispatch(notify.NewEvent(notify.BookingCreated, *b))

	uc.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.Int("slots", len(b.TimeSlots)),
		zap.Int64("total_cost", b.TotalCost),
	)

	return b, nil
}

func (uc *CreateBooking) validateInput(in CreateBookingInput, fs *models.FormSettings) error {
	fields := map[string]string{}

	if err := validators.Struct(uc.validate, in); err != nil {
		vf := httperr.ValidationFields(err)
		if vf == nil {
			return err
		}
		for k, v := range vf {
			fields[k] = v
		}
	}

	if _, flagged := fields["subject"]; !flagged && !settings.HasSubject(fs, in.Subject) {
		fields["subject"] = "must be one of " + strings.Join(fs.Subjects, ", ")
	}

	for i, s := range in.TimeSlots {
		key := fmt.Sprintf("timeSlots[%d].time", i)
		if _, flagged := fields[key]; flagged {
			continue
		}
		start, end, err := availability.ParseSlotLabel(s.Time)
		if err == nil && start.Add(domain.SlotMinutes) != end {
			fields[key] = fmt.Sprintf("must span exactly %d minutes", domain.SlotMinutes)
		}
	}

	if len(fields) > 0 {
		return httperr.ErrValidation(fields)
	}
	return nil
}

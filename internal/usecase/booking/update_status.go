package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/booking"
	"github.com/BruksfildServices01/lesson-booking/internal/metrics"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
	"github.com/BruksfildServices01/lesson-booking/internal/notify"
)

type UpdateBookingStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	metrics  *metrics.Service
	log      *zap.Logger

	strict bool
	now    func() time.Time
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
	m *metrics.Service,
	log *zap.Logger,
	strict bool,
) *UpdateBookingStatus {
	if log == nil {
		log = zap.NewNop()
	}
	return &UpdateBookingStatus{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		metrics:  m,
		log:      log,
		strict:   strict,
		now:      time.Now,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	actorID string,
	bookingID string,
	status string,
) (*models.Booking, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	prev := domain.Status(b.Status)
	if err := domain.CanTransition(prev, next, uc.strict); err != nil {
		return nil, err
	}

	b.Status = string(next)
	b.UpdatedAt = uc.now().UTC()
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.metrics.BookingStatusChanged(b.Status)

	uc.audit.Dispatch(audit.Event{
		UserID:   optional(actorID),
		Action:   "booking_status_updated",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"from": string(prev), "to": b.Status},
	})

	ev := notify.NewEvent(notify.BookingStatusChanged, *b)
	ev.PreviousStatus = string(prev)
	uc.notifier.Dispatch(ev)

	uc.log.Info("booking status updated",
		zap.String("booking_id", b.ID),
		zap.String("from", string(prev)),
		zap.String("to", b.Status),
	)

	return b, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

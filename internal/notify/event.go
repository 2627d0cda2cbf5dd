package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

type EventType string

const (
	BookingCreated       EventType = "booking.created"
	BookingStatusChanged EventType = "booking.status_changed"
)

type Event struct {
	ID             string         `json:"id"`
	Type           EventType      `json:"type"`
	OccurredAt     time.Time      `json:"occurredAt"`
	Booking        models.Booking `json:"booking"`
	PreviousStatus string         `json:"previousStatus,omitempty"`
}

func NewEvent(t EventType, b models.Booking) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Booking:    b,
	}
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

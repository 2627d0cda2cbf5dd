package booking

import (
	"context"

	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

type Repository interface {
	CreateBooking(ctx context.Context, b *models.Booking) error

	// GetBooking fails with a not-found error when id is unknown.
	GetBooking(ctx context.Context, id string) (*models.Booking, error)

	// ListBookings returns every booking, newest first.
	ListBookings(ctx context.Context) ([]models.Booking, error)

	UpdateBooking(ctx context.Context, b *models.Booking) error
}

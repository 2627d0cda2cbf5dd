package availability

import (
	"context"

	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

type Repository interface {
	// ListWindows returns every stored window in insertion order.
	ListWindows(ctx context.Context) ([]models.AvailabilityWindow, error)

	CreateWindow(ctx context.Context, w *models.AvailabilityWindow) error

	// DeleteWindow fails with a not-found error when id is unknown.
	DeleteWindow(ctx context.Context, id string) error

	ClearWindows(ctx context.Context) error
}

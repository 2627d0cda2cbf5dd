package user

import (
	"context"

	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

var ErrUserNotFound = httperr.ErrNotFound("user_not_found")

type Repository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpsertUser creates the user or, when the username exists, replaces its
	// password hash.
	UpsertUser(ctx context.Context, u *models.User) error
}

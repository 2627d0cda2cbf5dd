package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/user"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetUserByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) GetUserByID(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) UpsertUser(
	ctx context.Context,
	u *models.User,
) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
		}).
		Create(u).Error; err != nil {
		return err
	}

	// on conflict the row keeps its original id
	stored, err := r.GetUserByUsername(ctx, u.Username)
	if err != nil {
		return err
	}
	*u = *stored
	return nil
}

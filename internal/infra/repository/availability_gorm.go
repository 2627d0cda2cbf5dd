package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

var errWindowNotFound = httperr.ErrNotFound("availability_not_found")

type AvailabilityGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*AvailabilityGormRepository)(nil)

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) ListWindows(
	ctx context.Context,
) ([]models.AvailabilityWindow, error) {

	var out []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AvailabilityGormRepository) CreateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	// v7 ids sort by creation, breaking created_at ties in insertion order
	if w.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		w.ID = id.String()
	}
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *AvailabilityGormRepository) DeleteWindow(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.AvailabilityWindow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errWindowNotFound
	}
	return nil
}

func (r *AvailabilityGormRepository) ClearWindows(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.AvailabilityWindow{}).Error
}

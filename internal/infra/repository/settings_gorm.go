package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/settings"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

type SettingsGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*SettingsGormRepository)(nil)

func NewSettingsGormRepository(db *gorm.DB) *SettingsGormRepository {
	return &SettingsGormRepository{db: db}
}

func (r *SettingsGormRepository) GetFormSettings(
	ctx context.Context,
) (*models.FormSettings, error) {

	var s models.FormSettings
	err := r.db.WithContext(ctx).
		Where("id = ?", domain.SingletonID).
		First(&s).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := domain.Defaults()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsGormRepository) SaveFormSettings(
	ctx context.Context,
	s *models.FormSettings,
) error {
	s.ID = domain.SingletonID
	return r.db.WithContext(ctx).Save(s).Error
}

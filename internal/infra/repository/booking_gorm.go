package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/booking"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"status":     b.Status,
			"updated_at": b.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

var _ audit.Store = (*AuditGormRepository)(nil)

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) CreateAuditLog(
	ctx context.Context,
	entry *models.AuditLog,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditGormRepository) ListAuditLogs(
	ctx context.Context,
	f audit.Filter,
) ([]models.AuditLog, int64, error) {

	f.Normalize()

	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

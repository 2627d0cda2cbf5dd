package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

// Store persists and lists audit entries.
type Store interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

// Filter narrows ListAuditLogs. Zero values disable a condition.
type Filter struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time

	Page  int
	Limit int
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Normalize clamps paging to sane bounds.
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxLimit {
		f.Limit = DefaultLimit
	}
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.store.CreateAuditLog(ctx, &entry)
}

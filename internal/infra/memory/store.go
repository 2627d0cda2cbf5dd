// Package memory keeps every aggregate in process memory. It backs
// DB_DRIVER=memory and serves as the repository fake in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	"github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
	"github.com/BruksfildServices01/lesson-booking/internal/domain/booking"
	"github.com/BruksfildServices01/lesson-booking/internal/domain/settings"
	"github.com/BruksfildServices01/lesson-booking/internal/domain/user"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

var (
	_ availability.Repository = (*Store)(nil)
	_ booking.Repository      = (*Store)(nil)
	_ settings.Repository     = (*Store)(nil)
	_ user.Repository         = (*Store)(nil)
	_ audit.Store             = (*Store)(nil)
)

type Store struct {
	mu sync.RWMutex

	windows  []models.AvailabilityWindow
	bookings []models.Booking
	settings *models.FormSettings
	users    map[string]models.User
	audits   []models.AuditLog

	now func() time.Time
}

func New() *Store {
	return &Store{
		users: make(map[string]models.User),
		now:   time.Now,
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func (s *Store) ListWindows(context.Context) ([]models.AvailabilityWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.AvailabilityWindow{}, s.windows...), nil
}

func (s *Store) CreateWindow(_ context.Context, w *models.AvailabilityWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = s.now()
	}
	s.windows = append(s.windows, *w)
	return nil
}

func (s *Store) DeleteWindow(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.windows {
		if w.ID == id {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return nil
		}
	}
	return httperr.ErrNotFound("availability_not_found")
}

func (s *Store) ClearWindows(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.windows = nil
	return nil
}

// ======================================================
// BOOKINGS
// ======================================================

func (s *Store) CreateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	s.bookings = append(s.bookings, cloneBooking(*b))
	return nil
}

func (s *Store) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ID == id {
			out := cloneBooking(b)
			return &out, nil
		}
	}
	return nil, booking.ErrBookingNotFound
}

func (s *Store) ListBookings(context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, cloneBooking(b))
	}
	s.mu.RUnlock()

	// newest first; among equal timestamps the later insert wins
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		if s.bookings[i].ID == b.ID {
			s.bookings[i].Status = b.Status
			s.bookings[i].UpdatedAt = b.UpdatedAt
			return nil
		}
	}
	return booking.ErrBookingNotFound
}

func cloneBooking(b models.Booking) models.Booking {
	b.TimeSlots = append([]models.TimeSlot(nil), b.TimeSlots...)
	return b
}

// ======================================================
// FORM SETTINGS
// ======================================================

func (s *Store) GetFormSettings(context.Context) (*models.FormSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out models.FormSettings
	if s.settings == nil {
		out = settings.Defaults()
	} else {
		out = *s.settings
	}
	out.Subjects = append([]string(nil), out.Subjects...)
	return &out, nil
}

func (s *Store) SaveFormSettings(_ context.Context, fs *models.FormSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs.ID = settings.SingletonID
	fs.UpdatedAt = s.now()

	cp := *fs
	cp.Subjects = append([]string(nil), fs.Subjects...)
	s.settings = &cp
	return nil
}

// ======================================================
// USERS
// ======================================================

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) UpsertUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, existing := range s.users {
		if existing.Username == u.Username {
			existing.PasswordHash = u.PasswordHash
			existing.UpdatedAt = now
			s.users[id] = existing
			*u = existing
			return nil
		}
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

// ======================================================
// AUDIT
// ======================================================

func (s *Store) CreateAuditLog(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uint(len(s.audits) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	s.audits = append(s.audits, *entry)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	f.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.AuditLog, 0)
	for i := len(s.audits) - 1; i >= 0; i-- {
		e := s.audits[i]
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.Entity != "" && e.Entity != f.Entity {
			continue
		}
		if !f.From.IsZero() && e.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !e.CreatedAt.Before(f.To) {
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	start := f.Offset()
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

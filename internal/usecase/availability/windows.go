package availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
	"github.com/BruksfildServices01/lesson-booking/internal/httperr"
	"github.com/BruksfildServices01/lesson-booking/internal/infra/cache"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
	"github.com/BruksfildServices01/lesson-booking/internal/validators"
)

// AddWindowInput is a window without id. Enabled defaults to true when
// omitted.
type AddWindowInput struct {
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
	EndTime   string `json:"endTime" validate:"required,hhmm"`
	Enabled   *bool  `json:"enabled"`
}

// WindowService groups the admin operations on availability windows. Every
// mutation invalidates the resolved-slot cache and is audited.
type WindowService struct {
	repo     domain.Repository
	cache    cache.SlotCache
	audit    *audit.Dispatcher
	validate *validator.Validate
	log      *zap.Logger
}

func NewWindowService(
	repo domain.Repository,
	c cache.SlotCache,
	a *audit.Dispatcher,
	validate *validator.Validate,
	log *zap.Logger,
) *WindowService {
	if c == nil {
		c = cache.Nop{}
	}
	if validate == nil {
		validate = validators.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WindowService{repo: repo, cache: c, audit: a, validate: validate, log: log}
}

// List returns every window in insertion order, never nil.
func (s *WindowService) List(ctx context.Context) ([]models.AvailabilityWindow, error) {
	out, err := s.repo.ListWindows(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.AvailabilityWindow{}
	}
	return out, nil
}

func (s *WindowService) Add(
	ctx context.Context,
	actorID string,
	in AddWindowInput,
) (*models.AvailabilityWindow, error) {

	in.Date = strings.TrimSpace(in.Date)
	in.StartTime = strings.TrimSpace(in.StartTime)
	in.EndTime = strings.TrimSpace(in.EndTime)

	if err := validators.Struct(s.validate, in); err != nil {
		return nil, err
	}

	start, _ := domain.ParseClock(in.StartTime)
	end, _ := domain.ParseClock(in.EndTime)
	if !start.Before(end) {
		return nil, httperr.ErrInvalidField("endTime", "must be after startTime")
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}

	w := &models.AvailabilityWindow{
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Enabled:   enabled,
	}
	if err := s.repo.CreateWindow(ctx, w); err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	s.invalidate(ctx)
	s.audit.Dispatch(audit.Event{
		UserID:   optional(actorID),
		Action:   "availability_added",
		Entity:   "availability",
		EntityID: &w.ID,
		Metadata: w,
	})

	return w, nil
}

func (s *WindowService) Remove(ctx context.Context, actorID, id string) error {
	if err := s.repo.DeleteWindow(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.audit.Dispatch(audit.Event{
		UserID:   optional(actorID),
		Action:   "availability_removed",
		Entity:   "availability",
		EntityID: &id,
	})
	return nil
}

func (s *WindowService) Clear(ctx context.Context, actorID string) error {
	if err := s.repo.ClearWindows(ctx); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.audit.Dispatch(audit.Event{
		UserID: optional(actorID),
		Action: "availability_cleared",
		Entity: "availability",
	})
	return nil
}

// invalidate never fails the mutation; a stale entry expires with its TTL.
func (s *WindowService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("slot cache invalidation failed", zap.Error(err))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

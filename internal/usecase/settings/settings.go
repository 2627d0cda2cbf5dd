package settings

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	domain "github.com/BruksfildServices01/lesson-booking/internal/domain/settings"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
	"github.com/BruksfildServices01/lesson-booking/internal/validators"
)

type Service struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	validate *validator.Validate
}

func NewService(repo domain.Repository, a *audit.Dispatcher, validate *validator.Validate) *Service {
	if validate == nil {
		validate = validators.New()
	}
	return &Service{repo: repo, audit: a, validate: validate}
}

func (s *Service) Get(ctx context.Context) (*models.FormSettings, error) {
	return s.repo.GetFormSettings(ctx)
}

// Update merges p into the stored settings. An empty patch returns the
// current settings unchanged.
func (s *Service) Update(ctx context.Context, actorID string, p domain.Patch) (*models.FormSettings, error) {
	p.Normalize()
	if err := validators.Struct(s.validate, p); err != nil {
		return nil, err
	}

	current, err := s.repo.GetFormSettings(ctx)
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return current, nil
	}

	p.Apply(current)
	if err := s.repo.SaveFormSettings(ctx, current); err != nil {
		return nil, err
	}

	var actor *string
	if actorID != "" {
		actor = &actorID
	}
	s.audit.Dispatch(audit.Event{
		UserID:   actor,
		Action:   "form_settings_updated",
		Entity:   "form_settings",
		EntityID: &current.ID,
		Metadata: p,
	})

	return current, nil
}

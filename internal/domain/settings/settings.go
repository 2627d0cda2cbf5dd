package settings

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

// SingletonID is the primary key of the only settings row.
const SingletonID = "default"

func Defaults() models.FormSettings {
	return models.FormSettings{
		ID:           SingletonID,
		Title:        "Boek je Bijles",
		Description:  "Vul je gegevens in om een afspraak te maken",
		ContactEmail: "hdbijles@gmail.com",
		HourlyRate:   15,
		Subjects:     []string{"physics", "math", "other"},
	}
}

type Repository interface {
	// GetFormSettings returns the stored singleton, or Defaults when none
	// has been saved yet.
	GetFormSettings(ctx context.Context) (*models.FormSettings, error)

	SaveFormSettings(ctx context.Context, s *models.FormSettings) error
}

// Patch is a merge-patch over FormSettings. Nil fields are left untouched.
type Patch struct {
	Title        *string  `json:"title" validate:"omitnil,min=1,max=200,singleline"`
	Description  *string  `json:"description" validate:"omitnil,min=1,max=1000"`
	ContactEmail *string  `json:"contactEmail" validate:"omitnil,email"`
	HourlyRate   *int     `json:"hourlyRate" validate:"omitnil,min=1"`
	Subjects     []string `json:"subjects" validate:"omitnil,min=1,dive,required,max=100,singleline"`
}

// Normalize trims every string carried by the patch.
func (p *Patch) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(p.Title)
	trim(p.Description)
	trim(p.ContactEmail)

	for i := range p.Subjects {
		p.Subjects[i] = strings.TrimSpace(p.Subjects[i])
	}
}

func (p Patch) Empty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.ContactEmail == nil &&
		p.HourlyRate == nil &&
		p.Subjects == nil
}

func (p Patch) Apply(s *models.FormSettings) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.ContactEmail != nil {
		s.ContactEmail = *p.ContactEmail
	}
	if p.HourlyRate != nil {
		s.HourlyRate = *p.HourlyRate
	}
	if p.Subjects != nil {
		s.Subjects = append([]string(nil), p.Subjects...)
	}
}

// HasSubject reports whether subject is one of the configured choices.
func HasSubject(s *models.FormSettings, subject string) bool {
	for _, v := range s.Subjects {
		if v == subject {
			return true
		}
	}
	return false
}

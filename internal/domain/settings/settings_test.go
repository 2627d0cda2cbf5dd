package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchApply(t *testing.T) {
	s := Defaults()
	rate := 20
	title := "  Physics lessons "

	p := Patch{Title: &title, HourlyRate: &rate}
	p.Normalize()
	p.Apply(&s)

	assert.Equal(t, "Physics lessons", s.Title)
	assert.Equal(t, 20, s.HourlyRate)
	assert.Equal(t, Defaults().Description, s.Description)
	assert.Equal(t, []string{"physics", "math", "other"}, s.Subjects)
}

func TestPatchEmpty(t *testing.T) {
	assert.True(t, Patch{}.Empty())
	assert.False(t, Patch{Subjects: []string{}}.Empty())
}

func TestHasSubject(t *testing.T) {
	s := Defaults()
	assert.True(t, HasSubject(&s, "math"))
	assert.False(t, HasSubject(&s, "Math"))
}

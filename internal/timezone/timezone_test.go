package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackOnInvalidName(t *testing.T) {
	loc := Location("Not/AZone")
	assert.NotNil(t, loc)
	assert.False(t, IsValid("Not/AZone"))
	assert.False(t, IsValid(""))
}

func TestStartOfDayKeepsDateAndLocation(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	ts := time.Date(2026, 10, 15, 23, 59, 1, 5, loc)

	got := StartOfDay(ts)

	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}


package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem_NowIsUTC(t *testing.T) {
	now := New().Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestFixed_SetAndAdvance(t *testing.T) {
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewFixed(base)
	assert.Equal(t, base, c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, base.Add(90*time.Second), c.Now())

	later := base.Add(time.Hour)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

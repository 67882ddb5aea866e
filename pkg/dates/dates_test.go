package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.True(t, IsToday(time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC), now))
	assert.False(t, IsToday(time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC), now))
	assert.False(t, IsToday(time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC), now))
}

func TestWithinNextWeek(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.True(t, WithinNextWeek(now, now))
	assert.True(t, WithinNextWeek(now.AddDate(0, 0, 6), now))
	assert.True(t, WithinNextWeek(now.AddDate(0, 0, 7), now))
	assert.False(t, WithinNextWeek(now.AddDate(0, 0, 7).Add(time.Minute), now))
	assert.False(t, WithinNextWeek(now.Add(-time.Hour), now))
}

func TestDisplay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "Mar 10, 2025 3:04 PM", Display(ts))
}

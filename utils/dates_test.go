package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	lateNight := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	earlyMorning := time.Date(2025, 6, 16, 0, 1, 0, 0, time.UTC)

	// Two minutes apart but on different calendar days.
	assert.Equal(t, 1, DaysBetween(lateNight, earlyMorning))
	assert.Equal(t, -1, DaysBetween(earlyMorning, lateNight))
	assert.Equal(t, 0, DaysBetween(lateNight, lateNight.Add(-10*time.Hour)))
}

func TestDaysBetweenAcrossMonths(t *testing.T) {
	start := time.Date(2025, 1, 30, 12, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(start, end))
	assert.Equal(t, -3, DaysBetween(end, start))
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"2020-01-15", time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2020-01", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"01/2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"January 2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"Jan 2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"Present", now, true},
		{"current", now, true},
		{"now", now, true},
		{"2020ish", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"soon", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseFlexibleDate(tt.raw, now)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 12, MonthsBetween(d(2020, 1, 1), d(2021, 1, 1)))
	assert.Equal(t, 6, MonthsBetween(d(2020, 1, 1), d(2020, 7, 1)))
	assert.Equal(t, 5, MonthsBetween(d(2020, 1, 15), d(2020, 7, 1)))
	// Same month still counts as one.
	assert.Equal(t, 1, MonthsBetween(d(2020, 1, 1), d(2020, 1, 20)))
	// Inverted ranges are invalid.
	assert.Equal(t, 0, MonthsBetween(d(2021, 1, 1), d(2020, 1, 1)))
}

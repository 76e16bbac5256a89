package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePickupTime(t *testing.T) {
	morning := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	lateNight := time.Date(2025, 6, 10, 23, 55, 0, 0, time.Local)

	tests := []struct {
		name     string
		text     string
		now      time.Time
		expected time.Time
		ok       bool
	}{
		{
			name:     "relative minutes",
			text:     "через 15",
			now:      morning,
			expected: morning.Add(15 * time.Minute),
			ok:       true,
		},
		{
			name:     "relative with trailing words",
			text:     "через 10 минут",
			now:      morning,
			expected: morning.Add(10 * time.Minute),
			ok:       true,
		},
		{
			name:     "relative case insensitive",
			text:     "Через 20",
			now:      morning,
			expected: morning.Add(20 * time.Minute),
			ok:       true,
		},
		{
			name:     "absolute later today",
			text:     "08:40",
			now:      morning,
			expected: time.Date(2025, 6, 10, 8, 40, 0, 0, time.Local),
			ok:       true,
		},
		{
			name:     "absolute with prefix",
			text:     "к 09:15",
			now:      morning,
			expected: time.Date(2025, 6, 10, 9, 15, 0, 0, time.Local),
			ok:       true,
		},
		{
			name:     "absolute in the past rolls to tomorrow",
			text:     "23:50",
			now:      lateNight,
			expected: time.Date(2025, 6, 11, 23, 50, 0, 0, time.Local),
			ok:       true,
		},
		{
			name: "hour out of range",
			text: "25:10",
			now:  morning,
			ok:   false,
		},
		{
			name: "minute out of range",
			text: "12:75",
			now:  morning,
			ok:   false,
		},
		{
			name: "garbage",
			text: "завтра утром",
			now:  morning,
			ok:   false,
		},
		{
			name: "empty",
			text: "",
			now:  morning,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := parsePickupTime(tt.text, tt.now)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, parsed)
			}
		})
	}
}

func TestIsValidPickupTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)

	assert.True(t, isValidPickupTime(now.Add(10*time.Minute), now), "exactly the lead time is valid")
	assert.True(t, isValidPickupTime(now.Add(time.Hour), now))
	assert.False(t, isValidPickupTime(now.Add(9*time.Minute), now))
	assert.False(t, isValidPickupTime(now, now))
	assert.False(t, isValidPickupTime(now.Add(-time.Hour), now))
}

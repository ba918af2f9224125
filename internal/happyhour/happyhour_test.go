package happyhour

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsActiveSameDayWindow(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		end    string
		now    string
		active bool
	}{
		{"inside window", "17:00", "20:00", "18:30", true},
		{"one minute before start", "17:00", "20:00", "16:59", false},
		{"exactly at start", "17:00", "20:00", "17:00", true},
		{"exactly at end", "17:00", "20:00", "20:00", true},
		{"one minute after end", "17:00", "20:00", "20:01", false},
		{"zero-length window", "18:00", "18:00", "18:00", true},
		{"zero-length window misses", "18:00", "18:00", "18:01", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.active, IsActive(tc.start, tc.end, tc.now))
		})
	}
}

func TestIsActiveOvernightWindow(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		end    string
		now    string
		active bool
	}{
		{"before midnight", "22:00", "02:00", "23:30", true},
		{"after midnight", "22:00", "02:00", "01:15", true},
		{"exactly at wrap end", "22:00", "02:00", "02:00", true},
		{"midday outside", "22:00", "02:00", "10:00", false},
		{"just after wrap end", "22:00", "02:00", "02:01", false},
		{"just before wrap start", "22:00", "02:00", "21:59", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.active, IsActive(tc.start, tc.end, tc.now))
		})
	}
}

func TestEvaluateMalformedInput(t *testing.T) {
	_, err := Evaluate("25:00", "20:00", "18:00")
	require.Error(t, err)

	_, err = Evaluate("17:00", "20:61", "18:00")
	require.Error(t, err)

	_, err = Evaluate("17:00", "20:00", "not a time")
	require.Error(t, err)

	// IsActive treats malformed input as inactive.
	assert.False(t, IsActive("banana", "20:00", "18:00"))
}

func TestActiveAt(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2026, time.March, 14, hour, min, 0, 0, time.Local)
	}

	assert.True(t, ActiveAt("17:00", "20:00", at(18, 30)))
	assert.False(t, ActiveAt("17:00", "20:00", at(16, 59)))
	assert.True(t, ActiveAt("22:00", "02:00", at(23, 30)))
	assert.False(t, ActiveAt("22:00", "02:00", at(10, 0)))
}

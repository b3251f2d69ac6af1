package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(9, 30), tod)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, "09:30", tod.String())
}

func TestParseTimeOfDay_Midnight(t *testing.T) {
	tod, err := ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(0), tod)
	assert.Equal(t, "00:00", tod.String())
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, input := range []string{"24:00", "12:60", "-1:30", "abc", ""} {
		_, err := ParseTimeOfDay(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTimeOfDayOn(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	at := NewTimeOfDay(16, 45).On(day)
	assert.Equal(t, time.Date(2025, 1, 15, 16, 45, 0, 0, time.UTC), at)
}

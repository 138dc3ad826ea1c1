package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidTimeFormat(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "12:05"}
	for _, value := range valid {
		assert.True(t, IsValidTimeFormat(value), value)
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "12:345", "ab:cd"}
	for _, value := range invalid {
		assert.False(t, IsValidTimeFormat(value), value)
	}
}

func TestCalculateWorkingHours(t *testing.T) {
	t.Run("regular day", func(t *testing.T) {
		working, overtime, err := CalculateWorkingHours("09:00", "17:00")
		require.NoError(t, err)
		assert.InDelta(t, 8.0, working, 0.001)
		assert.InDelta(t, 0.0, overtime, 0.001)
	})

	t.Run("overtime", func(t *testing.T) {
		working, overtime, err := CalculateWorkingHours("09:00", "19:30")
		require.NoError(t, err)
		assert.InDelta(t, 10.5, working, 0.001)
		assert.InDelta(t, 2.5, overtime, 0.001)
	})

	t.Run("overnight shift wraps past midnight", func(t *testing.T) {
		working, _, err := CalculateWorkingHours("22:00", "06:00")
		require.NoError(t, err)
		assert.InDelta(t, 8.0, working, 0.001)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, _, err := CalculateWorkingHours("nine", "17:00")
		require.Error(t, err)
	})
}

func TestIsLate(t *testing.T) {
	assert.False(t, IsLate("09:00", "09:00", 15))
	assert.False(t, IsLate("09:15", "09:00", 15))
	assert.True(t, IsLate("09:16", "09:00", 15))
	assert.False(t, IsLate("08:30", "09:00", 15))
}

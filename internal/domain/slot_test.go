package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotGrid(t *testing.T) {
	t.Run("normalizes date to midnight UTC", func(t *testing.T) {
		grid, err := NewSlotGrid(3, time.Date(2025, 10, 15, 14, 30, 45, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), grid.Date)
		assert.Equal(t, 3, grid.PointCount)
		assert.Equal(t, 24, grid.HoursPerDay)
	})

	t.Run("rejects non-positive point count", func(t *testing.T) {
		_, err := NewSlotGrid(0, time.Now())
		assert.Error(t, err)

		_, err = NewSlotGrid(-1, time.Now())
		assert.Error(t, err)
	})
}

func TestSlotGridKeys(t *testing.T) {
	grid, err := NewSlotGrid(3, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	keys := grid.Keys()
	assert.Len(t, keys, 3*24)

	// Порядок: (точка, час)
	assert.Equal(t, SlotKey{PointNumber: 1, Hour: 0}, keys[0])
	assert.Equal(t, SlotKey{PointNumber: 1, Hour: 23}, keys[23])
	assert.Equal(t, SlotKey{PointNumber: 2, Hour: 0}, keys[24])
	assert.Equal(t, SlotKey{PointNumber: 3, Hour: 23}, keys[len(keys)-1])
}

func TestSlotGridContains(t *testing.T) {
	grid, err := NewSlotGrid(2, time.Now())
	require.NoError(t, err)

	assert.True(t, grid.Contains(1, 0))
	assert.True(t, grid.Contains(2, 23))
	assert.False(t, grid.Contains(0, 5))
	assert.False(t, grid.Contains(3, 5))
	assert.False(t, grid.Contains(1, -1))
	assert.False(t, grid.Contains(1, 24))
}

func TestSlotStartTime(t *testing.T) {
	grid, err := NewSlotGrid(1, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC), grid.SlotStartTime(9))
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), grid.SlotStartTime(0))
}

func TestTimeRange(t *testing.T) {
	assert.Equal(t, "00:00 - 01:00", TimeRange(0))
	assert.Equal(t, "09:00 - 10:00", TimeRange(9))
	assert.Equal(t, "23:00 - 24:00", TimeRange(23))
}

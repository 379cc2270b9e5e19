package domain

import (
	"fmt"
	"time"
)

// SlotKey identifies a single cell of a station's daily slot grid
type SlotKey struct {
	PointNumber int // Charging point, 1..N
	Hour        int // Hour of the day, 0..23
}

// SlotGrid is the canonical addressable slot space of a station for one day:
// N charging points times 24 hourly slots. The grid itself is pure data,
// occupancy is derived from bookings elsewhere.
type SlotGrid struct {
	Date        time.Time // Normalized to midnight UTC
	PointCount  int
	HoursPerDay int
}

// NewSlotGrid builds the slot grid for a station with pointCount charging
// points on the given date. The date is normalized to midnight so a timestamp
// with a time-of-day component maps to the same grid as its midnight equivalent.
func NewSlotGrid(pointCount int, date time.Time) (*SlotGrid, error) {
	if pointCount <= 0 {
		return nil, fmt.Errorf("slot grid: point count must be positive, got %d", pointCount)
	}
	return &SlotGrid{
		Date:        NormalizeDate(date),
		PointCount:  pointCount,
		HoursPerDay: HoursPerDay,
	}, nil
}

// Contains reports whether (pointNumber, hour) addresses a cell of the grid
func (g *SlotGrid) Contains(pointNumber, hour int) bool {
	return pointNumber >= MinChargingPointNumber && pointNumber <= g.PointCount &&
		hour >= MinTimeSlot && hour <= MaxTimeSlot
}

// Keys enumerates all cells of the grid in (point, hour) order
func (g *SlotGrid) Keys() []SlotKey {
	keys := make([]SlotKey, 0, g.PointCount*g.HoursPerDay)
	for point := MinChargingPointNumber; point <= g.PointCount; point++ {
		for hour := 0; hour < g.HoursPerDay; hour++ {
			keys = append(keys, SlotKey{PointNumber: point, Hour: hour})
		}
	}
	return keys
}

// SlotStartTime returns the absolute start instant of a slot on the grid's date
func (g *SlotGrid) SlotStartTime(hour int) time.Time {
	return g.Date.Add(time.Duration(hour) * time.Hour)
}

// NormalizeDate truncates a timestamp to midnight UTC, keeping only the date
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// TimeRange formats an hourly slot as "09:00 - 10:00"
func TimeRange(hour int) string {
	return fmt.Sprintf("%02d:00 - %02d:00", hour, hour+1)
}

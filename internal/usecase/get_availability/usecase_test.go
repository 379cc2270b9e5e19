package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/internal/integrations/stationservice"
)

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	gotFilter domain.StationBookingsFilter
}

func (f *fakeBookingRepo) GetByStationWithFilter(_ context.Context, filter domain.StationBookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = filter
	return f.bookings, nil
}

type fakeStationClient struct {
	station *stationservice.Station
	err     error
}

func (f *fakeStationClient) GetStation(_ context.Context, _ int64) (*stationservice.Station, error) {
	return f.station, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeBookingRepo, pointCount int) *UseCase {
	return NewUseCase(
		repo,
		&fakeStationClient{station: &stationservice.Station{ID: 7, ChargingPointCount: pointCount, IsActive: true}},
		nopLogger{},
	)
}

func TestExecuteFullGrid(t *testing.T) {
	date := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 11, OwnerNIC: "200012345678", ChargingPointNumber: 2, TimeSlot: 9, Status: domain.StatusApproved},
		},
	}
	uc := newTestUseCase(repo, 3)

	resp, err := uc.Execute(context.Background(), &Request{StationID: 7, Date: date})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.StationID)
	assert.Equal(t, 3, resp.ChargingPointCount)
	assert.Len(t, resp.Slots, 3*24)

	// Репозиторий запрашивался только по активным броням на эту дату
	assert.True(t, repo.gotFilter.ActiveOnly)
	require.NotNil(t, repo.gotFilter.Date)
	assert.True(t, repo.gotFilter.Date.Equal(date))

	var occupied []Slot
	for _, s := range resp.Slots {
		if !s.IsAvailable {
			occupied = append(occupied, s)
		}
	}
	require.Len(t, occupied, 1)
	assert.Equal(t, 2, occupied[0].ChargingPointNumber)
	assert.Equal(t, 9, occupied[0].TimeSlot)
	assert.Equal(t, "09:00 - 10:00", occupied[0].TimeRange)
	require.NotNil(t, occupied[0].BookingID)
	assert.Equal(t, int64(11), *occupied[0].BookingID)
	require.NotNil(t, occupied[0].BookedBy)
	assert.Equal(t, "200012345678", *occupied[0].BookedBy)
}

func TestExecuteAvailableOnly(t *testing.T) {
	date := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 11, ChargingPointNumber: 1, TimeSlot: 0, Status: domain.StatusApproved},
			{ID: 12, ChargingPointNumber: 1, TimeSlot: 1, Status: domain.StatusPending},
		},
	}
	uc := newTestUseCase(repo, 2)

	resp, err := uc.Execute(context.Background(), &Request{StationID: 7, Date: date, AvailableOnly: true})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 2*24-2)
	for _, s := range resp.Slots {
		assert.True(t, s.IsAvailable)
	}
}

func TestExecuteNormalizesDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, 1)

	resp, err := uc.Execute(context.Background(), &Request{
		StationID: 7,
		Date:      time.Date(2025, 10, 16, 15, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, resp.Date.Equal(time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)))
	assert.True(t, resp.Slots[9].StartTime.Equal(time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC)))
}

func TestExecuteDefaultsPointCount(t *testing.T) {
	// Каталог станций не сообщил количество точек
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, 0)

	resp, err := uc.Execute(context.Background(), &Request{
		StationID: 7,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultChargingPoints, resp.ChargingPointCount)
	assert.Len(t, resp.Slots, domain.DefaultChargingPoints*24)
}

func TestExecuteStationNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStationClient{err: stationservice.ErrStationNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		StationID: 7,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestExecuteInvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, 1)

	_, err := uc.Execute(context.Background(), &Request{StationID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StationID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

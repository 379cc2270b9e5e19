package create_slot_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/EVC-BookingService/internal/integrations/ownerservice"
	"github.com/m04kA/EVC-BookingService/internal/integrations/stationservice"
)

type fakeBookingRepo struct {
	existing  *domain.Booking
	created   *domain.Booking
	createErr error
	nextID    int64
}

func (f *fakeBookingRepo) GetBySlot(_ context.Context, _ int64, _ int, _ time.Time, _ int) (*domain.Booking, error) {
	if f.existing == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.existing, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *booking
	created.ID = f.nextID
	created.BookingReference = "EVB20251015120000abcd1234"
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

type fakeOwnerClient struct {
	owner *ownerservice.Owner
	err   error
}

func (f *fakeOwnerClient) GetOwner(_ context.Context, _ string) (*ownerservice.Owner, error) {
	return f.owner, f.err
}

type fakeStationClient struct {
	station *stationservice.Station
	err     error
}

func (f *fakeStationClient) GetStation(_ context.Context, _ int64) (*stationservice.Station, error) {
	return f.station, f.err
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		OwnerNIC:            "200012345678",
		StationID:           7,
		ChargingPointNumber: 2,
		BookingDate:         time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		TimeSlot:            9,
	}
}

func newTestUseCase(repo *fakeBookingRepo) *UseCase {
	uc := NewUseCase(
		repo,
		&fakeOwnerClient{owner: &ownerservice.Owner{NIC: "200012345678", IsActive: true}},
		&fakeStationClient{station: &stationservice.Station{ID: 7, ChargingPointCount: 3, IsActive: true}},
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fakeClock{now: time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecuteSuccess(t *testing.T) {
	repo := &fakeBookingRepo{nextID: 1}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.NotEmpty(t, resp.BookingReference)
	assert.Equal(t, "Approved", resp.Status)
	assert.Equal(t, 9, resp.TimeSlot)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.True(t, resp.StartTime.Equal(time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC)))
	assert.True(t, resp.EndTime.Equal(time.Date(2025, 10, 16, 10, 0, 0, 0, time.UTC)))

	// Слотовое бронирование подтверждается сразу
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusApproved, repo.created.Status)
}

func TestExecuteSlotTaken(t *testing.T) {
	repo := &fakeBookingRepo{
		existing: &domain.Booking{ID: 99, Status: domain.StatusApproved},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecuteSlotTakenOnInsert(t *testing.T) {
	// Гонка: проверка прошла, но конкурентная вставка успела раньше
	repo := &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{nextID: 1})

	t.Run("missing owner nic", func(t *testing.T) {
		req := validRequest()
		req.OwnerNIC = ""
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("time slot out of range", func(t *testing.T) {
		req := validRequest()
		req.TimeSlot = 24
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("charging point out of range", func(t *testing.T) {
		req := validRequest()
		req.ChargingPointNumber = 4 // у станции 3 точки
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidChargingPoint)
	})
}

func TestExecuteOutsideReservationWindow(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{nextID: 1})

	t.Run("slot start in the past", func(t *testing.T) {
		req := validRequest()
		req.BookingDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
		req.TimeSlot = 8 // 08:00 при now=10:00
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideReservationWindow)
	})

	t.Run("slot start beyond 7 days", func(t *testing.T) {
		req := validRequest()
		req.BookingDate = time.Date(2025, 10, 23, 0, 0, 0, 0, time.UTC)
		req.TimeSlot = 11 // now + 7d = 2025-10-22 10:00
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideReservationWindow)
	})
}

func TestExecuteInactiveActors(t *testing.T) {
	t.Run("inactive station", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{nextID: 1})
		uc.stationClient = &fakeStationClient{station: &stationservice.Station{ID: 7, ChargingPointCount: 3, IsActive: false}}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStationNotFound)
	})

	t.Run("inactive owner", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{nextID: 1})
		uc.ownerClient = &fakeOwnerClient{owner: &ownerservice.Owner{NIC: "200012345678", IsActive: false}}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrOwnerNotFound)
	})

	t.Run("unknown owner", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{nextID: 1})
		uc.ownerClient = &fakeOwnerClient{err: ownerservice.ErrOwnerNotFound}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrOwnerNotFound)
	})

	t.Run("unknown station", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{nextID: 1})
		uc.stationClient = &fakeStationClient{err: stationservice.ErrStationNotFound}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStationNotFound)
	})
}

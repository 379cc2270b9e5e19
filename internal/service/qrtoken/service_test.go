package qrtoken

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	// Копия, чтобы тест мог менять запись независимо от выданного токена
	copied := *b
	return &copied, nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func approvedBooking() *domain.Booking {
	start := time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:                  42,
		BookingReference:    "EVB20251015120000abcd1234",
		OwnerNIC:            "200012345678",
		StationID:           7,
		ChargingPointNumber: 2,
		BookingDate:         time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		TimeSlot:            9,
		StartTime:           start,
		EndTime:             start.Add(time.Hour),
		DurationMinutes:     60,
		Status:              domain.StatusApproved,
	}
}

func newTestService(booking *domain.Booking, now time.Time) (*Service, *fakeBookingRepo, *fakeClock) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	if booking != nil {
		repo.bookings[booking.ID] = booking
	}
	clock := &fakeClock{now: now}

	svc := NewService("test-secret", repo, nopLogger{})
	svc.timeProvider = clock
	return svc, repo, clock
}

func TestGenerateRequiresApproved(t *testing.T) {
	booking := approvedBooking()
	svc, _, _ := newTestService(booking, booking.StartTime.Add(-2*time.Hour))

	for _, status := range []domain.BookingStatus{
		domain.StatusPending, domain.StatusStarted, domain.StatusCompleted, domain.StatusCancelled,
	} {
		booking.Status = status
		_, err := svc.Generate(context.Background(), booking)
		assert.ErrorIs(t, err, ErrNotApproved, string(status))
	}

	_, err := svc.Generate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestGenerateValidateRoundTrip(t *testing.T) {
	booking := approvedBooking()
	now := booking.StartTime.Add(-2 * time.Hour)
	svc, _, _ := newTestService(booking, now)

	token, err := svc.Generate(context.Background(), booking)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, booking.ID, payload.BookingID)
	assert.Equal(t, booking.BookingReference, payload.BookingReference)
	assert.Equal(t, booking.OwnerNIC, payload.OwnerNIC)
	assert.Equal(t, booking.StationID, payload.StationID)
	assert.Equal(t, booking.ChargingPointNumber, payload.ChargingPointNumber)
	assert.Equal(t, booking.DurationMinutes, payload.DurationMinutes)
	assert.Equal(t, domain.StatusApproved, payload.Status)
	assert.True(t, payload.StartTime.Equal(booking.StartTime))
	assert.True(t, payload.GeneratedAt.Equal(now))
	assert.True(t, payload.ExpiresAt.Equal(booking.StartTime.Add(time.Hour)))
}

func TestValidateExpiredToken(t *testing.T) {
	booking := approvedBooking()
	svc, _, clock := newTestService(booking, booking.StartTime.Add(-2*time.Hour))

	token, err := svc.Generate(context.Background(), booking)
	require.NoError(t, err)

	// Токен живет до startTime + 1 час
	clock.now = booking.StartTime.Add(90 * time.Minute)

	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateMalformedToken(t *testing.T) {
	booking := approvedBooking()
	svc, _, _ := newTestService(booking, booking.StartTime.Add(-2*time.Hour))

	_, err := svc.Validate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)

	// Токен, подписанный другим ключом
	other := NewService("other-secret", &fakeBookingRepo{bookings: map[int64]*domain.Booking{booking.ID: booking}}, nopLogger{})
	other.timeProvider = &fakeClock{now: booking.StartTime.Add(-2 * time.Hour)}
	foreign, err := other.Generate(context.Background(), booking)
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), foreign)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestValidateBookingGone(t *testing.T) {
	booking := approvedBooking()
	svc, repo, _ := newTestService(booking, booking.StartTime.Add(-2*time.Hour))

	token, err := svc.Generate(context.Background(), booking)
	require.NoError(t, err)

	delete(repo.bookings, booking.ID)

	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestValidateBookingNoLongerApproved(t *testing.T) {
	booking := approvedBooking()
	svc, repo, _ := newTestService(booking, booking.StartTime.Add(-2*time.Hour))

	token, err := svc.Generate(context.Background(), booking)
	require.NoError(t, err)

	cancelled := *booking
	cancelled.Status = domain.StatusCancelled
	repo.bookings[booking.ID] = &cancelled

	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrBookingNotApproved)
}

func TestValidateStaleTokenAfterEdit(t *testing.T) {
	booking := approvedBooking()
	svc, repo, _ := newTestService(booking, booking.StartTime.Add(-2*time.Hour))

	token, err := svc.Generate(context.Background(), booking)
	require.NoError(t, err)

	// Бронирование перевыпущено с новым reference - старый токен устарел
	edited := *booking
	edited.BookingReference = "EVB20251015130000ffff0000"
	repo.bookings[booking.ID] = &edited

	_, err = svc.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrBookingMismatch)
}

func TestIsValidFor(t *testing.T) {
	booking := approvedBooking()
	svc, _, _ := newTestService(booking, booking.StartTime.Add(-2*time.Hour))

	token, err := svc.Generate(context.Background(), booking)
	require.NoError(t, err)

	assert.True(t, svc.IsValidFor(context.Background(), token, booking.ID))
	assert.False(t, svc.IsValidFor(context.Background(), token, booking.ID+1))
	assert.False(t, svc.IsValidFor(context.Background(), "garbage", booking.ID))
}

package bookings

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
	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

type fakeRepo struct {
	booking *domain.Booking
	list    []*domain.Booking

	cancelledID     int64
	cancelledReason string
	updatedStatus   domain.BookingStatus
	updatedBooking  *domain.Booking
	storedQR        string
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeRepo) GetByOwnerNIC(_ context.Context, _ string, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeRepo) GetUpcomingByOwnerNIC(_ context.Context, _ string, _ time.Time) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeRepo) GetHistoryByOwnerNIC(_ context.Context, _ string, _ time.Time) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeRepo) CountByOwnerAndStatus(_ context.Context, _ string, status domain.BookingStatus) (int, error) {
	count := 0
	for _, b := range f.list {
		if b.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) GetByStationWithFilter(_ context.Context, _ domain.StationBookingsFilter) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeRepo) HasActiveByStation(_ context.Context, _ int64) (bool, error) {
	for _, b := range f.list {
		if b.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Update(_ context.Context, booking *domain.Booking) error {
	updated := *booking
	f.updatedBooking = &updated
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus = status
	f.booking.Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledID = id
	f.cancelledReason = reason
	f.booking.Status = domain.StatusCancelled
	return nil
}

func (f *fakeRepo) SetQRCode(_ context.Context, id int64, qrData string) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.storedQR = qrData
	return nil
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

func (f *fakeStationClient) GetStationByOperator(_ context.Context, _ string) (*stationservice.Station, error) {
	return f.station, f.err
}

type fakeQRManager struct {
	token       string
	generateErr error
	validFor    int64
}

func (f *fakeQRManager) Generate(_ context.Context, _ *domain.Booking) (string, error) {
	return f.token, f.generateErr
}

func (f *fakeQRManager) IsValidFor(_ context.Context, _ string, bookingID int64) bool {
	return bookingID == f.validFor
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

func testBooking(status domain.BookingStatus, startsIn time.Duration) *domain.Booking {
	start := testNow.Add(startsIn)
	return &domain.Booking{
		ID:                  1,
		BookingReference:    "EVB20251015120000abcd1234",
		OwnerNIC:            "200012345678",
		StationID:           7,
		ChargingPointNumber: 2,
		BookingDate:         domain.NormalizeDate(start),
		TimeSlot:            start.Hour(),
		StartTime:           start,
		EndTime:             start.Add(time.Hour),
		DurationMinutes:     60,
		Status:              status,
	}
}

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(
		repo,
		&fakeOwnerClient{owner: &ownerservice.Owner{NIC: "200012345678", IsActive: true}},
		&fakeStationClient{station: &stationservice.Station{ID: 7, ChargingPointCount: 3, IsActive: true}},
		&fakeQRManager{token: "signed-token", validFor: 1},
		nopLogger{},
	)
	svc.timeProvider = &fakeClock{now: testNow}
	return svc
}

func TestCancelRespectsNoticePeriod(t *testing.T) {
	t.Run("cancel 13 hours before start", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusApproved, 13*time.Hour)}
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "план изменился"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), repo.cancelledID)
		assert.Equal(t, "план изменился", repo.cancelledReason)
	})

	t.Run("cancel 1 hour before start is rejected", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusApproved, time.Hour)}
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrModifyWindowClosed)
		assert.Zero(t, repo.cancelledID)
	})

	t.Run("started booking cannot be cancelled", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusStarted, 24*time.Hour)}
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		err := svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestUpdateRespectsRules(t *testing.T) {
	t.Run("moves booking to a new slot", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusApproved, 24*time.Hour)}
		svc := newTestService(repo)

		newDate := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
		newSlot := 15
		newPoint := 3

		resp, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
			ChargingPointNumber: &newPoint,
			BookingDate:         &newDate,
			TimeSlot:            &newSlot,
		})
		require.NoError(t, err)

		// Производные поля пересчитаны
		require.NotNil(t, repo.updatedBooking)
		assert.Equal(t, 3, repo.updatedBooking.ChargingPointNumber)
		assert.True(t, repo.updatedBooking.StartTime.Equal(time.Date(2025, 10, 18, 15, 0, 0, 0, time.UTC)))
		assert.True(t, repo.updatedBooking.EndTime.Equal(time.Date(2025, 10, 18, 16, 0, 0, 0, time.UTC)))
		assert.Equal(t, 15, resp.TimeSlot)
	})

	t.Run("update 1 hour before start is rejected", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusApproved, time.Hour)}
		svc := newTestService(repo)

		newSlot := 20
		_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{TimeSlot: &newSlot})
		assert.ErrorIs(t, err, ErrModifyWindowClosed)
	})

	t.Run("new start beyond 7 days is rejected", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusApproved, 24*time.Hour)}
		svc := newTestService(repo)

		newDate := time.Date(2025, 10, 24, 0, 0, 0, 0, time.UTC)
		_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{BookingDate: &newDate})
		assert.ErrorIs(t, err, ErrOutsideReservationWindow)
	})

	t.Run("charging point out of station range", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusApproved, 24*time.Hour)}
		svc := newTestService(repo)

		newPoint := 4 // у станции 3 точки
		_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{ChargingPointNumber: &newPoint})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("completed booking cannot be updated", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusCompleted, 24*time.Hour)}
		svc := newTestService(repo)

		newSlot := 20
		_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{TimeSlot: &newSlot})
		assert.ErrorIs(t, err, ErrCannotUpdate)
	})
}

func TestUpdateStatusDirect(t *testing.T) {
	t.Run("operator bypasses notice period", func(t *testing.T) {
		// За час до начала владелец уже не может отменить, оператор - может
		repo := &fakeRepo{booking: testBooking(domain.StatusApproved, time.Hour)}
		svc := newTestService(repo)

		resp, err := svc.UpdateStatusDirect(context.Background(), 1, "Cancelled")
		require.NoError(t, err)
		assert.Equal(t, "Cancelled", resp.Status)
		assert.Equal(t, domain.StatusCancelled, repo.updatedStatus)
	})

	t.Run("transition from terminal state is rejected", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusCancelled, 24*time.Hour)}
		svc := newTestService(repo)

		_, err := svc.UpdateStatusDirect(context.Background(), 1, "Approved")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, repo.updatedStatus)
	})

	t.Run("unknown status string", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusPending, 24*time.Hour)}
		svc := newTestService(repo)

		_, err := svc.UpdateStatusDirect(context.Background(), 1, "Broken")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("approve and start shortcuts", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusPending, 24*time.Hour)}
		svc := newTestService(repo)

		resp, err := svc.Approve(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Approved", resp.Status)

		resp, err = svc.Start(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Started", resp.Status)
	})
}

func TestComplete(t *testing.T) {
	t.Run("started booking completes", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusStarted, -time.Hour)}
		svc := newTestService(repo)

		resp, err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Completed", resp.Status)
	})

	t.Run("QR token for another booking is rejected", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusStarted, -time.Hour)}
		svc := newTestService(repo)
		svc.qrManager = &fakeQRManager{validFor: 999}

		qr := "stale-token"
		_, err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{QRData: &qr})
		assert.ErrorIs(t, err, ErrQRCheckFailed)
	})

	t.Run("pending booking cannot be completed", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusPending, 24*time.Hour)}
		svc := newTestService(repo)

		_, err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestIssueQRCode(t *testing.T) {
	t.Run("stores issued token on the booking", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusApproved, 24*time.Hour)}
		svc := newTestService(repo)

		qr, err := svc.IssueQRCode(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "signed-token", qr)
		assert.Equal(t, "signed-token", repo.storedQR)
	})

	t.Run("issue error is passed through", func(t *testing.T) {
		repo := &fakeRepo{booking: testBooking(domain.StatusPending, 24*time.Hour)}
		svc := newTestService(repo)
		svc.qrManager = &fakeQRManager{generateErr: assert.AnError}

		_, err := svc.IssueQRCode(context.Background(), 1)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, repo.storedQR)
	})
}

func TestOwnerViews(t *testing.T) {
	list := []*domain.Booking{
		testBooking(domain.StatusPending, 24*time.Hour),
		testBooking(domain.StatusApproved, 48*time.Hour),
	}

	t.Run("upcoming bookings", func(t *testing.T) {
		svc := newTestService(&fakeRepo{list: list})

		resp, err := svc.GetUpcomingByOwner(context.Background(), "200012345678")
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("counts by status", func(t *testing.T) {
		svc := newTestService(&fakeRepo{list: list})

		counts, err := svc.GetCountsByOwner(context.Background(), "200012345678")
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Pending)
		assert.Equal(t, 1, counts.Approved)
	})

	t.Run("inactive owner is treated as missing", func(t *testing.T) {
		svc := newTestService(&fakeRepo{list: list})
		svc.ownerClient = &fakeOwnerClient{owner: &ownerservice.Owner{NIC: "200012345678", IsActive: false}}

		_, err := svc.GetUpcomingByOwner(context.Background(), "200012345678")
		assert.ErrorIs(t, err, ErrOwnerNotFound)
	})
}

func TestGetByOperator(t *testing.T) {
	t.Run("resolves operator station", func(t *testing.T) {
		svc := newTestService(&fakeRepo{list: []*domain.Booking{testBooking(domain.StatusApproved, 24*time.Hour)}})

		resp, err := svc.GetByOperator(context.Background(), "operator1")
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("unknown operator", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})
		svc.stationClient = &fakeStationClient{err: stationservice.ErrOperatorNotFound}

		_, err := svc.GetByOperator(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrOperatorNotFound)
	})
}

func TestHasActiveBookings(t *testing.T) {
	svc := newTestService(&fakeRepo{list: []*domain.Booking{testBooking(domain.StatusApproved, 24*time.Hour)}})

	hasActive, err := svc.HasActiveBookings(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, hasActive)

	svc = newTestService(&fakeRepo{})
	hasActive, err = svc.HasActiveBookings(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, hasActive)
}

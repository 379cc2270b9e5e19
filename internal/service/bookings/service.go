package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	ownerClient "github.com/m04kA/EVC-BookingService/internal/integrations/ownerservice"
	stationClient "github.com/m04kA/EVC-BookingService/internal/integrations/stationservice"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
// Все мутации статусов и таймстемпов проходят только через этот сервис
type Service struct {
	bookingRepo   BookingRepository
	ownerClient   OwnerServiceClient
	stationClient StationServiceClient
	qrManager     QRManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	ownerClient OwnerServiceClient,
	stationClient StationServiceClient,
	qrManager QRManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		ownerClient:   ownerClient,
		stationClient: stationClient,
		qrManager:     qrManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// GetUpcomingByOwner получает предстоящие бронирования владельца
// Владелец должен существовать и быть активным
func (s *Service) GetUpcomingByOwner(ctx context.Context, nic string) (*models.BookingListResponse, error) {
	s.logger.Info("GetUpcomingByOwner: fetching upcoming bookings for owner=%s", nic)

	if err := s.checkOwnerActive(ctx, nic); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetUpcomingByOwnerNIC(ctx, nic, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetUpcomingByOwner: repository error for owner=%s: %v", nic, err)
		return nil, fmt.Errorf("%w: GetUpcomingByOwner - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetHistoryByOwner получает историю бронирований владельца
func (s *Service) GetHistoryByOwner(ctx context.Context, nic string) (*models.BookingListResponse, error) {
	s.logger.Info("GetHistoryByOwner: fetching booking history for owner=%s", nic)

	if err := s.checkOwnerActive(ctx, nic); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetHistoryByOwnerNIC(ctx, nic, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetHistoryByOwner: repository error for owner=%s: %v", nic, err)
		return nil, fmt.Errorf("%w: GetHistoryByOwner - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetCountsByOwner получает счетчики Pending/Approved бронирований владельца
func (s *Service) GetCountsByOwner(ctx context.Context, nic string) (*models.OwnerBookingCounts, error) {
	if err := s.checkOwnerActive(ctx, nic); err != nil {
		return nil, err
	}

	pending, err := s.bookingRepo.CountByOwnerAndStatus(ctx, nic, domain.StatusPending)
	if err != nil {
		s.logger.Error("GetCountsByOwner: repository error for owner=%s: %v", nic, err)
		return nil, fmt.Errorf("%w: GetCountsByOwner - repository error: %v", ErrInternal, err)
	}

	approved, err := s.bookingRepo.CountByOwnerAndStatus(ctx, nic, domain.StatusApproved)
	if err != nil {
		s.logger.Error("GetCountsByOwner: repository error for owner=%s: %v", nic, err)
		return nil, fmt.Errorf("%w: GetCountsByOwner - repository error: %v", ErrInternal, err)
	}

	return &models.OwnerBookingCounts{Pending: pending, Approved: approved}, nil
}

// GetByStation получает бронирования станции
// activeOnly оставляет только занимающие слот бронирования
func (s *Service) GetByStation(ctx context.Context, stationID int64, activeOnly bool) (*models.BookingListResponse, error) {
	s.logger.Info("GetByStation: fetching bookings for station=%d, activeOnly=%t", stationID, activeOnly)

	filter := domain.StationBookingsFilter{
		StationID:  stationID,
		ActiveOnly: activeOnly,
	}

	bookings, err := s.bookingRepo.GetByStationWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetByStation: repository error for station=%d: %v", stationID, err)
		return nil, fmt.Errorf("%w: GetByStation - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetByOperator получает бронирования станции, закрепленной за оператором
func (s *Service) GetByOperator(ctx context.Context, operatorUsername string) (*models.BookingListResponse, error) {
	s.logger.Info("GetByOperator: fetching bookings for operator=%s", operatorUsername)

	station, err := s.stationClient.GetStationByOperator(ctx, operatorUsername)
	if err != nil {
		if errors.Is(err, stationClient.ErrOperatorNotFound) {
			s.logger.Warn("GetByOperator: operator=%s not found", operatorUsername)
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("GetByOperator: failed to resolve station for operator=%s: %v", operatorUsername, err)
		return nil, fmt.Errorf("%w: GetByOperator - failed to resolve station: %v", ErrInternal, err)
	}

	return s.GetByStation(ctx, station.ID, false)
}

// Update изменяет не-статусные поля бронирования (путь владельца)
// Правила: существующее время начала минимум за 12 часов; новое время начала,
// если меняется, должно попадать в 7-дневный горизонт
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "Update")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeUpdated() {
		s.logger.Warn("Update: booking id=%d cannot be updated, status=%s", id, booking.Status)
		return nil, ErrCannotUpdate
	}

	now := s.timeProvider.Now()
	if !domain.CanModify(booking.StartTime, now) {
		s.logger.Warn("Update: modify window closed for booking id=%d, start=%s", id, booking.StartTime)
		return nil, ErrModifyWindowClosed
	}

	if err := s.applyUpdate(ctx, booking, req, now); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			s.logger.Warn("Update: target slot taken for booking id=%d", id)
			return nil, ErrSlotTaken
		default:
			s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование от имени владельца (мягкая отмена)
// Допускается из Pending/Approved и минимум за 12 часов до начала
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "Cancel")
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
		return ErrCannotCancel
	}

	if !domain.CanModify(booking.StartTime, s.timeProvider.Now()) {
		s.logger.Warn("Cancel: modify window closed for booking id=%d, start=%s", id, booking.StartTime)
		return ErrModifyWindowClosed
	}

	if err := s.bookingRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return nil
}

// UpdateStatusDirect обновляет статус бронирования (путь оператора)
// Обходит 12-часовое и 7-дневное ограничения владельца, но переходы
// из терминальных статусов по-прежнему запрещены
func (s *Service) UpdateStatusDirect(ctx context.Context, id int64, statusStr string) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatusDirect: updating booking id=%d to status=%s", id, statusStr)

	status, ok := domain.ParseStatus(statusStr)
	if !ok {
		s.logger.Warn("UpdateStatusDirect: invalid status=%s for booking id=%d", statusStr, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, statusStr)
	}

	booking, err := s.getBooking(ctx, id, "UpdateStatusDirect")
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(status) {
		s.logger.Warn("UpdateStatusDirect: transition %s -> %s not allowed for booking id=%d",
			booking.Status, status, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatusDirect: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatusDirect - repository error: %v", ErrInternal, err)
	}

	booking.Status = status
	s.logger.Info("UpdateStatusDirect: booking id=%d is now %s", id, status)
	return models.FromDomainBooking(booking), nil
}

// Approve подтверждает бронирование (путь оператора)
func (s *Service) Approve(ctx context.Context, id int64) (*models.BookingResponse, error) {
	return s.UpdateStatusDirect(ctx, id, string(domain.StatusApproved))
}

// Start начинает зарядную сессию по бронированию (путь оператора)
func (s *Service) Start(ctx context.Context, id int64) (*models.BookingResponse, error) {
	return s.UpdateStatusDirect(ctx, id, string(domain.StatusStarted))
}

// Complete завершает бронирование
// Если приложен QR токен, он должен подтверждать именно это бронирование
func (s *Service) Complete(ctx context.Context, id int64, req *models.CompleteBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "Complete")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%d cannot be completed, status=%s", id, booking.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusCompleted)
	}

	if req != nil && req.QRData != nil {
		if !s.qrManager.IsValidFor(ctx, *req.QRData, id) {
			s.logger.Warn("Complete: QR check failed for booking id=%d", id)
			return nil, ErrQRCheckFailed
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCompleted
	s.logger.Info("Complete: successfully completed booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// IssueQRCode выпускает QR токен для подтвержденного бронирования
// и сохраняет его на записи бронирования
func (s *Service) IssueQRCode(ctx context.Context, id int64) (string, error) {
	s.logger.Info("IssueQRCode: issuing QR token for booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "IssueQRCode")
	if err != nil {
		return "", err
	}

	qrData, err := s.qrManager.Generate(ctx, booking)
	if err != nil {
		// Ошибка выпуска (не Approved) - доменная, пробрасываем как есть
		return "", err
	}

	if err := s.bookingRepo.SetQRCode(ctx, id, qrData); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return "", ErrBookingNotFound
		}
		s.logger.Error("IssueQRCode: repository error for booking id=%d: %v", id, err)
		return "", fmt.Errorf("%w: IssueQRCode - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("IssueQRCode: QR token issued and stored for booking id=%d", id)
	return qrData, nil
}

// HasActiveBookings сообщает, есть ли у станции бронирования, занимающие слоты
// Используется справочником станций перед выводом станции из эксплуатации
func (s *Service) HasActiveBookings(ctx context.Context, stationID int64) (bool, error) {
	hasActive, err := s.bookingRepo.HasActiveByStation(ctx, stationID)
	if err != nil {
		s.logger.Error("HasActiveBookings: repository error for station=%d: %v", stationID, err)
		return false, fmt.Errorf("%w: HasActiveBookings - repository error: %v", ErrInternal, err)
	}
	return hasActive, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkOwnerActive проверяет, что владелец существует и активен
func (s *Service) checkOwnerActive(ctx context.Context, nic string) error {
	owner, err := s.ownerClient.GetOwner(ctx, nic)
	if err != nil {
		if errors.Is(err, ownerClient.ErrOwnerNotFound) {
			s.logger.Warn("checkOwnerActive: owner=%s not found", nic)
			return ErrOwnerNotFound
		}
		s.logger.Error("checkOwnerActive: failed to get owner=%s: %v", nic, err)
		return fmt.Errorf("%w: checkOwnerActive - failed to get owner: %v", ErrInternal, err)
	}

	if !owner.IsActive {
		s.logger.Warn("checkOwnerActive: owner=%s is inactive", nic)
		return ErrOwnerNotFound
	}

	return nil
}

// applyUpdate применяет изменения запроса к бронированию,
// пересчитывая производные временные поля
func (s *Service) applyUpdate(ctx context.Context, booking *domain.Booking, req *models.UpdateBookingRequest, now time.Time) error {
	if req.ChargingPointNumber != nil {
		station, err := s.stationClient.GetStation(ctx, booking.StationID)
		if err != nil {
			if errors.Is(err, stationClient.ErrStationNotFound) {
				return ErrStationNotFound
			}
			s.logger.Error("applyUpdate: failed to get station=%d: %v", booking.StationID, err)
			return fmt.Errorf("%w: applyUpdate - failed to get station: %v", ErrInternal, err)
		}

		pointCount := station.ChargingPointCount
		if pointCount <= 0 {
			pointCount = domain.DefaultChargingPoints
		}
		if *req.ChargingPointNumber < domain.MinChargingPointNumber || *req.ChargingPointNumber > pointCount {
			return fmt.Errorf("%w: charging point number must be between %d and %d",
				ErrInvalidInput, domain.MinChargingPointNumber, pointCount)
		}
		booking.ChargingPointNumber = *req.ChargingPointNumber
	}

	if req.TimeSlot != nil {
		if *req.TimeSlot < domain.MinTimeSlot || *req.TimeSlot > domain.MaxTimeSlot {
			return fmt.Errorf("%w: time slot must be between %d and %d",
				ErrInvalidInput, domain.MinTimeSlot, domain.MaxTimeSlot)
		}
		booking.TimeSlot = *req.TimeSlot
	}

	if req.BookingDate != nil {
		booking.BookingDate = domain.NormalizeDate(*req.BookingDate)
	}

	// Пересчитываем производные поля: endTime = startTime + duration
	newStart := booking.BookingDate.Add(time.Duration(booking.TimeSlot) * time.Hour)
	if !newStart.Equal(booking.StartTime) {
		if !domain.IsWithinReservationWindow(newStart, now) {
			s.logger.Warn("applyUpdate: new start %s outside reservation window for booking id=%d",
				newStart, booking.ID)
			return ErrOutsideReservationWindow
		}
		booking.StartTime = newStart
		booking.EndTime = newStart.Add(time.Duration(booking.DurationMinutes) * time.Minute)
	}

	return nil
}

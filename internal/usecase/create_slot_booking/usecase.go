package create_slot_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	ownerClient "github.com/m04kA/EVC-BookingService/internal/integrations/ownerservice"
	stationClient "github.com/m04kA/EVC-BookingService/internal/integrations/stationservice"
)

// UseCase use case для бронирования часового слота зарядки
type UseCase struct {
	bookingRepo   BookingRepository
	ownerClient   OwnerServiceClient
	stationClient StationServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ownerClient OwnerServiceClient,
	stationClient StationServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		ownerClient:   ownerClient,
		stationClient: stationClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case бронирования слота
// Использует сериализуемую транзакцию, чтобы два конкурентных запроса
// не могли занять один и тот же слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSlotBooking: owner=%s, station=%d, point=%d, date=%s, slot=%d",
		req.OwnerNIC, req.StationID, req.ChargingPointNumber, req.BookingDate.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSlotBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем станцию
	station, err := uc.stationClient.GetStation(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationClient.ErrStationNotFound) {
			uc.logger.Warn("CreateSlotBooking: station id=%d not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("CreateSlotBooking: failed to get station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	if !station.IsActive {
		uc.logger.Warn("CreateSlotBooking: station id=%d is inactive", req.StationID)
		return nil, ErrStationNotFound
	}

	// 4. Проверяем номер точки зарядки против станции
	if err := validateChargingPoint(req.ChargingPointNumber, station.ChargingPointCount); err != nil {
		uc.logger.Warn("CreateSlotBooking: charging point validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем владельца
	owner, err := uc.ownerClient.GetOwner(ctx, req.OwnerNIC)
	if err != nil {
		if errors.Is(err, ownerClient.ErrOwnerNotFound) {
			uc.logger.Warn("CreateSlotBooking: owner=%s not found", req.OwnerNIC)
			return nil, ErrOwnerNotFound
		}
		uc.logger.Error("CreateSlotBooking: failed to get owner=%s: %v", req.OwnerNIC, err)
		return nil, fmt.Errorf("%w: failed to get owner: %v", ErrInternal, err)
	}

	if !owner.IsActive {
		uc.logger.Warn("CreateSlotBooking: owner=%s is inactive", req.OwnerNIC)
		return nil, ErrOwnerNotFound
	}

	// 6. Проверяем 7-дневный горизонт по времени начала слота
	bookingDate := domain.NormalizeDate(req.BookingDate)
	startTime := bookingDate.Add(time.Duration(req.TimeSlot) * time.Hour)
	if !domain.IsWithinReservationWindow(startTime, now) {
		uc.logger.Warn("CreateSlotBooking: start time %s outside reservation window", startTime)
		return nil, ErrOutsideReservationWindow
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Проверяем занятость слота с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetBySlot(txCtx, req.StationID, req.ChargingPointNumber, bookingDate, req.TimeSlot)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateSlotBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		if existing != nil {
			uc.logger.Warn("CreateSlotBooking: slot already taken by booking id=%d", existing.ID)
			return ErrSlotTaken
		}

		// 7.2. Создаем бронирование
		// Слот гарантированно свободен, поэтому сразу подтверждаем
		booking := &domain.Booking{
			OwnerNIC:            req.OwnerNIC,
			StationID:           req.StationID,
			ChargingPointNumber: req.ChargingPointNumber,
			BookingDate:         bookingDate,
			TimeSlot:            req.TimeSlot,
			StartTime:           startTime,
			EndTime:             startTime.Add(time.Duration(domain.DefaultSlotDurationMinutes) * time.Minute),
			DurationMinutes:     domain.DefaultSlotDurationMinutes,
			Status:              domain.StatusApproved,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Уникальный индекс - страховка от гонки между проверкой и вставкой
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateSlotBooking: slot taken on insert")
				return ErrSlotTaken
			}
			uc.logger.Error("CreateSlotBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSlotBooking: successfully created booking id=%d, reference=%s",
		result.ID, result.BookingReference)

	return &Response{
		ID:                  result.ID,
		BookingReference:    result.BookingReference,
		OwnerNIC:            result.OwnerNIC,
		StationID:           result.StationID,
		ChargingPointNumber: result.ChargingPointNumber,
		BookingDate:         result.BookingDate,
		TimeSlot:            result.TimeSlot,
		StartTime:           result.StartTime,
		EndTime:             result.EndTime,
		DurationMinutes:     result.DurationMinutes,
		Status:              string(result.Status),
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}

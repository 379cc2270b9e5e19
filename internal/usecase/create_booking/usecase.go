package create_booking

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

// UseCase use case для создания бронирования с произвольным временем начала
// Бронирование создается в статусе Pending и ждет подтверждения оператора
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

// Execute выполняет use case создания бронирования
// Эксклюзивность слота проверяется так же, как при бронировании слота:
// час начала определяет занимаемый слот, проверка идет в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: owner=%s, station=%d, point=%d, start=%s",
		req.OwnerNIC, req.StationID, req.ChargingPointNumber, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем 7-дневный горизонт
	startTime := req.StartTime.UTC().Truncate(time.Hour)
	if !domain.IsWithinReservationWindow(startTime, now) {
		uc.logger.Warn("CreateBooking: start time %s outside reservation window", startTime)
		return nil, ErrOutsideReservationWindow
	}

	// 4. Получаем станцию
	station, err := uc.stationClient.GetStation(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationClient.ErrStationNotFound) {
			uc.logger.Warn("CreateBooking: station id=%d not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	if !station.IsActive {
		uc.logger.Warn("CreateBooking: station id=%d is inactive", req.StationID)
		return nil, ErrStationNotFound
	}

	// 5. Проверяем номер точки зарядки против станции
	if err := validateChargingPoint(req.ChargingPointNumber, station.ChargingPointCount); err != nil {
		uc.logger.Warn("CreateBooking: charging point validation failed: %v", err)
		return nil, err
	}

	// 6. Получаем владельца
	owner, err := uc.ownerClient.GetOwner(ctx, req.OwnerNIC)
	if err != nil {
		if errors.Is(err, ownerClient.ErrOwnerNotFound) {
			uc.logger.Warn("CreateBooking: owner=%s not found", req.OwnerNIC)
			return nil, ErrOwnerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get owner=%s: %v", req.OwnerNIC, err)
		return nil, fmt.Errorf("%w: failed to get owner: %v", ErrInternal, err)
	}

	if !owner.IsActive {
		uc.logger.Warn("CreateBooking: owner=%s is inactive", req.OwnerNIC)
		return nil, ErrOwnerNotFound
	}

	// 7. Выводим дату и слот из времени начала
	bookingDate := domain.NormalizeDate(startTime)
	timeSlot := startTime.Hour()

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Проверяем занятость слота с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetBySlot(txCtx, req.StationID, req.ChargingPointNumber, bookingDate, timeSlot)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		if existing != nil {
			uc.logger.Warn("CreateBooking: slot already taken by booking id=%d", existing.ID)
			return ErrSlotTaken
		}

		// 8.2. Создаем бронирование в статусе Pending
		booking := &domain.Booking{
			OwnerNIC:            req.OwnerNIC,
			StationID:           req.StationID,
			ChargingPointNumber: req.ChargingPointNumber,
			BookingDate:         bookingDate,
			TimeSlot:            timeSlot,
			StartTime:           startTime,
			EndTime:             startTime.Add(time.Duration(domain.DefaultSlotDurationMinutes) * time.Minute),
			DurationMinutes:     domain.DefaultSlotDurationMinutes,
			Status:              domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken on insert")
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s",
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

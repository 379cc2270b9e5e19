package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	stationClient "github.com/m04kA/EVC-BookingService/internal/integrations/stationservice"
	"github.com/m04kA/EVC-BookingService/pkg/ptr"
)

// UseCase use case для получения сетки доступности слотов станции
type UseCase struct {
	bookingRepo   BookingRepository
	stationClient StationServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationClient StationServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		stationClient: stationClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступности
// Строит полную сетку N точек x 24 слота и накладывает на нее активные бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: station=%d, date=%s, availableOnly=%t",
		req.StationID, req.Date.Format(domain.DateFormat), req.AvailableOnly)

	// 1. Валидация входных данных
	if req.StationID <= 0 {
		return nil, fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем станцию, чтобы узнать количество точек зарядки
	station, err := uc.stationClient.GetStation(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationClient.ErrStationNotFound) {
			uc.logger.Warn("GetAvailability: station id=%d not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("GetAvailability: failed to get station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	pointCount := station.ChargingPointCount
	if pointCount <= 0 {
		pointCount = domain.DefaultChargingPoints
	}

	// 3. Строим сетку слотов
	grid, err := domain.NewSlotGrid(pointCount, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build slot grid: %v", ErrInternal, err)
	}

	// 4. Получаем активные бронирования станции на дату
	filter := domain.StationBookingsFilter{
		StationID:  req.StationID,
		Date:       ptr.Ptr(grid.Date),
		ActiveOnly: true,
	}

	bookings, err := uc.bookingRepo.GetByStationWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Индексируем занятые ячейки
	occupied := make(map[domain.SlotKey]*domain.Booking, len(bookings))
	for _, b := range bookings {
		key := domain.SlotKey{PointNumber: b.ChargingPointNumber, Hour: b.TimeSlot}
		if grid.Contains(key.PointNumber, key.Hour) {
			occupied[key] = b
		}
	}

	// 6. Собираем ответ по всем ячейкам сетки
	slots := make([]Slot, 0, pointCount*grid.HoursPerDay)
	for _, key := range grid.Keys() {
		booking, taken := occupied[key]

		if req.AvailableOnly && taken {
			continue
		}

		slot := Slot{
			ChargingPointNumber: key.PointNumber,
			TimeSlot:            key.Hour,
			TimeRange:           domain.TimeRange(key.Hour),
			StartTime:           grid.SlotStartTime(key.Hour),
			IsAvailable:         !taken,
		}
		if taken {
			slot.BookingID = ptr.Ptr(booking.ID)
			slot.BookedBy = ptr.Ptr(booking.OwnerNIC)
		}

		slots = append(slots, slot)
	}

	uc.logger.Info("GetAvailability: station=%d, date=%s, %d/%d slots occupied",
		req.StationID, grid.Date.Format(domain.DateFormat), len(occupied), pointCount*grid.HoursPerDay)

	return &Response{
		StationID:          req.StationID,
		Date:               grid.Date,
		ChargingPointCount: pointCount,
		Slots:              slots,
	}, nil
}

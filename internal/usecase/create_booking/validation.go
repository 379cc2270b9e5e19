package create_booking

import (
	"fmt"

	"github.com/m04kA/EVC-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerNIC == "" {
		return fmt.Errorf("%w: ownerNIC is required", ErrInvalidInput)
	}

	if req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	return nil
}

// validateChargingPoint проверяет, что номер точки зарядки попадает
// в диапазон станции
func validateChargingPoint(pointNumber, stationPointCount int) error {
	pointCount := stationPointCount
	if pointCount <= 0 {
		pointCount = domain.DefaultChargingPoints
	}

	if pointNumber < domain.MinChargingPointNumber || pointNumber > pointCount {
		return fmt.Errorf("%w: charging point number must be between %d and %d",
			ErrInvalidChargingPoint, domain.MinChargingPointNumber, pointCount)
	}

	return nil
}

package create_booking

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда владелец не найден или деактивирован
	ErrOwnerNotFound = errors.New("create_booking: owner not found")

	// ErrStationNotFound возвращается, когда станция не найдена или неактивна
	ErrStationNotFound = errors.New("create_booking: station not found")

	// ErrInvalidChargingPoint возвращается, когда номер точки зарядки вне диапазона станции
	ErrInvalidChargingPoint = errors.New("create_booking: invalid charging point number")

	// ErrOutsideReservationWindow возвращается, когда время начала вне 7-дневного горизонта
	ErrOutsideReservationWindow = errors.New("create_booking: start time is outside the reservation window")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

package create_slot_booking

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда владелец не найден или деактивирован
	ErrOwnerNotFound = errors.New("create_slot_booking: owner not found")

	// ErrStationNotFound возвращается, когда станция не найдена или неактивна
	ErrStationNotFound = errors.New("create_slot_booking: station not found")

	// ErrInvalidChargingPoint возвращается, когда номер точки зарядки вне диапазона станции
	ErrInvalidChargingPoint = errors.New("create_slot_booking: invalid charging point number")

	// ErrInvalidTimeSlot возвращается, когда номер слота вне диапазона 0..23
	ErrInvalidTimeSlot = errors.New("create_slot_booking: invalid time slot")

	// ErrOutsideReservationWindow возвращается, когда начало слота вне 7-дневного горизонта
	ErrOutsideReservationWindow = errors.New("create_slot_booking: start time is outside the reservation window")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("create_slot_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_slot_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_slot_booking: internal error")
)

package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrOwnerNotFound возвращается, когда владелец EV не найден или деактивирован
	ErrOwnerNotFound = errors.New("EV owner not found or inactive")

	// ErrStationNotFound возвращается, когда зарядная станция не найдена
	ErrStationNotFound = errors.New("charging station not found")

	// ErrOperatorNotFound возвращается, когда оператор станции не найден
	ErrOperatorNotFound = errors.New("station operator not found")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	// из текущего статуса
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotUpdate возвращается, когда бронирование не может быть изменено
	// из текущего статуса
	ErrCannotUpdate = errors.New("booking cannot be updated")

	// ErrModifyWindowClosed возвращается при попытке владельца изменить или
	// отменить бронирование менее чем за 12 часов до начала
	ErrModifyWindowClosed = errors.New("booking can only be modified at least 12 hours before reservation")

	// ErrOutsideReservationWindow возвращается, когда новое время начала
	// выходит за допустимый 7-дневный горизонт бронирования
	ErrOutsideReservationWindow = errors.New("reservation must be within 7 days from booking date")

	// ErrInvalidStatus возвращается при некорректной строке статуса
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса,
	// в том числе из терминального состояния
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrSlotTaken возвращается, когда целевой слот уже занят
	ErrSlotTaken = errors.New("time slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrQRCheckFailed возвращается, когда приложенный QR токен
	// не подтверждает завершаемое бронирование
	ErrQRCheckFailed = errors.New("QR code does not confirm this booking")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

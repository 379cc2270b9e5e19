package get_availability

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена или неактивна
	ErrStationNotFound = errors.New("get_availability: station not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)

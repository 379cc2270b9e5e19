package stationservice

import "errors"

var (
	// ErrStationNotFound возвращается, когда зарядная станция не найдена
	ErrStationNotFound = errors.New("charging station not found")

	// ErrOperatorNotFound возвращается, когда оператор станции не найден
	ErrOperatorNotFound = errors.New("station operator not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("stationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("stationservice client: invalid response")
)

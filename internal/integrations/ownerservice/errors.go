package ownerservice

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда владелец EV не найден
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("ownerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("ownerservice client: invalid response")
)

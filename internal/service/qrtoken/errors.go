package qrtoken

import "errors"

var (
	// ErrNotApproved возвращается при попытке выпустить токен
	// для бронирования не в статусе Approved
	ErrNotApproved = errors.New("qrtoken: QR code can only be generated for approved bookings")

	// ErrMalformedToken возвращается, когда токен не парсится
	// или подпись не проходит проверку
	ErrMalformedToken = errors.New("qrtoken: malformed or tampered token")

	// ErrTokenExpired возвращается, когда срок действия токена истёк
	ErrTokenExpired = errors.New("qrtoken: token has expired")

	// ErrUnknownVersion возвращается при нераспознанной версии формата токена
	ErrUnknownVersion = errors.New("qrtoken: unknown token format version")

	// ErrBookingNotFound возвращается, когда бронирование из токена не существует
	ErrBookingNotFound = errors.New("qrtoken: booking not found")

	// ErrBookingNotApproved возвращается, когда бронирование из токена
	// не находится в статусе Approved
	ErrBookingNotApproved = errors.New("qrtoken: booking is not approved")

	// ErrBookingMismatch возвращается, когда данные токена расходятся
	// с актуальным бронированием (токен устарел после редактирования)
	ErrBookingMismatch = errors.New("qrtoken: token data does not match booking details")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("qrtoken: internal error")
)

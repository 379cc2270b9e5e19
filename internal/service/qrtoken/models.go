package qrtoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/EVC-BookingService/internal/domain"
)

// TokenVersion текущая версия формата токена
const TokenVersion = "1.0"

// TokenClaims полезная нагрузка QR токена
// Токен самодостаточен: формат и срок действия проверяются без обращения к БД,
// привязка к актуальному бронированию - отдельным шагом валидации
type TokenClaims struct {
	BookingID           int64     `json:"bookingId"`
	BookingReference    string    `json:"bookingReference"`
	OwnerNIC            string    `json:"ownerNic"`
	StationID           int64     `json:"stationId"`
	ChargingPointNumber int       `json:"chargingPointNumber"`
	StartTime           time.Time `json:"startTime"`
	DurationMinutes     int       `json:"durationMinutes"`
	Version             string    `json:"version"`

	jwt.RegisteredClaims
}

// Payload результат успешной валидации токена:
// расшифрованные данные плюс актуальный статус бронирования
type Payload struct {
	BookingID           int64
	BookingReference    string
	OwnerNIC            string
	StationID           int64
	ChargingPointNumber int
	StartTime           time.Time
	DurationMinutes     int
	GeneratedAt         time.Time
	ExpiresAt           time.Time
	Status              domain.BookingStatus // Живой статус бронирования
}

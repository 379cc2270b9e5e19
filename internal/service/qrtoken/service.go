package qrtoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
)

// expiryAfterStart срок действия токена: час после начала резервации
const expiryAfterStart = time.Hour

// Service выпускает и валидирует QR токены бронирований
// Токен - подписанный HMAC-SHA256 JWT: полезная нагрузка читаема,
// но любое изменение полей ломает подпись
type Service struct {
	secret       []byte
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый сервис QR токенов
func NewService(secret string, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		secret:       []byte(secret),
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Generate выпускает QR токен для подтвержденного бронирования
// Токен действует до startTime + 1 час
func (s *Service) Generate(ctx context.Context, booking *domain.Booking) (string, error) {
	if booking == nil || booking.Status != domain.StatusApproved {
		s.logger.Warn("Generate: refusing to issue token for non-approved booking")
		return "", ErrNotApproved
	}

	now := s.timeProvider.Now()

	claims := TokenClaims{
		BookingID:           booking.ID,
		BookingReference:    booking.BookingReference,
		OwnerNIC:            booking.OwnerNIC,
		StationID:           booking.StationID,
		ChargingPointNumber: booking.ChargingPointNumber,
		StartTime:           booking.StartTime,
		DurationMinutes:     booking.DurationMinutes,
		Version:             TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(booking.StartTime.Add(expiryAfterStart)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: Generate - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Generate: issued QR token for booking id=%d, reference=%s, expires=%s",
		booking.ID, booking.BookingReference, claims.ExpiresAt.Format(time.RFC3339))
	return signed, nil
}

// Validate проверяет QR токен и возвращает полезную нагрузку с актуальным статусом
// Последовательность проверок: подпись и формат -> версия -> срок действия ->
// существование бронирования -> статус Approved -> совпадение полей с токеном
func (s *Service) Validate(ctx context.Context, tokenString string) (*Payload, error) {
	claims := &TokenClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Warn("Validate: QR token expired")
			return nil, ErrTokenExpired
		}
		s.logger.Warn("Validate: malformed QR token: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.Version != TokenVersion {
		s.logger.Warn("Validate: unknown token version %q", claims.Version)
		return nil, ErrUnknownVersion
	}

	booking, err := s.bookingRepo.GetByID(ctx, claims.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Validate: booking id=%d from token not found", claims.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Validate: repository error for booking id=%d: %v", claims.BookingID, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %v", ErrInternal, err)
	}

	if booking.Status != domain.StatusApproved {
		s.logger.Warn("Validate: booking id=%d is not approved, status=%s", booking.ID, booking.Status)
		return nil, ErrBookingNotApproved
	}

	// Защита от устаревших токенов: после редактирования бронирования
	// токен с прежними данными становится невалидным
	if booking.BookingReference != claims.BookingReference ||
		booking.OwnerNIC != claims.OwnerNIC ||
		booking.StationID != claims.StationID {
		s.logger.Warn("Validate: token data mismatch for booking id=%d", booking.ID)
		return nil, ErrBookingMismatch
	}

	s.logger.Info("Validate: QR token valid for booking id=%d, reference=%s", booking.ID, booking.BookingReference)

	return &Payload{
		BookingID:           claims.BookingID,
		BookingReference:    claims.BookingReference,
		OwnerNIC:            claims.OwnerNIC,
		StationID:           claims.StationID,
		ChargingPointNumber: claims.ChargingPointNumber,
		StartTime:           claims.StartTime,
		DurationMinutes:     claims.DurationMinutes,
		GeneratedAt:         claims.IssuedAt.Time,
		ExpiresAt:           claims.ExpiresAt.Time,
		Status:              booking.Status,
	}, nil
}

// IsValidFor проверяет, что токен валиден и относится к ожидаемому бронированию
// Любая ошибка валидации превращается в false: метод используется как
// best-effort проверка перед завершением зарядной сессии
func (s *Service) IsValidFor(ctx context.Context, tokenString string, bookingID int64) bool {
	payload, err := s.Validate(ctx, tokenString)
	if err != nil {
		return false
	}
	return payload.BookingID == bookingID
}

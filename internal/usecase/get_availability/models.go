package get_availability

import "time"

// Request модель запроса доступности слотов станции на дату
type Request struct {
	StationID     int64     // ID зарядной станции
	Date          time.Time // Дата (время игнорируется)
	AvailableOnly bool      // Возвращать только свободные слоты
}

// Slot одна ячейка сетки слотов станции
type Slot struct {
	ChargingPointNumber int       // Номер точки зарядки
	TimeSlot            int       // Часовой слот (0..23)
	TimeRange           string    // Диапазон времени, например "09:00 - 10:00"
	StartTime           time.Time // Абсолютное время начала слота
	IsAvailable         bool      // Свободен ли слот
	BookingID           *int64    // ID занимающего бронирования (если занят)
	BookedBy            *string   // NIC владельца занимающего бронирования (если занят)
}

// Response модель ответа с сеткой слотов
type Response struct {
	StationID          int64     // ID станции
	Date               time.Time // Дата сетки
	ChargingPointCount int       // Количество точек зарядки
	Slots              []Slot    // Ячейки сетки в порядке (точка, час)
}

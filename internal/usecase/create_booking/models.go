package create_booking

import "time"

// Request модель запроса на создание бронирования с произвольным временем начала
type Request struct {
	OwnerNIC            string    // NIC владельца электромобиля
	StationID           int64     // ID зарядной станции
	ChargingPointNumber int       // Номер точки зарядки (1..N)
	StartTime           time.Time // Желаемое время начала зарядки
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                  int64     // ID созданного бронирования
	BookingReference    string    // Человекочитаемый номер бронирования
	OwnerNIC            string    // NIC владельца
	StationID           int64     // ID станции
	ChargingPointNumber int       // Номер точки зарядки
	BookingDate         time.Time // Дата бронирования
	TimeSlot            int       // Часовой слот, в который попадает начало
	StartTime           time.Time // Время начала зарядки
	EndTime             time.Time // Время окончания зарядки
	DurationMinutes     int       // Длительность в минутах
	Status              string    // Статус бронирования

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

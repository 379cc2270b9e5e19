package stationservice

// Station модель зарядной станции из справочника станций
type Station struct {
	ID                       int64  `json:"id"`
	Name                     string `json:"name"`
	StationType              string `json:"stationType"` // "AC" или "DC"
	ChargingPointCount       int    `json:"chargingPointCount"`
	AssignedOperatorUsername string `json:"assignedOperatorUsername,omitempty"`
	IsActive                 bool   `json:"isActive"`
}

// ErrorResponse модель ошибки от сервиса станций
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

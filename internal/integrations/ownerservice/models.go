package ownerservice

// Owner модель владельца EV из справочника владельцев
type Owner struct {
	NIC         string `json:"nic"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	IsActive    bool   `json:"isActive"`
}

// ErrorResponse модель ошибки от сервиса владельцев
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

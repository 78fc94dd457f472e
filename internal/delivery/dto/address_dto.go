package dto

type AddressRequest struct {
	Street     string `json:"street" validate:"required,max=255"`
	District   string `json:"district" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=255"`
	Number     string `json:"number" validate:"omitempty,max=20"`
	Complement string `json:"complement" validate:"omitempty,max=255"`
}

type AddressResponse struct {
	Street     string `json:"street"`
	District   string `json:"district"`
	City       string `json:"city"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
}

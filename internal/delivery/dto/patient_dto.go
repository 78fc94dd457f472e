package dto

import "time"

// Request DTOs

type CreatePatientRequest struct {
	Name     string         `json:"name" validate:"required,min=2,max=255"`
	Email    string         `json:"email" validate:"required,email,max=255"`
	Phone    string         `json:"phone" validate:"required,phone"`
	Document string         `json:"document" validate:"required,numeric,min=5,max=14"`
	Address  AddressRequest `json:"address"`
}

// UpdatePatientRequest only changes the fields present in the body
type UpdatePatientRequest struct {
	Name    string          `json:"name" validate:"omitempty,min=2,max=255"`
	Phone   string          `json:"phone" validate:"omitempty,phone"`
	Address *AddressRequest `json:"address" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Document  string          `json:"document"`
	Address   AddressResponse `json:"address"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type PatientSummaryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

type PatientListResponse struct {
	Patients []PatientSummaryResponse `json:"patients"`
	Meta     PageMeta                 `json:"-"`
}

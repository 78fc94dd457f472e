package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=255"`
	Email           string          `json:"email" validate:"required,email,max=255"`
	Phone           string          `json:"phone" validate:"required,phone"`
	Document        string          `json:"document" validate:"required,numeric,min=4,max=6"`
	Specialty       string          `json:"specialty" validate:"required,oneof=orthopedics cardiology gynecology dermatology pediatrics"`
	Address         AddressRequest  `json:"address"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}

// UpdateDoctorRequest only changes the fields present in the body
type UpdateDoctorRequest struct {
	Name            string           `json:"name" validate:"omitempty,min=2,max=255"`
	Phone           string           `json:"phone" validate:"omitempty,phone"`
	Document        string           `json:"document" validate:"omitempty,numeric,min=4,max=6"`
	Address         *AddressRequest  `json:"address" validate:"omitempty"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
}

// Response DTOs

type DoctorResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Document        string          `json:"document"`
	Specialty       string          `json:"specialty"`
	Address         AddressResponse `json:"address"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DoctorSummaryResponse is the list and embedded representation of a doctor
type DoctorSummaryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Document  string `json:"document"`
	Specialty string `json:"specialty"`
}

type DoctorListResponse struct {
	Doctors []DoctorSummaryResponse `json:"doctors"`
	Meta    PageMeta                `json:"-"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

// ScheduleConsultationRequest books a consultation. Without doctor_id a doctor
// of the given specialty is assigned.
type ScheduleConsultationRequest struct {
	PatientID int64  `json:"patient_id" validate:"required,gt=0"`
	DoctorID  int64  `json:"doctor_id" validate:"omitempty,gt=0"`
	Specialty string `json:"specialty" validate:"omitempty,oneof=orthopedics cardiology gynecology dermatology pediatrics"`
	Date      string `json:"date" validate:"required"`
}

type CancelConsultationRequest struct {
	Reason string `json:"reason" validate:"required,oneof=patient_withdrew doctor_cancelled other"`
}

type ConsultationQuery struct {
	DoctorID  int64  `validate:"gte=0"`
	PatientID int64  `validate:"gte=0"`
	Status    string `validate:"omitempty,oneof=scheduled cancelled"`
}

// Response DTOs

type ConsultationResponse struct {
	ID                 int64                   `json:"id"`
	DoctorID           int64                   `json:"doctor_id"`
	PatientID          int64                   `json:"patient_id"`
	Date               time.Time               `json:"date"`
	Status             string                  `json:"status"`
	CancellationReason string                  `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time              `json:"cancelled_at,omitempty"`
	Fee                decimal.Decimal         `json:"fee"`
	Doctor             *DoctorSummaryResponse  `json:"doctor,omitempty"`
	Patient            *PatientSummaryResponse `json:"patient,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Meta          PageMeta               `json:"-"`
}

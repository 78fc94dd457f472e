package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	ConsultationStatusScheduled ConsultationStatus = "scheduled"
	ConsultationStatusCancelled ConsultationStatus = "cancelled"
)

// CancellationReason explains why a consultation was cancelled
type CancellationReason string

const (
	CancellationReasonPatientWithdrew CancellationReason = "patient_withdrew"
	CancellationReasonDoctorCancelled CancellationReason = "doctor_cancelled"
	CancellationReasonOther           CancellationReason = "other"
)

// Consultation is an appointment between one doctor and one patient
type Consultation struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID           int64               `gorm:"not null;index" json:"doctor_id"`
	PatientID          int64               `gorm:"not null;index" json:"patient_id"`
	ScheduledAt        time.Time           `gorm:"not null;index" json:"scheduled_at"`
	Status             ConsultationStatus  `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	CancellationReason *CancellationReason `gorm:"type:varchar(30)" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	Fee                decimal.Decimal     `gorm:"type:decimal(10,2);not null;default:0" json:"fee"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// IsCancelled checks if consultation is cancelled
func (c *Consultation) IsCancelled() bool {
	return c.Status == ConsultationStatusCancelled
}

// Cancel marks the consultation as cancelled for the given reason
func (c *Consultation) Cancel(reason CancellationReason, at time.Time) {
	c.Status = ConsultationStatusCancelled
	c.CancellationReason = &reason
	c.CancelledAt = &at
}

// IsValid checks the reason against the supported list
func (r CancellationReason) IsValid() bool {
	switch r {
	case CancellationReasonPatientWithdrew, CancellationReasonDoctorCancelled, CancellationReasonOther:
		return true
	}
	return false
}

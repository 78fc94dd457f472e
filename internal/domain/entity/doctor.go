package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Specialty is the medical specialty a doctor practices
type Specialty string

const (
	SpecialtyOrthopedics Specialty = "orthopedics"
	SpecialtyCardiology  Specialty = "cardiology"
	SpecialtyGynecology  Specialty = "gynecology"
	SpecialtyDermatology Specialty = "dermatology"
	SpecialtyPediatrics  Specialty = "pediatrics"
)

// Specialties lists every supported specialty
var Specialties = []Specialty{
	SpecialtyOrthopedics,
	SpecialtyCardiology,
	SpecialtyGynecology,
	SpecialtyDermatology,
	SpecialtyPediatrics,
}

// IsValid checks the specialty against the supported list
func (s Specialty) IsValid() bool {
	for _, specialty := range Specialties {
		if s == specialty {
			return true
		}
	}
	return false
}

// Doctor represents a doctor that can be assigned consultations
type Doctor struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Email           string          `gorm:"type:varchar(255);uniqueIndex:uq_doctors_email;not null" json:"email"`
	Phone           string          `gorm:"type:varchar(20);not null" json:"phone"`
	Document        string          `gorm:"type:varchar(6);uniqueIndex:uq_doctors_document;not null" json:"document"`
	Specialty       Specialty       `gorm:"type:varchar(30);not null;index" json:"specialty"`
	Address         Address         `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	Active          bool            `gorm:"not null;default:true;index" json:"active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Consultations []Consultation `gorm:"foreignKey:DoctorID" json:"consultations,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

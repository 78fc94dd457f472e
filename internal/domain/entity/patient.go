package entity

import "time"

// Patient represents a person that books consultations
type Patient struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:uq_patients_email;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	Document  string    `gorm:"type:varchar(14);uniqueIndex:uq_patients_document;not null" json:"document"`
	Address   Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Active    bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Consultations []Consultation `gorm:"foreignKey:PatientID" json:"consultations,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

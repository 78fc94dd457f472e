package repository

import (
	"context"
	"time"

	"go-medical-appointment/internal/domain/entity"

	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(ctx context.Context, db *gorm.DB, consultation *entity.Consultation) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Consultation, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.ConsultationFilter, page entity.PageRequest) ([]entity.Consultation, int64, error)
	// ExistsScheduledForPatient reports a scheduled consultation of the patient in [from, to).
	ExistsScheduledForPatient(ctx context.Context, db *gorm.DB, patientID int64, from, to time.Time) (bool, error)
	// ExistsScheduledForDoctor reports a scheduled consultation of the doctor starting strictly inside (from, to).
	ExistsScheduledForDoctor(ctx context.Context, db *gorm.DB, doctorID int64, from, to time.Time) (bool, error)
	Cancel(ctx context.Context, db *gorm.DB, consultation *entity.Consultation) (int64, error)
}

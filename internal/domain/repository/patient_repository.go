package repository

import (
	"context"

	"go-medical-appointment/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error)
	// FindByIDForUpdate locks the row until the transaction in db ends.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error)
	FindActive(ctx context.Context, db *gorm.DB, page entity.PageRequest) ([]entity.Patient, int64, error)
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	Deactivate(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}

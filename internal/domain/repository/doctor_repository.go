package repository

import (
	"context"
	"time"

	"go-medical-appointment/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error)
	// FindByIDForUpdate locks the row until the transaction in db ends.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error)
	FindActive(ctx context.Context, db *gorm.DB, page entity.PageRequest) ([]entity.Doctor, int64, error)
	// FindAvailableBySpecialty picks and locks a random active doctor of the specialty
	// with no scheduled consultation starting strictly inside (from, to). Doctors
	// locked by other transactions are skipped.
	FindAvailableBySpecialty(ctx context.Context, db *gorm.DB, specialty entity.Specialty, from, to time.Time) (*entity.Doctor, error)
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	Deactivate(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}

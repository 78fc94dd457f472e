package repository

import (
	"context"
	"errors"
	"time"

	"go-medical-appointment/internal/domain/entity"
	domainRepo "go-medical-appointment/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

var doctorSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"specialty":  "specialty",
	"created_at": "created_at",
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(doctor).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Clauses(lockForUpdate).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindActive(ctx context.Context, db *gorm.DB, page entity.PageRequest) ([]entity.Doctor, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(&entity.Doctor{}).Where("active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []entity.Doctor
	err := paginate(db.WithContext(ctx).Where("active = ?", true), page, doctorSortColumns, "name").
		Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *doctorRepository) FindAvailableBySpecialty(ctx context.Context, db *gorm.DB, specialty entity.Specialty, from, to time.Time) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).
		Where("active = ? AND specialty = ?", true, specialty).
		Where(`NOT EXISTS (
			SELECT 1 FROM consultations c
			WHERE c.doctor_id = doctors.id
			AND c.status = ?
			AND c.scheduled_at > ?
			AND c.scheduled_at < ?
		)`, entity.ConsultationStatusScheduled, from.UTC(), to.UTC()).
		Order("RANDOM()").
		Clauses(lockForUpdateSkipLocked).
		Take(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(doctor).Error
}

// Deactivate flips an active doctor to inactive.
// Returns affected rows: 0 means the doctor is missing or already inactive.
func (r *doctorRepository) Deactivate(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Doctor{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	return result.RowsAffected, result.Error
}

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

type consultationRepository struct{}

func NewConsultationRepository() domainRepo.ConsultationRepository {
	return &consultationRepository{}
}

var consultationSortColumns = map[string]string{
	"date":       "scheduled_at",
	"created_at": "created_at",
}

func (r *consultationRepository) Create(ctx context.Context, db *gorm.DB, consultation *entity.Consultation) error {
	consultation.ScheduledAt = consultation.ScheduledAt.UTC()
	return db.WithContext(ctx).Omit(clause.Associations).Create(consultation).Error
}

func (r *consultationRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.WithContext(ctx).Preload("Doctor").Preload("Patient").
		Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.ConsultationFilter, page entity.PageRequest) ([]entity.Consultation, int64, error) {
	query := db.WithContext(ctx).Model(&entity.Consultation{})
	if filter.DoctorID != 0 {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var consultations []entity.Consultation
	err := paginate(query.Preload("Doctor").Preload("Patient"), page, consultationSortColumns, "scheduled_at").
		Find(&consultations).Error
	if err != nil {
		return nil, 0, err
	}
	return consultations, total, nil
}

func (r *consultationRepository) ExistsScheduledForPatient(ctx context.Context, db *gorm.DB, patientID int64, from, to time.Time) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Consultation{}).
		Where("patient_id = ? AND status = ?", patientID, entity.ConsultationStatusScheduled).
		Where("scheduled_at >= ? AND scheduled_at < ?", from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *consultationRepository) ExistsScheduledForDoctor(ctx context.Context, db *gorm.DB, doctorID int64, from, to time.Time) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Consultation{}).
		Where("doctor_id = ? AND status = ?", doctorID, entity.ConsultationStatusScheduled).
		Where("scheduled_at > ? AND scheduled_at < ?", from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Cancel persists the cancellation ONLY if the consultation is still scheduled.
// Returns affected rows: 1 = success, 0 = already cancelled (prevents double-cancel race).
func (r *consultationRepository) Cancel(ctx context.Context, db *gorm.DB, consultation *entity.Consultation) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Consultation{}).
		Where("id = ? AND status = ?", consultation.ID, entity.ConsultationStatusScheduled).
		Updates(map[string]interface{}{
			"status":              entity.ConsultationStatusCancelled,
			"cancellation_reason": consultation.CancellationReason,
			"cancelled_at":        consultation.CancelledAt,
		})
	return result.RowsAffected, result.Error
}

package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-medical-appointment/internal/converter"
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/internal/domain/repository"
	"go-medical-appointment/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrConsultationNotFound         = errors.New("consultation not found")
	ErrConsultationAlreadyCancelled = errors.New("consultation is already cancelled")
	ErrSpecialtyRequired            = errors.New("specialty is required when no doctor is chosen")
	ErrSpecialtyMismatch            = errors.New("doctor does not practice the requested specialty")
	ErrNoDoctorAvailable            = errors.New("no doctor available for the requested specialty and date")
	ErrInvalidConsultationDate      = errors.New("invalid date, use RFC3339 or YYYY-MM-DDTHH:MM")
	ErrInvalidCancellationReason    = errors.New("invalid cancellation reason")
)

type ConsultationUsecase interface {
	ScheduleConsultation(ctx context.Context, req *dto.ScheduleConsultationRequest) (*dto.ConsultationResponse, error)
	CancelConsultation(ctx context.Context, id int64, req *dto.CancelConsultationRequest) error
	GetConsultation(ctx context.Context, id int64) (*dto.ConsultationResponse, error)
	ListConsultations(ctx context.Context, filter dto.ConsultationQuery, query dto.PageQuery) (*dto.ConsultationListResponse, error)
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	doctorRepo       repository.DoctorRepository
	patientRepo      repository.PatientRepository
	policy           *service.SchedulingPolicy
	auditService     service.AuditService
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	policy *service.SchedulingPolicy,
	auditService service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		consultationRepo: consultationRepo,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		policy:           policy,
		auditService:     auditService,
	}
}

// ScheduleConsultation books a consultation.
//
// Flow:
// 1. Patient must exist (row locked)
// 2. Chosen doctor must exist (row locked) and match the specialty, or a specialty is required
// 3. Scheduling rules run in order, first failure wins
// 4. Without a chosen doctor, a random available unlocked doctor of the specialty is assigned and locked
// 5. Insert with the doctor's current fee and write the audit row
func (u *consultationUsecase) ScheduleConsultation(ctx context.Context, req *dto.ScheduleConsultationRequest) (*dto.ConsultationResponse, error) {
	scheduledAt, err := u.policy.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidConsultationDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Step 1: patient, locked so one booking per patient runs at a time
	patient, err := u.patientRepo.FindByIDForUpdate(ctx, tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// Step 2: doctor or specialty
	specialty := entity.Specialty(req.Specialty)
	var doctor *entity.Doctor
	if req.DoctorID != 0 {
		doctor, err = u.doctorRepo.FindByIDForUpdate(ctx, tx, req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		if specialty != "" && doctor.Specialty != specialty {
			return nil, ErrSpecialtyMismatch
		}
	} else if !specialty.IsValid() {
		return nil, ErrSpecialtyRequired
	}

	// Step 3: scheduling rules
	check := &service.ConsultationCheck{
		Patient:     patient,
		Doctor:      doctor,
		ScheduledAt: scheduledAt,
	}
	if err := u.policy.ValidateSchedule(ctx, tx, check); err != nil {
		return nil, err
	}

	// Step 4: assign a doctor
	if doctor == nil {
		from, to := u.policy.SlotWindow(scheduledAt)
		doctor, err = u.doctorRepo.FindAvailableBySpecialty(ctx, tx, specialty, from, to)
		if err != nil {
			u.log.Warnf("Failed to find available doctor: %+v", err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrNoDoctorAvailable
		}
	}

	// Step 5: insert
	consultation := &entity.Consultation{
		DoctorID:    doctor.ID,
		PatientID:   patient.ID,
		ScheduledAt: scheduledAt,
		Status:      entity.ConsultationStatusScheduled,
		Fee:         doctor.ConsultationFee,
	}
	if err := u.consultationRepo.Create(ctx, tx, consultation); err != nil {
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}
	consultation.Doctor = *doctor
	consultation.Patient = *patient

	response := converter.ConsultationToResponse(consultation)
	if err := u.auditService.LogCreate(ctx, tx, currentUserID(ctx), entity.AuditActionConsultationCreate, "consultation", strconv.FormatInt(consultation.ID, 10), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Consultation scheduled: id=%d, doctor=%d, patient=%d, at=%s", consultation.ID, doctor.ID, patient.ID, scheduledAt.Format("2006-01-02T15:04Z07:00"))
	return response, nil
}

// CancelConsultation cancels a scheduled consultation with a reason.
func (u *consultationUsecase) CancelConsultation(ctx context.Context, id int64, req *dto.CancelConsultationRequest) error {
	reason := entity.CancellationReason(req.Reason)
	if !reason.IsValid() {
		return ErrInvalidCancellationReason
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	consultation, err := u.consultationRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", id, err)
		return err
	}
	if consultation == nil {
		return ErrConsultationNotFound
	}
	if consultation.IsCancelled() {
		return ErrConsultationAlreadyCancelled
	}
	if err := u.policy.ValidateCancellation(consultation); err != nil {
		return err
	}

	oldValue := converter.ConsultationToResponse(consultation)
	consultation.Cancel(reason, u.policy.Now().UTC())

	// Atomic: only cancels if still scheduled
	affected, err := u.consultationRepo.Cancel(ctx, tx, consultation)
	if err != nil {
		u.log.Warnf("Failed to cancel consultation %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrConsultationAlreadyCancelled
	}

	if err := u.auditService.LogUpdate(ctx, tx, currentUserID(ctx), entity.AuditActionConsultationCancel, "consultation", strconv.FormatInt(id, 10), oldValue, converter.ConsultationToResponse(consultation)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Consultation cancelled: id=%d, reason=%s", id, reason)
	return nil
}

func (u *consultationUsecase) GetConsultation(ctx context.Context, id int64) (*dto.ConsultationResponse, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", id, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}

	return converter.ConsultationToResponse(consultation), nil
}

func (u *consultationUsecase) ListConsultations(ctx context.Context, filter dto.ConsultationQuery, query dto.PageQuery) (*dto.ConsultationListResponse, error) {
	page := toPageRequest(query)

	consultations, total, err := u.consultationRepo.FindAll(ctx, u.db, entity.ConsultationFilter{
		DoctorID:  filter.DoctorID,
		PatientID: filter.PatientID,
		Status:    entity.ConsultationStatus(filter.Status),
	}, page)
	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, err
	}

	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Meta:          toPageMeta(page, total),
	}, nil
}

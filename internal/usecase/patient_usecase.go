package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go-medical-appointment/internal/converter"
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/internal/domain/repository"
	"go-medical-appointment/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound       = errors.New("patient not found")
	ErrPatientEmailExists    = errors.New("patient email already exists")
	ErrPatientDocumentExists = errors.New("patient document already exists")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, query dto.PageQuery) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id int64) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
	sanitizer    Sanitizer
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	sanitizer Sanitizer,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
		sanitizer:    sanitizer,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient := &entity.Patient{
		Name:     u.sanitizer.Sanitize(req.Name),
		Email:    strings.ToLower(req.Email),
		Phone:    req.Phone,
		Document: req.Document,
		Address:  converter.AddressRequestToEntity(req.Address, u.sanitizer.Sanitize),
		Active:   true,
	}
	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrPatientEmailExists
		}
		if isDuplicateKeyError(err, "document") {
			return nil, ErrPatientDocumentExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	// Audit log - create patient
	if err := u.auditService.LogCreate(ctx, tx, currentUserID(ctx), entity.AuditActionPatientCreate, "patient", strconv.FormatInt(patient.ID, 10), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%d", patient.ID)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, query dto.PageQuery) (*dto.PatientListResponse, error) {
	page := toPageRequest(query)

	patients, total, err := u.patientRepo.FindActive(ctx, u.db, page)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToSummaries(patients),
		Meta:     toPageMeta(page, total),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	oldValue := converter.PatientToResponse(patient)

	if req.Name != "" {
		patient.Name = u.sanitizer.Sanitize(req.Name)
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Address != nil {
		patient.Address = converter.AddressRequestToEntity(*req.Address, u.sanitizer.Sanitize)
	}

	if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	newValue := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, tx, currentUserID(ctx), entity.AuditActionPatientUpdate, "patient", strconv.FormatInt(id, 10), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// DeletePatient deactivates the patient. Deleting an inactive patient is a no-op.
func (u *patientUsecase) DeletePatient(ctx context.Context, id int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	affected, err := u.patientRepo.Deactivate(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate patient: %+v", err)
		return err
	}
	if affected == 0 {
		return nil
	}

	if err := u.auditService.LogDelete(ctx, tx, currentUserID(ctx), entity.AuditActionPatientDeactivate, "patient", strconv.FormatInt(id, 10), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Patient deactivated: id=%d", id)
	return nil
}

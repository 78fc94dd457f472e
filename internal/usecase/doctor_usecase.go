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
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrDoctorEmailExists    = errors.New("doctor email already exists")
	ErrDoctorDocumentExists = errors.New("doctor document already exists")
	ErrInvalidFee           = errors.New("consultation fee must not be negative")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, query dto.PageQuery) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, id int64) error
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	sanitizer    Sanitizer
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	sanitizer Sanitizer,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		sanitizer:    sanitizer,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.ConsultationFee.IsNegative() {
		return nil, ErrInvalidFee
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor := &entity.Doctor{
		Name:            u.sanitizer.Sanitize(req.Name),
		Email:           strings.ToLower(req.Email),
		Phone:           req.Phone,
		Document:        req.Document,
		Specialty:       entity.Specialty(req.Specialty),
		Address:         converter.AddressRequestToEntity(req.Address, u.sanitizer.Sanitize),
		ConsultationFee: req.ConsultationFee.Round(2),
		Active:          true,
	}
	if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		if isDuplicateKeyError(err, "document") {
			return nil, ErrDoctorDocumentExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	// Audit log - create doctor
	if err := u.auditService.LogCreate(ctx, tx, currentUserID(ctx), entity.AuditActionDoctorCreate, "doctor", strconv.FormatInt(doctor.ID, 10), converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		// Don't fail the transaction for audit log errors
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor created: id=%d, specialty=%s", doctor.ID, doctor.Specialty)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, query dto.PageQuery) (*dto.DoctorListResponse, error) {
	page := toPageRequest(query)

	doctors, total, err := u.doctorRepo.FindActive(ctx, u.db, page)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToSummaries(doctors),
		Meta:    toPageMeta(page, total),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.ConsultationFee != nil && req.ConsultationFee.IsNegative() {
		return nil, ErrInvalidFee
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Capture old value for audit
	oldValue := converter.DoctorToResponse(doctor)

	if req.Name != "" {
		doctor.Name = u.sanitizer.Sanitize(req.Name)
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.Document != "" {
		doctor.Document = req.Document
	}
	if req.Address != nil {
		doctor.Address = converter.AddressRequestToEntity(*req.Address, u.sanitizer.Sanitize)
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = req.ConsultationFee.Round(2)
	}

	if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
		if isDuplicateKeyError(err, "document") {
			return nil, ErrDoctorDocumentExists
		}
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	// Audit log - update doctor
	newValue := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogUpdate(ctx, tx, currentUserID(ctx), entity.AuditActionDoctorUpdate, "doctor", strconv.FormatInt(id, 10), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// DeleteDoctor deactivates the doctor. Deleting an inactive doctor is a no-op.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	affected, err := u.doctorRepo.Deactivate(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate doctor: %+v", err)
		return err
	}
	if affected == 0 {
		return nil
	}

	// Audit log - deactivate doctor
	if err := u.auditService.LogDelete(ctx, tx, currentUserID(ctx), entity.AuditActionDoctorDeactivate, "doctor", strconv.FormatInt(id, 10), converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Doctor deactivated: id=%d", id)
	return nil
}

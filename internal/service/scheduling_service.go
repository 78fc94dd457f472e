package service

import (
	"context"
	"errors"
	"time"

	"go-medical-appointment/config"
	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/internal/domain/repository"

	"gorm.io/gorm"
)

var (
	ErrOutsideClinicHours   = errors.New("consultation must be scheduled Monday to Saturday within clinic hours")
	ErrInsufficientAdvance  = errors.New("consultation must be scheduled further in advance")
	ErrInactivePatient      = errors.New("consultation cannot be scheduled for an inactive patient")
	ErrInactiveDoctor       = errors.New("consultation cannot be scheduled with an inactive doctor")
	ErrPatientAlreadyBooked = errors.New("patient already has a consultation scheduled on this day")
	ErrDoctorUnavailable    = errors.New("doctor already has a consultation scheduled at this time")
	ErrCancellationTooLate  = errors.New("consultation can no longer be cancelled")
	ErrInvalidDate          = errors.New("invalid consultation date")
)

// localLayouts are accepted for dates without an offset, read in the clinic time zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ConsultationCheck is the candidate consultation the rules run against.
// Doctor is nil while the doctor is still to be assigned.
type ConsultationCheck struct {
	Patient     *entity.Patient
	Doctor      *entity.Doctor
	ScheduledAt time.Time
}

// SchedulingRule validates one constraint of a new consultation.
type SchedulingRule interface {
	Check(ctx context.Context, db *gorm.DB, c *ConsultationCheck) error
}

type SchedulingPolicy struct {
	cfg   config.ClinicConfig
	now   func() time.Time
	rules []SchedulingRule
}

// NewSchedulingPolicy builds the rule chain in evaluation order. A nil clock defaults to time.Now.
func NewSchedulingPolicy(cfg config.ClinicConfig, consultationRepo repository.ConsultationRepository, now func() time.Time) *SchedulingPolicy {
	if now == nil {
		now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	p := &SchedulingPolicy{cfg: cfg, now: now}
	p.rules = []SchedulingRule{
		clinicHoursRule{cfg: cfg},
		advanceNoticeRule{minAdvance: cfg.MinAdvance, now: now},
		activePatientRule{},
		activeDoctorRule{},
		patientDailyLimitRule{loc: cfg.Location, consultationRepo: consultationRepo},
		doctorAvailabilityRule{policy: p, consultationRepo: consultationRepo},
	}
	return p
}

// ValidateSchedule runs every rule in order and returns the first failure.
func (p *SchedulingPolicy) ValidateSchedule(ctx context.Context, db *gorm.DB, c *ConsultationCheck) error {
	for _, rule := range p.rules {
		if err := rule.Check(ctx, db, c); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCancellation rejects cancellations closer to the consultation than the notice period.
func (p *SchedulingPolicy) ValidateCancellation(consultation *entity.Consultation) error {
	if p.now().Add(p.cfg.MinCancelNotice).After(consultation.ScheduledAt) {
		return ErrCancellationTooLate
	}
	return nil
}

func (p *SchedulingPolicy) Now() time.Time {
	return p.now()
}

func (p *SchedulingPolicy) Location() *time.Location {
	return p.cfg.Location
}

// SlotWindow returns the open interval in which another consultation of the
// same doctor would overlap a consultation starting at at.
func (p *SchedulingPolicy) SlotWindow(at time.Time) (time.Time, time.Time) {
	return at.Add(-p.cfg.SlotDuration), at.Add(p.cfg.SlotDuration)
}

// ParseDate accepts RFC3339 or a local date-time in the clinic time zone and returns UTC.
func (p *SchedulingPolicy) ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, p.cfg.Location); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

type clinicHoursRule struct {
	cfg config.ClinicConfig
}

func (r clinicHoursRule) Check(_ context.Context, _ *gorm.DB, c *ConsultationCheck) error {
	local := c.ScheduledAt.In(r.cfg.Location)
	if local.Weekday() == time.Sunday {
		return ErrOutsideClinicHours
	}

	y, m, d := local.Date()
	opening := time.Date(y, m, d, r.cfg.OpenHour, 0, 0, 0, r.cfg.Location)
	closing := time.Date(y, m, d, r.cfg.CloseHour, 0, 0, 0, r.cfg.Location)
	if local.Before(opening) || local.Add(r.cfg.SlotDuration).After(closing) {
		return ErrOutsideClinicHours
	}
	return nil
}

type advanceNoticeRule struct {
	minAdvance time.Duration
	now        func() time.Time
}

func (r advanceNoticeRule) Check(_ context.Context, _ *gorm.DB, c *ConsultationCheck) error {
	if c.ScheduledAt.Before(r.now().Add(r.minAdvance)) {
		return ErrInsufficientAdvance
	}
	return nil
}

type activePatientRule struct{}

func (activePatientRule) Check(_ context.Context, _ *gorm.DB, c *ConsultationCheck) error {
	if !c.Patient.Active {
		return ErrInactivePatient
	}
	return nil
}

type activeDoctorRule struct{}

func (activeDoctorRule) Check(_ context.Context, _ *gorm.DB, c *ConsultationCheck) error {
	if c.Doctor != nil && !c.Doctor.Active {
		return ErrInactiveDoctor
	}
	return nil
}

// patientDailyLimitRule allows one scheduled consultation per patient per clinic day.
type patientDailyLimitRule struct {
	loc              *time.Location
	consultationRepo repository.ConsultationRepository
}

func (r patientDailyLimitRule) Check(ctx context.Context, db *gorm.DB, c *ConsultationCheck) error {
	y, m, d := c.ScheduledAt.In(r.loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, r.loc)
	end := start.AddDate(0, 0, 1)

	exists, err := r.consultationRepo.ExistsScheduledForPatient(ctx, db, c.Patient.ID, start, end)
	if err != nil {
		return err
	}
	if exists {
		return ErrPatientAlreadyBooked
	}
	return nil
}

type doctorAvailabilityRule struct {
	policy           *SchedulingPolicy
	consultationRepo repository.ConsultationRepository
}

func (r doctorAvailabilityRule) Check(ctx context.Context, db *gorm.DB, c *ConsultationCheck) error {
	if c.Doctor == nil {
		return nil
	}

	from, to := r.policy.SlotWindow(c.ScheduledAt)
	exists, err := r.consultationRepo.ExistsScheduledForDoctor(ctx, db, c.Doctor.ID, from, to)
	if err != nil {
		return err
	}
	if exists {
		return ErrDoctorUnavailable
	}
	return nil
}

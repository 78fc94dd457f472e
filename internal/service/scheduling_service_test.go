package service

import (
	"context"
	"testing"
	"time"

	"go-medical-appointment/config"
	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/internal/repository"
	"go-medical-appointment/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func bogota(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	return loc
}

func newTestPolicy(t *testing.T, now time.Time) *SchedulingPolicy {
	t.Helper()
	cfg := config.ClinicConfig{
		Location:        bogota(t),
		OpenHour:        7,
		CloseHour:       19,
		SlotDuration:    time.Hour,
		MinAdvance:      30 * time.Minute,
		MinCancelNotice: 24 * time.Hour,
	}
	return NewSchedulingPolicy(cfg, repository.NewConsultationRepository(), func() time.Time { return now })
}

func seedConsultation(t *testing.T, db *gorm.DB, doctorID, patientID int64, at time.Time, status entity.ConsultationStatus) {
	t.Helper()
	require.NoError(t, repository.NewConsultationRepository().Create(context.Background(), db, &entity.Consultation{
		DoctorID:    doctorID,
		PatientID:   patientID,
		ScheduledAt: at,
		Status:      status,
	}))
}

func TestSchedulingPolicy_ClinicHoursAndAdvance(t *testing.T) {
	loc := bogota(t)
	// Monday 2030-03-04 08:00 in the clinic
	policy := newTestPolicy(t, time.Date(2030, 3, 4, 8, 0, 0, 0, loc))
	db := testutil.NewTestDB(t)
	patient := testutil.SeedPatient(t, db, "Nora")
	doctor := testutil.SeedDoctor(t, db, "Oscar", entity.SpecialtyCardiology)

	tests := []struct {
		name string
		at   time.Time
		want error
	}{
		{"sunday", time.Date(2030, 3, 10, 10, 0, 0, 0, loc), ErrOutsideClinicHours},
		{"before opening", time.Date(2030, 3, 5, 6, 59, 0, 0, loc), ErrOutsideClinicHours},
		{"at opening", time.Date(2030, 3, 5, 7, 0, 0, 0, loc), nil},
		{"last slot on saturday", time.Date(2030, 3, 9, 18, 0, 0, 0, loc), nil},
		{"slot ends after closing", time.Date(2030, 3, 9, 18, 1, 0, 0, loc), ErrOutsideClinicHours},
		{"too soon", time.Date(2030, 3, 4, 8, 20, 0, 0, loc), ErrInsufficientAdvance},
		{"exactly minimum advance", time.Date(2030, 3, 4, 8, 30, 0, 0, loc), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.ValidateSchedule(context.Background(), db, &ConsultationCheck{
				Patient:     patient,
				Doctor:      doctor,
				ScheduledAt: tt.at.UTC(),
			})
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestSchedulingPolicy_ActiveFlags(t *testing.T) {
	loc := bogota(t)
	policy := newTestPolicy(t, time.Date(2030, 3, 4, 8, 0, 0, 0, loc))
	db := testutil.NewTestDB(t)
	at := time.Date(2030, 3, 5, 10, 0, 0, 0, loc).UTC()

	patient := testutil.SeedPatient(t, db, "Pablo")
	doctor := testutil.SeedDoctor(t, db, "Quintero", entity.SpecialtyOrthopedics)

	inactivePatient := *patient
	inactivePatient.Active = false
	err := policy.ValidateSchedule(context.Background(), db, &ConsultationCheck{Patient: &inactivePatient, Doctor: doctor, ScheduledAt: at})
	assert.ErrorIs(t, err, ErrInactivePatient)

	inactiveDoctor := *doctor
	inactiveDoctor.Active = false
	err = policy.ValidateSchedule(context.Background(), db, &ConsultationCheck{Patient: patient, Doctor: &inactiveDoctor, ScheduledAt: at})
	assert.ErrorIs(t, err, ErrInactiveDoctor)

	// no doctor yet: doctor rules are skipped
	err = policy.ValidateSchedule(context.Background(), db, &ConsultationCheck{Patient: patient, ScheduledAt: at})
	assert.NoError(t, err)
}

func TestSchedulingPolicy_PatientDailyLimit(t *testing.T) {
	loc := bogota(t)
	policy := newTestPolicy(t, time.Date(2030, 3, 4, 8, 0, 0, 0, loc))
	db := testutil.NewTestDB(t)
	patient := testutil.SeedPatient(t, db, "Rosa")
	doctorA := testutil.SeedDoctor(t, db, "Sergio", entity.SpecialtyDermatology)
	doctorB := testutil.SeedDoctor(t, db, "Tomas", entity.SpecialtyDermatology)

	seedConsultation(t, db, doctorA.ID, patient.ID, time.Date(2030, 3, 5, 7, 0, 0, 0, loc), entity.ConsultationStatusScheduled)

	err := policy.ValidateSchedule(context.Background(), db, &ConsultationCheck{
		Patient: patient, Doctor: doctorB, ScheduledAt: time.Date(2030, 3, 5, 18, 0, 0, 0, loc).UTC(),
	})
	assert.ErrorIs(t, err, ErrPatientAlreadyBooked)

	err = policy.ValidateSchedule(context.Background(), db, &ConsultationCheck{
		Patient: patient, Doctor: doctorB, ScheduledAt: time.Date(2030, 3, 6, 7, 0, 0, 0, loc).UTC(),
	})
	assert.NoError(t, err)

	seedConsultation(t, db, doctorA.ID, patient.ID, time.Date(2030, 3, 7, 9, 0, 0, 0, loc), entity.ConsultationStatusCancelled)
	err = policy.ValidateSchedule(context.Background(), db, &ConsultationCheck{
		Patient: patient, Doctor: doctorB, ScheduledAt: time.Date(2030, 3, 7, 15, 0, 0, 0, loc).UTC(),
	})
	assert.NoError(t, err, "cancelled consultations do not count")
}

func TestSchedulingPolicy_DoctorAvailability(t *testing.T) {
	loc := bogota(t)
	policy := newTestPolicy(t, time.Date(2030, 3, 4, 8, 0, 0, 0, loc))
	db := testutil.NewTestDB(t)
	doctor := testutil.SeedDoctor(t, db, "Ursula", entity.SpecialtyPediatrics)
	first := testutil.SeedPatient(t, db, "Victor")
	second := testutil.SeedPatient(t, db, "Wendy")

	seedConsultation(t, db, doctor.ID, first.ID, time.Date(2030, 3, 5, 10, 0, 0, 0, loc), entity.ConsultationStatusScheduled)

	err := policy.ValidateSchedule(context.Background(), db, &ConsultationCheck{
		Patient: second, Doctor: doctor, ScheduledAt: time.Date(2030, 3, 5, 10, 30, 0, 0, loc).UTC(),
	})
	assert.ErrorIs(t, err, ErrDoctorUnavailable)

	err = policy.ValidateSchedule(context.Background(), db, &ConsultationCheck{
		Patient: second, Doctor: doctor, ScheduledAt: time.Date(2030, 3, 5, 11, 0, 0, 0, loc).UTC(),
	})
	assert.NoError(t, err)
}

func TestSchedulingPolicy_ValidateCancellation(t *testing.T) {
	now := time.Date(2030, 3, 4, 8, 0, 0, 0, time.UTC)
	policy := newTestPolicy(t, now)

	assert.NoError(t, policy.ValidateCancellation(&entity.Consultation{ScheduledAt: now.Add(24 * time.Hour)}))
	assert.ErrorIs(t, policy.ValidateCancellation(&entity.Consultation{ScheduledAt: now.Add(23 * time.Hour)}), ErrCancellationTooLate)
}

func TestSchedulingPolicy_ParseDate(t *testing.T) {
	policy := newTestPolicy(t, time.Now())

	got, err := policy.ParseDate("2030-03-05T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 3, 5, 10, 0, 0, 0, time.UTC), got)

	got, err = policy.ParseDate("2030-03-05T10:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 3, 5, 15, 0, 0, 0, time.UTC), got)

	got, err = policy.ParseDate("2030-03-05T10:00:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 3, 5, 15, 0, 30, 0, time.UTC), got)

	_, err = policy.ParseDate("05/03/2030 10:00")
	assert.ErrorIs(t, err, ErrInvalidDate)

	from, to := policy.SlotWindow(got)
	assert.Equal(t, got.Add(-time.Hour), from)
	assert.Equal(t, got.Add(time.Hour), to)
}

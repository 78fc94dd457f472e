package usecase

import (
	"context"
	"testing"
	"time"

	"go-medical-appointment/config"
	"go-medical-appointment/internal/delivery/http/middleware"
	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/internal/repository"
	"go-medical-appointment/internal/service"
	"go-medical-appointment/internal/testutil"
	"go-medical-appointment/pkg/jwt"
	"go-medical-appointment/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var bogota = mustLocation("America/Bogota")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// clinicNow is Monday 2030-03-04 08:00 in Bogota.
var clinicNow = time.Date(2030, 3, 4, 8, 0, 0, 0, bogota)

type fixture struct {
	db           *gorm.DB
	redis        *miniredis.Miniredis
	jwt          *jwt.JWTService
	tokenStore   service.TokenStore
	auditService service.AuditService
	policy       *service.SchedulingPolicy
	validator    *validator.CustomValidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := testutil.NewLogger()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	clinic := config.ClinicConfig{
		Location:        bogota,
		OpenHour:        7,
		CloseHour:       19,
		SlotDuration:    time.Hour,
		MinAdvance:      30 * time.Minute,
		MinCancelNotice: 24 * time.Hour,
	}

	return &fixture{
		db:    db,
		redis: mr,
		jwt: jwt.NewJWTService(config.JWTConfig{
			Secret:        "usecase-secret",
			Issuer:        "voll med",
			AccessExpiry:  2 * time.Hour,
			RefreshExpiry: 7 * 24 * time.Hour,
		}),
		tokenStore:   service.NewRedisTokenStore(client, log),
		auditService: service.NewAuditService(log, repository.NewAuditLogRepository()),
		policy:       service.NewSchedulingPolicy(clinic, repository.NewConsultationRepository(), func() time.Time { return clinicNow }),
		validator:    validator.NewValidator(),
	}
}

func (f *fixture) authUsecase() AuthUsecase {
	return NewAuthUsecase(f.db, testutil.NewLogger(), repository.NewUserRepository(), repository.NewRoleRepository(), f.auditService, f.jwt, f.tokenStore)
}

func (f *fixture) doctorUsecase() DoctorUsecase {
	return NewDoctorUsecase(f.db, testutil.NewLogger(), repository.NewDoctorRepository(), f.auditService, f.validator)
}

func (f *fixture) patientUsecase() PatientUsecase {
	return NewPatientUsecase(f.db, testutil.NewLogger(), repository.NewPatientRepository(), f.auditService, f.validator)
}

func (f *fixture) consultationUsecase() ConsultationUsecase {
	return NewConsultationUsecase(
		f.db,
		testutil.NewLogger(),
		repository.NewConsultationRepository(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		f.policy,
		f.auditService,
	)
}

func (f *fixture) auditActions(t *testing.T) []string {
	t.Helper()
	var actions []string
	if err := f.db.Model(&entity.AuditLog{}).Order("id ASC").Pluck("action", &actions).Error; err != nil {
		t.Fatalf("failed to read audit logs: %v", err)
	}
	return actions
}

// operatorContext mimics a request authenticated as the given user.
func operatorContext(userID uuid.UUID, roleID int, tokenID string) context.Context {
	return middleware.WithUser(context.Background(), userID, "operator@voll.med", roleID, tokenID)
}

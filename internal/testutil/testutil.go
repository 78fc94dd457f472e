// Package testutil provides an in-memory database and fixtures for package tests.
package testutil

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"go-medical-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// NewTestDB opens an isolated in-memory SQLite database migrated from the entities.
// A single connection is kept so that every statement sees the same memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Doctor{},
		&entity.Patient{},
		&entity.Consultation{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDStaff, RoleName: entity.RoleStaff},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}

	return db
}

// NewLogger returns a logger that discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// SeedDoctor inserts an active doctor with unique email and document.
func SeedDoctor(t *testing.T, db *gorm.DB, name string, specialty entity.Specialty) *entity.Doctor {
	t.Helper()

	n := seq.Add(1)
	doctor := &entity.Doctor{
		Name:      name,
		Email:     fmt.Sprintf("doctor%d@voll.med", n),
		Phone:     "3001234567",
		Document:  fmt.Sprintf("%04d", n%10000),
		Specialty: specialty,
		Address: entity.Address{
			Street:   "Calle 10",
			District: "Centro",
			City:     "Bogota",
		},
		ConsultationFee: decimal.RequireFromString("150.00"),
		Active:          true,
	}
	if err := db.Create(doctor).Error; err != nil {
		t.Fatalf("failed to seed doctor: %v", err)
	}
	return doctor
}

// SeedPatient inserts an active patient with unique email and document.
func SeedPatient(t *testing.T, db *gorm.DB, name string) *entity.Patient {
	t.Helper()

	n := seq.Add(1)
	patient := &entity.Patient{
		Name:     name,
		Email:    fmt.Sprintf("patient%d@mail.com", n),
		Phone:    "3109876543",
		Document: fmt.Sprintf("%08d", n),
		Address: entity.Address{
			Street:   "Carrera 7",
			District: "Chapinero",
			City:     "Bogota",
		},
		Active: true,
	}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	return patient
}

// SeedUser inserts a user with an already hashed password.
func SeedUser(t *testing.T, db *gorm.DB, login, passwordHash string, roleID int) *entity.User {
	t.Helper()

	user := &entity.User{
		Login:    login,
		Password: passwordHash,
		RoleID:   roleID,
		Active:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// Deactivate flips the active flag of any row with an active column.
func Deactivate(t *testing.T, db *gorm.DB, model interface{}, id int64) {
	t.Helper()

	if err := db.Model(model).Where("id = ?", id).Update("active", false).Error; err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}
}

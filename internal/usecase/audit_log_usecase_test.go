package usecase

import (
	"strconv"
	"testing"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
	"go-medical-appointment/internal/repository"
	"go-medical-appointment/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogUsecase(t *testing.T) {
	f := newFixture(t)
	admin := seedOperator(t, f, "admin@voll.med", "s3cret-pass", entity.RoleIDAdmin)
	ctx := operatorContext(admin.ID, admin.RoleID, "t")

	doctors := f.doctorUsecase()
	doctor, err := doctors.CreateDoctor(ctx, doctorRequest("ana@voll.med", "4321"))
	require.NoError(t, err)
	require.NoError(t, doctors.DeleteDoctor(ctx, doctor.ID))

	uc := NewAuditLogUsecase(f.db, testutil.NewLogger(), repository.NewAuditLogRepository())

	list, err := uc.GetAllAuditLogs(ctx, dto.PageQuery{Sort: "action"})
	require.NoError(t, err)
	require.Len(t, list.Logs, 2)
	assert.Equal(t, int64(2), list.Meta.Total)
	assert.Equal(t, entity.AuditActionDoctorCreate, list.Logs[0].Action)
	assert.Equal(t, entity.AuditActionDoctorDeactivate, list.Logs[1].Action)

	first := list.Logs[0]
	require.NotNil(t, first.User)
	assert.Equal(t, "admin@voll.med", first.User.Login)
	assert.Equal(t, entity.RoleAdmin, first.User.Role)
	assert.Equal(t, "doctor", first.Metadata["entity"])
	assert.Equal(t, strconv.FormatInt(doctor.ID, 10), first.Metadata["entity_id"])

	got, err := uc.GetAuditLog(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Action, got.Action)

	_, err = uc.GetAuditLog(ctx, 9999)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/service"
	"go-medical-appointment/internal/usecase"
	"go-medical-appointment/pkg/response"
	"go-medical-appointment/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDoctorUsecase struct {
	usecase.DoctorUsecase
	createErr error
	getErr    error
	deleteErr error
	lastQuery dto.PageQuery
}

func (s *stubDoctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.DoctorResponse{ID: 7, Name: req.Name, Email: req.Email, ConsultationFee: req.ConsultationFee}, nil
}

func (s *stubDoctorUsecase) GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &dto.DoctorResponse{ID: id, Name: "Ana"}, nil
}

func (s *stubDoctorUsecase) ListDoctors(ctx context.Context, query dto.PageQuery) (*dto.DoctorListResponse, error) {
	s.lastQuery = query
	return &dto.DoctorListResponse{
		Doctors: []dto.DoctorSummaryResponse{{ID: 1, Name: "Ana"}},
		Meta:    dto.PageMeta{Page: 2, Size: 5, Total: 6, TotalPages: 2},
	}, nil
}

func (s *stubDoctorUsecase) DeleteDoctor(ctx context.Context, id int64) error {
	return s.deleteErr
}

type stubPatientUsecase struct {
	usecase.PatientUsecase
	createErr error
	getErr    error
	updateErr error
	deleteErr error
	lastQuery dto.PageQuery
}

func (s *stubPatientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.PatientResponse{ID: 9, Name: req.Name, Email: req.Email, Active: true}, nil
}

func (s *stubPatientUsecase) GetPatient(ctx context.Context, id int64) (*dto.PatientResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &dto.PatientResponse{ID: id, Name: "Luis"}, nil
}

func (s *stubPatientUsecase) ListPatients(ctx context.Context, query dto.PageQuery) (*dto.PatientListResponse, error) {
	s.lastQuery = query
	return &dto.PatientListResponse{
		Patients: []dto.PatientSummaryResponse{{ID: 1, Name: "Luis"}, {ID: 2, Name: "Marta"}},
		Meta:     dto.PageMeta{Page: 1, Size: 2, Total: 3, TotalPages: 2},
	}, nil
}

func (s *stubPatientUsecase) UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &dto.PatientResponse{ID: id, Name: req.Name}, nil
}

func (s *stubPatientUsecase) DeletePatient(ctx context.Context, id int64) error {
	return s.deleteErr
}

type stubConsultationUsecase struct {
	usecase.ConsultationUsecase
	scheduleErr error
	cancelErr   error
	lastFilter  dto.ConsultationQuery
}

func (s *stubConsultationUsecase) ScheduleConsultation(ctx context.Context, req *dto.ScheduleConsultationRequest) (*dto.ConsultationResponse, error) {
	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}
	return &dto.ConsultationResponse{
		ID:        11,
		PatientID: req.PatientID,
		DoctorID:  3,
		Status:    "scheduled",
		Date:      time.Date(2030, 3, 5, 15, 0, 0, 0, time.UTC),
		Fee:       decimal.RequireFromString("150"),
	}, nil
}

func (s *stubConsultationUsecase) CancelConsultation(ctx context.Context, id int64, req *dto.CancelConsultationRequest) error {
	return s.cancelErr
}

func (s *stubConsultationUsecase) ListConsultations(ctx context.Context, filter dto.ConsultationQuery, query dto.PageQuery) (*dto.ConsultationListResponse, error) {
	s.lastFilter = filter
	return &dto.ConsultationListResponse{Consultations: []dto.ConsultationResponse{}}, nil
}

type stubAuthUsecase struct {
	usecase.AuthUsecase
	loginErr  error
	logoutReq *dto.LogoutRequest
}

func (s *stubAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.TokenResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 7200}, nil
}

func (s *stubAuthUsecase) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	s.logoutReq = req
	return nil
}

func serve(method, target, pattern, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc(pattern, h).Methods(method)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const validDoctor = `{
	"name": "Ana Torres",
	"email": "ana@voll.med",
	"phone": "+57 300 1234567",
	"document": "123456",
	"specialty": "cardiology",
	"address": {"street": "Calle 10", "district": "Centro", "city": "Bogota"},
	"consultation_fee": "150.00"
}`

func TestDoctorHandler_CreateDoctor(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"created", validDoctor, nil, http.StatusCreated},
		{"malformed body", `{"name":`, nil, http.StatusBadRequest},
		{"validation failure", `{"name": "A", "email": "nope"}`, nil, http.StatusBadRequest},
		{"duplicate email", validDoctor, usecase.ErrDoctorEmailExists, http.StatusConflict},
		{"duplicate document", validDoctor, usecase.ErrDoctorDocumentExists, http.StatusConflict},
		{"negative fee", validDoctor, usecase.ErrInvalidFee, http.StatusBadRequest},
		{"unexpected failure", validDoctor, assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewDoctorHandler(&stubDoctorUsecase{createErr: tt.err}, validator.NewValidator())
			rec := serve(http.MethodPost, "/api/v1/doctors", "/api/v1/doctors", tt.body, h.CreateDoctor)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusCreated {
				assert.Equal(t, "/api/v1/doctors/7", rec.Header().Get("Location"))
				assert.True(t, decode(t, rec).Success)
			}
		})
	}
}

func TestDoctorHandler_CreateDoctor_FieldErrors(t *testing.T) {
	h := NewDoctorHandler(&stubDoctorUsecase{}, validator.NewValidator())
	body := strings.Replace(validDoctor, `"123456"`, `"12ab"`, 1)

	rec := serve(http.MethodPost, "/api/v1/doctors", "/api/v1/doctors", body, h.CreateDoctor)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields, ok := decode(t, rec).Error.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "document")
}

func TestDoctorHandler_GetDoctor(t *testing.T) {
	h := NewDoctorHandler(&stubDoctorUsecase{}, validator.NewValidator())
	rec := serve(http.MethodGet, "/api/v1/doctors/5", "/api/v1/doctors/{id}", "", h.GetDoctor)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(http.MethodGet, "/api/v1/doctors/abc", "/api/v1/doctors/{id}", "", h.GetDoctor)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h = NewDoctorHandler(&stubDoctorUsecase{getErr: usecase.ErrDoctorNotFound}, validator.NewValidator())
	rec = serve(http.MethodGet, "/api/v1/doctors/5", "/api/v1/doctors/{id}", "", h.GetDoctor)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDoctorHandler_ListDoctors(t *testing.T) {
	stub := &stubDoctorUsecase{}
	h := NewDoctorHandler(stub, validator.NewValidator())

	rec := serve(http.MethodGet, "/api/v1/doctors?page=2&size=5&sort=email&order=desc", "/api/v1/doctors", "", h.ListDoctors)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.PageQuery{Page: 2, Size: 5, Sort: "email", Order: "desc"}, stub.lastQuery)

	resp := decode(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(6), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)

	rec = serve(http.MethodGet, "/api/v1/doctors?page=x", "/api/v1/doctors", "", h.ListDoctors)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(http.MethodGet, "/api/v1/doctors?order=sideways", "/api/v1/doctors", "", h.ListDoctors)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDoctorHandler_DeleteDoctor(t *testing.T) {
	h := NewDoctorHandler(&stubDoctorUsecase{}, validator.NewValidator())
	rec := serve(http.MethodDelete, "/api/v1/doctors/5", "/api/v1/doctors/{id}", "", h.DeleteDoctor)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	h = NewDoctorHandler(&stubDoctorUsecase{deleteErr: usecase.ErrDoctorNotFound}, validator.NewValidator())
	rec = serve(http.MethodDelete, "/api/v1/doctors/5", "/api/v1/doctors/{id}", "", h.DeleteDoctor)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

const validPatient = `{
	"name": "Luis Gomez",
	"email": "luis@mail.com",
	"phone": "3104445566",
	"document": "10203040",
	"address": {"street": "Calle 80", "district": "Suba", "city": "Bogota"}
}`

func TestPatientHandler_CreatePatient(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"created", validPatient, nil, http.StatusCreated},
		{"malformed body", `{"name":`, nil, http.StatusBadRequest},
		{"validation failure", `{"name": "Luis", "email": "luis@mail.com"}`, nil, http.StatusBadRequest},
		{"duplicate email", validPatient, usecase.ErrPatientEmailExists, http.StatusConflict},
		{"duplicate document", validPatient, usecase.ErrPatientDocumentExists, http.StatusConflict},
		{"unexpected failure", validPatient, assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPatientHandler(&stubPatientUsecase{createErr: tt.err}, validator.NewValidator())
			rec := serve(http.MethodPost, "/api/v1/patients", "/api/v1/patients", tt.body, h.CreatePatient)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusCreated {
				assert.Equal(t, "/api/v1/patients/9", rec.Header().Get("Location"))
				assert.True(t, decode(t, rec).Success)
			}
		})
	}
}

func TestPatientHandler_GetPatient(t *testing.T) {
	h := NewPatientHandler(&stubPatientUsecase{}, validator.NewValidator())
	rec := serve(http.MethodGet, "/api/v1/patients/4", "/api/v1/patients/{id}", "", h.GetPatient)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(http.MethodGet, "/api/v1/patients/0", "/api/v1/patients/{id}", "", h.GetPatient)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h = NewPatientHandler(&stubPatientUsecase{getErr: usecase.ErrPatientNotFound}, validator.NewValidator())
	rec = serve(http.MethodGet, "/api/v1/patients/4", "/api/v1/patients/{id}", "", h.GetPatient)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatientHandler_ListPatients(t *testing.T) {
	stub := &stubPatientUsecase{}
	h := NewPatientHandler(stub, validator.NewValidator())

	rec := serve(http.MethodGet, "/api/v1/patients?size=2", "/api/v1/patients", "", h.ListPatients)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, stub.lastQuery.Size)

	resp := decode(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(3), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)

	rec = serve(http.MethodGet, "/api/v1/patients?size=-1", "/api/v1/patients", "", h.ListPatients)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatientHandler_UpdatePatient(t *testing.T) {
	h := NewPatientHandler(&stubPatientUsecase{}, validator.NewValidator())
	rec := serve(http.MethodPut, "/api/v1/patients/4", "/api/v1/patients/{id}", `{"name": "Luis Andres"}`, h.UpdatePatient)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(http.MethodPut, "/api/v1/patients/4", "/api/v1/patients/{id}", `{"phone": "abc"}`, h.UpdatePatient)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h = NewPatientHandler(&stubPatientUsecase{updateErr: usecase.ErrPatientNotFound}, validator.NewValidator())
	rec = serve(http.MethodPut, "/api/v1/patients/4", "/api/v1/patients/{id}", `{"name": "Luis Andres"}`, h.UpdatePatient)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatientHandler_DeletePatient(t *testing.T) {
	h := NewPatientHandler(&stubPatientUsecase{}, validator.NewValidator())
	rec := serve(http.MethodDelete, "/api/v1/patients/4", "/api/v1/patients/{id}", "", h.DeletePatient)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	h = NewPatientHandler(&stubPatientUsecase{deleteErr: usecase.ErrPatientNotFound}, validator.NewValidator())
	rec = serve(http.MethodDelete, "/api/v1/patients/4", "/api/v1/patients/{id}", "", h.DeletePatient)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConsultationHandler_ScheduleConsultation(t *testing.T) {
	body := `{"patient_id": 1, "specialty": "cardiology", "date": "2030-03-05T10:00"}`

	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"scheduled", body, nil, http.StatusCreated},
		{"missing patient id", `{"date": "2030-03-05T10:00"}`, nil, http.StatusBadRequest},
		{"unknown specialty", `{"patient_id": 1, "specialty": "surgery", "date": "2030-03-05T10:00"}`, nil, http.StatusBadRequest},
		{"patient not found", body, usecase.ErrPatientNotFound, http.StatusNotFound},
		{"doctor not found", body, usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"bad date", body, usecase.ErrInvalidConsultationDate, http.StatusBadRequest},
		{"specialty required", body, usecase.ErrSpecialtyRequired, http.StatusBadRequest},
		{"outside clinic hours", body, service.ErrOutsideClinicHours, http.StatusBadRequest},
		{"too soon", body, service.ErrInsufficientAdvance, http.StatusBadRequest},
		{"inactive doctor", body, service.ErrInactiveDoctor, http.StatusBadRequest},
		{"patient already booked", body, service.ErrPatientAlreadyBooked, http.StatusConflict},
		{"doctor busy", body, service.ErrDoctorUnavailable, http.StatusConflict},
		{"no doctor available", body, usecase.ErrNoDoctorAvailable, http.StatusConflict},
		{"unexpected failure", body, assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewConsultationHandler(&stubConsultationUsecase{scheduleErr: tt.err}, validator.NewValidator())
			rec := serve(http.MethodPost, "/api/v1/consultations", "/api/v1/consultations", tt.body, h.ScheduleConsultation)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusCreated {
				assert.Equal(t, "/api/v1/consultations/11", rec.Header().Get("Location"))
			}
		})
	}
}

func TestConsultationHandler_CancelConsultation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"cancelled", `{"reason": "patient_withdrew"}`, nil, http.StatusNoContent},
		{"missing reason", `{}`, nil, http.StatusBadRequest},
		{"unknown reason", `{"reason": "bored"}`, nil, http.StatusBadRequest},
		{"not found", `{"reason": "other"}`, usecase.ErrConsultationNotFound, http.StatusNotFound},
		{"already cancelled", `{"reason": "other"}`, usecase.ErrConsultationAlreadyCancelled, http.StatusConflict},
		{"too late", `{"reason": "other"}`, service.ErrCancellationTooLate, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewConsultationHandler(&stubConsultationUsecase{cancelErr: tt.err}, validator.NewValidator())
			rec := serve(http.MethodDelete, "/api/v1/consultations/4", "/api/v1/consultations/{id}", tt.body, h.CancelConsultation)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestConsultationHandler_ListConsultations(t *testing.T) {
	stub := &stubConsultationUsecase{}
	h := NewConsultationHandler(stub, validator.NewValidator())

	rec := serve(http.MethodGet, "/api/v1/consultations?doctor_id=3&status=scheduled", "/api/v1/consultations", "", h.ListConsultations)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.ConsultationQuery{DoctorID: 3, Status: "scheduled"}, stub.lastFilter)

	rec = serve(http.MethodGet, "/api/v1/consultations?status=done", "/api/v1/consultations", "", h.ListConsultations)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(http.MethodGet, "/api/v1/consultations?patient_id=-1", "/api/v1/consultations", "", h.ListConsultations)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(&stubAuthUsecase{}, validator.NewValidator())
	rec := serve(http.MethodPost, "/api/v1/auth/login", "/api/v1/auth/login", `{"login": "ana@voll.med", "password": "secret123"}`, h.Login)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token_type":"Bearer"`)

	h = NewAuthHandler(&stubAuthUsecase{loginErr: usecase.ErrInvalidCredentials}, validator.NewValidator())
	rec = serve(http.MethodPost, "/api/v1/auth/login", "/api/v1/auth/login", `{"login": "ana@voll.med", "password": "wrong"}`, h.Login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(http.MethodPost, "/api/v1/auth/login", "/api/v1/auth/login", `{"login": "not-an-email", "password": "x"}`, h.Login)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Logout_EmptyBody(t *testing.T) {
	stub := &stubAuthUsecase{}
	h := NewAuthHandler(stub, validator.NewValidator())

	rec := serve(http.MethodPost, "/api/v1/auth/logout", "/api/v1/auth/logout", "", h.Logout)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.logoutReq)
	assert.Empty(t, stub.logoutReq.RefreshToken)
}

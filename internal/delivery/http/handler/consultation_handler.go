package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/service"
	"go-medical-appointment/internal/usecase"
	"go-medical-appointment/pkg/response"
	"go-medical-appointment/pkg/validator"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

// ScheduleConsultation books a consultation, assigning a doctor when none is chosen
func (h *ConsultationHandler) ScheduleConsultation(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.ScheduleConsultation(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidConsultationDate,
			usecase.ErrSpecialtyRequired,
			usecase.ErrSpecialtyMismatch,
			service.ErrOutsideClinicHours,
			service.ErrInsufficientAdvance,
			service.ErrInactivePatient,
			service.ErrInactiveDoctor:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case service.ErrPatientAlreadyBooked,
			service.ErrDoctorUnavailable,
			usecase.ErrNoDoctorAvailable:
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to schedule consultation")
		}
		return
	}

	response.Created(w, fmt.Sprintf("/api/v1/consultations/%d", consultation.ID), "Consultation scheduled successfully", consultation)
}

// CancelConsultation cancels a scheduled consultation with a reason
func (h *ConsultationHandler) CancelConsultation(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	var req dto.CancelConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.consultationUsecase.CancelConsultation(r.Context(), consultationID, &req); err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrConsultationAlreadyCancelled:
			response.Error(w, http.StatusConflict, err.Error(), nil)
		case usecase.ErrInvalidCancellationReason, service.ErrCancellationTooLate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to cancel consultation")
		}
		return
	}

	response.NoContent(w)
}

func (h *ConsultationHandler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	consultation, err := h.consultationUsecase.GetConsultation(r.Context(), consultationID)
	if err != nil {
		if err == usecase.ErrConsultationNotFound {
			response.NotFound(w, "Consultation not found")
			return
		}
		response.InternalServerError(w, "Failed to get consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}

func (h *ConsultationHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	query, ok := pageQuery(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid pagination parameters", nil)
		return
	}

	doctorID, okDoctor := queryInt(r, "doctor_id")
	patientID, okPatient := queryInt(r, "patient_id")
	if !okDoctor || !okPatient {
		response.Error(w, http.StatusBadRequest, "Invalid filter parameters", nil)
		return
	}
	filter := dto.ConsultationQuery{
		DoctorID:  doctorID,
		PatientID: patientID,
		Status:    r.URL.Query().Get("status"),
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}
	if err := h.validator.Validate(&filter); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultations, err := h.consultationUsecase.ListConsultations(r.Context(), filter, query)
	if err != nil {
		response.InternalServerError(w, "Failed to get consultations")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Consultations retrieved successfully", consultations.Consultations, toMeta(consultations.Meta))
}

package converter

import (
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

// ConsultationToResponse converts a Consultation entity to ConsultationResponse DTO
// Doctor and Patient are included when they are loaded
func ConsultationToResponse(consultation *entity.Consultation) *dto.ConsultationResponse {
	if consultation == nil {
		return nil
	}

	response := &dto.ConsultationResponse{
		ID:          consultation.ID,
		DoctorID:    consultation.DoctorID,
		PatientID:   consultation.PatientID,
		Date:        consultation.ScheduledAt.UTC(),
		Status:      string(consultation.Status),
		CancelledAt: consultation.CancelledAt,
		Fee:         consultation.Fee,
		CreatedAt:   consultation.CreatedAt,
	}

	if consultation.CancellationReason != nil {
		response.CancellationReason = string(*consultation.CancellationReason)
	}
	if consultation.Doctor.ID != 0 {
		response.Doctor = DoctorToSummary(&consultation.Doctor)
	}
	if consultation.Patient.ID != 0 {
		response.Patient = PatientToSummary(&consultation.Patient)
	}

	return response
}

// ConsultationsToResponses converts a slice of Consultation entities to slice of ConsultationResponse DTOs
func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *ConsultationToResponse(&consultations[i])
	}
	return responses
}

package converter

import (
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:        patient.ID,
		Name:      patient.Name,
		Email:     patient.Email,
		Phone:     patient.Phone,
		Document:  patient.Document,
		Address:   AddressToResponse(patient.Address),
		Active:    patient.Active,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}
}

func PatientToSummary(patient *entity.Patient) *dto.PatientSummaryResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientSummaryResponse{
		ID:       patient.ID,
		Name:     patient.Name,
		Email:    patient.Email,
		Document: patient.Document,
	}
}

// PatientsToSummaries converts a slice of Patient entities to slice of PatientSummaryResponse DTOs
func PatientsToSummaries(patients []entity.Patient) []dto.PatientSummaryResponse {
	responses := make([]dto.PatientSummaryResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToSummary(&patients[i])
	}
	return responses
}

package converter

import (
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Email:           doctor.Email,
		Phone:           doctor.Phone,
		Document:        doctor.Document,
		Specialty:       string(doctor.Specialty),
		Address:         AddressToResponse(doctor.Address),
		ConsultationFee: doctor.ConsultationFee,
		Active:          doctor.Active,
		CreatedAt:       doctor.CreatedAt,
		UpdatedAt:       doctor.UpdatedAt,
	}
}

// DoctorToSummary converts a Doctor entity to the short DoctorSummaryResponse DTO
func DoctorToSummary(doctor *entity.Doctor) *dto.DoctorSummaryResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorSummaryResponse{
		ID:        doctor.ID,
		Name:      doctor.Name,
		Email:     doctor.Email,
		Document:  doctor.Document,
		Specialty: string(doctor.Specialty),
	}
}

// DoctorsToSummaries converts a slice of Doctor entities to slice of DoctorSummaryResponse DTOs
func DoctorsToSummaries(doctors []entity.Doctor) []dto.DoctorSummaryResponse {
	responses := make([]dto.DoctorSummaryResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToSummary(&doctors[i])
	}
	return responses
}

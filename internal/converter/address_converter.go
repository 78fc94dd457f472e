package converter

import (
	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

func AddressToResponse(address entity.Address) dto.AddressResponse {
	return dto.AddressResponse{
		Street:     address.Street,
		District:   address.District,
		City:       address.City,
		Number:     address.Number,
		Complement: address.Complement,
	}
}

// AddressRequestToEntity maps the request through sanitize, which strips markup from free text
func AddressRequestToEntity(req dto.AddressRequest, sanitize func(string) string) entity.Address {
	return entity.Address{
		Street:     sanitize(req.Street),
		District:   sanitize(req.District),
		City:       sanitize(req.City),
		Number:     sanitize(req.Number),
		Complement: sanitize(req.Complement),
	}
}

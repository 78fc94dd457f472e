package entity

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a domain-level pagination request used by repositories.
// Sort holds a logical field name, repositories map it to a whitelisted column.
type PageRequest struct {
	Page int
	Size int
	Sort string
	Desc bool
}

// Normalize clamps page and size to sane bounds
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the row offset of the page
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// TotalPages computes the page count for a total number of rows
func (p PageRequest) TotalPages(total int64) int {
	if p.Size < 1 {
		return 0
	}
	pages := int(total) / p.Size
	if int(total)%p.Size > 0 {
		pages++
	}
	return pages
}

// ConsultationFilter narrows consultation listings
type ConsultationFilter struct {
	DoctorID  int64
	PatientID int64
	Status    ConsultationStatus
}

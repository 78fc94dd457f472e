package usecase

import (
	"strings"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/internal/domain/entity"
)

// Sanitizer strips markup from free text before it is stored.
type Sanitizer interface {
	Sanitize(s string) string
}

func toPageRequest(q dto.PageQuery) entity.PageRequest {
	return entity.PageRequest{
		Page: q.Page,
		Size: q.Size,
		Sort: strings.ToLower(q.Sort),
		Desc: strings.EqualFold(q.Order, "desc"),
	}.Normalize()
}

func toPageMeta(page entity.PageRequest, total int64) dto.PageMeta {
	return dto.PageMeta{
		Page:       page.Page,
		Size:       page.Size,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}
}

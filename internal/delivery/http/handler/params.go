package handler

import (
	"net/http"
	"strconv"

	"go-medical-appointment/internal/delivery/dto"
	"go-medical-appointment/pkg/response"

	"github.com/gorilla/mux"
)

// pathID reads the {id} path variable as a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt returns 0 for a missing parameter and false for a malformed one.
func queryInt(r *http.Request, key string) (int64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func pageQuery(r *http.Request) (dto.PageQuery, bool) {
	page, ok := queryInt(r, "page")
	if !ok {
		return dto.PageQuery{}, false
	}
	size, ok := queryInt(r, "size")
	if !ok {
		return dto.PageQuery{}, false
	}

	q := r.URL.Query()
	return dto.PageQuery{
		Page:  int(page),
		Size:  int(size),
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	}, true
}

func toMeta(m dto.PageMeta) *response.Meta {
	return &response.Meta{
		Page:       m.Page,
		Limit:      m.Size,
		Total:      m.Total,
		TotalPages: m.TotalPages,
	}
}

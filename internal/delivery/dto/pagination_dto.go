package dto

// PageQuery is the pagination part of list requests, read from the query string.
type PageQuery struct {
	Page  int    `validate:"gte=0"`
	Size  int    `validate:"gte=0"`
	Sort  string `validate:"omitempty,max=50"`
	Order string `validate:"omitempty,oneof=asc desc"`
}

type PageMeta struct {
	Page       int
	Size       int
	Total      int64
	TotalPages int
}

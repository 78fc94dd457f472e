package repository

import (
	"go-medical-appointment/internal/domain/entity"

	"gorm.io/gorm"
)

// paginate applies limit, offset and a whitelisted order to a query.
// Unknown sort keys fall back to the first column of the default order.
func paginate(db *gorm.DB, page entity.PageRequest, columns map[string]string, fallback string) *gorm.DB {
	page = page.Normalize()

	column, ok := columns[page.Sort]
	if !ok {
		column = fallback
	}
	direction := " ASC"
	if page.Desc {
		direction = " DESC"
	}

	return db.Order(column + direction).Order("id ASC").Limit(page.Size).Offset(page.Offset())
}

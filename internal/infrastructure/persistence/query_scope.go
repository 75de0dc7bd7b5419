package persistence

import (
	"strings"

	"github.com/tshirtshop/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Anything other than desc sorts ascending.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// paginate orders rows by id and applies limit/offset for paged filters
func paginate(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: "id"},
			Desc:   ValidateSortOrder(filter.OrderDir) == "DESC",
		})
		if filter.PageSize > 0 {
			db = db.Limit(filter.PageSize).Offset(filter.Offset())
		}
		return db
	}
}

package database

import (
	"gorm.io/gorm"
)

// Paginate applies page-based pagination to a GORM query. Page numbers start
// at 1; a non-positive page size disables pagination.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

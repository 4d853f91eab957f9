package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond the ones AutoMigrate
// derives from model tags. Only runs against postgres; on mysql the tag
// indexes cover the lookup keys.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Reconciler lookup keys
		{"users", "idx_users_lower_email", "(LOWER(email))"},

		// Work order filters
		{"work_orders", "idx_work_orders_status", "(status)"},
		{"work_orders", "idx_work_orders_technician_id", "(technician_id)"},
		{"work_orders", "idx_work_orders_created_at", "(created_at)"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s %s", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.WithField("index", idx.name).Info("created index")
	}

	return nil
}

package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes not covered by the model tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task filtering and sorting
		{"tasks", "idx_tasks_status_department", "status, department_id"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_kind", "kind"},

		// Cascade lookups
		{"departments", "idx_departments_company_id", "company_id"},
		{"company_super_admins", "idx_company_super_admins_user_id", "user_id"},
		{"task_assignments", "idx_task_assignments_user_id", "user_id"},

		// Token TTL sweeps (cleanup is delegated to the store)
		{"users", "idx_users_verification_token_expiry", "verification_token_expiry"},
		{"users", "idx_users_reset_password_expiry", "reset_password_expiry"},
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

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		logrus.WithField("index", idx.name).Info("created index")
	}

	return nil
}

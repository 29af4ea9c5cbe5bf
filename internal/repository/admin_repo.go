package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// exportTables is the authoritative list for bulk export/import. Join tables
// are included so many-to-many links survive a round trip.
var exportTables = []string{
	"users",
	"profiles",
	"social_links",
	"password_reset_tokens",
	"revoked_tokens",
	"email_provider_settings",
	"email_logs",
	"job_application_statuses",
	"job_skills",
	"job_applications",
	"job_application_skills",
	"job_application_preferred_skills",
	"user_skills",
	"learning_statuses",
	"learning_plans",
	"learning_resources",
}

type AdminRepository interface {
	ExportAll(ctx context.Context) (map[string][]map[string]any, error)
	// ImportAll applies the whole payload in one transaction; any failed row
	// rolls back everything.
	ImportAll(ctx context.Context, data map[string][]map[string]any) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) ExportAll(ctx context.Context) (map[string][]map[string]any, error) {
	dump := make(map[string][]map[string]any, len(exportTables))
	for _, table := range exportTables {
		var rows []map[string]any
		if err := r.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("export %s: %w", table, err)
		}
		dump[table] = rows
	}
	return dump, nil
}

func (r *adminRepository) ImportAll(ctx context.Context, data map[string][]map[string]any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Insert in registry order so foreign keys resolve. Unknown tables in
		// the payload are skipped rather than failing the whole import.
		for _, table := range exportTables {
			rows, ok := data[table]
			if !ok || len(rows) == 0 {
				continue
			}
			if err := tx.Table(table).Create(rows).Error; err != nil {
				return fmt.Errorf("import %s: %w", table, err)
			}
		}
		return nil
	})
}

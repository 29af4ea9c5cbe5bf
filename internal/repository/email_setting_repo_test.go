package repository

import (
	"context"
	"errors"
	"testing"

	"jobtrackr/internal/entity"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The provider table is created by hand because the postgres column defaults
// in the entity tags do not migrate onto sqlite.
const emailSettingsDDL = `
CREATE TABLE email_provider_settings (
	id            text PRIMARY KEY,
	name          text NOT NULL,
	provider_type text NOT NULL,
	host          text,
	port          integer,
	from_email    text NOT NULL,
	username      text,
	password      text,
	use_tls       boolean NOT NULL DEFAULT true,
	use_ssl       boolean NOT NULL DEFAULT false,
	api_key       text,
	is_active     boolean NOT NULL DEFAULT false,
	created_at    datetime
)`

func newSettingRepoDB(t *testing.T) (EmailSettingRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Exec(emailSettingsDDL).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return NewEmailSettingRepository(db), db
}

func newSMTPSetting(name string, active bool) *entity.EmailProviderSetting {
	host := "smtp.example.com"
	port := 587
	return &entity.EmailProviderSetting{
		ID:           uuid.New(),
		Name:         name,
		ProviderType: entity.ProviderSMTP,
		Host:         &host,
		Port:         &port,
		FromEmail:    "noreply@example.com",
		IsActive:     active,
	}
}

func activeSettingIDs(t *testing.T, db *gorm.DB) []uuid.UUID {
	t.Helper()
	var rows []entity.EmailProviderSetting
	if err := db.Where("is_active = ?", true).Find(&rows).Error; err != nil {
		t.Fatalf("query active rows: %v", err)
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func TestSaveActiveDeactivatesOthers(t *testing.T) {
	repo, db := newSettingRepoDB(t)
	ctx := context.Background()

	first := newSMTPSetting("primary", true)
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	second := newSMTPSetting("backup", true)
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	active := activeSettingIDs(t, db)
	if len(active) != 1 || active[0] != second.ID {
		t.Fatalf("active rows = %v, want only %s", active, second.ID)
	}
}

func TestSaveInactiveLeavesActiveRowAlone(t *testing.T) {
	repo, db := newSettingRepoDB(t)
	ctx := context.Background()

	first := newSMTPSetting("primary", true)
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	second := newSMTPSetting("backup", false)
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	active := activeSettingIDs(t, db)
	if len(active) != 1 || active[0] != first.ID {
		t.Fatalf("active rows = %v, want only %s", active, first.ID)
	}
}

func TestActivateSequenceKeepsOneActiveRow(t *testing.T) {
	repo, db := newSettingRepoDB(t)
	ctx := context.Background()

	settings := []*entity.EmailProviderSetting{
		newSMTPSetting("primary", true),
		newSMTPSetting("backup", false),
		newSMTPSetting("spare", false),
	}
	for _, s := range settings {
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("Save %s: %v", s.Name, err)
		}
	}

	sequence := []uuid.UUID{settings[1].ID, settings[2].ID, settings[1].ID, settings[0].ID}
	for _, id := range sequence {
		if err := repo.Activate(ctx, id); err != nil {
			t.Fatalf("Activate %s: %v", id, err)
		}
		active := activeSettingIDs(t, db)
		if len(active) != 1 || active[0] != id {
			t.Fatalf("after Activate(%s): active rows = %v", id, active)
		}
		found, err := repo.FindActive(ctx)
		if err != nil {
			t.Fatalf("FindActive: %v", err)
		}
		if found == nil || found.ID != id {
			t.Fatalf("FindActive = %+v, want %s", found, id)
		}
	}
}

func TestActivateMissingRowChangesNothing(t *testing.T) {
	repo, db := newSettingRepoDB(t)
	ctx := context.Background()

	existing := newSMTPSetting("primary", true)
	if err := repo.Save(ctx, existing); err != nil {
		t.Fatalf("Save: %v", err)
	}

	err := repo.Activate(ctx, uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("Activate = %v, want gorm.ErrRecordNotFound", err)
	}

	active := activeSettingIDs(t, db)
	if len(active) != 1 || active[0] != existing.ID {
		t.Fatalf("active rows = %v, want only %s", active, existing.ID)
	}
}

// internal/infrastructure/database/postgres/migration_test.go
package postgres

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	return db
}

func TestCreateIndexesIsRepeatable(t *testing.T) {
	db := openTestDB(t)
	migration := NewMigration(db)

	if err := migration.RunAutoMigrations(); err != nil {
		t.Fatalf("RunAutoMigrations: %v", err)
	}

	// Repeated startups run this every time; it must stay clean.
	for i := 0; i < 2; i++ {
		if err := migration.CreateIndexes(); err != nil {
			t.Fatalf("CreateIndexes run %d: %v", i+1, err)
		}
	}

	var count int64
	err := db.Raw(
		"SELECT COUNT(*) FROM pg_constraint WHERE conname = ?",
		"chk_items_quantity_non_negative",
	).Scan(&count).Error
	if err != nil {
		t.Fatalf("failed to read pg_constraint: %v", err)
	}
	if count != 1 {
		t.Errorf("constraint count = %d, want 1", count)
	}
}

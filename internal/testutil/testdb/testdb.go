// Package testdb opens a migrated in-memory sqlite database for tests.
package testdb

import (
	"testing"

	"themis-backend/internal/infrastructure/db"

	"gorm.io/gorm"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenGorm("sqlite", ":memory:", db.WithLogLevel("silent"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

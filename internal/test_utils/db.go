package test_utils

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/caley/caley/internal/database"
	"go.etcd.io/bbolt"
)

// SetupTestDB creates a new in-memory SQLite database and applies all migrations.
// Each database is completely isolated from others.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.OpenSqlite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.MigrateSqlite(db); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	return db
}

// SetupTestBolt opens a bbolt file in a per-test temporary directory.
func SetupTestBolt(t *testing.T) *bbolt.DB {
	t.Helper()

	db, err := database.OpenBolt(filepath.Join(t.TempDir(), "caley.bolt"))
	if err != nil {
		t.Fatalf("Failed to open bolt database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

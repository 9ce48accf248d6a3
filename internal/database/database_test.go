package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSqlite(t *testing.T) {
	t.Run("should create workout table in memory database", func(t *testing.T) {
		// given
		db, err := OpenSqlite(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		// when
		err = MigrateSqlite(db)

		// then
		require.NoError(t, err)
		var count int
		err = db.QueryRow(`SELECT COUNT(*) FROM workout`).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("should be idempotent on a file database", func(t *testing.T) {
		// given
		db, err := OpenSqlite(filepath.Join(t.TempDir(), "nested", "caley.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		require.NoError(t, MigrateSqlite(db))

		// when
		err = MigrateSqlite(db)

		// then
		require.NoError(t, err)
	})

	t.Run("should reject ratings outside of range", func(t *testing.T) {
		// given
		db, err := OpenSqlite(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		require.NoError(t, MigrateSqlite(db))

		// when
		_, err = db.Exec(`INSERT INTO workout (id, rating, date) VALUES ('x', 6, 0)`)

		// then
		require.Error(t, err)
	})
}

func TestOpenBolt(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "data", "caley.bolt")

	// when
	db, err := OpenBolt(path)

	// then
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.FileExists(t, path)
}

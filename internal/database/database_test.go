package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	t.Run("applies every migration to a fresh database", func(t *testing.T) {
		db, err := Open(MemoryPath)
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		version, err := Migrate(context.Background(), db)
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)

		for _, table := range []string{"stock_transaction", "market_price", "expense_category", "expense", "vehicle", "fuel_log"} {
			var name string
			err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
			assert.NoError(t, err, "table %s", table)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		db, err := Open(MemoryPath)
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		_, err = Migrate(context.Background(), db)
		require.NoError(t, err)
		version, err := Migrate(context.Background(), db)
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)

		current, pending, err := Status(context.Background(), db)
		require.NoError(t, err)
		assert.Equal(t, int64(2), current)
		assert.False(t, pending)
	})
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fintrack.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, HealthCheck(context.Background(), db))

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeIndex builds an index with rows in a temp directory and returns its path.
func writeIndex(t *testing.T, rows []*docindex.IndexRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "docs.db")
	require.NoError(t, sqlite.NewIndexWriter().WriteIndex(context.Background(), path, rows))
	return path
}

// openIndex opens the index at path and closes it when the test ends.
func openIndex(t *testing.T, path string) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("opens an index with the current schema version", func(t *testing.T) {
		t.Parallel()

		path := writeIndex(t, nil)
		db := openIndex(t, path)

		var version int
		err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version)
		require.NoError(t, err)
		assert.Equal(t, docindex.SchemaVersion, version)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "missing.db"))
		err := db.Open()

		require.Error(t, err)
		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
	})

	t.Run("rejects an incompatible schema version", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "old.db")
		conn, err := sql.Open("sqlite3", path)
		require.NoError(t, err)
		_, err = conn.Exec("PRAGMA user_version = 99")
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		db := sqlite.NewDB(path)
		err = db.Open()

		require.Error(t, err)
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})
}

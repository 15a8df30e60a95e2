package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docindex"
	"github.com/gofrs/flock"
	"github.com/google/renameio"
)

// LockSuffix names the lock file guarding an index path against concurrent
// writers.
const LockSuffix = ".lock"

// Ensure IndexWriter implements docindex.IndexWriter at compile time.
var _ docindex.IndexWriter = (*IndexWriter)(nil)

// IndexWriter builds a fresh index file and moves it into place atomically.
// Rows are written to a pending file next to the target; the target is
// only replaced once the pending file is complete and synced. A lock file
// next to the target admits one writer per path across processes.
type IndexWriter struct {
	mode os.FileMode
}

// NewIndexWriter creates a new IndexWriter.
func NewIndexWriter() *IndexWriter {
	return &IndexWriter{mode: 0644}
}

// WriteIndex replaces the index at path with rows.
func (w *IndexWriter) WriteIndex(ctx context.Context, path string, rows []*docindex.IndexRow) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return docindex.Errorf(docindex.EINDEXWRITE, "cannot create output directory %q: %v", dir, err)
	}

	lock := flock.New(path + LockSuffix)
	locked, err := lock.TryLock()
	if err != nil {
		return docindex.Errorf(docindex.EINDEXWRITE, "cannot lock index %q: %v", path, err)
	} else if !locked {
		return docindex.Errorf(docindex.EINDEXWRITE, "index %q is being written by another process", path)
	}
	defer lock.Unlock()

	pending, err := renameio.TempFile(dir, path)
	if err != nil {
		return docindex.Errorf(docindex.EINDEXWRITE, "cannot create index file in %q: %v", dir, err)
	}
	// No-op once the pending file has replaced the target.
	defer pending.Cleanup()

	if err := populate(ctx, pending.Name(), rows); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return docindex.Errorf(docindex.EINDEXWRITE, "cannot write index %q: %v", path, err)
	}

	// Last chance to abort before the previous index is replaced.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := pending.Chmod(w.mode); err != nil {
		return docindex.Errorf(docindex.EINDEXWRITE, "cannot set permissions on index %q: %v", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return docindex.Errorf(docindex.EINDEXWRITE, "cannot replace index %q: %v", path, err)
	}

	return nil
}

// populate creates the schema in the SQLite file at path and inserts rows
// in a single transaction.
func populate(ctx context.Context, path string, rows []*docindex.IndexRow) (err error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); err == nil {
			err = cerr
		}
	}()

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// The file is discarded on failure and synced before the rename, so
	// neither a rollback journal nor per-commit syncs are needed.
	pragmas := []string{
		"PRAGMA journal_mode = OFF",
		"PRAGMA synchronous = OFF",
		fmt.Sprintf("PRAGMA user_version = %d", docindex.SchemaVersion),
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+TableName+" (processed, content, metadata) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		metadata, err := row.Metadata.Marshal()
		if err != nil {
			return fmt.Errorf("failed to encode metadata for %s: %w", row.Metadata.Filename, err)
		}
		if _, err := stmt.ExecContext(ctx, row.Processed, row.Content, metadata); err != nil {
			return fmt.Errorf("failed to insert row for %s: %w", row.Metadata.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

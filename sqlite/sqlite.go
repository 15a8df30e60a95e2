// Package sqlite provides the SQLite FTS5 implementation of the docindex
// index: an atomic writer for builds and a read-only reader for queries.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fwojciec/docindex"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// TableName is the FTS5 table holding index rows.
const TableName = "doc_index"

// Tokenizer combines trigram substring matching with Porter stemming, so
// both partial words and inflected forms match.
const Tokenizer = "porter trigram"

// schema creates the single FTS5 table. Only processed is searchable;
// content and metadata are stored for retrieval.
var schema = fmt.Sprintf(`
	CREATE VIRTUAL TABLE %s USING fts5(
		processed,
		content UNINDEXED,
		metadata UNINDEXED,
		tokenize = '%s'
	);
`, TableName, Tokenizer)

// DB represents a read-only connection to a built index.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance for the index file at path.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the index read-only and verifies its schema version.
// Returns ENOTFOUND if the file does not exist and EINVALID if it was
// written with an incompatible schema version.
func (db *DB) Open() error {
	abs, err := filepath.Abs(db.path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return docindex.Errorf(docindex.ENOTFOUND, "index %q does not exist", db.path)
	} else if err != nil {
		return err
	}

	dsn := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}).String()
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to index: %w", err)
	}

	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		conn.Close()
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != docindex.SchemaVersion {
		conn.Close()
		return docindex.Errorf(docindex.EINVALID, "index %q has schema version %d, expected %d", db.path, version, docindex.SchemaVersion)
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Path returns the index file path.
func (db *DB) Path() string {
	return db.path
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// Package sqlite provides SQLite-based storage for vikinglink services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention instead of
	// returning "database is locked" immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is faster for writes and allows concurrent reads, but is
	// not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Drive links cascade-delete with their file.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
// Nullable link columns model the absent-vs-empty distinction of the
// record model; everything else defaults to its zero value.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS oxx_files (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL DEFAULT '',
			file_name TEXT NOT NULL DEFAULT '',
			size INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT '',
			views INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT '',
			gdtot_link TEXT,
			gdtot_name TEXT,
			hubcloud_link TEXT NOT NULL DEFAULT '',
			filepress_link TEXT NOT NULL DEFAULT '',
			viking_link TEXT,
			pixeldrain_link TEXT,
			credential_index INTEGER NOT NULL DEFAULT 0,
			duration TEXT,
			user_name TEXT NOT NULL DEFAULT '',
			mime_type TEXT NOT NULL DEFAULT '',
			file_extension TEXT NOT NULL DEFAULT '',
			modified_time TEXT NOT NULL DEFAULT '',
			created_time TEXT NOT NULL DEFAULT '',
			pixeldrain_conversion_failed INTEGER NOT NULL DEFAULT 0,
			pixeldrain_conversion_failed_at TEXT NOT NULL DEFAULT '',
			pixeldrain_conversion_error TEXT NOT NULL DEFAULT '',
			viking_conversion_failed INTEGER NOT NULL DEFAULT 0,
			viking_conversion_failed_at TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS drive_links (
			oxx_file_id TEXT NOT NULL REFERENCES oxx_files(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			file_id TEXT NOT NULL DEFAULT '',
			web_view_link TEXT NOT NULL DEFAULT '',
			drive_label TEXT NOT NULL DEFAULT '',
			credential_index INTEGER NOT NULL DEFAULT 0,
			is_login_drive INTEGER NOT NULL DEFAULT 0,
			is_drive2 INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (oxx_file_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_oxx_files_code ON oxx_files(code);
		CREATE INDEX IF NOT EXISTS idx_oxx_files_status ON oxx_files(status);
	`

	_, err := db.db.Exec(schema)
	return err
}

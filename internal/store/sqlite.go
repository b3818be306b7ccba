package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend persists the envelope as a single named row in a SQLite
// database. It is the durable driver for installations that prefer a database
// file over a plain JSON document.
type SQLiteBackend struct {
	db   *sql.DB
	name string
}

// NewSQLiteBackend opens (or creates) the database at path and ensures the
// app_state table exists.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS app_state (
		name TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		document TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate app_state table: %w", err)
	}

	return &SQLiteBackend{db: db, name: RecordName}, nil
}

func (b *SQLiteBackend) Read() ([]byte, error) {
	var document string
	err := b.db.QueryRow("SELECT document FROM app_state WHERE name = ?", b.name).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read app_state: %w", err)
	}
	return []byte(document), nil
}

func (b *SQLiteBackend) Write(data []byte) error {
	// The version column mirrors the envelope so it can be inspected with
	// plain SQL without parsing the document.
	var meta struct {
		Version int `json:"version"`
	}
	_ = json.Unmarshal(data, &meta)

	_, err := b.db.Exec(
		`INSERT INTO app_state (name, version, document, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (name) DO UPDATE SET
		 version = excluded.version, document = excluded.document, updated_at = CURRENT_TIMESTAMP`,
		b.name, meta.Version, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to write app_state: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

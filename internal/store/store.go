// Package store is a reference implementation of the opaque key/value
// store spec §6.6 describes as living outside the core: the core
// itself persists nothing, but an enclosing application may persist
// projects and layoutMeta keyed by project id, storing the §6.3 JSON
// document as an opaque blob. Grounded on the teacher's
// pkg/export/sqlite_export.go and sqlite_schema.go, which open
// modernc.org/sqlite through database/sql and hand-roll schema
// creation the same way.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed key/value store. Keys are project ids;
// values are opaque JSON blobs (normally the output of
// jsonio.EncodeBytes). The store does not parse or validate values —
// that is the caller's job, using internal/jsonio.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a SQLite database at path and
// ensures the projects table exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	document   BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`
	_, err := db.ExecContext(ctx, ddl)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes (or overwrites) the document blob for id. An overwrite is
// done as delete-then-insert rather than an upsert so the row gets a
// fresh rowid, which is what List's "most recently updated first"
// ordering sorts on.
func (s *Store) Put(ctx context.Context, id string, document []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: put %s: begin: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("store: put %s: %w", id, err)
	}
	const insert = `
INSERT INTO projects (id, document, updated_at)
VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'));`
	if _, err := tx.ExecContext(ctx, insert, id, document); err != nil {
		return fmt.Errorf("store: put %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: put %s: commit: %w", id, err)
	}
	return nil
}

// ErrNotFound is returned by Get when id has no stored document.
var ErrNotFound = fmt.Errorf("store: project not found")

// Get returns the document blob stored for id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) ([]byte, error) {
	const q = `SELECT document FROM projects WHERE id = ?;`
	var document []byte
	err := s.db.QueryRowContext(ctx, q, id).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", id, err)
	}
	return document, nil
}

// Delete removes the document stored for id. Deleting a key that does
// not exist is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM projects WHERE id = ?;`
	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}
	return nil
}

// List returns every stored project id, ordered by most recently
// updated first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	const q = `SELECT id FROM projects ORDER BY rowid DESC;`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: list: scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

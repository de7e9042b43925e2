// Package sqlite provides a SQLite backed key/value store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hay-kot/setlist/internal/core/storage"
)

//go:embed schema.sql
var schemaSQL string

// Store implements storage.Store on a single SQLite table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the database at path and applies the schema.
// The connection is configured with WAL journaling, NORMAL sync, a 5s busy
// timeout and a single open connection, since SQLite allows one writer.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns an entry by key. Returns ErrKeyNotFound if not found.
func (s *Store) Get(ctx context.Context, key string) (storage.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, value, created_at, updated_at FROM kv WHERE key = ?`, key)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Entry{}, storage.ErrKeyNotFound
	}
	if err != nil {
		return storage.Entry{}, fmt.Errorf("get %s: %w", key, err)
	}

	return entry, nil
}

// Set creates or updates an entry, preserving created_at on update.
func (s *Store) Set(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("set %s: value is not valid JSON", key)
	}

	now := s.now().UnixNano()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO kv (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now, now)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

// Delete removes an entry by key. Returns ErrKeyNotFound if not found.
func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	if n == 0 {
		return storage.ErrKeyNotFound
	}

	return nil
}

// List returns all entries whose key starts with prefix, sorted by key.
func (s *Store) List(ctx context.Context, prefix string) ([]storage.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT key, value, created_at, updated_at FROM kv
WHERE ?1 = '' OR substr(key, 1, length(?1)) = ?1
ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []storage.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (storage.Entry, error) {
	var (
		entry              storage.Entry
		value              string
		created, updatedAt int64
	)

	if err := row.Scan(&entry.Key, &value, &created, &updatedAt); err != nil {
		return storage.Entry{}, err
	}

	entry.Value = json.RawMessage(value)
	entry.CreatedAt = time.Unix(0, created).UTC()
	entry.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return entry, nil
}

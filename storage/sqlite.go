package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Sqlite is a KeyValue backed by a local SQLite file, the default backend for
// single-device persistence.
type Sqlite struct {
	db *sql.DB
}

func NewSqlite(path string) (*Sqlite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
key TEXT PRIMARY KEY,
value TEXT NOT NULL
)`); err != nil {
		return nil, fmt.Errorf("sqlite: failed to migrate: %w", err)
	}

	return &Sqlite{db: db}, nil
}

func (s *Sqlite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("sqlite: failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Sqlite) Set(key, value string) error {
	if _, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
		return fmt.Errorf("sqlite: failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Sqlite) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Sqlite) Close() error {
	return s.db.Close()
}

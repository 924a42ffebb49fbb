// Package store persists catalog snapshots in a local SQLite database. Each
// snapshot is the full serialized contents of one catalog map, written
// wholesale under a well-known key after every mutating operation.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// SnapshotTracks and SnapshotFolders are the well-known snapshot keys.
	SnapshotTracks  = "tracks"
	SnapshotFolders = "folders"

	busyTimeoutMS = 5000
)

// Store wraps the SQLite database holding catalog snapshots.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the snapshot database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}
	u := url.URL{Scheme: "file", Path: path}
	db, err := sql.Open("sqlite", u.String())
	if err != nil {
		return nil, err
	}

	if err := configureDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// ReadSnapshot returns the payload stored under key, or ok=false when no
// snapshot has been written yet.
func (s *Store) ReadSnapshot(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return payload, true, nil
}

// WriteSnapshot replaces the payload stored under key. The write is durable
// when the call returns.
func (s *Store) WriteSnapshot(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)`,
		key, payload, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}

// DeleteSnapshot removes the payload stored under key. Missing keys are
// ignored.
func (s *Store) DeleteSnapshot(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

func configureDB(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// Single local writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return nil
}

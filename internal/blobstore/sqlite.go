package blobstore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// objectSchemaVersion is carried in PRAGMA user_version. Bumping it triggers
// a one-time upgrade that recreates the object namespace.
const objectSchemaVersion = 1

const objectTableSQL = `
CREATE TABLE IF NOT EXISTS objects (
  key TEXT PRIMARY KEY,
  data BLOB NOT NULL,
  size_bytes INTEGER NOT NULL,
  sha256 TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`

// SQLiteStore keeps blob objects in a dedicated SQLite file. Opening is lazy
// and memoized: the first operation opens the database, later operations
// reuse the handle, and a failed open is surfaced for that call only so the
// next call re-attempts it.
type SQLiteStore struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
	db *sql.DB
}

// NewSQLite returns a store backed by the SQLite file at path. The file is
// not touched until the first operation.
func NewSQLite(path string, logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteStore{path: path, logger: logger}
}

// Put stores data under key, replacing any previous entry.
func (s *SQLiteStore) Put(ctx context.Context, key string, data []byte) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("blob key is required")
	}
	db, err := s.ensureOpen(ctx)
	if err != nil {
		return err
	}
	digest := sha256.Sum256(data)
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO objects (key, data, size_bytes, sha256, created_at) VALUES (?, ?, ?, ?, ?)`,
		key, data, int64(len(data)), hex.EncodeToString(digest[:]), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	s.logger.Debug("blob stored", "key", key, "size_bytes", len(data))
	return nil
}

// Get returns the entry for key, or ok=false when absent.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db, err := s.ensureOpen(ctx)
	if err != nil {
		return nil, false, err
	}
	var data []byte
	err = db.QueryRowContext(ctx, `SELECT data FROM objects WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get blob %s: %w", key, err)
	}
	return data, true, nil
}

// Delete removes an entry. Missing keys are ignored.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	db, err := s.ensureOpen(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM objects WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database if it was opened.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) ensureOpen(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u := url.URL{Scheme: "file", Path: s.path}
	db, err := sql.Open("sqlite", u.String())
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure blob store: %w", err)
		}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := upgradeObjectSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.db = db
	return s.db, nil
}

// upgradeObjectSchema checks the stored schema version and (re)creates the
// object namespace when the version is behind. A store newer than this build
// is refused.
func upgradeObjectSchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read object schema version: %w", err)
	}
	if version > objectSchemaVersion {
		return fmt.Errorf("blob store schema version %d is newer than supported %d", version, objectSchemaVersion)
	}
	if version == objectSchemaVersion {
		return nil
	}

	if version > 0 {
		// Version bump: the namespace layout changed, recreate it.
		if _, err := db.Exec("DROP TABLE IF EXISTS objects"); err != nil {
			return fmt.Errorf("upgrade object namespace: %w", err)
		}
	}
	if _, err := db.Exec(objectTableSQL); err != nil {
		return fmt.Errorf("create object namespace: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", objectSchemaVersion)); err != nil {
		return fmt.Errorf("stamp object schema version: %w", err)
	}
	return nil
}

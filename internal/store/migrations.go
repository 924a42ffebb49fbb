package store

import (
	"database/sql"
	"fmt"
	"sort"
)

// Migration represents a schema migration step.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations is the ordered list of all schema migrations. Migration 2
// retires the legacy one-time reset tripwires that older installations kept
// as boolean flags in the same key space as the snapshots; the explicit
// version record here replaces them.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema: snapshots table",
		SQL: `
CREATE TABLE IF NOT EXISTS snapshots (
  key TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  updated_at TEXT NOT NULL
);
`,
	},
	{
		Version:     2,
		Description: "drop legacy reset flags and pre-versioning snapshot keys",
		SQL: `
DELETE FROM snapshots WHERE key IN ('needs_reset', 'reset_done', 'tracks_v0', 'folders_v0');
`,
	},
}

const migrationsTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at TEXT NOT NULL
);
`

// currentVersion returns the highest applied migration version, or 0.
func currentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// runMigrations applies all pending migrations in order.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(migrationsTableSQL); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied, err := currentVersion(db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if m.Version > applied {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
		}
	}
	return nil
}

func applyMigration(db *sql.DB, m Migration) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(m.SQL); err != nil {
		return err
	}
	if _, err = tx.Exec("INSERT INTO schema_migrations (version, applied_at) VALUES (?, datetime('now'))", m.Version); err != nil {
		return err
	}
	return tx.Commit()
}

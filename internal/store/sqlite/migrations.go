// Package sqlite provides SQLite database operations for quizdedup.
package sqlite

import (
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrations is the list of all database migrations in order.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "items_and_reports",
		SQL: `
			-- Question/answer items fed to the analysis engine
			CREATE TABLE IF NOT EXISTS items (
				id TEXT PRIMARY KEY,
				question TEXT NOT NULL,
				answer TEXT,
				tags TEXT,
				channel TEXT,
				difficulty TEXT,
				created_at_epoch INTEGER NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_items_channel ON items(channel);

			-- Saved analysis reports (full JSON payload per run)
			CREATE TABLE IF NOT EXISTS reports (
				id TEXT PRIMARY KEY,
				channel TEXT,
				generated_at TEXT NOT NULL,
				generated_at_epoch INTEGER NOT NULL,
				payload TEXT NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_reports_generated ON reports(generated_at_epoch DESC);
		`,
	},
}

// RunMigrations applies all pending migrations in order.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at_epoch INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range Migrations {
		var applied int
		err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.Version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if applied > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, name, applied_at_epoch)
			VALUES (?, ?, strftime('%s','now') * 1000)`, m.Version, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}

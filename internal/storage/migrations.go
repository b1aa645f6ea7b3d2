package storage

import "fmt"

// migrate creates the schema if it doesn't exist.
func (db *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	db.logger.Info("database migrations applied")
	return nil
}

var migrations = []string{
	// Chat sessions: one row per passenger per device session. data is a
	// JSON blob holding in-flight flow answers.
	`CREATE TABLE IF NOT EXISTS sessions (
		passenger_id TEXT NOT NULL,
		session_id   TEXT NOT NULL,
		state        TEXT NOT NULL DEFAULT 'menu',
		data         TEXT NOT NULL DEFAULT '{}',
		updated_at   TEXT NOT NULL DEFAULT (datetime('now')),
		PRIMARY KEY (passenger_id, session_id)
	)`,

	// Lost & found reports, keyed by the short ticket code shown to the
	// rider.
	`CREATE TABLE IF NOT EXISTS lost_found_reports (
		ticket_id    TEXT PRIMARY KEY,
		passenger_id TEXT NOT NULL,
		item_type    TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		station      TEXT NOT NULL DEFAULT '',
		lost_when    TEXT NOT NULL DEFAULT '',
		photo_url    TEXT NOT NULL DEFAULT '',
		name         TEXT NOT NULL DEFAULT '',
		phone        TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'open',
		created_at   TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_passenger ON lost_found_reports(passenger_id)`,

	// FAQ corpus served to the matcher at startup.
	`CREATE TABLE IF NOT EXISTS faq (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		question    TEXT NOT NULL,
		answer      TEXT NOT NULL,
		subcategory TEXT NOT NULL DEFAULT ''
	)`,
}

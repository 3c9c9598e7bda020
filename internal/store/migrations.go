package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id            INTEGER NOT NULL,
			title              TEXT NOT NULL,
			completed_sessions INTEGER NOT NULL DEFAULT 0,
			focus_seconds      INTEGER NOT NULL DEFAULT 0,
			created_at         TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id                          INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid                        TEXT NOT NULL UNIQUE,
			user_id                     INTEGER NOT NULL,
			task_id                     INTEGER REFERENCES tasks(id),
			variant                     TEXT NOT NULL,
			kind                        TEXT NOT NULL,
			status                      TEXT NOT NULL,
			planned_duration            INTEGER,
			minimum_duration            INTEGER NOT NULL DEFAULT 0,
			maximum_duration            INTEGER NOT NULL DEFAULT 0,
			actual_duration             INTEGER,
			start_time                  TEXT NOT NULL,
			paused_at                   TEXT,
			end_time                    TEXT,
			completed_at                TEXT,
			pause_duration              INTEGER NOT NULL DEFAULT 0,
			interruption_count          INTEGER NOT NULL DEFAULT 0,
			self_interruption_count     INTEGER NOT NULL DEFAULT 0,
			external_interruption_count INTEGER NOT NULL DEFAULT 0,
			interruption_total_time     INTEGER NOT NULL DEFAULT 0,
			last_interruption_cause     TEXT,
			interruptions               TEXT,
			focus_quality               INTEGER,
			productivity_rating         INTEGER,
			energy_before               INTEGER,
			energy_after                INTEGER,
			satisfaction                INTEGER,
			flow_state_achieved         INTEGER NOT NULL DEFAULT 0,
			flow_state_duration         INTEGER,
			distraction_level           TEXT,
			tasks_completed             INTEGER NOT NULL DEFAULT 0,
			notes                       TEXT NOT NULL DEFAULT '',
			accomplishments             TEXT NOT NULL DEFAULT '',
			objectives_set              TEXT NOT NULL DEFAULT '',
			objectives_achieved         TEXT NOT NULL DEFAULT '',
			location                    TEXT NOT NULL DEFAULT '',
			device                      TEXT NOT NULL DEFAULT '',
			ambient_sound               TEXT NOT NULL DEFAULT '',
			sequence                    INTEGER,
			created_at                  TEXT NOT NULL,
			updated_at                  TEXT NOT NULL
		)`,

		// Structural enforcement of the single-active-session invariant:
		// at most one in_progress/paused row per user can ever exist.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_active
			ON sessions(user_id)
			WHERE status IN ('in_progress', 'paused')`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_user_start
			ON sessions(user_id, start_time)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_task
			ON sessions(task_id)`,

		`CREATE TABLE IF NOT EXISTS preferences (
			user_id                   INTEGER PRIMARY KEY,
			work_duration             INTEGER NOT NULL,
			short_break_duration      INTEGER NOT NULL,
			long_break_duration       INTEGER NOT NULL,
			sessions_until_long_break INTEGER NOT NULL,
			updated_at                TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration statement: %w", err)
		}
	}

	if _, err := db.conn.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := db.conn.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return nil
}

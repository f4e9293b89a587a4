package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// whole list re-runs safely on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// migrations define the persisted layout: one row per tracker project, the
// raw ticket and journal facts, and the derived snapshot and scope-change
// series. Uniqueness of the merge and snapshot keys is enforced here, not
// by caller discipline, so duplicate merges are safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		identifier  TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		end_date    TEXT,
		created_on  TEXT NOT NULL,
		updated_on  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id              INTEGER NOT NULL,
		project_id      INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		subject         TEXT NOT NULL,
		estimated_hours REAL CHECK (estimated_hours IS NULL OR estimated_hours >= 0),
		status          TEXT NOT NULL,
		assignee_id     INTEGER,
		assignee_name   TEXT NOT NULL DEFAULT '',
		version_id      INTEGER,
		version_name    TEXT NOT NULL DEFAULT '',
		created_on      TEXT NOT NULL,
		updated_on      TEXT NOT NULL,
		deleted_on      TEXT,
		updated_at      TEXT NOT NULL,
		PRIMARY KEY (project_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS journal_entries (
		project_id  INTEGER NOT NULL,
		ticket_id   INTEGER NOT NULL,
		field       TEXT NOT NULL CHECK (field IN ('status', 'estimated_hours')),
		old_value   TEXT NOT NULL DEFAULT '',
		new_value   TEXT NOT NULL DEFAULT '',
		occurred_at TEXT NOT NULL,
		seq         INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		PRIMARY KEY (project_id, ticket_id, field, occurred_at, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_project_occurred
		ON journal_entries(project_id, occurred_at)`,

	`CREATE TABLE IF NOT EXISTS daily_snapshots (
		project_id        INTEGER NOT NULL,
		date              TEXT NOT NULL,
		total_hours       REAL NOT NULL,
		completed_hours   REAL NOT NULL,
		remaining_hours   REAL NOT NULL,
		added_hours       REAL NOT NULL DEFAULT 0,
		changed_hours     REAL NOT NULL DEFAULT 0,
		removed_hours     REAL NOT NULL DEFAULT 0,
		active_count      INTEGER NOT NULL,
		completed_count   INTEGER NOT NULL,
		unestimated_count INTEGER NOT NULL DEFAULT 0,
		updated_at        TEXT NOT NULL,
		PRIMARY KEY (project_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS scope_changes (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id     INTEGER NOT NULL,
		date           TEXT NOT NULL,
		ticket_id      INTEGER NOT NULL,
		ticket_subject TEXT NOT NULL DEFAULT '',
		kind           TEXT NOT NULL CHECK (kind IN ('added', 'modified', 'removed')),
		hours_delta    REAL NOT NULL,
		old_hours      REAL,
		new_hours      REAL,
		impact         TEXT NOT NULL,
		created_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scope_changes_project_date
		ON scope_changes(project_id, date)`,

	`CREATE TABLE IF NOT EXISTS sync_state (
		project_id    INTEGER PRIMARY KEY,
		last_fetch_at TEXT NOT NULL,
		last_seq      INTEGER NOT NULL DEFAULT 0,
		last_sync_id  TEXT NOT NULL DEFAULT '',
		updated_at    TEXT NOT NULL
	)`,
}

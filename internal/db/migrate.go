package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plan_runs (
		id           TEXT PRIMARY KEY,
		profile_json TEXT NOT NULL,
		today        TEXT NOT NULL,
		status       TEXT NOT NULL
		             CHECK(status IN ('completed','partial','failed')),
		qna_json     TEXT NOT NULL DEFAULT '[]',
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_runs_created ON plan_runs(created_at)`,

	`CREATE TABLE IF NOT EXISTS program_results (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id            TEXT NOT NULL REFERENCES plan_runs(id) ON DELETE CASCADE,
		position          INTEGER NOT NULL,
		program_json      TEXT NOT NULL,
		requirements_json TEXT NOT NULL,
		window_today      TEXT NOT NULL,
		window_deadline   TEXT NOT NULL,
		adjusted          INTEGER NOT NULL DEFAULT 0,
		original_deadline TEXT NOT NULL DEFAULT '',
		adjustment_reason TEXT NOT NULL DEFAULT '',
		outcome           TEXT NOT NULL
		                  CHECK(outcome IN ('ok','adjusted','degraded','generation_failed','error')),
		warnings_json     TEXT NOT NULL DEFAULT '[]',
		error             TEXT NOT NULL DEFAULT '',
		UNIQUE (run_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_program_results_run ON program_results(run_id)`,

	`CREATE TABLE IF NOT EXISTS timeline_tasks (
		result_id   INTEGER NOT NULL REFERENCES program_results(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date    TEXT NOT NULL,
		category    TEXT NOT NULL DEFAULT '',
		dependency  TEXT,
		status      TEXT NOT NULL DEFAULT 'Pending'
		            CHECK(status IN ('Pending','Done')),
		PRIMARY KEY (result_id, position)
	)`,

	// Where the run was requested from: the CLI or the HTTP API.
	`ALTER TABLE plan_runs ADD COLUMN source TEXT NOT NULL DEFAULT 'cli'`,
	`CREATE INDEX IF NOT EXISTS idx_plan_runs_source ON plan_runs(source)`,
}

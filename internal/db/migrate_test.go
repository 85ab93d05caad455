package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"plan_runs", "program_results", "timeline_tasks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_plan_runs_created", "idx_plan_runs_source", "idx_program_results_run"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_UpgradeAddsSourceColumn(t *testing.T) {
	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	// A database created before runs recorded their source.
	_, err = raw.Exec(`CREATE TABLE plan_runs (
		id TEXT PRIMARY KEY, profile_json TEXT NOT NULL, today TEXT NOT NULL,
		status TEXT NOT NULL, qna_json TEXT NOT NULL DEFAULT '[]', created_at TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO plan_runs (id, profile_json, today, status, created_at)
		VALUES ('r1', '{}', '2025-01-01', 'completed', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(raw))

	var source string
	require.NoError(t, raw.QueryRow(`SELECT source FROM plan_runs WHERE id = 'r1'`).Scan(&source))
	assert.Equal(t, "cli", source)
}

func TestMigrate_ConstraintsEnforced(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plan_runs (id, profile_json, today, status, created_at)
		VALUES ('r1', '{}', '2025-01-01', 'unknown', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "status CHECK should reject unknown values")

	_, err = db.Exec(`INSERT INTO program_results
		(run_id, position, program_json, requirements_json, window_today, window_deadline, outcome)
		VALUES ('missing', 0, '{}', '{}', '2025-01-01', '2025-09-01', 'ok')`)
	assert.Error(t, err, "foreign key should reject orphan results")
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gradplan.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

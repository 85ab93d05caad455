package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/gradplan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertRun(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO plan_runs (id, profile_json, today, status, created_at)
		VALUES (?, '{}', '2025-01-01', 'completed', '2025-01-01T00:00:00Z')`, id)
	return err
}

func runExists(t *testing.T, uow *db.SQLiteUnitOfWork, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM plan_runs WHERE id = ?`, id).Scan(&n)
	}))
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertRun(ctx, tx, "run-1")
	})
	require.NoError(t, err)
	assert.True(t, runExists(t, uow, "run-1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openUoW(t)
	sentinel := errors.New("persisting results failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertRun(ctx, tx, "run-2"); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, runExists(t, uow, "run-2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertRun(ctx, tx, "run-3")
			panic("boom")
		})
	})
	assert.False(t, runExists(t, uow, "run-3"))
}

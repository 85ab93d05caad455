package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/gradplan/internal/db"
)

// FailingUoW wraps a real database and injects Err into writes so rollback
// paths can be exercised. A write fails when it is the FailOn-th ExecContext
// inside the transaction (counting from 1), or when its SQL contains Match.
// Reads are never intercepted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error
}

// FailOnNthExec fails the nth write of every transaction.
func FailOnNthExec(database *sql.DB, n int32, err error) *FailingUoW {
	return &FailingUoW{DB: database, FailOn: n, Err: err}
}

// FailOnStatement fails any write whose SQL contains fragment, for example
// "INSERT INTO timeline_tasks".
func FailOnStatement(database *sql.DB, fragment string, err error) *FailingUoW {
	return &FailingUoW{DB: database, Match: fragment, Err: err}
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingTx{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow   *FailingUoW
	count atomic.Int32
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if f.uow.FailOn > 0 && n == f.uow.FailOn {
		return nil, f.uow.Err
	}
	if f.uow.Match != "" && strings.Contains(query, f.uow.Match) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

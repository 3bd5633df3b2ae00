package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/wanderplan/internal/db"
)

// FailingExecUoW runs the callback in a real transaction but makes the Nth
// matching ExecContext call fail with Err, so rollback tests can break a trip
// save at a chosen row.
//
// Match, when set, restricts counting to statements containing it (for
// example "INSERT INTO trip_activities"). Counting starts at 1. Reads pass
// through untouched.
type FailingExecUoW struct {
	DB     *sql.DB
	Match  string
	FailOn int32
	Err    error

	// Calls counts the matching statements seen by the last transaction.
	Calls atomic.Int32
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	u.Calls.Store(0)
	wrapped := &failingExec{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	uow *FailingExecUoW
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		if f.uow.Calls.Add(1) == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

package repositories

import (
	"context"
	"database/sql"
)

type landingTxKey struct{}

// dbExecutor is satisfied by both *sql.DB and *sql.Tx.
type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, landingTxKey{}, tx)
}

// writer returns the transaction opened by Atomic, or the primary.
func (r *Repository) writer(ctx context.Context) dbExecutor {
	if tx, ok := ctx.Value(landingTxKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.dbWrite
}

// reader stays on the transaction inside Atomic so reads see uncommitted rows.
func (r *Repository) reader(ctx context.Context) dbExecutor {
	if tx, ok := ctx.Value(landingTxKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.dbRead
}

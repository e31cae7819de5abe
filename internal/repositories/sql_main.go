package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
)

type sqlRepo struct {
	r *Repository
}

type Repository struct {
	dbWrite *sql.DB
	dbRead  *sql.DB
	config  config.Config
	common  sqlRepo

	lr *landingRepository
}

func NewSQLRepository(dbWrite *sql.DB, dbRead *sql.DB, cfg config.Config) *Repository {
	rtx := &Repository{
		dbWrite: dbWrite,
		dbRead:  dbRead,
		config:  cfg,
	}
	rtx.common.r = rtx
	rtx.lr = (*landingRepository)(&rtx.common)

	return rtx
}

//go:generate mockgen -source=sql_main.go -destination=mock/sql_main.go -package=mock
type SQLRepository interface {
	Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) error
	GetLandingRepository() LandingRepository
}

var _ SQLRepository = (*Repository)(nil)

// Atomic runs steps in one transaction. Repositories reached through the
// SQLRepository given to steps share it. A panic in steps rolls back.
func (r *Repository) Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) (err error) {
	tx, err := r.dbWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	xlog.Debug(ctx, "[LANDING-TX] begin")

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic in transaction: %v", p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
			xlog.Warn(ctx, "[LANDING-TX] rolled back", xlog.Err(err))
			return
		}

		err = tx.Commit()
		if errors.Is(err, sql.ErrTxDone) {
			err = nil
		}
		if err != nil {
			xlog.Error(ctx, "[LANDING-TX] commit failed", xlog.Err(err))
			return
		}
		xlog.Debug(ctx, "[LANDING-TX] committed")
	}()

	return steps(withTx(ctx, tx), r)
}

func (r *Repository) GetLandingRepository() LandingRepository {
	return r.lr
}

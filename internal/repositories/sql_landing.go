package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/monitoring"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=sql_landing.go -destination=mock/sql_landing.go -package=mock
type LandingRepository interface {
	// BulkInsert writes records into the landing interface table in chunks.
	// Run it inside Atomic so a failed chunk rolls back the whole batch.
	BulkInsert(ctx context.Context, records []models.LandingRecord) (int64, error)
	DeleteByBatchID(ctx context.Context, batchID string) (int64, error)
	CountByBatchID(ctx context.Context, batchID string) (map[models.Status]int, error)
}

type landingRepository sqlRepo

var _ LandingRepository = (*landingRepository)(nil)

func (lr *landingRepository) BulkInsert(ctx context.Context, records []models.LandingRecord) (inserted int64, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := lr.r.writer(ctx)

	for start := 0; start < len(records); start += landingInsertChunkSize {
		end := min(start+landingInsertChunkSize, len(records))

		query, args, err := buildInsertLandingQuery(records[start:end])
		if err != nil {
			return inserted, fmt.Errorf("failed to build insert query: %w", err)
		}

		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return inserted, fmt.Errorf("%w: %s", common.ErrBatchAlreadyLoaded, records[start].BatchID)
			}
			return inserted, fmt.Errorf("failed to insert landing records: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += affected
	}

	return inserted, nil
}

func (lr *landingRepository) DeleteByBatchID(ctx context.Context, batchID string) (deleted int64, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := lr.r.writer(ctx)

	res, err := db.ExecContext(ctx, queryDeleteLandingByBatchID, batchID)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (lr *landingRepository) CountByBatchID(ctx context.Context, batchID string) (counts map[models.Status]int, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := lr.r.reader(ctx)

	rows, err := db.QueryContext(ctx, queryCountLandingByBatchID, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts = make(map[models.Status]int)
	for rows.Next() {
		var (
			status string
			total  int
		)
		if err = rows.Scan(&status, &total); err != nil {
			return nil, err
		}
		counts[models.Status(status)] = total
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(counts) == 0 {
		return nil, common.ErrDataNotFound
	}

	return counts, nil
}

// isUniqueViolation handles both lib/pq and pgx errors since the
// newrelic driver wraps pgx.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	var stateErr interface{ SQLState() string }
	if errors.As(err, &stateErr) {
		return stateErr.SQLState() == pgUniqueViolation
	}

	return false
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

func TestLandingRepositoryTestSuite(t *testing.T) {
	t.Helper()
	suite.Run(t, new(landingTestSuite))
}

type landingTestSuite struct {
	suite.Suite
	writeDB *sql.DB
	readDB  *sql.DB
	mock    sqlmock.Sqlmock
	sqlRepo SQLRepository
	repo    LandingRepository
}

func (suite *landingTestSuite) SetupTest() {
	var err error
	var cfg config.Config

	suite.writeDB, suite.mock, err = sqlmock.New()
	require.NoError(suite.T(), err)

	suite.readDB = suite.writeDB

	suite.sqlRepo = NewSQLRepository(suite.writeDB, suite.readDB, cfg)
	suite.repo = suite.sqlRepo.GetLandingRepository()
}

func (suite *landingTestSuite) TearDownTest() {
	defer suite.writeDB.Close()
}

var insertLandingPrefix = regexp.QuoteMeta("INSERT INTO accounting_txn_interface (batch_id,source_system")

func (suite *landingTestSuite) TestRepository_BulkInsert() {
	records := func(n int) []models.LandingRecord {
		out := make([]models.LandingRecord, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, landingRecordFixture("B1", fmt.Sprintf("INV%04d", i)))
		}
		return out
	}

	testCases := []struct {
		name       string
		records    []models.LandingRecord
		setupMocks func()
		want       int64
		wantErr    error
	}{
		{
			name:    "single chunk",
			records: records(2),
			setupMocks: func() {
				suite.mock.ExpectExec(insertLandingPrefix).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
			want: 2,
		},
		{
			name:    "split into chunks",
			records: records(landingInsertChunkSize + 1),
			setupMocks: func() {
				suite.mock.ExpectExec(insertLandingPrefix).
					WillReturnResult(sqlmock.NewResult(0, landingInsertChunkSize))
				suite.mock.ExpectExec(insertLandingPrefix).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: landingInsertChunkSize + 1,
		},
		{
			name:       "nothing to insert",
			records:    nil,
			setupMocks: func() {},
			want:       0,
		},
		{
			name:    "batch already loaded",
			records: records(1),
			setupMocks: func() {
				suite.mock.ExpectExec(insertLandingPrefix).
					WillReturnError(&pq.Error{Code: pgUniqueViolation})
			},
			wantErr: common.ErrBatchAlreadyLoaded,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			tc.setupMocks()

			got, err := suite.repo.BulkInsert(context.Background(), tc.records)
			if tc.wantErr != nil {
				suite.ErrorIs(err, tc.wantErr)
			} else {
				suite.NoError(err)
				suite.Equal(tc.want, got)
			}
			suite.NoError(suite.mock.ExpectationsWereMet())
		})
	}
}

func (suite *landingTestSuite) TestRepository_BulkInsert_Atomic() {
	suite.Run("commit", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(insertLandingPrefix).
			WillReturnResult(sqlmock.NewResult(0, 1))
		suite.mock.ExpectCommit()

		err := suite.sqlRepo.Atomic(context.Background(), func(ctx context.Context, r SQLRepository) error {
			_, err := r.GetLandingRepository().BulkInsert(ctx, []models.LandingRecord{landingRecordFixture("B1", "INV1")})
			return err
		})
		suite.NoError(err)
		suite.NoError(suite.mock.ExpectationsWereMet())
	})

	suite.Run("rollback on error", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(insertLandingPrefix).
			WillReturnError(errors.New("connection reset"))
		suite.mock.ExpectRollback()

		err := suite.sqlRepo.Atomic(context.Background(), func(ctx context.Context, r SQLRepository) error {
			_, err := r.GetLandingRepository().BulkInsert(ctx, []models.LandingRecord{landingRecordFixture("B1", "INV1")})
			return err
		})
		suite.ErrorContains(err, "connection reset")
		suite.NoError(suite.mock.ExpectationsWereMet())
	})

	suite.Run("rollback on panic", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectRollback()

		err := suite.sqlRepo.Atomic(context.Background(), func(ctx context.Context, r SQLRepository) error {
			panic("boom")
		})
		suite.ErrorContains(err, "panic in transaction: boom")
		suite.NoError(suite.mock.ExpectationsWereMet())
	})
}

func (suite *landingTestSuite) TestRepository_DeleteByBatchID() {
	suite.mock.ExpectExec(regexp.QuoteMeta(queryDeleteLandingByBatchID)).
		WithArgs("B1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	got, err := suite.repo.DeleteByBatchID(context.Background(), "B1")
	suite.NoError(err)
	suite.Equal(int64(3), got)
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *landingTestSuite) TestRepository_CountByBatchID() {
	testCases := []struct {
		name       string
		setupMocks func()
		want       map[models.Status]int
		wantErr    error
	}{
		{
			name: "counts per status",
			setupMocks: func() {
				suite.mock.ExpectQuery(regexp.QuoteMeta(queryCountLandingByBatchID)).
					WithArgs("B1").
					WillReturnRows(sqlmock.NewRows([]string{"status_code", "count"}).
						AddRow("ERROR", 1).
						AddRow("READY", 4))
			},
			want: map[models.Status]int{models.StatusError: 1, models.StatusReady: 4},
		},
		{
			name: "unknown batch",
			setupMocks: func() {
				suite.mock.ExpectQuery(regexp.QuoteMeta(queryCountLandingByBatchID)).
					WithArgs("B1").
					WillReturnRows(sqlmock.NewRows([]string{"status_code", "count"}))
			},
			wantErr: common.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			tc.setupMocks()

			got, err := suite.repo.CountByBatchID(context.Background(), "B1")
			if tc.wantErr != nil {
				suite.ErrorIs(err, tc.wantErr)
			} else {
				suite.NoError(err)
				suite.Equal(tc.want, got)
			}
			suite.NoError(suite.mock.ExpectationsWereMet())
		})
	}
}

func Test_landingValues_MatchesColumns(t *testing.T) {
	rec := landingRecordFixture("B1", "INV1")
	values := landingValues(rec)
	require.Len(t, values, len(models.LandingColumns))

	assert.Equal(t, "B1", values[0])
	assert.Nil(t, values[8], "empty error_code is stored as NULL")
	assert.Equal(t, "N", values[50])
}

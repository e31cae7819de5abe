package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

func cacheTestHelper(t *testing.T) (redismock.ClientMock, CacheRepository) {
	t.Helper()
	t.Parallel()

	db, mock := redismock.NewClientMock()
	cacheRepo := NewCacheRepository(db)

	return mock, cacheRepo
}

func TestCacheRepository_Get(t *testing.T) {
	mock, rc := cacheTestHelper(t)

	tests := []struct {
		name    string
		key     string
		doMock  func(key string)
		want    string
		wantErr error
	}{
		{
			name: "trimmed value",
			key:  "landing:key",
			doMock: func(key string) {
				mock.ExpectGet(key).SetVal(" Success\n")
			},
			want: "Success",
		},
		{
			name: "missing key",
			key:  "landing:key",
			doMock: func(key string) {
				mock.ExpectGet(key).RedisNil()
			},
			wantErr: common.ErrDataNotFound,
		},
		{
			name: "redis error",
			key:  "landing:key",
			doMock: func(key string) {
				mock.ExpectGet(key).SetErr(redis.ErrClosed)
			},
			wantErr: redis.ErrClosed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doMock(tt.key)

			got, err := rc.Get(context.TODO(), tt.key)
			assert.Equal(t, tt.want, got)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.NoError(t, mock.ExpectationsWereMet())
			mock.ClearExpect()
		})
	}
}

func TestCacheRepository_BatchLock(t *testing.T) {
	mock, rc := cacheTestHelper(t)
	ttl := time.Hour

	tests := []struct {
		name    string
		doMock  func()
		wantErr error
	}{
		{
			name: "acquired",
			doMock: func() {
				mock.ExpectSetNX("landing:batch:SALE_20240115_000000", 1, ttl).SetVal(true)
			},
		},
		{
			name: "held by another run",
			doMock: func() {
				mock.ExpectSetNX("landing:batch:SALE_20240115_000000", 1, ttl).SetVal(false)
			},
			wantErr: common.ErrBatchAlreadyRunning,
		},
		{
			name: "redis error",
			doMock: func() {
				mock.ExpectSetNX("landing:batch:SALE_20240115_000000", 1, ttl).SetErr(redis.ErrClosed)
			},
			wantErr: redis.ErrClosed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doMock()

			err := rc.AcquireBatchLock(context.TODO(), "SALE_20240115_000000", ttl)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.NoError(t, mock.ExpectationsWereMet())
			mock.ClearExpect()
		})
	}

	mock.ExpectDel("landing:batch:SALE_20240115_000000").SetVal(1)
	assert.NoError(t, rc.ReleaseBatchLock(context.TODO(), "SALE_20240115_000000"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_BatchSummary(t *testing.T) {
	mock, rc := cacheTestHelper(t)

	summary := models.BatchSummary{
		Kind:          "landingBatch",
		BatchID:       "HR_20240125_090000",
		SourceSystem:  models.SourceSystemHR,
		Status:        models.BatchStatusCompleted,
		SourceRecords: 3,
		ErrorRecords:  1,
		StartedAt:     time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC),
		FinishedAt:    time.Date(2024, 1, 25, 9, 0, 5, 0, time.UTC),
	}
	raw, err := json.Marshal(summary)
	require.NoError(t, err)

	mock.ExpectSet("landing:batch:HR_20240125_090000:result", raw, 24*time.Hour).SetVal("OK")
	require.NoError(t, rc.SetBatchSummary(context.TODO(), summary, 24*time.Hour))

	mock.ExpectGet("landing:batch:HR_20240125_090000:result").SetVal(string(raw))
	got, err := rc.GetBatchSummary(context.TODO(), "HR_20240125_090000")
	require.NoError(t, err)
	assert.Equal(t, summary, got)

	mock.ExpectGet("landing:batch:MISSING:result").RedisNil()
	_, err = rc.GetBatchSummary(context.TODO(), "MISSING")
	assert.ErrorIs(t, err, common.ErrDataNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	keyBatchLock   = "landing:batch:%s"
	keyBatchResult = "landing:batch:%s:result"
)

//go:generate mockgen -source=cache.go -destination=mock/cache.go -package=mock
type CacheRepository interface {
	SetIfNotExists(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error

	// AcquireBatchLock returns common.ErrBatchAlreadyRunning when another run holds batchID.
	AcquireBatchLock(ctx context.Context, batchID string, ttl time.Duration) error
	ReleaseBatchLock(ctx context.Context, batchID string) error
	SetBatchSummary(ctx context.Context, summary models.BatchSummary, ttl time.Duration) error
	GetBatchSummary(ctx context.Context, batchID string) (models.BatchSummary, error)
}

type cacheClient struct {
	redis *redis.Client
}

func NewCacheRepository(redis *redis.Client) CacheRepository {
	return &cacheClient{redis: redis}
}

func (cc *cacheClient) SetIfNotExists(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	return cc.redis.SetNX(ctx, key, value, ttl).Result()
}

func (cc *cacheClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return cc.redis.Set(ctx, key, value, ttl).Err()
}

func (cc *cacheClient) Get(ctx context.Context, key string) (string, error) {
	val, err := cc.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return val, common.ErrDataNotFound
		}
		return val, err
	}
	val = strings.TrimSpace(val)

	return val, nil
}

func (cc *cacheClient) Del(ctx context.Context, keys ...string) error {
	return cc.redis.Del(ctx, keys...).Err()
}

func (cc *cacheClient) AcquireBatchLock(ctx context.Context, batchID string, ttl time.Duration) error {
	ok, err := cc.SetIfNotExists(ctx, fmt.Sprintf(keyBatchLock, batchID), 1, ttl)
	if err != nil {
		return fmt.Errorf("failed to acquire batch lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrBatchAlreadyRunning, batchID)
	}
	return nil
}

func (cc *cacheClient) ReleaseBatchLock(ctx context.Context, batchID string) error {
	return cc.Del(ctx, fmt.Sprintf(keyBatchLock, batchID))
}

func (cc *cacheClient) SetBatchSummary(ctx context.Context, summary models.BatchSummary, ttl time.Duration) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal batch summary: %w", err)
	}
	return cc.Set(ctx, fmt.Sprintf(keyBatchResult, summary.BatchID), b, ttl)
}

func (cc *cacheClient) GetBatchSummary(ctx context.Context, batchID string) (result models.BatchSummary, err error) {
	val, err := cc.Get(ctx, fmt.Sprintf(keyBatchResult, batchID))
	if err != nil {
		return result, err
	}
	if err = json.Unmarshal([]byte(val), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal batch summary: %w", err)
	}
	return result, nil
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryClient_GetOrSet(t *testing.T) {
	c := NewInMemoryClient[decimal.Decimal]()
	defer c.Close()

	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	calls := 0
	opts := GetOrSetOpts[decimal.Decimal]{
		Key: "USD/JPY",
		TTL: time.Hour,
		Callback: func() (decimal.Decimal, error) {
			calls++
			return decimal.RequireFromString("151.25"), nil
		},
	}

	got, err := c.GetOrSet(ctx, opts)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("151.25")))

	_, err = c.GetOrSet(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Hour)
	_, err = c.Get(ctx, "USD/JPY")
	assert.ErrorIs(t, err, ErrNotExists)

	_, err = c.GetOrSet(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	require.NoError(t, c.Delete(ctx, "USD/JPY"))
	_, err = c.Get(ctx, "USD/JPY")
	assert.ErrorIs(t, err, ErrNotExists)
}

func TestInMemoryClient_GetOrSetErrors(t *testing.T) {
	c := NewInMemoryClient[string]()
	defer c.Close()

	_, err := c.GetOrSet(context.Background(), GetOrSetOpts[string]{Key: "k"})
	assert.ErrorIs(t, err, ErrCallbackNotProvided)

	boom := errors.New("boom")
	_, err = c.GetOrSet(context.Background(), GetOrSetOpts[string]{
		Key:      "k",
		Callback: func() (string, error) { return "", boom },
	})
	assert.ErrorIs(t, err, boom)

	_, err = c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotExists)
}

func TestRedisClient_GetOrSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisClient[string](db, "landing:fx:")
	ctx := context.Background()

	mock.ExpectGet("landing:fx:USD/JPY").RedisNil()
	mock.ExpectSet("landing:fx:USD/JPY", []byte(`"150"`), time.Hour).SetVal("OK")

	got, err := c.GetOrSet(ctx, GetOrSetOpts[string]{
		Key:      "USD/JPY",
		TTL:      time.Hour,
		Callback: func() (string, error) { return "150", nil },
	})
	require.NoError(t, err)
	assert.Equal(t, "150", got)

	mock.ExpectGet("landing:fx:USD/JPY").SetVal(`"150"`)
	got, err = c.Get(ctx, "USD/JPY")
	require.NoError(t, err)
	assert.Equal(t, "150", got)

	mock.ExpectDel("landing:fx:USD/JPY").SetVal(1)
	assert.NoError(t, c.Delete(ctx, "USD/JPY"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

package retry

import (
	"context"
	"time"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"

	"github.com/cenkalti/backoff/v4"
)

const DefaultMaxRetries uint64 = 3

type Retryer interface {
	// Retry runs operation until it succeeds, returns a permanent error or
	// runs out of retries. In the last two cases dlqCallback is called and its
	// error is returned.
	Retry(ctx context.Context, operation, dlqCallback func() error) error
	StopRetryWithErr(err error) error
}

type exponentialBackoff struct {
	ebCfg           config.ExponentialBackOffConfig
	initialInterval time.Duration
}

type Option func(*exponentialBackoff)

// WithInitialInterval overrides the first wait between attempts.
func WithInitialInterval(d time.Duration) Option {
	return func(eb *exponentialBackoff) {
		eb.initialInterval = d
	}
}

func NewExponentialBackOff(ebCfg config.ExponentialBackOffConfig, opts ...Option) Retryer {
	if ebCfg.MaxBackoffTime <= 0 {
		ebCfg.MaxBackoffTime = backoff.DefaultMaxElapsedTime
	}

	if ebCfg.BackoffMultiplier <= 0 {
		ebCfg.BackoffMultiplier = backoff.DefaultMultiplier
	}

	if ebCfg.MaxRetries <= 0 {
		ebCfg.MaxRetries = DefaultMaxRetries
	}

	r := &exponentialBackoff{ebCfg: ebCfg, initialInterval: backoff.DefaultInitialInterval}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *exponentialBackoff) Retry(ctx context.Context, operation, dlqCallback func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.initialInterval
	eb.MaxElapsedTime = r.ebCfg.MaxBackoffTime
	eb.Multiplier = r.ebCfg.BackoffMultiplier

	attempt := 0
	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(eb, r.ebCfg.MaxRetries), ctx),
		func(err error, wait time.Duration) {
			attempt++
			xlog.Debug(ctx, "[RETRY]", xlog.Int("attempt", attempt), xlog.Duration("wait", wait), xlog.Err(err))
		},
	)
	if err == nil {
		return nil
	}

	xlog.Warn(ctx, "[RETRY] retries exhausted, calling dlq", xlog.Err(err))
	if dlqCallback == nil {
		return err
	}

	return dlqCallback()
}

// StopRetryWithErr marks err as permanent. Return it from operation to skip the remaining retries.
func (r *exponentialBackoff) StopRetryWithErr(err error) error {
	return backoff.Permanent(err)
}

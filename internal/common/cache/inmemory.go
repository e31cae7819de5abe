package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type InMemoryClient[T any] struct {
	cache sync.Map
	done  chan struct{}
	once  sync.Once
	now   func() time.Time
}

type cachedValue struct {
	Value []byte
	ExpAt time.Time
}

func (cv *cachedValue) expired(now time.Time) bool {
	return !cv.ExpAt.IsZero() && cv.ExpAt.Before(now)
}

func NewInMemoryClient[T any]() *InMemoryClient[T] {
	m := &InMemoryClient[T]{
		done: make(chan struct{}),
		now:  time.Now,
	}

	go m.backgroundCleaner()
	return m
}

func (m *InMemoryClient[T]) Get(_ context.Context, key string) (result T, err error) {
	valInterface, found := m.cache.Load(key)
	if !found {
		return result, ErrNotExists
	}

	val, ok := valInterface.(*cachedValue)
	if !ok {
		return result, ErrInvalidType
	}

	if val.expired(m.now()) {
		m.cache.Delete(key)
		return result, ErrNotExists
	}

	if err = json.Unmarshal(val.Value, &result); err != nil {
		return result, err
	}

	return result, nil
}

// Set stores object for ttl; ttl <= 0 keeps it until deleted.
func (m *InMemoryClient[T]) Set(_ context.Context, key string, object T, ttl time.Duration) error {
	val, err := json.Marshal(object)
	if err != nil {
		return err
	}

	cv := &cachedValue{Value: val}
	if ttl > 0 {
		cv.ExpAt = m.now().Add(ttl)
	}

	m.cache.Store(key, cv)
	return nil
}

func (m *InMemoryClient[T]) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *InMemoryClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error) {
	return getOrSet[T](ctx, m, opts)
}

func (m *InMemoryClient[T]) backgroundCleaner() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := m.now()
			m.cache.Range(func(key, value interface{}) bool {
				cv, ok := value.(*cachedValue)
				if !ok || cv.expired(now) {
					m.cache.Delete(key)
				}
				return true
			})
		case <-m.done:
			return
		}
	}
}

// Close stops the background cleaner.
func (m *InMemoryClient[T]) Close() {
	m.once.Do(func() { close(m.done) })
}

package safeaccess

import (
	"sync"
)

// Value guards a value shared between the refresh goroutine and readers.
type Value[T any] struct {
	guard sync.RWMutex
	data  T
}

func New[T any](data T) *Value[T] {
	return &Value[T]{
		data: data,
	}
}

func (v *Value[T]) Load() T {
	v.guard.RLock()
	item := v.data
	v.guard.RUnlock()

	return item
}

func (v *Value[T]) Store(data T) {
	v.guard.Lock()
	v.data = data
	v.guard.Unlock()
}

// Update replaces the value with fn(current) under the write lock.
func (v *Value[T]) Update(fn func(T) T) {
	v.guard.Lock()
	v.data = fn(v.data)
	v.guard.Unlock()
}

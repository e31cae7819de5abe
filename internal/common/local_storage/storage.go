package localstorage

import (
	"encoding/json"
)

// LocalStorage is a key/value store private to one process, e.g. the payroll
// rows of one HR batch indexed by employee id.
type LocalStorage[T any] interface {
	// Get returns the value of key and whether it was found.
	Get(key string) (T, bool, error)

	Set(key string, value T) error

	// SetMany writes all entries in one batch.
	SetMany(entries map[string]T) error

	Delete(key string) error

	// ForEach iterates all entries in key order.
	ForEach(func(key string, value T) error) error

	Close() error

	// Clean removes the storage files. Call it after Close.
	Clean() error
}

type (
	MarshalFunc   func(v any) ([]byte, error)
	UnmarshalFunc func(data []byte, v any) error
)

var (
	Marshal   MarshalFunc   = json.Marshal
	Unmarshal UnmarshalFunc = json.Unmarshal
)

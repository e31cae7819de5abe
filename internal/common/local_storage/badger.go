package localstorage

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

type badgerStorage[T any] struct {
	db     *badger.DB
	pathDB string
}

type badgerOptions struct {
	inMemory bool
}

type BadgerOption func(*badgerOptions)

// WithInMemory keeps the data in memory only.
func WithInMemory() BadgerOption {
	return func(o *badgerOptions) { o.inMemory = true }
}

// NewBadgerStorage opens a fresh store under a temp directory named after bucket.
func NewBadgerStorage[T any](bucket string, opts ...BadgerOption) (LocalStorage[T], error) {
	o := &badgerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var (
		pathDB string
		bOpts  badger.Options
	)
	if o.inMemory {
		bOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir, err := os.MkdirTemp("", bucket+"-")
		if err != nil {
			return nil, fmt.Errorf("failed to create localstorage dir: %w", err)
		}
		pathDB = dir
		bOpts = badger.DefaultOptions(pathDB)
	}
	bOpts.Logger = nil

	db, err := badger.Open(bOpts)
	if err != nil {
		return nil, err
	}

	return &badgerStorage[T]{
		db:     db,
		pathDB: pathDB,
	}, nil
}

func (b badgerStorage[T]) Get(key string) (T, bool, error) {
	var val T
	var rawVal []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		rawVal, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return val, false, fmt.Errorf("failed to get value from localstorage: %w", err)
	}

	if rawVal == nil {
		return val, false, nil
	}

	if err = Unmarshal(rawVal, &val); err != nil {
		return val, false, fmt.Errorf("failed to unmarshal value from localstorage: %w", err)
	}

	return val, true, nil
}

func (b badgerStorage[T]) Set(key string, value T) error {
	rawVal, err := Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), rawVal)
	})
	if err != nil {
		return fmt.Errorf("failed to set value to localstorage: %w", err)
	}

	return nil
}

func (b badgerStorage[T]) SetMany(entries map[string]T) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()

	for key, value := range entries {
		rawVal, err := Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value of %s: %w", key, err)
		}
		if err = wb.Set([]byte(key), rawVal); err != nil {
			return fmt.Errorf("failed to set value to localstorage: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("failed to flush localstorage batch: %w", err)
	}

	return nil
}

func (b badgerStorage[T]) Delete(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete value from localstorage: %w", err)
	}

	return nil
}

func (b badgerStorage[T]) Clean() error {
	if b.pathDB == "" {
		return nil
	}
	return os.RemoveAll(b.pathDB)
}

func (b badgerStorage[T]) Close() error {
	return b.db.Close()
}

func (b badgerStorage[T]) ForEach(f func(key string, value T) error) error {
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			var val T
			if err = Unmarshal(v, &val); err != nil {
				return fmt.Errorf("failed to unmarshal value: %w", err)
			}

			if err = f(string(item.KeyCopy(nil)), val); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to iterate over localstorage: %w", err)
	}

	return nil
}

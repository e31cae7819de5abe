package safeaccess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"cloud.google.com/go/storage"
)

// ObjectStorageClient keeps a json document from object storage in memory.
type ObjectStorageClient[T any] interface {
	// LoadFile reads the object and replaces the local value. A missing object is not an error.
	LoadFile(ctx context.Context) error

	// UpdateFile writes the local value back to the object.
	UpdateFile(ctx context.Context) error

	// Loaded reports whether the object has been read at least once.
	Loaded() bool

	Value() *Value[T]
}

type GCSJson[T any] struct {
	object *storage.ObjectHandle
	val    Value[T]
	loaded atomic.Bool
}

func NewGCSJson[T any](object *storage.ObjectHandle) *GCSJson[T] {
	return &GCSJson[T]{
		object: object,
	}
}

func (g *GCSJson[T]) LoadFile(ctx context.Context) error {
	r, err := g.object.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}

		return fmt.Errorf("failed to init reader: %w", err)
	}
	defer r.Close()

	bFile, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var obj T
	if err = json.Unmarshal(bFile, &obj); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", g.object.ObjectName(), err)
	}

	g.val.Store(obj)
	g.loaded.Store(true)

	return nil
}

func (g *GCSJson[T]) UpdateFile(ctx context.Context) error {
	bFile, err := json.Marshal(g.val.Load())
	if err != nil {
		return fmt.Errorf("failed to marshal file: %w", err)
	}

	w := g.object.NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "no-store"

	if _, err = w.Write(bFile); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	g.loaded.Store(true)

	return nil
}

func (g *GCSJson[T]) Loaded() bool {
	return g.loaded.Load()
}

func (g *GCSJson[T]) Value() *Value[T] {
	return &g.val
}

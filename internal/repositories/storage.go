package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const defaultErrorDataPrefix = "error-data"

// StorageRepository reads and writes batch files. A payload with a bucket is
// served from cloud storage, anything else from the local filesystem.
//
//go:generate mockgen -source=storage.go -destination=mock/storage.go -package=mock
type StorageRepository interface {
	NewReader(ctx context.Context, payload models.CloudStoragePayload) (io.ReadCloser, error)
	NewWriter(ctx context.Context, payload models.CloudStoragePayload) (io.WriteCloser, error)
	WriteStream(ctx context.Context, payload models.CloudStoragePayload, data <-chan []byte) models.WriteStreamResult
	GetURL(payload models.CloudStoragePayload) (url string)
	DeleteFile(ctx context.Context, payload models.CloudStoragePayload) error
	IsObjectExist(ctx context.Context, payload models.CloudStoragePayload) (isExist bool, url string)
	// ErrorDataPayload addresses filename under the error-data prefix of the default bucket.
	ErrorDataPayload(filename string) models.CloudStoragePayload
	Close() error
}

type storageRepository struct {
	config config.CloudStorage
	opts   []option.ClientOption

	once      sync.Once
	client    *storage.Client
	clientErr error
}

// NewStorageRepository creates the cloud storage client lazily, on the first gs:// payload.
func NewStorageRepository(cfg config.CloudStorage, opts ...option.ClientOption) StorageRepository {
	if cfg.ErrorDataPrefix == "" {
		cfg.ErrorDataPrefix = defaultErrorDataPrefix
	}
	return &storageRepository{config: cfg, opts: opts}
}

func (s *storageRepository) gcs() (*storage.Client, error) {
	s.once.Do(func() {
		s.client, s.clientErr = storage.NewClient(context.Background(), s.opts...)
	})
	if s.clientErr != nil {
		return nil, fmt.Errorf("failed to init cloud storage: %w", s.clientErr)
	}
	return s.client, nil
}

func (s *storageRepository) object(payload models.CloudStoragePayload) (*storage.ObjectHandle, error) {
	client, err := s.gcs()
	if err != nil {
		return nil, err
	}
	return client.Bucket(payload.Bucket).Object(payload.GetFilePath()), nil
}

func (s *storageRepository) GetURL(payload models.CloudStoragePayload) (url string) {
	if !payload.IsCloud() {
		return payload.GetFilePath()
	}
	if s.config.BaseURL == "" {
		return payload.String()
	}
	return fmt.Sprintf("%s/%s/%s", s.config.BaseURL, payload.Bucket, payload.GetFilePath())
}

func (s *storageRepository) ErrorDataPayload(filename string) models.CloudStoragePayload {
	return models.CloudStoragePayload{
		Bucket:   s.config.BucketName,
		Path:     s.config.ErrorDataPrefix,
		Filename: filename,
	}
}

func (s *storageRepository) NewReader(ctx context.Context, payload models.CloudStoragePayload) (io.ReadCloser, error) {
	if payload.Filename == "" {
		return nil, common.ErrFilePathEmpty
	}

	if !payload.IsCloud() {
		f, err := os.Open(payload.GetFilePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return f, nil
	}

	obj, err := s.object(payload)
	if err != nil {
		return nil, err
	}

	rc, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object in bucket: %w", err)
	}

	return rc, nil
}

func (s *storageRepository) NewWriter(ctx context.Context, payload models.CloudStoragePayload) (io.WriteCloser, error) {
	if payload.Filename == "" {
		return nil, common.ErrFilePathEmpty
	}

	if !payload.IsCloud() {
		if payload.Path != "" {
			if err := os.MkdirAll(payload.Path, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
		f, err := os.Create(filepath.Clean(payload.GetFilePath()))
		if err != nil {
			return nil, fmt.Errorf("failed to create file: %w", err)
		}
		return f, nil
	}

	obj, err := s.object(payload)
	if err != nil {
		return nil, err
	}

	writer := obj.NewWriter(ctx)
	writer.ContentDisposition = fmt.Sprintf("attachment; filename=%s", payload.Filename)
	return writer, nil
}

func (s *storageRepository) WriteStream(ctx context.Context, payload models.CloudStoragePayload, data <-chan []byte) models.WriteStreamResult {
	ch := make(chan error)
	r := models.NewWriteStreamResult(ch, s.GetURL(payload))

	go func() {
		defer close(ch)

		writer, err := s.NewWriter(ctx, payload)
		if err != nil {
			ch <- err
			for range data {
			}
			return
		}

		defer func() {
			if err := writer.Close(); err != nil {
				ch <- err
			}
		}()

		for v := range data {
			select {
			case <-ctx.Done():
				ch <- ctx.Err()
				for range data {
				}
				return
			default:
				if _, err := writer.Write(v); err != nil {
					ch <- err
				}
			}
		}
	}()

	return r
}

func (s *storageRepository) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *storageRepository) DeleteFile(ctx context.Context, payload models.CloudStoragePayload) error {
	if !payload.IsCloud() {
		err := os.Remove(payload.GetFilePath())
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	obj, err := s.object(payload)
	if err != nil {
		return err
	}

	err = obj.Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (s *storageRepository) IsObjectExist(ctx context.Context, payload models.CloudStoragePayload) (isExist bool, url string) {
	if !payload.IsCloud() {
		if _, err := os.Stat(payload.GetFilePath()); err == nil {
			return true, s.GetURL(payload)
		}
		return false, ""
	}

	obj, err := s.object(payload)
	if err != nil {
		return false, ""
	}

	if _, err = obj.Attrs(ctx); err == nil {
		isExist = true
		url = s.GetURL(payload)
	}

	return
}

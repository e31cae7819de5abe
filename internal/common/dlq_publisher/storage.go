package dlqpublisher

import (
	"context"
	"fmt"
	"io"
	"strings"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

// ObjectWriter is the part of the storage repository the file DLQ needs.
type ObjectWriter interface {
	NewWriter(ctx context.Context, payload models.CloudStoragePayload) (io.WriteCloser, error)
	ErrorDataPayload(filename string) models.CloudStoragePayload
	GetURL(payload models.CloudStoragePayload) (url string)
}

type storageDlq struct {
	writer ObjectWriter
}

// NewStorage writes every failed payload as its own object under the error-data prefix,
// named {sink}_{batch_id}_{timestamp}.csv.
func NewStorage(w ObjectWriter) Publisher {
	return storageDlq{writer: w}
}

func (d storageDlq) Publish(ctx context.Context, message models.FailedMessage) (err error) {
	if message.CauseError != nil && message.Error == "" {
		message.Error = message.CauseError.Error()
	}

	payload := d.writer.ErrorDataPayload(FileName(message))
	defer func() {
		if err != nil {
			xlog.Error(ctx, prefixLogMessage,
				xlog.String("status", "write dlq file failed"),
				xlog.String("path", payload.String()),
				xlog.Err(err))
		}
	}()

	w, err := d.writer.NewWriter(ctx, payload)
	if err != nil {
		return err
	}

	if _, err = w.Write(message.Payload); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write dlq payload: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close dlq file: %w", err)
	}

	xlog.Warn(ctx, prefixLogMessage,
		xlog.String("status", "payload parked in error-data"),
		xlog.String("sink", message.Sink),
		xlog.String("batchId", message.BatchID),
		xlog.String("url", d.writer.GetURL(payload)),
		xlog.String("cause", message.Error),
	)

	return nil
}

// FileName is the object name of a parked payload.
func FileName(message models.FailedMessage) string {
	return fmt.Sprintf("%s_%s_%s.csv",
		strings.ToLower(message.Sink),
		message.BatchID,
		message.Timestamp.UTC().Format(common.DateFormatBatchID))
}

package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const GCSScheme = "gs://"

// CloudStoragePayload addresses one object; Bucket is empty for local files.
type CloudStoragePayload struct {
	Bucket   string
	Filename string
	Path     string
}

func (c CloudStoragePayload) GetFilePath() string {
	if c.Path == "" {
		return c.Filename
	}
	return fmt.Sprintf("%s/%s", c.Path, c.Filename)
}

func (c CloudStoragePayload) IsCloud() bool {
	return c.Bucket != ""
}

func (c CloudStoragePayload) String() string {
	if c.IsCloud() {
		return fmt.Sprintf("%s%s/%s", GCSScheme, c.Bucket, c.GetFilePath())
	}
	return c.GetFilePath()
}

// NewCloudStoragePayload splits "gs://bucket/dir/file.csv" or a local path.
func NewCloudStoragePayload(input string) CloudStoragePayload {
	var bucket string
	if strings.HasPrefix(input, GCSScheme) {
		rest := strings.TrimPrefix(input, GCSScheme)
		bucket, input, _ = strings.Cut(rest, "/")
	}

	input = filepath.Clean(input)
	path := filepath.Dir(input)
	filename := filepath.Base(input)

	if strings.TrimSpace(path) == "." {
		path = ""
	}

	return CloudStoragePayload{Bucket: bucket, Filename: filename, Path: path}
}

type WriteStreamResult struct {
	errCh <-chan error
	url   string
}

func NewWriteStreamResult(errCh <-chan error, url string) WriteStreamResult {
	return WriteStreamResult{errCh: errCh, url: url}
}

func (r WriteStreamResult) Wait() (string, error) {
	var errs *multierror.Error
	for e := range r.errCh {
		errs = multierror.Append(errs, e)
	}

	return r.url, errs.ErrorOrNil()
}

const (
	LandingFilePrefix   = "accounting_txn_interface"
	LandingFileName     = LandingFilePrefix + ".csv"
	ErrorReportFileName = "landing_errors"
)

// LandingFileNameFor is the per-system output file, e.g. accounting_txn_interface_sales.csv.
func LandingFileNameFor(s SourceSystem) string {
	return fmt.Sprintf("%s_%s.csv", LandingFilePrefix, s.FileSuffix())
}

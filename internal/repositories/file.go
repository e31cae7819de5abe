package repositories

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type FileRepository interface {
	// StreamReadSourceRecords decodes a csv export into header-keyed records.
	// The channel is closed after the last row or the first error.
	StreamReadSourceRecords(ctx context.Context, fileRead io.Reader) <-chan StreamReadSourceRecordResult
	StreamReadMultipartFile(ctx context.Context, file *multipart.FileHeader) <-chan StreamReadSourceRecordResult
	WriteLandingCSV(w io.Writer, records []models.LandingRecord) error
	// MergeLandingCSV writes the canonical header once followed by the rows of every src.
	MergeLandingCSV(ctx context.Context, dst io.Writer, srcs ...io.Reader) (rows int, err error)
}

type fileRepo struct{}

func NewFileRepository() FileRepository {
	return &fileRepo{}
}

type StreamReadSourceRecordResult struct {
	// Line is the 1-based data row number, the header excluded.
	Line   int
	Record models.SourceRecord
	Err    error
}

func newCSVReader(r io.Reader) *csv.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	csvReader := csv.NewReader(br)
	csvReader.ReuseRecord = true
	return csvReader
}

func (f *fileRepo) StreamReadSourceRecords(ctx context.Context, fileRead io.Reader) <-chan StreamReadSourceRecordResult {
	resultCh := make(chan StreamReadSourceRecordResult)

	go func() {
		defer close(resultCh)

		send := func(res StreamReadSourceRecordResult) bool {
			select {
			case <-ctx.Done():
				return false
			case resultCh <- res:
				return true
			}
		}

		csvReader := newCSVReader(fileRead)

		header, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			send(StreamReadSourceRecordResult{Err: fmt.Errorf("failed to read header: %w", err)})
			return
		}

		columns := make([]string, len(header))
		for i, h := range header {
			columns[i] = strings.ToLower(strings.TrimSpace(h))
		}

		for line := 1; ; line++ {
			row, err := csvReader.Read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				if errors.Is(err, csv.ErrFieldCount) {
					err = fmt.Errorf("%w: line %d", common.ErrCSVHeaderMismatch, line)
				}
				send(StreamReadSourceRecordResult{Line: line, Err: err})
				return
			}

			if isEmptyRow(row) {
				continue
			}

			record := make(models.SourceRecord, len(columns))
			for i, col := range columns {
				record[col] = row[i]
			}

			if !send(StreamReadSourceRecordResult{Line: line, Record: record}) {
				return
			}
		}
	}()

	return resultCh
}

func (f *fileRepo) StreamReadMultipartFile(ctx context.Context, file *multipart.FileHeader) <-chan StreamReadSourceRecordResult {
	openedFile, err := file.Open()
	if err != nil {
		resultCh := make(chan StreamReadSourceRecordResult, 1)
		resultCh <- StreamReadSourceRecordResult{Err: err}
		close(resultCh)
		return resultCh
	}

	inner := f.StreamReadSourceRecords(ctx, openedFile)
	resultCh := make(chan StreamReadSourceRecordResult)
	go func() {
		defer close(resultCh)
		defer openedFile.Close()

		for res := range inner {
			select {
			case <-ctx.Done():
				return
			case resultCh <- res:
			}
		}
	}()

	return resultCh
}

func (f *fileRepo) WriteLandingCSV(w io.Writer, records []models.LandingRecord) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(models.LandingColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		if err := csvWriter.Write(records[i].ToRow()); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func (f *fileRepo) MergeLandingCSV(ctx context.Context, dst io.Writer, srcs ...io.Reader) (rows int, err error) {
	csvWriter := csv.NewWriter(dst)
	if err = csvWriter.Write(models.LandingColumns); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for i, src := range srcs {
		csvReader := newCSVReader(src)

		header, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				continue
			}
			return rows, fmt.Errorf("failed to read header of file %d: %w", i+1, err)
		}
		if len(header) != len(models.LandingColumns) {
			return rows, fmt.Errorf("%w: file %d has %d columns", common.ErrCSVHeaderMismatch, i+1, len(header))
		}

		for {
			if err = ctx.Err(); err != nil {
				return rows, err
			}

			row, err := csvReader.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return rows, fmt.Errorf("failed to read file %d: %w", i+1, err)
			}

			if err = csvWriter.Write(row); err != nil {
				return rows, err
			}
			rows++
		}
	}

	csvWriter.Flush()
	return rows, csvWriter.Error()
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

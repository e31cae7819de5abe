package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/validation"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/monitoring"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services/transformer"

	"github.com/hashicorp/go-multierror"
	"github.com/xuri/excelize/v2"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const (
	logMessageBatch = "[LANDING-BATCH]"

	sinkSQL   = "SQL"
	sinkKafka = "KAFKA"

	defaultBatchLockTTL = time.Hour
	batchSummaryTTL     = 7 * 24 * time.Hour

	errorReportSheet = "Errors"
)

var errorReportHeader = []any{
	"batch_id", "source_system", "source_doc_type", "source_doc_id", "source_line_id",
	"error_code", "error_message", "description",
}

//go:generate mockgen -source=batch_service.go -destination=mock/batch_service.go -package=mock
type BatchService interface {
	// Run lands one source export: read, transform, write the landing file
	// and deliver it to the enabled sinks.
	Run(ctx context.Context, req models.BatchRequest) (result models.BatchResult, err error)
	// TransformRecords transforms rows that are already in memory. HR rows
	// must carry their payroll columns. No file is written and no error
	// threshold is applied.
	TransformRecords(ctx context.Context, system models.SourceSystem, batchID string, records []models.SourceRecord) (result models.BatchResult, err error)
	GetBatchSummary(ctx context.Context, batchID string) (models.BatchSummary, error)
	ListErrorCodes(ctx context.Context) []models.ErrorCodeOut
}

type batch service

var _ BatchService = (*batch)(nil)

type transformOptions struct {
	workers   int
	threshold int
}

func (s *batch) Run(ctx context.Context, req models.BatchRequest) (result models.BatchResult, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err),
			monitoring.WithFinishXlogFields(xlog.String("batch_id", result.BatchID), xlog.String("source_system", string(req.SourceSystem))))
	}()

	if err = validation.ValidateStruct(req); err != nil {
		err = fmt.Errorf("%w: %v", common.ErrValidation, err)
		return
	}

	result = models.BatchResult{
		BatchID:      s.resolveBatchID(req.SourceSystem, req.BatchID),
		SourceSystem: req.SourceSystem,
		StartedAt:    s.srv.now(),
	}

	if s.srv.conf.Sinks.BatchLockEnabled && s.srv.cacheRepo != nil {
		if err = s.srv.cacheRepo.AcquireBatchLock(ctx, result.BatchID, s.lockTTL()); err != nil {
			return
		}
		defer func() {
			if errRelease := s.srv.cacheRepo.ReleaseBatchLock(ctx, result.BatchID); errRelease != nil {
				xlog.Warn(ctx, logMessageBatch, xlog.String("batchId", result.BatchID), xlog.Err(errRelease))
			}
		}()
	}

	defer func() { s.finish(ctx, &result, err) }()

	records, skipped, err := s.readSource(ctx, req)
	if err != nil {
		return
	}
	result.SourceRecords = len(records)
	result.SkippedRecords = skipped

	result.LandingRecords, result.ErrorRecords, err = s.transform(ctx, req.SourceSystem, result.BatchID, records, transformOptions{
		workers:   s.workers(req.Workers),
		threshold: s.threshold(req),
	})
	if err != nil {
		return
	}

	output := s.outputPayload(req)
	if err = s.writeLandingFile(ctx, output, result.LandingRecords); err != nil {
		return
	}
	result.OutputPath = s.srv.storageRepo.GetURL(output)

	if err = s.deliver(ctx, result); err != nil {
		return
	}

	if s.srv.conf.Sinks.ErrorReportEnabled {
		url, errReport := s.writeErrorReport(ctx, result)
		if errReport != nil {
			xlog.Warn(ctx, logMessageBatch,
				xlog.String("status", "failed write error report"),
				xlog.String("batchId", result.BatchID),
				xlog.Err(errReport))
		}
		result.ErrorReportURL = url
	}

	return result, nil
}

func (s *batch) TransformRecords(ctx context.Context, system models.SourceSystem, batchID string, records []models.SourceRecord) (result models.BatchResult, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	result = models.BatchResult{
		BatchID:       s.resolveBatchID(system, batchID),
		SourceSystem:  system,
		SourceRecords: len(records),
		StartedAt:     s.srv.now(),
	}

	result.LandingRecords, result.ErrorRecords, err = s.transform(ctx, system, result.BatchID, records, transformOptions{
		workers: s.workers(0),
	})
	result.FinishedAt = s.srv.now()

	return result, err
}

func (s *batch) GetBatchSummary(ctx context.Context, batchID string) (summary models.BatchSummary, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if s.srv.cacheRepo == nil {
		err = fmt.Errorf("%w: batch summaries are not stored", common.ErrDataNotFound)
		return
	}

	return s.srv.cacheRepo.GetBatchSummary(ctx, batchID)
}

func (s *batch) ListErrorCodes(_ context.Context) []models.ErrorCodeOut {
	codes := make([]config.ErrorCode, 0, len(config.ErrorCatalog))
	for code := range config.ErrorCatalog {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	out := make([]models.ErrorCodeOut, 0, len(codes))
	for _, code := range codes {
		severity := "ERROR"
		if config.WarningCodes[code] {
			severity = "WARNING"
		}
		out = append(out, models.ErrorCodeOut{
			Kind:     "errorCode",
			Code:     string(code),
			Severity: severity,
			Message:  config.ErrorCatalog[code],
		})
	}

	return out
}

func (s *batch) resolveBatchID(system models.SourceSystem, batchID string) string {
	if batchID = strings.TrimSpace(batchID); batchID != "" {
		return batchID
	}
	return s.srv.idgenerator.Generate(string(system))
}

func (s *batch) lockTTL() time.Duration {
	if s.srv.conf.Landing.BatchLockTTL > 0 {
		return s.srv.conf.Landing.BatchLockTTL
	}
	return defaultBatchLockTTL
}

func (s *batch) workers(requested int) int {
	switch {
	case requested > 0:
		return requested
	case s.srv.conf.Landing.Workers > 0:
		return s.srv.conf.Landing.Workers
	default:
		return runtime.NumCPU()
	}
}

func (s *batch) threshold(req models.BatchRequest) int {
	if req.Threshold != nil {
		return *req.Threshold
	}
	return s.srv.conf.Landing.SystemConfig(string(req.SourceSystem)).ErrorThreshold
}

func (s *batch) movementTypes(req models.BatchRequest) []string {
	if req.SourceSystem != models.SourceSystemInventory {
		return nil
	}

	types := req.MovementTypes
	if len(types) == 0 {
		types = s.srv.conf.Landing.Inventory.MovementTypes
	}

	out := make([]string, 0, len(types))
	for _, t := range types {
		if t = common.UpperTrim(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// readSource streams the input file and returns the rows to transform. Rows
// dropped by the movement type filter or missing from the payroll source are
// counted as skipped.
func (s *batch) readSource(ctx context.Context, req models.BatchRequest) (records []models.SourceRecord, skipped int, err error) {
	reader, err := s.srv.storageRepo.NewReader(ctx, models.NewCloudStoragePayload(req.InputPath))
	if err != nil {
		return nil, 0, err
	}
	defer reader.Close()

	var payrollSrc PayrollSource
	if req.SourceSystem == models.SourceSystemHR {
		if payrollSrc, err = s.srv.Payroll.NewSource(ctx, req); err != nil {
			return nil, 0, err
		}
		defer payrollSrc.Close()
	}

	movementTypes := s.movementTypes(req)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for res := range s.srv.fileRepo.StreamReadSourceRecords(ctx, reader) {
		if res.Err != nil {
			return nil, skipped, fmt.Errorf("failed to read %s: %w", req.InputPath, res.Err)
		}

		rec := res.Record
		if len(movementTypes) > 0 && !slices.Contains(movementTypes, common.UpperTrim(rec.Get("movement_type"))) {
			skipped++
			continue
		}

		if payrollSrc != nil {
			var found bool
			if rec, found, err = payrollSrc.Enrich(ctx, rec); err != nil {
				return nil, skipped, err
			}
			if !found {
				xlog.Debug(ctx, logMessageBatch,
					xlog.String("status", "employee without payroll"),
					xlog.String("employeeId", res.Record.Get("employee_id")))
				skipped++
				continue
			}
		}

		records = append(records, rec)
		if req.Limit > 0 && len(records) >= req.Limit {
			break
		}
	}

	return records, skipped, nil
}

// transform runs the source system transformer over records with a bounded
// worker pool. Output keeps the input order. The batch is aborted once the
// number of source records with an ERROR landing record crosses the threshold.
func (s *batch) transform(ctx context.Context, system models.SourceSystem, batchID string, records []models.SourceRecord, opts transformOptions) (out []models.LandingRecord, errorRecords int, err error) {
	t, err := s.srv.transformers.GetTransformer(system)
	if err != nil {
		return nil, 0, err
	}

	var (
		results  = make([][]models.LandingRecord, len(records))
		errCount atomic.Int64
	)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(max(opts.workers, 1))

	for i := range records {
		if gctx.Err() != nil {
			break
		}

		group.Go(func() error {
			results[i] = t.Transform(gctx, batchID, records[i])
			if !hasErrorRecord(results[i]) {
				return nil
			}

			n := int(errCount.Add(1))
			if s.srv.conf.Landing.ThresholdCrossed(n, opts.threshold) {
				return fmt.Errorf("%w: %d source records failed, threshold %d", common.ErrErrorThresholdExceeded, n, opts.threshold)
			}
			return nil
		})
	}

	err = group.Wait()
	errorRecords = int(errCount.Load())
	if err != nil {
		return nil, errorRecords, err
	}
	if err = ctx.Err(); err != nil {
		return nil, errorRecords, err
	}

	for _, landing := range results {
		out = append(out, landing...)
	}

	if pp, ok := t.(transformer.PostProcessor); ok {
		out = pp.PostProcess(ctx, batchID, out)
	}

	return out, errorRecords, nil
}

func hasErrorRecord(records []models.LandingRecord) bool {
	for i := range records {
		if records[i].IsError() {
			return true
		}
	}
	return false
}

func (s *batch) outputPayload(req models.BatchRequest) models.CloudStoragePayload {
	if req.OutputPath != "" {
		return models.NewCloudStoragePayload(req.OutputPath)
	}

	return models.NewCloudStoragePayload(joinOutputPath(s.srv.conf.Landing.OutputDir, models.LandingFileNameFor(req.SourceSystem)))
}

func (s *batch) writeLandingFile(ctx context.Context, payload models.CloudStoragePayload, records []models.LandingRecord) error {
	w, err := s.srv.storageRepo.NewWriter(ctx, payload)
	if err != nil {
		return err
	}

	if err = s.srv.fileRepo.WriteLandingCSV(w, records); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write %s: %w", payload, err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", payload, err)
	}

	return nil
}

// deliver sends the batch to every enabled sink. A sink that still fails
// after its retries parks the records in the DLQ; only a failed DLQ write is
// returned.
func (s *batch) deliver(ctx context.Context, result models.BatchResult) error {
	var errs *multierror.Error

	if s.srv.conf.Sinks.SQLEnabled && s.srv.sqlRepo != nil {
		errs = multierror.Append(errs, s.deliverSQL(ctx, result.BatchID, result.LandingRecords))
	}

	if s.srv.conf.Sinks.KafkaEnabled && s.srv.landingPub != nil {
		errs = multierror.Append(errs, s.deliverKafka(ctx, result.BatchID, result.ReadyRecords()))
	}

	return errs.ErrorOrNil()
}

func (s *batch) deliverSQL(ctx context.Context, batchID string, records []models.LandingRecord) error {
	if len(records) == 0 {
		return nil
	}

	var lastErr error
	return s.srv.retryer.Retry(ctx,
		func() error {
			lastErr = s.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) error {
				_, err := r.GetLandingRepository().BulkInsert(ctx, records)
				return err
			})
			if errors.Is(lastErr, common.ErrBatchAlreadyLoaded) {
				return s.srv.retryer.StopRetryWithErr(lastErr)
			}
			return lastErr
		},
		func() error {
			// rows of this batch are already in the table
			if errors.Is(lastErr, common.ErrBatchAlreadyLoaded) {
				return lastErr
			}
			return s.park(ctx, sinkSQL, batchID, records, lastErr)
		})
}

func (s *batch) deliverKafka(ctx context.Context, batchID string, records []models.LandingRecord) error {
	if len(records) == 0 {
		return nil
	}

	messages := make([]any, len(records))
	for i := range records {
		messages[i] = records[i]
	}
	keyFn := func(i int) string { return records[i].SourceDocID }

	var lastErr error
	return s.srv.retryer.Retry(ctx,
		func() error {
			lastErr = s.srv.landingPub.PublishBatch(ctx, messages, keyFn)
			return lastErr
		},
		func() error {
			return s.park(ctx, sinkKafka, batchID, records, lastErr)
		})
}

// park writes records that a sink refused to the DLQ as a landing csv.
func (s *batch) park(ctx context.Context, sink, batchID string, records []models.LandingRecord, cause error) error {
	s.srv.metrics.GetLandingPrometheus().IncSinkFailure(sink)

	var buf bytes.Buffer
	if err := s.srv.fileRepo.WriteLandingCSV(&buf, records); err != nil {
		return err
	}

	err := s.srv.dlq.Publish(ctx, models.FailedMessage{
		Sink:       sink,
		BatchID:    batchID,
		Payload:    buf.Bytes(),
		Timestamp:  s.srv.now(),
		CauseError: cause,
	})
	if err != nil {
		return fmt.Errorf("%s sink failed and dlq failed: %w", sink, multierror.Append(cause, err))
	}

	return nil
}

// writeErrorReport writes the ERROR records of a batch as an xlsx sheet under error-data.
func (s *batch) writeErrorReport(ctx context.Context, result models.BatchResult) (url string, err error) {
	errorRecords := result.ErrorLandingRecords()
	if len(errorRecords) == 0 {
		return "", nil
	}

	f := excelize.NewFile()
	defer f.Close()

	if err = f.SetSheetName("Sheet1", errorReportSheet); err != nil {
		return "", err
	}
	if err = f.SetSheetRow(errorReportSheet, "A1", &errorReportHeader); err != nil {
		return "", err
	}

	for i, rec := range errorRecords {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}

		row := []any{
			rec.BatchID, string(rec.SourceSystem), rec.SourceDocType, rec.SourceDocID, rec.SourceLineID,
			rec.ErrorCode, rec.ErrorMessage, rec.Description,
		}
		if err = f.SetSheetRow(errorReportSheet, cell, &row); err != nil {
			return "", err
		}
	}

	payload := s.srv.storageRepo.ErrorDataPayload(fmt.Sprintf("%s_%s.xlsx", models.ErrorReportFileName, result.BatchID))
	w, err := s.srv.storageRepo.NewWriter(ctx, payload)
	if err != nil {
		return "", err
	}

	if err = f.Write(w); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write error report: %w", err)
	}
	if err = w.Close(); err != nil {
		return "", fmt.Errorf("failed to close error report: %w", err)
	}

	return s.srv.storageRepo.GetURL(payload), nil
}

// finish records the outcome of a batch that got past its lock.
func (s *batch) finish(ctx context.Context, result *models.BatchResult, err error) {
	result.FinishedAt = s.srv.now()

	status := models.BatchStatusCompleted
	if err != nil {
		status = models.BatchStatusAborted
	}

	landingMetrics := s.srv.metrics.GetLandingPrometheus()
	landingMetrics.ObserveBatchDuration(result.StartedAt, string(result.SourceSystem), err)
	if err == nil {
		landingMetrics.RecordBatch(string(result.SourceSystem), result.SourceRecords, result.ErrorRecords, statusCounts(result.LandingRecords))
	}

	ready := result.ReadyRecords()
	xlog.LogBatchStats(ctx, xlog.BatchStats{
		BatchID:        result.BatchID,
		SourceSystem:   string(result.SourceSystem),
		SourceRecords:  result.SourceRecords,
		ErrorRecords:   result.ErrorRecords,
		LandingRecords: len(result.LandingRecords),
		ReadyRecords:   len(ready),
		Duration:       result.Duration(),
	})

	if s.srv.cacheRepo == nil {
		return
	}
	if errSummary := s.srv.cacheRepo.SetBatchSummary(ctx, result.Summary(status), batchSummaryTTL); errSummary != nil {
		xlog.Warn(ctx, logMessageBatch,
			xlog.String("status", "failed store batch summary"),
			xlog.String("batchId", result.BatchID),
			xlog.Err(errSummary))
	}
}

func statusCounts(records []models.LandingRecord) map[string]int {
	counts := map[string]int{}
	for i := range records {
		counts[string(records[i].StatusCode)]++
	}
	return counts
}

package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/validation"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/monitoring"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

const (
	OrchestratorModeParallel   = "parallel"
	OrchestratorModeSequential = "sequential"

	logMessageOrchestrator = "[LANDING-ORCHESTRATOR]"
)

//go:generate mockgen -source=orchestrator_service.go -destination=mock/orchestrator_service.go -package=mock
type OrchestratorService interface {
	// Run lands several source systems and merges their files into one
	// landing file. Nothing is merged when a batch fails.
	Run(ctx context.Context, req models.OrchestratorRequest) (result models.OrchestratorResult, err error)
}

type orchestrator service

var _ OrchestratorService = (*orchestrator)(nil)

func (s *orchestrator) Run(ctx context.Context, req models.OrchestratorRequest) (result models.OrchestratorResult, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if err = validation.ValidateStruct(req); err != nil {
		err = fmt.Errorf("%w: %v", common.ErrValidation, err)
		return
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.srv.conf.Landing.OutputDir
	}

	requests := make([]models.BatchRequest, len(req.Requests))
	for i, r := range req.Requests {
		if r.OutputPath == "" {
			r.OutputPath = joinOutputPath(outputDir, models.LandingFileNameFor(r.SourceSystem))
		}
		requests[i] = r
	}

	switch req.Mode {
	case "", OrchestratorModeParallel:
		result.Results, err = s.runParallel(ctx, requests)
	case OrchestratorModeSequential:
		result.Results, err = s.runSequential(ctx, requests)
	default:
		err = fmt.Errorf("%w: %s", common.ErrUnsupportedOrchestrator, req.Mode)
	}
	if err != nil {
		return
	}

	merged := joinOutputPath(outputDir, models.LandingFileName)
	if err = s.merge(ctx, merged, requests); err != nil {
		return
	}
	result.MergedPath = s.srv.storageRepo.GetURL(models.NewCloudStoragePayload(merged))

	if !req.KeepIndividualFiles {
		s.removeIndividualFiles(ctx, requests)
	}

	return result, nil
}

// runParallel runs every batch to the end and returns all failures together.
func (s *orchestrator) runParallel(ctx context.Context, requests []models.BatchRequest) ([]models.BatchResult, error) {
	var (
		group   errgroup.Group
		mu      sync.Mutex
		errs    *multierror.Error
		results = make([]models.BatchResult, len(requests))
	)

	for i := range requests {
		group.Go(func() error {
			res, err := s.srv.Batch.Run(ctx, requests[i])
			results[i] = res
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", requests[i].SourceSystem, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()

	return results, errs.ErrorOrNil()
}

// runSequential stops at the first failed batch.
func (s *orchestrator) runSequential(ctx context.Context, requests []models.BatchRequest) ([]models.BatchResult, error) {
	results := make([]models.BatchResult, 0, len(requests))
	for _, r := range requests {
		res, err := s.srv.Batch.Run(ctx, r)
		results = append(results, res)
		if err != nil {
			return results, fmt.Errorf("%s: %w", r.SourceSystem, err)
		}
	}
	return results, nil
}

func (s *orchestrator) merge(ctx context.Context, merged string, requests []models.BatchRequest) (err error) {
	readers := make([]io.Reader, 0, len(requests))
	for _, r := range requests {
		rc, err := s.srv.storageRepo.NewReader(ctx, models.NewCloudStoragePayload(r.OutputPath))
		if err != nil {
			return err
		}
		defer rc.Close()
		readers = append(readers, rc)
	}

	w, err := s.srv.storageRepo.NewWriter(ctx, models.NewCloudStoragePayload(merged))
	if err != nil {
		return err
	}

	rows, err := s.srv.fileRepo.MergeLandingCSV(ctx, w, readers...)
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to merge landing files: %w", err)
	}
	if err = w.Close(); err != nil {
		return err
	}

	xlog.Info(ctx, logMessageOrchestrator,
		xlog.String("status", "landing files merged"),
		xlog.String("path", merged),
		xlog.Int("rows", rows))

	return nil
}

func (s *orchestrator) removeIndividualFiles(ctx context.Context, requests []models.BatchRequest) {
	for _, r := range requests {
		if err := s.srv.storageRepo.DeleteFile(ctx, models.NewCloudStoragePayload(r.OutputPath)); err != nil {
			xlog.Warnf(ctx, "%s failed remove individual file %s: %v", logMessageOrchestrator, r.OutputPath, err)
		}
	}
}

func joinOutputPath(dir, name string) string {
	if dir = strings.TrimSuffix(dir, "/"); dir == "" {
		return name
	}
	return dir + "/" + name
}

package job

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/flag"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	v1landing "bitbucket.org/Amartha/go-accounting-landing/internal/deliveries/job/v1/landing"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services"

	"github.com/google/uuid"
)

var ErrInvalidJob = errors.New("invalid version or job name")

type JobRoutes map[string]map[string]func(ctx context.Context, date time.Time, flag flag.Job) error

type Job struct {
	Routes JobRoutes
}

func New(srv services.BatchService, orchestrator services.OrchestratorService) *Job {
	v1group := "v1"

	jobRoutes := map[string]map[string]func(ctx context.Context, date time.Time, flag flag.Job) error{
		v1group: v1landing.Routes(srv, orchestrator),
		// add other version routes
	}

	return &Job{jobRoutes}
}

// Start runs one job and returns its error so the worker can exit non-zero.
func (j *Job) Start(ctx context.Context, flag flag.Job) (err error) {
	fn, ok := j.Routes[flag.Version][flag.JobName]
	if !ok {
		err = ErrInvalidJob
		xlog.LogJob(ctx, flag.JobName, flag.Version, flag.Date, err)
		return err
	}

	var runningDate time.Time
	ctx = xlog.WithCorrelationID(ctx, uuid.New().String())

	defer func() {
		xlog.LogJob(ctx, flag.JobName, flag.Version, flag.Date, err)
	}()

	if flag.Date != "" {
		runningDate, err = common.ParseStringToDatetime(common.DateFormatYYYYMMDD, flag.Date)
		if err != nil {
			return err
		}
	}

	return fn(ctx, runningDate, flag)
}

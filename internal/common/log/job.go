package log

import (
	"context"
	"time"
)

func LogJob(ctx context.Context, jobName, version, date string, err error) {
	field := []Field{
		String("job-name", jobName),
		String("version", version),
		String("execution-date", date),
	}
	if err != nil {
		field = append(field, String("status", "fail"), Err(err))
		Warn(ctx, "[JOB]", field...)
	} else {
		field = append(field, String("status", "success"))
		Info(ctx, "[JOB]", field...)
	}
}

// BatchStats is the operator-facing summary of one landing batch.
type BatchStats struct {
	BatchID        string
	SourceSystem   string
	SourceRecords  int
	ErrorRecords   int
	LandingRecords int
	ReadyRecords   int
	Duration       time.Duration
}

func (s BatchStats) SuccessRate() float64 {
	if s.SourceRecords == 0 {
		return 0
	}
	return float64(s.SourceRecords-s.ErrorRecords) / float64(s.SourceRecords) * 100
}

func (s BatchStats) RecordsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.SourceRecords) / s.Duration.Seconds()
}

func LogBatchStats(ctx context.Context, stats BatchStats) {
	Info(ctx, "[BATCH-STATS]",
		String("batch_id", stats.BatchID),
		String("source_system", stats.SourceSystem),
		Int("processed", stats.SourceRecords),
		Int("errors", stats.ErrorRecords),
		Int("landing_records", stats.LandingRecords),
		Int("ready_records", stats.ReadyRecords),
		Float64("success_rate", stats.SuccessRate()),
		Duration("duration", stats.Duration),
		Float64("records_per_second", stats.RecordsPerSecond()),
	)
}

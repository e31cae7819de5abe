package models

import "time"

// BatchRequest describes one landing batch for one source system.
type BatchRequest struct {
	SourceSystem SourceSystem `validate:"required,oneof=SALE HR INV"`
	// BatchID is generated when empty.
	BatchID    string
	InputPath  string `validate:"required"`
	OutputPath string
	// PayrollPath is the hr_payroll_export file used by the file payroll mode.
	PayrollPath   string
	PayrollPeriod time.Time
	PayrollMode   string `validate:"omitempty,oneof=fabricated file inline"`
	Limit         int    `validate:"gte=0"`
	// Threshold overrides the configured error threshold when set.
	Threshold     *int
	Workers       int `validate:"gte=0"`
	MovementTypes []string
}

type BatchResult struct {
	BatchID        string
	SourceSystem   SourceSystem
	OutputPath     string
	ErrorReportURL string
	SourceRecords  int
	// ErrorRecords counts source records that produced at least one ERROR record.
	ErrorRecords   int
	SkippedRecords int
	LandingRecords []LandingRecord
	StartedAt      time.Time
	FinishedAt     time.Time
}

func (r BatchResult) ReadyRecords() []LandingRecord {
	var out []LandingRecord
	for _, rec := range r.LandingRecords {
		if rec.IsReady() {
			out = append(out, rec)
		}
	}
	return out
}

func (r BatchResult) ErrorLandingRecords() []LandingRecord {
	var out []LandingRecord
	for _, rec := range r.LandingRecords {
		if rec.IsError() {
			out = append(out, rec)
		}
	}
	return out
}

func (r BatchResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// OrchestratorRequest runs several source systems in one go.
type OrchestratorRequest struct {
	Mode                string `validate:"omitempty,oneof=parallel sequential"`
	OutputDir           string
	KeepIndividualFiles bool
	Requests            []BatchRequest `validate:"required,min=1,dive"`
}

type OrchestratorResult struct {
	Results    []BatchResult
	MergedPath string
}

// BatchSummary is the stored outcome of a batch, without its records.
type BatchSummary struct {
	Kind           string       `json:"kind"`
	BatchID        string       `json:"batch_id"`
	SourceSystem   SourceSystem `json:"source_system"`
	Status         string       `json:"status"`
	OutputPath     string       `json:"output_path,omitempty"`
	ErrorReportURL string       `json:"error_report_url,omitempty"`
	SourceRecords  int          `json:"source_records"`
	ErrorRecords   int          `json:"error_records"`
	SkippedRecords int          `json:"skipped_records"`
	LandingRecords int          `json:"landing_records"`
	ReadyRecords   int          `json:"ready_records"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     time.Time    `json:"finished_at"`
}

const (
	BatchStatusCompleted = "COMPLETED"
	BatchStatusAborted   = "ABORTED"
)

func (r BatchResult) Summary(status string) BatchSummary {
	return BatchSummary{
		Kind:           "landingBatch",
		BatchID:        r.BatchID,
		SourceSystem:   r.SourceSystem,
		Status:         status,
		OutputPath:     r.OutputPath,
		ErrorReportURL: r.ErrorReportURL,
		SourceRecords:  r.SourceRecords,
		ErrorRecords:   r.ErrorRecords,
		SkippedRecords: r.SkippedRecords,
		LandingRecords: len(r.LandingRecords),
		ReadyRecords:   len(r.ReadyRecords()),
		StartedAt:      r.StartedAt,
		FinishedAt:     r.FinishedAt,
	}
}

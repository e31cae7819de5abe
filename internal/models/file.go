package models

// TransformRequest is the body of the synchronous transform API.
type TransformRequest struct {
	BatchID string         `json:"batch_id" validate:"omitempty,nospecial,max=100"`
	Records []SourceRecord `json:"records" validate:"required,min=1,max=10000"`
}

type TransformResponse struct {
	Kind           string          `json:"kind"`
	BatchID        string          `json:"batch_id"`
	SourceSystem   SourceSystem    `json:"source_system"`
	SourceRecords  int             `json:"source_records"`
	ErrorRecords   int             `json:"error_records"`
	ReadyRecords   int             `json:"ready_records"`
	LandingRecords []LandingRecord `json:"landing_records"`
}

func NewTransformResponse(result BatchResult) TransformResponse {
	records := result.LandingRecords
	if records == nil {
		records = []LandingRecord{}
	}
	return TransformResponse{
		Kind:           "landingBatch",
		BatchID:        result.BatchID,
		SourceSystem:   result.SourceSystem,
		SourceRecords:  result.SourceRecords,
		ErrorRecords:   result.ErrorRecords,
		ReadyRecords:   len(result.ReadyRecords()),
		LandingRecords: records,
	}
}

type ErrorCodeOut struct {
	Kind     string `json:"kind"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

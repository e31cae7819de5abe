package flag

import (
	"fmt"
	"strings"

	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

// Job carries the worker command line into a job handler.
type Job struct {
	JobName    string
	Version    string
	Date       string
	FileName   string
	BucketName string
	OutputPath string

	PayrollFile   string
	BatchID       string
	Limit         int
	Threshold     *int
	Workers       int
	MovementTypes []string

	// Systems limits all-landing to some source systems; empty runs all.
	Systems   []string
	Mode      string
	KeepFiles bool
}

// InputPath joins the bucket and the file name into a storage path.
func (j Job) InputPath() string {
	return objectPath(j.BucketName, j.FileName)
}

// PayrollPath resolves the payroll file against the job bucket.
func (j Job) PayrollPath() string {
	return objectPath(j.BucketName, j.PayrollFile)
}

// BatchRequest builds the landing request of one source system.
func (j Job) BatchRequest(system models.SourceSystem) models.BatchRequest {
	req := models.BatchRequest{
		SourceSystem: system,
		BatchID:      j.BatchID,
		InputPath:    j.InputPath(),
		OutputPath:   j.OutputPath,
		Limit:        j.Limit,
		Threshold:    j.Threshold,
		Workers:      j.Workers,
	}

	switch system {
	case models.SourceSystemHR:
		req.PayrollPath = j.PayrollPath()
	case models.SourceSystemInventory:
		req.MovementTypes = j.MovementTypes
	}

	return req
}

func objectPath(bucket, name string) string {
	if name == "" || bucket == "" || strings.HasPrefix(name, models.GCSScheme) {
		return name
	}
	return fmt.Sprintf("%s%s/%s", models.GCSScheme, bucket, strings.TrimPrefix(name, "/"))
}

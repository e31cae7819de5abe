package services

import (
	"context"
	"fmt"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	localstorage "bitbucket.org/Amartha/go-accounting-landing/internal/common/local_storage"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/monitoring"
)

const (
	payrollPeriodLayout = "2006-01"
	payrollIndexBucket  = "payroll"
	payrollPayDay       = "25"

	defaultPayrollIndexChunk = 1000
)

// PayrollService builds the payroll source of an HR batch.
//
//go:generate mockgen -source=payroll_source.go -destination=mock/payroll_source.go -package=mock
type PayrollService interface {
	NewSource(ctx context.Context, req models.BatchRequest) (PayrollSource, error)
}

// PayrollSource completes employee rows with their hr_payroll_export columns.
type PayrollSource interface {
	// Enrich returns rec with its payroll columns, or false when the employee
	// has no payroll in this source.
	Enrich(ctx context.Context, rec models.SourceRecord) (models.SourceRecord, bool, error)
	Close() error
}

type payroll service

var _ PayrollService = (*payroll)(nil)

// NewSource picks the request mode, then the configured one, then fabricated.
func (s *payroll) NewSource(ctx context.Context, req models.BatchRequest) (src PayrollSource, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	mode := req.PayrollMode
	if mode == "" {
		mode = s.srv.conf.Landing.HR.PayrollMode
	}

	switch mode {
	case "", config.PayrollModeFabricated:
		period := req.PayrollPeriod
		if period.IsZero() {
			period = s.srv.now()
		}
		return fabricatedPayroll{period: period.Format(payrollPeriodLayout)}, nil
	case config.PayrollModeFile:
		return s.newFileSource(ctx, req.PayrollPath)
	case config.PayrollModeInline:
		return inlinePayroll{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedPayrollMode, mode)
	}
}

// newFileSource indexes the payroll export by employee id on disk before the
// employee file is streamed.
func (s *payroll) newFileSource(ctx context.Context, path string) (PayrollSource, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: payroll file", common.ErrFilePathEmpty)
	}

	index, err := localstorage.NewBadgerStorage[models.SourceRecord](payrollIndexBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open payroll index: %w", err)
	}

	chunkSize := s.srv.conf.Landing.HR.BatchSize
	if chunkSize <= 0 {
		chunkSize = defaultPayrollIndexChunk
	}

	src := &filePayroll{index: index, chunkSize: chunkSize}
	if err = src.load(ctx, s.srv, path); err != nil {
		_ = src.Close()
		return nil, err
	}

	return src, nil
}

type filePayroll struct {
	index     localstorage.LocalStorage[models.SourceRecord]
	chunkSize int
}

func (f *filePayroll) load(ctx context.Context, srv *Services, path string) error {
	reader, err := srv.storageRepo.NewReader(ctx, models.NewCloudStoragePayload(path))
	if err != nil {
		return err
	}
	defer reader.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		chunk   = make(map[string]models.SourceRecord, f.chunkSize)
		indexed int
	)
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		if err := f.index.SetMany(chunk); err != nil {
			return fmt.Errorf("failed to index payroll file: %w", err)
		}
		indexed += len(chunk)
		clear(chunk)
		return nil
	}

	for res := range srv.fileRepo.StreamReadSourceRecords(ctx, reader) {
		if res.Err != nil {
			return fmt.Errorf("failed to read payroll file: %w", res.Err)
		}

		employeeID := res.Record.Get("employee_id")
		if employeeID == "" {
			xlog.Warn(ctx, "[PAYROLL] row without employee_id", xlog.Int("line", res.Line))
			continue
		}

		// a later row of the same employee replaces the earlier one, in the
		// chunk or in the index
		chunk[employeeID] = res.Record
		if len(chunk) >= f.chunkSize {
			if err = flush(); err != nil {
				return err
			}
		}
	}

	if err = flush(); err != nil {
		return err
	}

	xlog.Info(ctx, "[PAYROLL] payroll file indexed",
		xlog.String("path", path),
		xlog.Int("rows", indexed))

	return nil
}

func (f *filePayroll) Enrich(_ context.Context, rec models.SourceRecord) (models.SourceRecord, bool, error) {
	employeeID := rec.Get("employee_id")
	if employeeID == "" {
		return rec, true, nil
	}

	row, ok, err := f.index.Get(employeeID)
	if err != nil || !ok {
		return nil, false, err
	}

	return rec.Merge(row), true, nil
}

func (f *filePayroll) Close() error {
	if err := f.index.Close(); err != nil {
		return err
	}
	return f.index.Clean()
}

// inlinePayroll expects the payroll columns on the employee row itself.
type inlinePayroll struct{}

func (inlinePayroll) Enrich(_ context.Context, rec models.SourceRecord) (models.SourceRecord, bool, error) {
	return rec, true, nil
}

func (inlinePayroll) Close() error { return nil }

// fabricatedPayroll derives a fixed payroll from the employment type. It
// stands in until a payroll export is delivered with the employee export.
type fabricatedPayroll struct {
	period string
}

func (p fabricatedPayroll) Enrich(_ context.Context, rec models.SourceRecord) (models.SourceRecord, bool, error) {
	employeeID := rec.Get("employee_id")
	if employeeID == "" || models.HasPayrollColumns(rec) {
		return rec, true, nil
	}

	return rec.Merge(p.payrollOf(employeeID, rec.Get("employment_type"))), true, nil
}

func (p fabricatedPayroll) payrollOf(employeeID, employmentType string) models.SourceRecord {
	row := models.SourceRecord{
		"payroll_id":    fmt.Sprintf("PAY_%s_%s", p.period, employeeID),
		"payroll_date":  fmt.Sprintf("%s-%s", p.period, payrollPayDay),
		"currency_code": "JPY",
	}

	switch common.UpperTrim(employmentType) {
	case "CONTRACT":
		row["basic_salary"] = "250000"
		row["allowance_transportation"] = "20000"
		row["allowance_family"] = "15000"
		p.regularDeductions(row)
	case "PART_TIME":
		row["basic_salary"] = "150000"
		row["allowance_transportation"] = "10000"
		row["deduction_tax"] = "8000"
	default:
		row["basic_salary"] = "300000"
		row["allowance_housing"] = "50000"
		row["allowance_transportation"] = "20000"
		row["allowance_family"] = "15000"
		p.regularDeductions(row)
	}

	return row
}

func (fabricatedPayroll) regularDeductions(row models.SourceRecord) {
	row["deduction_tax"] = "25000"
	row["deduction_insurance"] = "45000"
	row["deduction_resident_tax"] = "18000"
	row["deduction_pension"] = "28000"
	row["deduction_health"] = "15000"
	row["deduction_employment"] = "2000"
}

func (fabricatedPayroll) Close() error { return nil }

package landing

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common/flag"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services"
)

// default export names below the all-landing input directory
var exportFiles = map[models.SourceSystem]string{
	models.SourceSystemSales:     "sales/sales_txn_export.csv",
	models.SourceSystemHR:        "hr/hr_employee_org_export.csv",
	models.SourceSystemInventory: "inventory/inv_movement_export.csv",
}

var allSystems = []models.SourceSystem{
	models.SourceSystemSales,
	models.SourceSystemHR,
	models.SourceSystemInventory,
}

type landingHandler struct {
	batchSrv        services.BatchService
	orchestratorSrv services.OrchestratorService
}

func Routes(bs services.BatchService, ors services.OrchestratorService) map[string]func(ctx context.Context, date time.Time, flag flag.Job) error {
	handler := landingHandler{
		batchSrv:        bs,
		orchestratorSrv: ors,
	}
	return map[string]func(ctx context.Context, date time.Time, flag flag.Job) error{
		"sales-landing":     handler.SalesLanding,
		"hr-landing":        handler.HRLanding,
		"inventory-landing": handler.InventoryLanding,
		"all-landing":       handler.AllLanding,
	}
}

func (lh *landingHandler) SalesLanding(ctx context.Context, date time.Time, flag flag.Job) error {
	return lh.run(ctx, flag.BatchRequest(models.SourceSystemSales))
}

// HRLanding uses the job date as the payroll period.
func (lh *landingHandler) HRLanding(ctx context.Context, date time.Time, flag flag.Job) error {
	req := flag.BatchRequest(models.SourceSystemHR)
	req.PayrollPeriod = date
	return lh.run(ctx, req)
}

func (lh *landingHandler) InventoryLanding(ctx context.Context, date time.Time, flag flag.Job) error {
	return lh.run(ctx, flag.BatchRequest(models.SourceSystemInventory))
}

func (lh *landingHandler) run(ctx context.Context, req models.BatchRequest) error {
	result, err := lh.batchSrv.Run(ctx, req)
	if err != nil {
		return err
	}

	xlog.Info(ctx, "[LANDING-JOB]",
		xlog.String("batchId", result.BatchID),
		xlog.String("output", result.OutputPath),
		xlog.Int("landingRecords", len(result.LandingRecords)),
		xlog.Int("errorRecords", result.ErrorRecords))

	return nil
}

// AllLanding treats -f as the input directory holding one export per source system.
func (lh *landingHandler) AllLanding(ctx context.Context, date time.Time, flag flag.Job) error {
	systems, err := parseSystems(flag.Systems)
	if err != nil {
		return err
	}

	req := models.OrchestratorRequest{
		Mode:                flag.Mode,
		OutputDir:           flag.OutputPath,
		KeepIndividualFiles: flag.KeepFiles,
	}

	for _, system := range systems {
		f := flag
		f.FileName = joinInput(flag.FileName, exportFiles[system])
		f.OutputPath = ""
		f.BatchID = ""

		r := f.BatchRequest(system)
		if system == models.SourceSystemHR {
			r.PayrollPeriod = date
		}
		req.Requests = append(req.Requests, r)
	}

	result, err := lh.orchestratorSrv.Run(ctx, req)
	if err != nil {
		return err
	}

	xlog.Info(ctx, "[LANDING-JOB]",
		xlog.String("merged", result.MergedPath),
		xlog.Int("batches", len(result.Results)))

	return nil
}

func parseSystems(in []string) ([]models.SourceSystem, error) {
	if len(in) == 0 {
		return allSystems, nil
	}

	out := make([]models.SourceSystem, 0, len(in))
	for _, s := range in {
		system, err := models.ParseSourceSystem(s)
		if err != nil {
			return nil, err
		}
		out = append(out, system)
	}
	return out, nil
}

func joinInput(dir, name string) string {
	if dir = strings.TrimSuffix(dir, "/"); dir == "" {
		return name
	}
	return dir + "/" + name
}

package transformer

import (
	"context"

	"github.com/shopspring/decimal"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

const (
	payableLineID = "PAYABLE"
	payableTag    = "PAYABLE"
)

// PostProcess appends the payroll payable records of batchID to records.
func (t hrTransformer) PostProcess(ctx context.Context, batchID string, records []models.LandingRecord) []models.LandingRecord {
	var batch []models.LandingRecord
	for _, r := range records {
		if r.BatchID == batchID {
			batch = append(batch, r)
		}
	}

	return append(records, t.CreatePayableEntries(ctx, batch)...)
}

// CreatePayableEntries sums the READY payroll records per employee and credits
// each positive net to the payroll payable account. Employees are keyed by
// reference1 (employee number), falling back to the source document.
func (t hrTransformer) CreatePayableEntries(ctx context.Context, records []models.LandingRecord) []models.LandingRecord {
	type employeeTotal struct {
		template models.LandingRecord
		net      decimal.Decimal
	}

	var keys []string
	totals := make(map[string]*employeeTotal)

	for _, r := range records {
		if r.SourceSystem != models.SourceSystemHR || !r.IsReady() || r.SourceLineID == payableLineID {
			continue
		}

		key := firstNonEmpty(r.Reference1, r.SourceDocID)
		total, ok := totals[key]
		if !ok {
			total = &employeeTotal{template: r, net: decimal.Zero}
			totals[key] = total
			keys = append(keys, key)
		}
		total.net = total.net.Add(r.EnteredDr).Sub(r.EnteredCr)
	}

	var out []models.LandingRecord
	for _, key := range keys {
		total := totals[key]
		if !total.net.IsPositive() {
			continue
		}

		payable := total.template
		payable.SourceLineID = payableLineID
		payable.SegmentAccount = t.tables.HRAccount(payableTag)
		payable.JournalCategory = config.JournalCategoryPayroll
		payable.TaxCode = ""
		payable.Description = "Payroll Payable - " + key
		payable.LoadTimestamp = t.now().UTC()
		postCredit(&payable, total.net)

		out = append(out, payable)
	}

	xlog.Info(ctx, logIdentifier,
		xlog.String("step", "payable"),
		xlog.Int("employees", len(keys)),
		xlog.Int("payable_records", len(out)))

	return out
}

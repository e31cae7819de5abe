package transformer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

const (
	logIdentifier = "[LANDING-TRANSFORMER]"

	descriptionSeparator = " | "
	violationSeparator   = "; "

	msgBothAmountsZero    = "Both debit and credit amounts are zero"
	msgInvalidCurrency    = "Invalid currency code"
	msgQuantityZero       = "Quantity cannot be zero"
	msgDepartmentRequired = "Department code is required for payroll entries"
)

// recordIdentity is the part of a source row kept on a minimal ERROR record.
type recordIdentity struct {
	system         models.SourceSystem
	docType        string
	docID          string
	lineID         string
	eventTimestamp string
	createdBy      string
}

// newRecord starts a PROCESSING landing record stamped with the ledger settings.
func (b baseLandingTransformer) newRecord(batchID string, id recordIdentity) models.LandingRecord {
	return models.LandingRecord{
		BatchID:          batchID,
		SourceSystem:     id.system,
		SourceDocType:    id.docType,
		SourceDocID:      id.docID,
		SourceLineID:     id.lineID,
		EventTimestamp:   id.eventTimestamp,
		LoadTimestamp:    b.now().UTC(),
		StatusCode:       models.StatusProcessing,
		LedgerID:         b.config.LedgerID,
		LegalEntityID:    b.config.LegalEntityID,
		BusinessUnit:     b.config.BusinessUnit,
		CompanyCode:      b.config.CompanyCode,
		ExchangeRateType: b.config.ExchangeRateType,
		ExchangeRate:     decimal.NewFromInt(1),
		CreatedBy:        id.createdBy,
		UpdatedBy:        id.createdBy,
	}
}

// errorRecord is the minimal ERROR record used when a row cannot be built at all.
func (b baseLandingTransformer) errorRecord(batchID string, id recordIdentity, code config.ErrorCode, extra string) models.LandingRecord {
	return models.LandingRecord{
		BatchID:        batchID,
		SourceSystem:   id.system,
		SourceDocType:  id.docType,
		SourceDocID:    id.docID,
		SourceLineID:   id.lineID,
		EventTimestamp: id.eventTimestamp,
		LoadTimestamp:  b.now().UTC(),
		StatusCode:     models.StatusError,
		ErrorCode:      string(code),
		ErrorMessage:   config.GetErrorMessage(code, extra),
		CreatedBy:      id.createdBy,
		UpdatedBy:      id.createdBy,
	}
}

// safeTransform runs fn and turns a returned error or a panic into a single
// E_TRANSFORM record, so nothing escapes a Transform call.
func (b baseLandingTransformer) safeTransform(
	ctx context.Context,
	batchID string,
	id recordIdentity,
	fn func() ([]models.LandingRecord, error),
) (res []models.LandingRecord) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("panic happened because: %v", p)
			xlog.Error(ctx, logIdentifier, logFields(id, err)...)
			res = []models.LandingRecord{b.errorRecord(batchID, id, config.ErrCodeETransform, err.Error())}
		}
	}()

	out, err := fn()
	if err != nil {
		xlog.Warn(ctx, logIdentifier, logFields(id, err)...)
		return []models.LandingRecord{b.errorRecord(batchID, id, config.ErrCodeETransform, err.Error())}
	}

	return out
}

func logFields(id recordIdentity, err error) []xlog.Field {
	return []xlog.Field{
		xlog.String("source_system", string(id.system)),
		xlog.String("source_doc_id", id.docID),
		xlog.String("source_line_id", id.lineID),
		xlog.Err(err),
	}
}

// finalize moves rec out of PROCESSING exactly once.
func finalize(rec *models.LandingRecord, violations []string) {
	if rec.StatusCode != models.StatusProcessing {
		return
	}

	if len(violations) > 0 {
		rec.StatusCode = models.StatusError
		rec.ErrorCode = string(config.ErrCodeEValidation)
		rec.ErrorMessage = strings.Join(violations, violationSeparator)
		return
	}

	rec.StatusCode = models.StatusReady
}

func amountViolations(rec models.LandingRecord) []string {
	if rec.HasNoAmount() {
		return []string{msgBothAmountsZero}
	}
	return nil
}

// postDebit books amount on the debit side only; the ERP generates the contra entry.
func postDebit(rec *models.LandingRecord, amount decimal.Decimal) {
	entered := common.RoundAmount(amount)
	rec.EnteredDr = entered
	rec.EnteredCr = decimal.Zero
	rec.AccountedDr = common.ConvertAmount(entered, rec.ExchangeRate)
	rec.AccountedCr = decimal.Zero
}

func postCredit(rec *models.LandingRecord, amount decimal.Decimal) {
	entered := common.RoundAmount(amount)
	rec.EnteredDr = decimal.Zero
	rec.EnteredCr = entered
	rec.AccountedDr = decimal.Zero
	rec.AccountedCr = common.ConvertAmount(entered, rec.ExchangeRate)
}

func postNothing(rec *models.LandingRecord) {
	rec.EnteredDr = decimal.Zero
	rec.EnteredCr = decimal.Zero
	rec.AccountedDr = decimal.Zero
	rec.AccountedCr = decimal.Zero
}

// exchangeRate prefers the rate exported with the row, else asks the master data
// for the currency → functional currency rate.
func (b baseLandingTransformer) exchangeRate(ctx context.Context, raw, currency string, date time.Time) (decimal.Decimal, error) {
	if raw = strings.TrimSpace(raw); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil || !rate.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: %q", common.ErrInvalidExchangeRate, raw)
		}
		return rate, nil
	}

	return b.masterData.GetExchangeRate(ctx, currency, b.functionalCurrency(), date)
}

func (b baseLandingTransformer) functionalCurrency() string {
	if b.config.FunctionalCurrency != "" {
		return b.config.FunctionalCurrency
	}
	return common.CurrencyJPY
}

// parseOptionalDate leaves a blank value as the zero time so that the
// mandatory field check reports it.
func parseOptionalDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return common.ParseDate(value)
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

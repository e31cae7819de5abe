package repositories

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

const landingTable = "accounting_txn_interface"

// landingInsertChunkSize keeps a single INSERT below the postgres limit of 65535 bind parameters.
const landingInsertChunkSize = 500

const (
	queryDeleteLandingByBatchID = `DELETE FROM accounting_txn_interface WHERE batch_id = $1`

	queryCountLandingByBatchID = `
		SELECT status_code, COUNT(*)
		FROM accounting_txn_interface
		WHERE batch_id = $1
		GROUP BY status_code
		ORDER BY status_code
	`
)

func buildInsertLandingQuery(records []models.LandingRecord) (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query := psql.Insert(landingTable).Columns(models.LandingColumns...)
	for _, rec := range records {
		query = query.Values(landingValues(rec)...)
	}
	return query.ToSql()
}

// landingValues returns the bind values of rec in models.LandingColumns order.
func landingValues(rec models.LandingRecord) []interface{} {
	return []interface{}{
		rec.BatchID, string(rec.SourceSystem), rec.SourceDocType, rec.SourceDocID, rec.SourceLineID,
		nullString(rec.EventTimestamp), rec.LoadTimestamp, string(rec.StatusCode), nullString(rec.ErrorCode), nullString(rec.ErrorMessage),
		nullString(rec.LedgerID), nullString(rec.LegalEntityID), nullString(rec.BusinessUnit), nullString(rec.CompanyCode), nullTime(rec.AccountingDate),
		nullString(rec.PeriodName), nullString(rec.JournalCategory), nullString(rec.CurrencyCode), nullString(rec.ExchangeRateType), rec.ExchangeRate,
		nullString(rec.SegmentAccount), nullString(rec.SegmentDepartment), nullString(rec.SegmentProduct), nullString(rec.SegmentProject),
		nullString(rec.SegmentInterco), nullString(rec.SegmentCustom1), nullString(rec.SegmentCustom2),
		nullString(rec.CustomerID), nullString(rec.SupplierID), nullString(rec.BankAccountID), nullString(rec.InvoiceID), nullString(rec.InvoiceLineID),
		nullString(rec.POID), nullString(rec.ReceiptID), nullString(rec.AssetID), nullString(rec.ProjectID),
		rec.Quantity, nullString(rec.UOMCode),
		nullString(rec.TaxCode), rec.TaxRate, rec.TaxAmountEntered, nullString(rec.RevrecRuleCode), nullString(rec.RevrecStartDate), nullString(rec.RevrecEndDate),
		nullString(rec.Description), nullString(rec.Reference1), nullString(rec.Reference2), nullString(rec.Reference3), nullString(rec.Reference4), nullString(rec.Reference5),
		rec.Get("reversal_flag"), nullString(rec.ReversedInterfaceID),
		nullString(rec.CreatedBy), nullString(rec.UpdatedBy),
		rec.EnteredDr, rec.EnteredCr, rec.AccountedDr, rec.AccountedCr,
	}
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

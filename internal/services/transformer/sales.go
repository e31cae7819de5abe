package transformer

import (
	"context"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/validation"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

const (
	salesCreatedBy = "ETL_SALES"
	salesTaxSuffix = "_TAX"

	txnTypeInvoice = "INVOICE"
	txnTypeShip    = "SHIP"
	txnTypePayment = "PMT"
)

var salesMandatoryFields = []string{
	"source_doc_type", "source_doc_id", "source_line_id",
	"accounting_date", "currency_code", "segment_account",
}

type salesTransformer struct {
	baseLandingTransformer
}

func (t salesTransformer) Transform(ctx context.Context, batchID string, rec models.SourceRecord) []models.LandingRecord {
	txn := models.NewSalesTransaction(rec)
	id := recordIdentity{
		system:         models.SourceSystemSales,
		docType:        txn.TxnType,
		docID:          txn.SourceTxnID,
		lineID:         txn.SourceLineID,
		eventTimestamp: txn.EventTimestamp,
		createdBy:      t.createdBy(),
	}

	return t.safeTransform(ctx, batchID, id, func() ([]models.LandingRecord, error) {
		main, err := t.transformSales(ctx, batchID, id, txn)
		if err != nil {
			return nil, err
		}

		out := []models.LandingRecord{main}
		if t.config.Sales.CreateTaxEntries {
			if tax, ok := t.CreateTaxEntry(ctx, main, rec); ok {
				out = append(out, tax)
			}
		}

		return out, nil
	})
}

func (t salesTransformer) transformSales(
	ctx context.Context,
	batchID string,
	id recordIdentity,
	txn models.SalesTransaction,
) (out models.LandingRecord, err error) {
	accountingDate, err := parseOptionalDate(firstNonEmpty(txn.InvoiceDate, txn.EventTimestamp))
	if err != nil {
		return out, err
	}

	netAmount, err := common.RequireAmount("net_amount", txn.NetAmount)
	if err != nil {
		return out, err
	}

	out = t.newRecord(batchID, id)

	out.ExchangeRate, err = t.exchangeRate(ctx, txn.ExchangeRate, txn.CurrencyCode, accountingDate)
	if err != nil {
		return out, err
	}

	txnType := common.UpperTrim(txn.TxnType)

	out.AccountingDate = accountingDate
	out.PeriodName = common.FormatPeriodName(accountingDate)
	out.JournalCategory = t.tables.JournalCategory(config.SourceSystemSales, txnType, config.DefaultJournalCategorySales)
	out.CurrencyCode = txn.CurrencyCode

	out.SegmentAccount = t.tables.Account(config.SourceSystemSales, txnType, txn.TaxCode != "", config.DefaultSalesAccount)
	if txnType == txnTypePayment {
		out.JournalCategory = config.JournalCategoryPayment
		out.SegmentAccount = config.SalesCashAccount
	}
	out.SegmentDepartment = t.salesDepartment(ctx, common.UpperTrim(txn.CustomerCode))
	out.SegmentProduct = common.UpperTrim(txn.ProductCode)
	out.SegmentCustom1 = txn.CampaignCode
	out.SegmentCustom2 = txn.SalespersonCode

	out.CustomerID = common.UpperTrim(txn.CustomerCode)
	out.InvoiceID = txn.InvoiceID
	out.InvoiceLineID = txn.SourceLineID

	out.Quantity = common.ValidateAmount(txn.QuantityShipped)
	out.UOMCode = txn.UOMCode

	out.TaxCode = txn.TaxCode
	out.TaxRate = common.ValidateAmount(txn.TaxRate)
	out.TaxAmountEntered = common.ValidateAmount(txn.TaxAmount)
	out.RevrecRuleCode = txn.RevrecRuleCode
	out.RevrecStartDate = txn.InvoiceDate

	out.Description = common.CleanString(ctx, common.JoinNonEmpty(descriptionSeparator,
		txn.ProductName,
		labelled("Order: ", txn.OrderID),
		labelled("Customer: ", txn.CustomerCode),
	), config.DescriptionMaxLength)
	out.Reference1 = common.CleanString(ctx, txn.OrderID, config.ReferenceMaxLength)
	out.Reference2 = common.CleanString(ctx, txn.InvoiceID, config.ReferenceMaxLength)
	out.Reference3 = common.CleanString(ctx, txn.ShipmentID, config.ReferenceMaxLength)
	out.Reference4 = common.CleanString(ctx, txn.Reference1, config.ReferenceMaxLength)
	out.Reference5 = common.CleanString(ctx, txn.Reference2, config.ReferenceMaxLength)

	out.ReversalFlag = txn.ReturnFlag || txn.CancelFlag

	switch txnType {
	case txnTypeInvoice, txnTypeShip:
		if txn.ReturnFlag {
			postDebit(&out, netAmount)
		} else {
			postCredit(&out, netAmount)
		}
	case txnTypePayment:
		postDebit(&out, netAmount)
	default:
		postCredit(&out, netAmount.Abs())
	}

	violations := validation.ValidateMandatoryFields(out, salesMandatoryFields...)
	violations = append(violations, amountViolations(out)...)
	if !common.ValidateCurrencyCode(out.CurrencyCode) {
		violations = append(violations, msgInvalidCurrency)
	}
	finalize(&out, violations)

	return out, nil
}

// CreateTaxEntry derives the tax landing record of a sales record. It reports
// false when the row carries no usable tax amount.
func (t salesTransformer) CreateTaxEntry(ctx context.Context, main models.LandingRecord, rec models.SourceRecord) (models.LandingRecord, bool) {
	taxAmount := common.ValidateAmount(rec.Get("tax_amount"))
	if !taxAmount.Valid || taxAmount.Decimal.IsZero() {
		return models.LandingRecord{}, false
	}

	tax := main
	tax.SourceLineID = rec.Get("source_line_id") + salesTaxSuffix
	tax.SegmentAccount = config.SalesTaxAccount
	tax.TaxAmountEntered = taxAmount
	tax.Description = common.CleanString(ctx, "Sales Tax - "+main.Description, config.DescriptionMaxLength)
	postCredit(&tax, taxAmount.Decimal)

	return tax, true
}

// salesDepartment resolves the customer's department from the master data,
// else derives it from the customer code prefix.
func (t salesTransformer) salesDepartment(ctx context.Context, customerCode string) string {
	if customerCode == "" {
		return ""
	}
	if dept, ok := t.masterData.GetCustomerDepartment(ctx, customerCode); ok {
		return dept
	}
	return "DEPT_" + common.TruncateRunes(customerCode, 2)
}

func (t salesTransformer) createdBy() string {
	return firstNonEmpty(t.config.Sales.CreatedBy, salesCreatedBy)
}

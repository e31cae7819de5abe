package models

import (
	"fmt"
	"strings"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusReady      Status = "READY"
	StatusError      Status = "ERROR"
)

type SourceSystem string

const (
	SourceSystemSales     SourceSystem = "SALE"
	SourceSystemHR        SourceSystem = "HR"
	SourceSystemInventory SourceSystem = "INV"
)

var SourceSystems = []SourceSystem{SourceSystemSales, SourceSystemHR, SourceSystemInventory}

func ParseSourceSystem(s string) (SourceSystem, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SALE", "SALES":
		return SourceSystemSales, nil
	case "HR", "PAYROLL":
		return SourceSystemHR, nil
	case "INV", "INVENTORY":
		return SourceSystemInventory, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownSourceSystem, s)
	}
}

// FileSuffix is the short name used in output file names.
func (s SourceSystem) FileSuffix() string {
	switch s {
	case SourceSystemSales:
		return "sales"
	case SourceSystemHR:
		return "hr"
	case SourceSystemInventory:
		return "inventory"
	default:
		return strings.ToLower(string(s))
	}
}

// LandingRecord is one accounting entry staged for the ERP journal import.
// Only one of the dr/cr pairs is set; the ERP generates the offsetting side.
type LandingRecord struct {
	BatchID        string       `json:"batch_id"`
	SourceSystem   SourceSystem `json:"source_system"`
	SourceDocType  string       `json:"source_doc_type"`
	SourceDocID    string       `json:"source_doc_id"`
	SourceLineID   string       `json:"source_line_id"`
	EventTimestamp string       `json:"event_timestamp"`
	LoadTimestamp  time.Time    `json:"load_timestamp"`
	StatusCode     Status       `json:"status_code"`
	ErrorCode      string       `json:"error_code,omitempty"`
	ErrorMessage   string       `json:"error_message,omitempty"`

	LedgerID         string          `json:"ledger_id"`
	LegalEntityID    string          `json:"legal_entity_id"`
	BusinessUnit     string          `json:"business_unit"`
	CompanyCode      string          `json:"company_code"`
	AccountingDate   time.Time       `json:"accounting_date"`
	PeriodName       string          `json:"period_name"`
	JournalCategory  string          `json:"journal_category"`
	CurrencyCode     string          `json:"currency_code"`
	ExchangeRateType string          `json:"exchange_rate_type"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`

	SegmentAccount    string `json:"segment_account"`
	SegmentDepartment string `json:"segment_department"`
	SegmentProduct    string `json:"segment_product"`
	SegmentProject    string `json:"segment_project"`
	SegmentInterco    string `json:"segment_interco"`
	SegmentCustom1    string `json:"segment_custom1"`
	SegmentCustom2    string `json:"segment_custom2"`

	CustomerID    string `json:"customer_id"`
	SupplierID    string `json:"supplier_id"`
	BankAccountID string `json:"bank_account_id"`
	InvoiceID     string `json:"invoice_id"`
	InvoiceLineID string `json:"invoice_line_id"`
	POID          string `json:"po_id"`
	ReceiptID     string `json:"receipt_id"`
	AssetID       string `json:"asset_id"`
	ProjectID     string `json:"project_id"`

	Quantity decimal.NullDecimal `json:"quantity"`
	UOMCode  string              `json:"uom_code"`

	TaxCode          string              `json:"tax_code"`
	TaxRate          decimal.NullDecimal `json:"tax_rate"`
	TaxAmountEntered decimal.NullDecimal `json:"tax_amount_entered"`
	RevrecRuleCode   string              `json:"revrec_rule_code"`
	RevrecStartDate  string              `json:"revrec_start_date"`
	RevrecEndDate    string              `json:"revrec_end_date"`

	Description string `json:"description"`
	Reference1  string `json:"reference1"`
	Reference2  string `json:"reference2"`
	Reference3  string `json:"reference3"`
	Reference4  string `json:"reference4"`
	Reference5  string `json:"reference5"`

	ReversalFlag        bool   `json:"reversal_flag"`
	ReversedInterfaceID string `json:"reversed_interface_id"`

	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`

	EnteredDr   decimal.Decimal `json:"entered_dr"`
	EnteredCr   decimal.Decimal `json:"entered_cr"`
	AccountedDr decimal.Decimal `json:"accounted_dr"`
	AccountedCr decimal.Decimal `json:"accounted_cr"`
}

type landingColumn struct {
	name  string
	value func(r *LandingRecord) string
}

// landingColumns renders each column of the landing interface file, in column order.
var landingColumns = []landingColumn{
	{"batch_id", func(r *LandingRecord) string { return r.BatchID }},
	{"source_system", func(r *LandingRecord) string { return string(r.SourceSystem) }},
	{"source_doc_type", func(r *LandingRecord) string { return r.SourceDocType }},
	{"source_doc_id", func(r *LandingRecord) string { return r.SourceDocID }},
	{"source_line_id", func(r *LandingRecord) string { return r.SourceLineID }},
	{"event_timestamp", func(r *LandingRecord) string { return r.EventTimestamp }},
	{"load_timestamp", func(r *LandingRecord) string { return formatTime(r.LoadTimestamp, landingTimestampLayout) }},
	{"status_code", func(r *LandingRecord) string { return string(r.StatusCode) }},
	{"error_code", func(r *LandingRecord) string { return r.ErrorCode }},
	{"error_message", func(r *LandingRecord) string { return r.ErrorMessage }},
	{"ledger_id", func(r *LandingRecord) string { return r.LedgerID }},
	{"legal_entity_id", func(r *LandingRecord) string { return r.LegalEntityID }},
	{"business_unit", func(r *LandingRecord) string { return r.BusinessUnit }},
	{"company_code", func(r *LandingRecord) string { return r.CompanyCode }},
	{"accounting_date", func(r *LandingRecord) string { return formatTime(r.AccountingDate, landingDateLayout) }},
	{"period_name", func(r *LandingRecord) string { return r.PeriodName }},
	{"journal_category", func(r *LandingRecord) string { return r.JournalCategory }},
	{"currency_code", func(r *LandingRecord) string { return r.CurrencyCode }},
	{"exchange_rate_type", func(r *LandingRecord) string { return r.ExchangeRateType }},
	{"exchange_rate", func(r *LandingRecord) string { return formatDecimal(r.ExchangeRate) }},
	{"segment_account", func(r *LandingRecord) string { return r.SegmentAccount }},
	{"segment_department", func(r *LandingRecord) string { return r.SegmentDepartment }},
	{"segment_product", func(r *LandingRecord) string { return r.SegmentProduct }},
	{"segment_project", func(r *LandingRecord) string { return r.SegmentProject }},
	{"segment_interco", func(r *LandingRecord) string { return r.SegmentInterco }},
	{"segment_custom1", func(r *LandingRecord) string { return r.SegmentCustom1 }},
	{"segment_custom2", func(r *LandingRecord) string { return r.SegmentCustom2 }},
	{"customer_id", func(r *LandingRecord) string { return r.CustomerID }},
	{"supplier_id", func(r *LandingRecord) string { return r.SupplierID }},
	{"bank_account_id", func(r *LandingRecord) string { return r.BankAccountID }},
	{"invoice_id", func(r *LandingRecord) string { return r.InvoiceID }},
	{"invoice_line_id", func(r *LandingRecord) string { return r.InvoiceLineID }},
	{"po_id", func(r *LandingRecord) string { return r.POID }},
	{"receipt_id", func(r *LandingRecord) string { return r.ReceiptID }},
	{"asset_id", func(r *LandingRecord) string { return r.AssetID }},
	{"project_id", func(r *LandingRecord) string { return r.ProjectID }},
	{"quantity", func(r *LandingRecord) string { return formatNullDecimal(r.Quantity) }},
	{"uom_code", func(r *LandingRecord) string { return r.UOMCode }},
	{"tax_code", func(r *LandingRecord) string { return r.TaxCode }},
	{"tax_rate", func(r *LandingRecord) string { return formatNullDecimal(r.TaxRate) }},
	{"tax_amount_entered", func(r *LandingRecord) string { return formatNullDecimal(r.TaxAmountEntered) }},
	{"revrec_rule_code", func(r *LandingRecord) string { return r.RevrecRuleCode }},
	{"revrec_start_date", func(r *LandingRecord) string { return r.RevrecStartDate }},
	{"revrec_end_date", func(r *LandingRecord) string { return r.RevrecEndDate }},
	{"description", func(r *LandingRecord) string { return r.Description }},
	{"reference1", func(r *LandingRecord) string { return r.Reference1 }},
	{"reference2", func(r *LandingRecord) string { return r.Reference2 }},
	{"reference3", func(r *LandingRecord) string { return r.Reference3 }},
	{"reference4", func(r *LandingRecord) string { return r.Reference4 }},
	{"reference5", func(r *LandingRecord) string { return r.Reference5 }},
	{"reversal_flag", func(r *LandingRecord) string { return formatFlag(r.ReversalFlag) }},
	{"reversed_interface_id", func(r *LandingRecord) string { return r.ReversedInterfaceID }},
	{"created_by", func(r *LandingRecord) string { return r.CreatedBy }},
	{"updated_by", func(r *LandingRecord) string { return r.UpdatedBy }},
	{"entered_dr", func(r *LandingRecord) string { return formatDecimal(r.EnteredDr) }},
	{"entered_cr", func(r *LandingRecord) string { return formatDecimal(r.EnteredCr) }},
	{"accounted_dr", func(r *LandingRecord) string { return formatDecimal(r.AccountedDr) }},
	{"accounted_cr", func(r *LandingRecord) string { return formatDecimal(r.AccountedCr) }},
}

// LandingColumns is the header of the landing interface file, in column order.
var LandingColumns = func() []string {
	names := make([]string, len(landingColumns))
	for i, c := range landingColumns {
		names[i] = c.name
	}
	return names
}()

var landingColumnIndex = func() map[string]int {
	idx := make(map[string]int, len(landingColumns))
	for i, c := range landingColumns {
		idx[c.name] = i
	}
	return idx
}()

const (
	landingDateLayout      = "2006-01-02"
	landingTimestampLayout = "2006-01-02 15:04:05"
)

// ToRow renders the record in LandingColumns order.
func (r LandingRecord) ToRow() []string {
	row := make([]string, len(landingColumns))
	for i, c := range landingColumns {
		row[i] = c.value(&r)
	}
	return row
}

// Get renders the single column, or "" for unknown columns.
func (r LandingRecord) Get(column string) string {
	i, ok := landingColumnIndex[column]
	if !ok {
		return ""
	}
	return landingColumns[i].value(&r)
}

// HasNoAmount reports whether both entered_dr and entered_cr are zero.
func (r LandingRecord) HasNoAmount() bool {
	return r.EnteredDr.IsZero() && r.EnteredCr.IsZero()
}

func (r LandingRecord) IsReady() bool {
	return r.StatusCode == StatusReady
}

func (r LandingRecord) IsError() bool {
	return r.StatusCode == StatusError
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(4)
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func formatFlag(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

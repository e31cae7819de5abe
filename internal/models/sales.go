package models

// SalesTransaction is a row of the sales_txn_export file.
// Amount fields stay raw so that amount validation owns their parsing.
type SalesTransaction struct {
	ExportID        string
	TxnType         string
	SourceTxnID     string
	SourceLineID    string
	EventTimestamp  string
	InvoiceDate     string
	CurrencyCode    string
	ExchangeRate    string
	CustomerCode    string
	ProductCode     string
	ProductName     string
	CampaignCode    string
	SalespersonCode string
	InvoiceID       string
	OrderID         string
	ShipmentID      string
	QuantityShipped string
	UOMCode         string
	TaxCode         string
	TaxRate         string
	TaxAmount       string
	NetAmount       string
	RevrecRuleCode  string
	Reference1      string
	Reference2      string
	ReturnFlag      bool
	CancelFlag      bool
}

func NewSalesTransaction(r SourceRecord) SalesTransaction {
	return SalesTransaction{
		ExportID:        r.Get("export_id"),
		TxnType:         r.Get("txn_type"),
		SourceTxnID:     r.Get("source_txn_id"),
		SourceLineID:    r.Get("source_line_id"),
		EventTimestamp:  r.Get("event_timestamp"),
		InvoiceDate:     r.Get("invoice_date"),
		CurrencyCode:    r.GetOr("currency_code", "JPY"),
		ExchangeRate:    r.Get("exchange_rate"),
		CustomerCode:    r.Get("customer_code"),
		ProductCode:     r.Get("product_code"),
		ProductName:     r.Get("product_name"),
		CampaignCode:    r.Get("campaign_code"),
		SalespersonCode: r.Get("salesperson_code"),
		InvoiceID:       r.Get("invoice_id"),
		OrderID:         r.Get("order_id"),
		ShipmentID:      r.Get("shipment_id"),
		QuantityShipped: r.Get("quantity_shipped"),
		UOMCode:         r.Get("uom_code"),
		TaxCode:         r.Get("tax_code"),
		TaxRate:         r.Get("tax_rate"),
		TaxAmount:       r.Get("tax_amount"),
		NetAmount:       r.Get("net_amount"),
		RevrecRuleCode:  r.Get("revrec_rule_code"),
		Reference1:      r.Get("reference1"),
		Reference2:      r.Get("reference2"),
		ReturnFlag:      r.Bool("return_flag"),
		CancelFlag:      r.Bool("cancel_flag"),
	}
}

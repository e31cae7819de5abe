package models

// InventoryMovement is a row of the inv_movement_export file.
type InventoryMovement struct {
	ExportID          string
	MovementType      string
	MovementID        string
	MovementLineID    string
	MovementTimestamp string
	CurrencyCode      string
	ExchangeRate      string
	InventoryOrg      string
	SubinventoryCode  string
	LocationCode      string
	ItemCode          string
	ItemDescription   string
	ProjectCode       string
	SourceDocType     string
	SourceDocID       string
	WIPJobID          string
	LotNo             string
	SerialNo          string
	ReasonCode        string
	Quantity          string
	UOMCode           string
	CostMethod        string
	StdCost           string
	AvgCost           string
	UnitCost          string
	VarianceAmount    string
}

func NewInventoryMovement(r SourceRecord) InventoryMovement {
	return InventoryMovement{
		ExportID:          r.Get("export_id"),
		MovementType:      r.Get("movement_type"),
		MovementID:        r.Get("movement_id"),
		MovementLineID:    r.Get("movement_line_id"),
		MovementTimestamp: r.Get("movement_timestamp"),
		CurrencyCode:      r.GetOr("currency_code", "JPY"),
		ExchangeRate:      r.Get("exchange_rate"),
		InventoryOrg:      r.Get("inventory_org"),
		SubinventoryCode:  r.Get("subinventory_code"),
		LocationCode:      r.Get("location_code"),
		ItemCode:          r.Get("item_code"),
		ItemDescription:   r.Get("item_description"),
		ProjectCode:       r.Get("project_code"),
		SourceDocType:     r.Get("source_doc_type"),
		SourceDocID:       r.Get("source_doc_id"),
		WIPJobID:          r.Get("wip_job_id"),
		LotNo:             r.Get("lot_no"),
		SerialNo:          r.Get("serial_no"),
		ReasonCode:        r.Get("reason_code"),
		Quantity:          r.Get("quantity"),
		UOMCode:           r.Get("uom_code"),
		CostMethod:        r.GetOr("cost_method", "STD"),
		StdCost:           r.Get("std_cost"),
		AvgCost:           r.Get("avg_cost"),
		UnitCost:          r.Get("unit_cost"),
		VarianceAmount:    r.Get("variance_amount"),
	}
}

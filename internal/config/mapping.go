package config

import (
	"fmt"
	"strings"
)

const (
	SourceSystemSales     = "SALE"
	SourceSystemHR        = "HR"
	SourceSystemInventory = "INV"

	AccountVariantDefault = "default"
	AccountVariantTax     = "tax"

	DefaultJournalCategorySales     = "Sales"
	DefaultJournalCategoryInventory = "Inventory"
	DefaultSalesAccount             = "4100"
	DefaultInventoryAccount         = "1200"
	DefaultHRAccount                = "6100"

	SalesCashAccount         = "1100"
	SalesTaxAccount          = "2300"
	InventoryAssetAccount    = "1300"
	CostOfGoodsSoldAccount   = "5100"
	InventoryVarianceAccount = "5200"
	PayrollPayableAccount    = "2100"

	JournalCategoryPayment    = "Payment"
	JournalCategoryCost       = "Cost"
	JournalCategoryAdjustment = "Adjustment"
	JournalCategoryTransfer   = "Transfer"
	JournalCategoryVariance   = "Variance"
	JournalCategoryPayroll    = "Payroll"
	JournalCategoryBonus      = "Bonus"
	JournalCategoryTax        = "Tax"

	DescriptionMaxLength = 500
	ReferenceMaxLength   = 100
)

type MappingKey struct {
	SourceSystem string
	DocType      string
}

// MappingTables are the lookup tables shared by the transformers. Build them
// once at start-up and treat them as read-only afterwards.
type MappingTables struct {
	JournalCategories map[MappingKey]string
	Accounts          map[MappingKey]AccountVariant
	HRAccounts        map[string]string
	// InventoryOrgDepartments maps an inventory org to its department segment.
	InventoryOrgDepartments map[string]string
	BatchSizes              map[string]int
}

func DefaultMappingTables() MappingTables {
	return MappingTables{
		JournalCategories: map[MappingKey]string{
			{SourceSystemSales, "ORDER"}:   "Sales",
			{SourceSystemSales, "SHIP"}:    "Sales",
			{SourceSystemSales, "INVOICE"}: "Sales",
			{SourceSystemSales, "CM"}:      "Sales",
			{SourceSystemSales, "PMT"}:     "Payment",

			{SourceSystemInventory, "RCV"}: "Inventory",
			{SourceSystemInventory, "ISS"}: "Inventory",
			{SourceSystemInventory, "TRF"}: "Inventory",
			{SourceSystemInventory, "ADJ"}: "Inventory",
			{SourceSystemInventory, "CNT"}: "Inventory",
			{SourceSystemInventory, "CST"}: "Cost",

			{SourceSystemHR, "PAYROLL"}: "Payroll",
			{SourceSystemHR, "BONUS"}:   "Bonus",
		},
		Accounts: map[MappingKey]AccountVariant{
			{SourceSystemSales, "INVOICE"}: {Default: "4100", Tax: "2300"},
			{SourceSystemSales, "ORDER"}:   {Default: "4100"},

			{SourceSystemInventory, "RCV"}: {Default: "1200"},
			{SourceSystemInventory, "ISS"}: {Default: "5100"},
			{SourceSystemInventory, "ADJ"}: {Default: "5200"},
		},
		HRAccounts: map[string]string{
			"SALARY":                     "6100",
			"BONUS":                      "6110",
			"ALLOWANCE_TRANSPORT":        "6120",
			"ALLOWANCE_HOUSING":          "6130",
			"ALLOWANCE_FAMILY":           "6140",
			"DEDUCTION_INCOME_TAX":       "2400",
			"DEDUCTION_RESIDENT_TAX":     "2401",
			"DEDUCTION_SOCIAL_INSURANCE": "2402",
			"DEDUCTION_PENSION":          "2403",
			"DEDUCTION_HEALTH":           "2404",
			"DEDUCTION_EMPLOYMENT":       "2405",
			"PAYABLE":                    "2100",
		},
		InventoryOrgDepartments: map[string]string{
			"ORG001": "DEPT_PROD",
			"ORG002": "DEPT_SALES",
			"ORG003": "DEPT_SERVICE",
		},
		BatchSizes: map[string]int{
			SourceSystemSales:     10000,
			SourceSystemHR:        5000,
			SourceSystemInventory: 15000,
		},
	}
}

// JournalCategory returns the mapped category for (system, docType) or def.
func (m MappingTables) JournalCategory(system, docType, def string) string {
	if c, ok := m.JournalCategories[MappingKey{system, docType}]; ok && c != "" {
		return c
	}
	return def
}

// Account returns the account for (system, docType): the tax variant when
// useTax is set and one exists, else the default variant, else def.
func (m MappingTables) Account(system, docType string, useTax bool, def string) string {
	v, ok := m.Accounts[MappingKey{system, docType}]
	if !ok {
		return def
	}
	if useTax && v.Tax != "" {
		return v.Tax
	}
	if v.Default != "" {
		return v.Default
	}
	return def
}

func (m MappingTables) HRAccount(tag string) string {
	if a, ok := m.HRAccounts[tag]; ok {
		return a
	}
	return DefaultHRAccount
}

// Merge returns a copy of m with the overrides applied. Keys are upper-cased
// since viper lower-cases every map key it reads.
func (m MappingTables) Merge(o Mapping) (MappingTables, error) {
	merged := MappingTables{
		JournalCategories:       make(map[MappingKey]string, len(m.JournalCategories)),
		Accounts:                make(map[MappingKey]AccountVariant, len(m.Accounts)),
		HRAccounts:              make(map[string]string, len(m.HRAccounts)),
		InventoryOrgDepartments: make(map[string]string, len(m.InventoryOrgDepartments)),
		BatchSizes:              make(map[string]int, len(m.BatchSizes)),
	}
	for k, v := range m.JournalCategories {
		merged.JournalCategories[k] = v
	}
	for k, v := range m.Accounts {
		merged.Accounts[k] = v
	}
	for k, v := range m.HRAccounts {
		merged.HRAccounts[k] = v
	}
	for k, v := range m.InventoryOrgDepartments {
		merged.InventoryOrgDepartments[k] = v
	}
	for k, v := range m.BatchSizes {
		merged.BatchSizes[k] = v
	}

	for system, docs := range o.JournalCategories {
		if err := validateSourceSystem(system); err != nil {
			return MappingTables{}, err
		}
		for doc, category := range docs {
			merged.JournalCategories[MappingKey{strings.ToUpper(system), strings.ToUpper(doc)}] = category
		}
	}
	for system, docs := range o.Accounts {
		if err := validateSourceSystem(system); err != nil {
			return MappingTables{}, err
		}
		for doc, variant := range docs {
			merged.Accounts[MappingKey{strings.ToUpper(system), strings.ToUpper(doc)}] = variant
		}
	}
	for tag, account := range o.HRAccounts {
		merged.HRAccounts[strings.ToUpper(tag)] = account
	}

	return merged, nil
}

func validateSourceSystem(system string) error {
	switch strings.ToUpper(system) {
	case SourceSystemSales, SourceSystemHR, SourceSystemInventory:
		return nil
	default:
		return fmt.Errorf("unknown source system in mapping override: %s", system)
	}
}

// GetErrorMessage resolves code against the catalog and appends extra when given.
func GetErrorMessage(code ErrorCode, extra string) string {
	base, ok := ErrorCatalog[code]
	if !ok {
		base = fmt.Sprintf("Unknown error: %s", code)
	}
	if extra != "" {
		return fmt.Sprintf("%s - %s", base, extra)
	}
	return base
}

package models

// Employee is a row of the hr_employee_org_export file.
type Employee struct {
	ExportID           string
	EmployeeID         string
	EmployeeNumber     string
	FirstName          string
	LastName           string
	DeptCode           string
	CostCenterCode     string
	PayrollGroup       string
	BankAccountNo      string
	AllocationRuleCode string
	TaxRegionCode      string
	EmploymentType     string
}

func NewEmployee(r SourceRecord) Employee {
	return Employee{
		ExportID:           r.Get("export_id"),
		EmployeeID:         r.Get("employee_id"),
		EmployeeNumber:     r.Get("employee_number"),
		FirstName:          r.Get("first_name"),
		LastName:           r.Get("last_name"),
		DeptCode:           r.Get("dept_code"),
		CostCenterCode:     r.Get("cost_center_code"),
		PayrollGroup:       r.Get("payroll_group"),
		BankAccountNo:      r.Get("bank_account_no"),
		AllocationRuleCode: r.Get("allocation_rule_code"),
		TaxRegionCode:      r.Get("tax_region_code"),
		EmploymentType:     r.Get("employment_type"),
	}
}

// PayrollComponent is one allowance or deduction, e.g. {HOUSING, "50000"}.
type PayrollComponent struct {
	Type   string
	Amount string
}

// PayrollData is the payroll of one employee for one period.
// Allowances and Deductions keep their source order.
type PayrollData struct {
	PayrollID    string
	PayrollDate  string
	CurrencyCode string
	BasicSalary  string
	Allowances   []PayrollComponent
	Deductions   []PayrollComponent
	Bonus        string
	ReversalFlag bool
}

// payrollExportColumns maps hr_payroll_export amount columns to component types.
var (
	payrollAllowanceColumns = []PayrollComponent{
		{Type: "HOUSING", Amount: "allowance_housing"},
		{Type: "TRANSPORT", Amount: "allowance_transportation"},
		{Type: "FAMILY", Amount: "allowance_family"},
	}
	payrollDeductionColumns = []PayrollComponent{
		{Type: "INCOME_TAX", Amount: "deduction_tax"},
		{Type: "SOCIAL_INSURANCE", Amount: "deduction_insurance"},
		{Type: "RESIDENT_TAX", Amount: "deduction_resident_tax"},
		{Type: "PENSION", Amount: "deduction_pension"},
		{Type: "HEALTH", Amount: "deduction_health"},
		{Type: "EMPLOYMENT", Amount: "deduction_employment"},
	}
)

// NewPayrollDataFromExport reads a hr_payroll_export row, or an employee row
// carrying the same columns.
func NewPayrollDataFromExport(r SourceRecord) PayrollData {
	p := PayrollData{
		PayrollID:    r.Get("payroll_id"),
		PayrollDate:  r.GetOr("payroll_date", r.Get("payment_date")),
		CurrencyCode: r.GetOr("currency_code", "JPY"),
		BasicSalary:  r.Get("basic_salary"),
		Bonus:        r.Get("bonus"),
		ReversalFlag: r.Bool("reversal_flag"),
	}
	for _, c := range payrollAllowanceColumns {
		if r.Has(c.Amount) {
			p.Allowances = append(p.Allowances, PayrollComponent{Type: c.Type, Amount: r.Get(c.Amount)})
		}
	}
	for _, c := range payrollDeductionColumns {
		if r.Has(c.Amount) {
			p.Deductions = append(p.Deductions, PayrollComponent{Type: c.Type, Amount: r.Get(c.Amount)})
		}
	}
	return p
}

// HasPayrollColumns reports whether r already carries payroll amounts.
func HasPayrollColumns(r SourceRecord) bool {
	return r.Has("basic_salary") || r.Has("payroll_id")
}

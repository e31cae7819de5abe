package transformer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/idgenerator"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/validation"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

const (
	hrCreatedBy        = "ETL_HR"
	hrDocTypePayroll   = "PAYROLL"
	hrErrorLineID      = "ERROR"
	hrDefaultTaxRegion = "JP"

	componentSalary    = "SALARY"
	componentBonus     = "BONUS"
	componentAllowance = "ALLOWANCE_"
	componentDeduction = "DEDUCTION_"
)

var hrMandatoryFields = []string{
	"source_doc_id", "source_line_id", "accounting_date",
	"currency_code", "segment_account", "segment_department",
}

var componentLabels = map[string]string{
	"SALARY":                     "Basic Salary",
	"BONUS":                      "Bonus",
	"ALLOWANCE_TRANSPORT":        "Transport Allowance",
	"ALLOWANCE_HOUSING":          "Housing Allowance",
	"ALLOWANCE_FAMILY":           "Family Allowance",
	"DEDUCTION_INCOME_TAX":       "Income Tax",
	"DEDUCTION_RESIDENT_TAX":     "Resident Tax",
	"DEDUCTION_SOCIAL_INSURANCE": "Social Insurance",
}

type hrTransformer struct {
	baseLandingTransformer
}

// payrollComponent is a tagged amount ready to post.
type payrollComponent struct {
	tag    string
	amount decimal.Decimal
}

// payrollContext is what every component record of one employee shares.
type payrollContext struct {
	batchID  string
	employee models.Employee
	payroll  models.PayrollData
	date     time.Time
	runAt    time.Time
	docID    string
	rate     decimal.Decimal
	rule     models.AllocationRule
}

// Transform reads the employee and its payroll columns from the same row.
// Payroll sources merge the payroll export into the employee row beforehand.
func (t hrTransformer) Transform(ctx context.Context, batchID string, rec models.SourceRecord) []models.LandingRecord {
	return t.TransformPayroll(ctx, batchID, models.NewEmployee(rec), models.NewPayrollDataFromExport(rec))
}

// TransformPayroll posts each populated payroll component of employee as its
// own landing record. Missing identity fields short-circuit to one ERROR record.
func (t hrTransformer) TransformPayroll(
	ctx context.Context,
	batchID string,
	employee models.Employee,
	payroll models.PayrollData,
) []models.LandingRecord {
	id := recordIdentity{
		system:         models.SourceSystemHR,
		docType:        hrDocTypePayroll,
		docID:          employee.EmployeeID,
		lineID:         hrErrorLineID,
		eventTimestamp: t.runTime(batchID).Format(time.RFC3339),
		createdBy:      t.createdBy(),
	}

	if missing := missingEmployeeField(employee); missing != "" {
		return []models.LandingRecord{
			t.errorRecord(batchID, id, config.ErrCodeEValidation, "Missing required field: "+missing),
		}
	}

	return t.safeTransform(ctx, batchID, id, func() ([]models.LandingRecord, error) {
		pc, err := t.newPayrollContext(ctx, batchID, employee, payroll)
		if err != nil {
			return nil, err
		}

		components, err := payrollComponents(payroll)
		if err != nil {
			return nil, err
		}

		out := make([]models.LandingRecord, 0, len(components))
		for _, c := range components {
			out = append(out, t.componentRecords(ctx, pc, c)...)
		}

		return out, nil
	})
}

func missingEmployeeField(employee models.Employee) string {
	switch {
	case employee.EmployeeID == "":
		return "employee_id"
	case employee.DeptCode == "":
		return "dept_code"
	default:
		return ""
	}
}

func (t hrTransformer) newPayrollContext(
	ctx context.Context,
	batchID string,
	employee models.Employee,
	payroll models.PayrollData,
) (payrollContext, error) {
	date, err := parseOptionalDate(payroll.PayrollDate)
	if err != nil {
		return payrollContext{}, err
	}
	runAt := t.runTime(batchID)
	if date.IsZero() {
		date = time.Date(runAt.Year(), runAt.Month(), runAt.Day(), 0, 0, 0, 0, time.UTC)
	}

	if payroll.CurrencyCode == "" {
		payroll.CurrencyCode = firstNonEmpty(t.config.HR.DefaultCurrency, common.CurrencyJPY)
	}

	rate, err := t.exchangeRate(ctx, "", payroll.CurrencyCode, date)
	if err != nil {
		return payrollContext{}, err
	}

	return payrollContext{
		batchID:  batchID,
		employee: employee,
		payroll:  payroll,
		date:     date,
		runAt:    runAt,
		docID:    fmt.Sprintf("%s_%s_%s", employee.EmployeeID, payroll.PayrollID, date.Format(common.DateFormatYYYYMMWithoutDash)),
		rate:     rate,
		rule:     t.masterData.GetAllocationRule(ctx, employee.AllocationRuleCode),
	}, nil
}

// payrollComponents lists the non-zero components in posting order: salary,
// allowances, deductions, bonus. Amounts are absolute; the tag carries the side.
func payrollComponents(payroll models.PayrollData) ([]payrollComponent, error) {
	var components []payrollComponent

	add := func(tag, field, raw string) error {
		amount, err := common.RequireAmount(field, raw)
		if err != nil {
			return err
		}
		if amount.IsZero() {
			return nil
		}
		components = append(components, payrollComponent{tag: tag, amount: amount.Abs()})
		return nil
	}

	if err := add(componentSalary, "basic_salary", payroll.BasicSalary); err != nil {
		return nil, err
	}
	for _, a := range payroll.Allowances {
		if err := add(componentAllowance+strings.ToUpper(a.Type), "allowance", a.Amount); err != nil {
			return nil, err
		}
	}
	for _, d := range payroll.Deductions {
		if err := add(componentDeduction+strings.ToUpper(d.Type), "deduction", d.Amount); err != nil {
			return nil, err
		}
	}
	if err := add(componentBonus, "bonus", payroll.Bonus); err != nil {
		return nil, err
	}

	return components, nil
}

// componentRecords applies the allocation rule when allocation is enabled. A
// fan-out rule splits the amount by percentage and gives the remainder to the
// last split.
func (t hrTransformer) componentRecords(ctx context.Context, pc payrollContext, c payrollComponent) []models.LandingRecord {
	if !t.config.HR.AllocationEnabled || !pc.rule.IsFanOut() {
		return []models.LandingRecord{t.componentRecord(ctx, pc, c.tag, c.tag, pc.employee.DeptCode, c.amount)}
	}

	out := make([]models.LandingRecord, 0, len(pc.rule.Splits))
	remaining := c.amount
	for i, split := range pc.rule.Splits {
		share := remaining
		if i < len(pc.rule.Splits)-1 {
			share = common.RoundAmount(c.amount.Mul(split.Percentage).Div(decimal.NewFromInt(100)))
			remaining = remaining.Sub(share)
		}

		dept := pc.employee.DeptCode + split.DepartmentSuffix
		out = append(out, t.componentRecord(ctx, pc, c.tag, c.tag+"_"+dept, dept, share))
	}

	return out
}

func (t hrTransformer) componentRecord(
	ctx context.Context,
	pc payrollContext,
	tag, lineID, dept string,
	amount decimal.Decimal,
) models.LandingRecord {
	out := t.newRecord(pc.batchID, recordIdentity{
		system:         models.SourceSystemHR,
		docType:        hrDocTypePayroll,
		docID:          pc.docID,
		lineID:         lineID,
		eventTimestamp: firstNonEmpty(pc.payroll.PayrollDate, pc.runAt.Format(time.RFC3339)),
		createdBy:      t.createdBy(),
	})

	out.AccountingDate = pc.date
	out.PeriodName = common.FormatPeriodName(pc.date)
	out.JournalCategory = componentJournalCategory(tag)
	out.CurrencyCode = pc.payroll.CurrencyCode
	out.ExchangeRate = pc.rate

	out.SegmentAccount = t.tables.HRAccount(tag)
	out.SegmentDepartment = dept
	out.SegmentCustom1 = pc.employee.CostCenterCode
	out.SegmentCustom2 = pc.employee.PayrollGroup
	out.BankAccountID = pc.employee.BankAccountNo

	if strings.Contains(tag, "TAX") {
		out.TaxCode = "PAYROLL_TAX_" + firstNonEmpty(pc.employee.TaxRegionCode, t.config.HR.TaxRegionCode, hrDefaultTaxRegion)
	}

	out.Description = common.CleanString(ctx, common.JoinNonEmpty(descriptionSeparator,
		labelled("Emp: ", pc.employee.EmployeeNumber),
		employeeName(pc.employee),
		componentLabel(tag),
	), config.DescriptionMaxLength)
	out.Reference1 = common.CleanString(ctx, pc.employee.EmployeeNumber, config.ReferenceMaxLength)
	out.Reference2 = common.CleanString(ctx, pc.employee.PayrollGroup, config.ReferenceMaxLength)
	out.Reference3 = common.CleanString(ctx, pc.employee.AllocationRuleCode, config.ReferenceMaxLength)
	out.Reference4 = common.CleanString(ctx, pc.payroll.PayrollID, config.ReferenceMaxLength)

	out.ReversalFlag = pc.payroll.ReversalFlag

	if strings.HasPrefix(tag, componentDeduction) {
		postCredit(&out, amount)
	} else {
		postDebit(&out, amount)
	}

	violations := validation.ValidateMandatoryFields(out, hrMandatoryFields...)
	violations = append(violations, amountViolations(out)...)
	if out.SegmentDepartment == "" {
		violations = append(violations, msgDepartmentRequired)
	}
	finalize(&out, violations)

	return out
}

func componentJournalCategory(tag string) string {
	switch {
	case tag == componentBonus:
		return config.JournalCategoryBonus
	case strings.HasPrefix(tag, componentDeduction) && strings.Contains(tag, "TAX"):
		return config.JournalCategoryTax
	default:
		return config.JournalCategoryPayroll
	}
}

func componentLabel(tag string) string {
	if label, ok := componentLabels[tag]; ok {
		return label
	}
	return tag
}

// runTime is the start time of a generated batch id. The clock is used for
// batch ids chosen by the caller.
func (t hrTransformer) runTime(batchID string) time.Time {
	if at, ok := idgenerator.ParseTime(batchID); ok {
		return at
	}
	return t.now().UTC()
}

func employeeName(e models.Employee) string {
	if e.LastName == "" || e.FirstName == "" {
		return ""
	}
	return e.LastName + " " + e.FirstName
}

func (t hrTransformer) createdBy() string {
	return firstNonEmpty(t.config.HR.CreatedBy, hrCreatedBy)
}

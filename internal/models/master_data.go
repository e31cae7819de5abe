package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const AllocationRuleSplit5050 = "SPLIT_50_50"

// MasterData is the json document kept in the master-data bucket.
type MasterData struct {
	ExchangeRates           []ExchangeRate    `json:"exchangeRates"`
	InventoryOrgDepartments map[string]string `json:"inventoryOrgDepartments"`
	CustomerDepartments     map[string]string `json:"customerDepartments"`
	AllocationRules         []AllocationRule  `json:"allocationRules"`
}

type ExchangeRate struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// AllocationSplit moves Percentage of a payroll component to the source
// department suffixed with DepartmentSuffix.
type AllocationSplit struct {
	DepartmentSuffix string          `json:"departmentSuffix"`
	Percentage       decimal.Decimal `json:"percentage"`
}

type AllocationRule struct {
	Code   string            `json:"code"`
	Splits []AllocationSplit `json:"splits"`
}

// IsFanOut reports whether the rule spreads a component over more than one department.
func (r AllocationRule) IsFanOut() bool {
	return len(r.Splits) > 1
}

// DefaultAllocationRule books 100% to the source department.
func DefaultAllocationRule(code string) AllocationRule {
	return AllocationRule{
		Code:   code,
		Splits: []AllocationSplit{{Percentage: decimal.NewFromInt(100)}},
	}
}

func Split5050AllocationRule() AllocationRule {
	return AllocationRule{
		Code: AllocationRuleSplit5050,
		Splits: []AllocationSplit{
			{Percentage: decimal.NewFromInt(50)},
			{DepartmentSuffix: "_SHARED", Percentage: decimal.NewFromInt(50)},
		},
	}
}

// FindAllocationRule looks the code up in rules, then in the built-in rules.
// Unknown codes resolve to the 100% rule.
func FindAllocationRule(rules []AllocationRule, code string) AllocationRule {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, r := range rules {
		if strings.EqualFold(r.Code, code) && len(r.Splits) > 0 {
			return r
		}
	}
	if code == AllocationRuleSplit5050 {
		return Split5050AllocationRule()
	}
	return DefaultAllocationRule(code)
}

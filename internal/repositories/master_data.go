package repositories

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"

	"github.com/shopspring/decimal"
)

// MasterDataRepository serves the reference data the transformers look up.
//
//go:generate mockgen -source=master_data.go -destination=mock/master_data.go -package=mock
type MasterDataRepository interface {
	GetExchangeRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error)
	GetInventoryOrgDepartment(ctx context.Context, org string) (string, bool)
	GetCustomerDepartment(ctx context.Context, customerCode string) (string, bool)
	GetAllocationRule(ctx context.Context, code string) models.AllocationRule
	RefreshDataPeriodically(ctx context.Context, interval time.Duration)
}

type staticMasterDataRepository struct {
	rates                   map[common.CurrencyPair]decimal.Decimal
	inventoryOrgDepartments map[string]string
}

// NewStaticMasterDataRepository serves the built-in tables; unknown rate pairs resolve to 1.
func NewStaticMasterDataRepository(tables config.MappingTables) MasterDataRepository {
	return &staticMasterDataRepository{
		rates:                   common.DefaultExchangeRates,
		inventoryOrgDepartments: tables.InventoryOrgDepartments,
	}
}

func (s *staticMasterDataRepository) GetExchangeRate(_ context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	return common.CalculateExchangeRate(s.rates, from, to, date), nil
}

func (s *staticMasterDataRepository) GetInventoryOrgDepartment(_ context.Context, org string) (string, bool) {
	dept, ok := s.inventoryOrgDepartments[strings.ToUpper(org)]
	return dept, ok && dept != ""
}

func (s *staticMasterDataRepository) GetCustomerDepartment(_ context.Context, _ string) (string, bool) {
	return "", false
}

func (s *staticMasterDataRepository) GetAllocationRule(_ context.Context, code string) models.AllocationRule {
	return models.FindAllocationRule(nil, code)
}

func (s *staticMasterDataRepository) RefreshDataPeriodically(context.Context, time.Duration) {}

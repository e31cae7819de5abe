package repositories

import (
	"context"
	"strings"
	"time"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/fxrate"

	"github.com/shopspring/decimal"
)

type rateServiceMasterDataRepository struct {
	MasterDataRepository
	client fxrate.Client
}

// NewRateServiceMasterDataRepository answers exchange rates from the rate
// service and everything else from inner. A failed rate lookup falls back to inner.
func NewRateServiceMasterDataRepository(inner MasterDataRepository, client fxrate.Client) MasterDataRepository {
	return &rateServiceMasterDataRepository{MasterDataRepository: inner, client: client}
}

func (r *rateServiceMasterDataRepository) GetExchangeRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	if strings.EqualFold(from, to) {
		return decimal.NewFromInt(1), nil
	}

	rate, err := r.client.GetExchangeRate(ctx, strings.ToUpper(from), strings.ToUpper(to), date)
	if err == nil {
		return rate, nil
	}

	xlog.Warn(ctx, "[MASTER-DATA] exchange rate service failed, using fallback rate",
		xlog.String("pair", from+"/"+to),
		xlog.Err(err))

	return r.MasterDataRepository.GetExchangeRate(ctx, from, to, date)
}

var _ MasterDataRepository = (*rateServiceMasterDataRepository)(nil)

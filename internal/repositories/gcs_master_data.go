package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/safeaccess"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"

	"cloud.google.com/go/storage"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

type gcsMasterDataRepository struct {
	client   *storage.Client
	document safeaccess.ObjectStorageClient[models.MasterData]
	fallback MasterDataRepository
}

// NewGCSMasterDataRepository serves the master-data document of the bucket.
// Entries missing from the document are answered by fallback.
func NewGCSMasterDataRepository(cfg config.MasterData, fallback MasterDataRepository, opts ...option.ClientOption) (MasterDataRepository, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("failed to init master data, bucket name not set")
	}

	if cfg.FilePath == "" {
		return nil, fmt.Errorf("failed to init master data, file path not set")
	}

	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	return &gcsMasterDataRepository{
		client:   client,
		document: safeaccess.NewGCSJson[models.MasterData](client.Bucket(cfg.BucketName).Object(cfg.FilePath)),
		fallback: fallback,
	}, nil
}

func (g *gcsMasterDataRepository) repopulate(ctx context.Context) error {
	if err := g.document.LoadFile(ctx); err != nil {
		return fmt.Errorf("failed to read master data: %w", err)
	}
	return nil
}

func (g *gcsMasterDataRepository) RefreshDataPeriodically(ctx context.Context, interval time.Duration) {
	err := g.repopulate(ctx)
	if err != nil {
		xlog.Warn(ctx, "failed to repopulate master data", xlog.Err(err))
	}

	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err = g.repopulate(ctx)
				if err != nil {
					xlog.Warn(ctx, "failed to repopulate master data", xlog.Err(err))
				}
			}
		}
	}()
}

func (g *gcsMasterDataRepository) GetExchangeRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	for _, r := range g.document.Value().Load().ExchangeRates {
		if strings.EqualFold(r.From, from) && strings.EqualFold(r.To, to) && r.Rate.IsPositive() {
			return r.Rate, nil
		}
	}

	return g.fallback.GetExchangeRate(ctx, from, to, date)
}

func (g *gcsMasterDataRepository) GetInventoryOrgDepartment(ctx context.Context, org string) (string, bool) {
	if dept, ok := lookupFold(g.document.Value().Load().InventoryOrgDepartments, org); ok {
		return dept, true
	}
	return g.fallback.GetInventoryOrgDepartment(ctx, org)
}

func (g *gcsMasterDataRepository) GetCustomerDepartment(ctx context.Context, customerCode string) (string, bool) {
	if dept, ok := lookupFold(g.document.Value().Load().CustomerDepartments, customerCode); ok {
		return dept, true
	}
	return g.fallback.GetCustomerDepartment(ctx, customerCode)
}

func (g *gcsMasterDataRepository) GetAllocationRule(_ context.Context, code string) models.AllocationRule {
	return models.FindAllocationRule(g.document.Value().Load().AllocationRules, code)
}

// lookupFold matches keys case-insensitively.
func lookupFold(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok && v != "" {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) && v != "" {
			return v, true
		}
	}
	return "", false
}

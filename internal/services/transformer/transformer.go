package transformer

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
)

// Transformer maps one exported source row to its landing records.
// Record-level failures are returned as ERROR landing records, so the batch
// can keep going and count them.
type Transformer interface {
	Transform(ctx context.Context, batchID string, rec models.SourceRecord) []models.LandingRecord
}

// PostProcessor is implemented by transformers that need a second pass over
// the complete batch output, after every record has been transformed.
type PostProcessor interface {
	PostProcess(ctx context.Context, batchID string, records []models.LandingRecord) []models.LandingRecord
}

// baseLandingTransformer carries what every source system transformer needs
// to stamp and derive a landing record. It is read-only after construction.
type baseLandingTransformer struct {
	config     config.Landing
	tables     config.MappingTables
	masterData repositories.MasterDataRepository
	now        func() time.Time
}

type Option func(*baseLandingTransformer)

// WithClock replaces time.Now for load timestamps and default payroll dates.
func WithClock(now func() time.Time) Option {
	return func(b *baseLandingTransformer) {
		b.now = now
	}
}

// MapTransformer is used to get the transformer of a source system.
type MapTransformer map[models.SourceSystem]Transformer

func NewMapTransformer(
	cfg config.Landing,
	tables config.MappingTables,
	masterDataRepository repositories.MasterDataRepository,
	opts ...Option,
) MapTransformer {
	base := newBase(cfg, tables, masterDataRepository, opts...)

	return MapTransformer{
		models.SourceSystemSales:     &salesTransformer{base},
		models.SourceSystemHR:        &hrTransformer{base},
		models.SourceSystemInventory: &inventoryTransformer{base},
	}
}

func newBase(cfg config.Landing, tables config.MappingTables, masterData repositories.MasterDataRepository, opts ...Option) baseLandingTransformer {
	base := baseLandingTransformer{
		config:     cfg,
		tables:     tables,
		masterData: masterData,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

func (m MapTransformer) GetTransformer(system models.SourceSystem) (Transformer, error) {
	transformer, ok := m[system]
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", common.ErrUnableGetTransformer, system)
	}

	return transformer, nil
}

package transformer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories/mock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testBatchID = "SALE_20240315_100000"

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func testLandingConfig() config.Landing {
	return config.Landing{
		LedgerID:           "GL001",
		LegalEntityID:      "COMP001",
		BusinessUnit:       "BU001",
		CompanyCode:        "COMP001",
		ExchangeRateType:   "Corporate",
		FunctionalCurrency: common.CurrencyJPY,
	}
}

func newTestBase(t *testing.T, cfg config.Landing) baseLandingTransformer {
	t.Helper()

	tables := config.DefaultMappingTables()
	return newBase(cfg, tables, repositories.NewStaticMasterDataRepository(tables), WithClock(func() time.Time { return testNow }))
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func TestMapTransformer_GetTransformer(t *testing.T) {
	type args struct {
		system models.SourceSystem
	}
	tests := []struct {
		name    string
		m       MapTransformer
		args    args
		want    Transformer
		wantErr error
	}{
		{
			name: "success get transformer",
			m: MapTransformer{
				models.SourceSystemSales: &salesTransformer{},
			},
			args: args{
				system: models.SourceSystemSales,
			},
			want: &salesTransformer{},
		},
		{
			name: "failed get transformer",
			m: MapTransformer{
				models.SourceSystemSales: &salesTransformer{},
			},
			args: args{
				system: models.SourceSystem("GL"),
			},
			wantErr: common.ErrUnableGetTransformer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.m.GetTransformer(tt.args.system)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetTransformer() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewMapTransformer(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	mockMasterDataRepo := mock.NewMockMasterDataRepository(mockCtrl)

	m := NewMapTransformer(testLandingConfig(), config.DefaultMappingTables(), mockMasterDataRepo)

	for _, system := range models.SourceSystems {
		tr, err := m.GetTransformer(system)
		require.NoError(t, err)
		assert.NotNil(t, tr)
	}

	tr, err := m.GetTransformer(models.SourceSystemHR)
	require.NoError(t, err)
	_, ok := tr.(PostProcessor)
	assert.True(t, ok, "hr transformer runs the payable pass")

	tr, err = m.GetTransformer(models.SourceSystemSales)
	require.NoError(t, err)
	_, ok = tr.(PostProcessor)
	assert.False(t, ok)
}

func TestTransform_PanicBecomesTransformError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	mockMasterDataRepo := mock.NewMockMasterDataRepository(mockCtrl)
	mockMasterDataRepo.EXPECT().
		GetExchangeRate(gomock.Any(), "USD", "JPY", gomock.Any()).
		DoAndReturn(func(context.Context, string, string, time.Time) (decimal.Decimal, error) {
			panic("rate service exploded")
		})

	m := NewMapTransformer(testLandingConfig(), config.DefaultMappingTables(), mockMasterDataRepo,
		WithClock(func() time.Time { return testNow }))
	tr, err := m.GetTransformer(models.SourceSystemSales)
	require.NoError(t, err)

	got := tr.Transform(context.Background(), testBatchID, models.SourceRecord{
		"txn_type":       "INVOICE",
		"source_txn_id":  "S001",
		"source_line_id": "1",
		"invoice_date":   "2024-03-15",
		"currency_code":  "USD",
		"net_amount":     "100",
	})

	require.Len(t, got, 1)
	assert.Equal(t, models.StatusError, got[0].StatusCode)
	assert.Equal(t, string(config.ErrCodeETransform), got[0].ErrorCode)
	assert.Contains(t, got[0].ErrorMessage, "rate service exploded")
	assert.Equal(t, "S001", got[0].SourceDocID)
	assert.Equal(t, testBatchID, got[0].BatchID)
}

func TestTransform_MasterDataErrorBecomesTransformError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	mockMasterDataRepo := mock.NewMockMasterDataRepository(mockCtrl)
	mockMasterDataRepo.EXPECT().
		GetExchangeRate(gomock.Any(), "EUR", "JPY", gomock.Any()).
		Return(decimal.Zero, common.ErrExchangeRateUnavailable)

	m := NewMapTransformer(testLandingConfig(), config.DefaultMappingTables(), mockMasterDataRepo)
	tr, err := m.GetTransformer(models.SourceSystemInventory)
	require.NoError(t, err)

	got := tr.Transform(context.Background(), testBatchID, models.SourceRecord{
		"movement_type":      "RCV",
		"movement_id":        "MV001",
		"movement_line_id":   "1",
		"movement_timestamp": "2024-03-15 09:00:00",
		"currency_code":      "EUR",
		"quantity":           "1",
		"std_cost":           "10",
	})

	require.Len(t, got, 1)
	assert.Equal(t, string(config.ErrCodeETransform), got[0].ErrorCode)
	assert.Contains(t, got[0].ErrorMessage, common.ErrExchangeRateUnavailable.Error())
}

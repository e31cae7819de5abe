package transformer

import (
	"context"
	"errors"
	"testing"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_finalize(t *testing.T) {
	tests := []struct {
		name        string
		status      models.Status
		violations  []string
		wantStatus  models.Status
		wantCode    string
		wantMessage string
	}{
		{
			name:       "no violations is ready",
			status:     models.StatusProcessing,
			wantStatus: models.StatusReady,
		},
		{
			name:        "violations are joined",
			status:      models.StatusProcessing,
			violations:  []string{"Missing mandatory field: source_doc_id", msgBothAmountsZero},
			wantStatus:  models.StatusError,
			wantCode:    string(config.ErrCodeEValidation),
			wantMessage: "Missing mandatory field: source_doc_id; Both debit and credit amounts are zero",
		},
		{
			name:       "final status is kept",
			status:     models.StatusReady,
			violations: []string{msgBothAmountsZero},
			wantStatus: models.StatusReady,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.LandingRecord{StatusCode: tt.status}
			finalize(&rec, tt.violations)

			assert.Equal(t, tt.wantStatus, rec.StatusCode)
			assert.Equal(t, tt.wantCode, rec.ErrorCode)
			assert.Equal(t, tt.wantMessage, rec.ErrorMessage)
		})
	}
}

func Test_postDebitAndCredit(t *testing.T) {
	rec := models.LandingRecord{ExchangeRate: decimal.RequireFromString("150")}

	postDebit(&rec, decimal.RequireFromString("10.12345"))
	assertAmount(t, "10.1235", rec.EnteredDr)
	assertAmount(t, "1518.525", rec.AccountedDr)
	assert.True(t, rec.EnteredCr.IsZero())
	assert.True(t, rec.AccountedCr.IsZero())

	postCredit(&rec, decimal.RequireFromString("2"))
	assert.True(t, rec.EnteredDr.IsZero())
	assert.True(t, rec.AccountedDr.IsZero())
	assertAmount(t, "2", rec.EnteredCr)
	assertAmount(t, "300", rec.AccountedCr)

	postNothing(&rec)
	assert.True(t, rec.HasNoAmount())
}

func Test_exchangeRate(t *testing.T) {
	b := newTestBase(t, testLandingConfig())
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      string
		currency string
		want     string
		wantErr  error
	}{
		{name: "exported rate wins", raw: "148.5", currency: "USD", want: "148.5"},
		{name: "functional currency", currency: "JPY", want: "1"},
		{name: "rate table", currency: "USD", want: "150"},
		{name: "unknown pair", currency: "GBP", want: "1"},
		{name: "zero rate", raw: "0", currency: "USD", wantErr: common.ErrInvalidExchangeRate},
		{name: "garbage rate", raw: "abc", currency: "USD", wantErr: common.ErrInvalidExchangeRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.exchangeRate(context.Background(), tt.raw, tt.currency, date)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
			assertAmount(t, tt.want, got)
		})
	}
}

func Test_newRecord(t *testing.T) {
	b := newTestBase(t, testLandingConfig())

	rec := b.newRecord(testBatchID, recordIdentity{
		system:    models.SourceSystemSales,
		docType:   "INVOICE",
		docID:     "S001",
		lineID:    "1",
		createdBy: "ETL_SALES",
	})

	assert.Equal(t, models.StatusProcessing, rec.StatusCode)
	assert.Equal(t, "GL001", rec.LedgerID)
	assert.Equal(t, "COMP001", rec.CompanyCode)
	assert.Equal(t, "Corporate", rec.ExchangeRateType)
	assert.Equal(t, testNow, rec.LoadTimestamp)
	assert.Equal(t, "ETL_SALES", rec.UpdatedBy)
	assertAmount(t, "1", rec.ExchangeRate)
}

func Test_labelledAndFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "", labelled("Order: ", ""))
	assert.Equal(t, "Order: O1", labelled("Order: ", "O1"))
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty())
}

package repositories

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

func TestMain(m *testing.M) {
	xlog.InitForTest(zapcore.NewNopCore())
	os.Exit(m.Run())
}

func landingRecordFixture(batchID, docID string) models.LandingRecord {
	return models.LandingRecord{
		BatchID:        batchID,
		SourceSystem:   models.SourceSystemSales,
		SourceDocType:  "INVOICE",
		SourceDocID:    docID,
		SourceLineID:   "1",
		EventTimestamp: "2024-01-15 10:00:00",
		LoadTimestamp:  time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		StatusCode:     models.StatusReady,
		AccountingDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PeriodName:     "2024-01",
		CurrencyCode:   "JPY",
		ExchangeRate:   decimal.NewFromInt(1),
		SegmentAccount: "4100",
		EnteredCr:      decimal.NewFromInt(1000),
		AccountedCr:    decimal.NewFromInt(1000),
		CreatedBy:      "ETL_SALES",
		UpdatedBy:      "ETL_SALES",
	}
}

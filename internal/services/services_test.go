package services_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/idgenerator"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/retry"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories/mock"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services/transformer"

	mockDLQ "bitbucket.org/Amartha/go-accounting-landing/internal/common/dlq_publisher/mock"
	mockPublisher "bitbucket.org/Amartha/go-accounting-landing/internal/common/publisher/mock"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	xlog.InitForTest(zapcore.NewNopCore())
	os.Exit(m.Run())
}

type testServiceHelper struct {
	mockCtrl              *gomock.Controller
	config                config.Config
	mockSQLRepository     *mock.MockSQLRepository
	mockLandingRepository *mock.MockLandingRepository
	mockCacheRepository   *mock.MockCacheRepository
	mockStorage           *mock.MockStorageRepository
	mockLandingPublisher  *mockPublisher.MockPublisher
	mockDLQ               *mockDLQ.MockPublisher

	services            *services.Services
	batchService        services.BatchService
	payrollService      services.PayrollService
	orchestratorService services.OrchestratorService
}

func testConfig() config.Config {
	return config.Config{
		Landing: config.Landing{
			LedgerID:           "GL001",
			LegalEntityID:      "COMP001",
			BusinessUnit:       "BU001",
			CompanyCode:        "COMP001",
			ExchangeRateType:   "Corporate",
			FunctionalCurrency: common.CurrencyJPY,
			Workers:            2,
			OutputDir:          "out",
		},
		ExponentialBackoff: config.ExponentialBackOffConfig{
			MaxRetries:     1,
			MaxBackoffTime: time.Second,
		},
	}
}

func serviceTestHelper(t *testing.T, opts ...func(conf *config.Config)) testServiceHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)

	mockSQLRepository := mock.NewMockSQLRepository(mockCtrl)
	mockLandingRepository := mock.NewMockLandingRepository(mockCtrl)
	mockCacheRepository := mock.NewMockCacheRepository(mockCtrl)
	mockStorage := mock.NewMockStorageRepository(mockCtrl)
	mockLandingPublisher := mockPublisher.NewMockPublisher(mockCtrl)
	mockDLQPublisher := mockDLQ.NewMockPublisher(mockCtrl)

	mockSQLRepository.EXPECT().GetLandingRepository().Return(mockLandingRepository).AnyTimes()
	mockStorage.EXPECT().GetURL(gomock.Any()).DoAndReturn(func(payload models.CloudStoragePayload) string {
		return payload.String()
	}).AnyTimes()

	conf := testConfig()
	for _, opt := range opts {
		opt(&conf)
	}

	tables := config.DefaultMappingTables()
	srv := services.New(
		conf,
		tables,
		mockSQLRepository,
		mockCacheRepository,
		mockStorage,
		repositories.NewFileRepository(),
		repositories.NewStaticMasterDataRepository(tables),
		mockLandingPublisher,
		mockDLQPublisher,
		idgenerator.New(idgenerator.WithClock(func() time.Time { return testNow })),
		retry.NewExponentialBackOff(conf.ExponentialBackoff, retry.WithInitialInterval(time.Millisecond)),
		metrics.New(metrics.WithRegistry(prometheus.NewRegistry())),
		transformer.WithClock(func() time.Time { return testNow }),
	)

	return testServiceHelper{
		mockCtrl:              mockCtrl,
		config:                conf,
		mockSQLRepository:     mockSQLRepository,
		mockLandingRepository: mockLandingRepository,
		mockCacheRepository:   mockCacheRepository,
		mockStorage:           mockStorage,
		mockLandingPublisher:  mockLandingPublisher,
		mockDLQ:               mockDLQPublisher,

		services:            srv,
		batchService:        srv.Batch,
		payrollService:      srv.Payroll,
		orchestratorService: srv.Orchestrator,
	}
}

// bufferWriteCloser stands in for a storage object writer.
type bufferWriteCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferWriteCloser) Close() error {
	b.closed = true
	return nil
}

func readCloser(content string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(content))
}

// csvLines splits a written landing file into its lines, header first.
func csvLines(content string) []string {
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

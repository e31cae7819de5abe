package landing

import (
	"os"
	"testing"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services/mock"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
)

type testLandingHelper struct {
	mockCtrl                *gomock.Controller
	mockBatchService        *mock.MockBatchService
	mockOrchestratorService *mock.MockOrchestratorService
	handler                 *landingHandler
}

func landingTestHelper(t *testing.T) testLandingHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)

	mockBatchService := mock.NewMockBatchService(mockCtrl)
	mockOrchestratorService := mock.NewMockOrchestratorService(mockCtrl)

	return testLandingHelper{
		mockCtrl:                mockCtrl,
		mockBatchService:        mockBatchService,
		mockOrchestratorService: mockOrchestratorService,
		handler: &landingHandler{
			batchSrv:        mockBatchService,
			orchestratorSrv: mockOrchestratorService,
		},
	}
}

func TestMain(m *testing.M) {
	xlog.InitForTest(zapcore.NewNopCore())
	os.Exit(m.Run())
}

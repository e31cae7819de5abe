package landing

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services/mock"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
)

type landingTestHelper struct {
	router       *echo.Echo
	mockCtrl     *gomock.Controller
	mockBatchSvc *mock.MockBatchService
}

func landingTestHelperFor(t *testing.T) landingTestHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	mockBatchSvc := mock.NewMockBatchService(mockCtrl)

	app := echo.New()
	v1Group := app.Group("/api/v1")
	New(v1Group, mockBatchSvc, repositories.NewFileRepository())

	return landingTestHelper{
		router:       app,
		mockCtrl:     mockCtrl,
		mockBatchSvc: mockBatchSvc,
	}
}

func TestMain(m *testing.M) {
	xlog.InitForTest(zapcore.NewNopCore())
	os.Exit(m.Run())
}

func doRequest(t *testing.T, router *echo.Echo, method, url, body string) (int, string, http.Header) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	resp := rec.Result()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(raw), resp.Header
}

func Test_landingHandler_transform(t *testing.T) {
	readyRecord := models.LandingRecord{
		BatchID:      "SALE_B1",
		SourceSystem: models.SourceSystemSales,
		SourceDocID:  "S001",
		StatusCode:   models.StatusReady,
	}

	tests := []struct {
		name      string
		urlCalled string
		body      string
		doMock    func(bs *mock.MockBatchService)
		wantCode  int
		wantBody  []string
	}{
		{
			name:      "success",
			urlCalled: "/api/v1/landing/sales/transform",
			body:      `{"batch_id":"SALE_B1","records":[{"doc_id":"S001"}]}`,
			doMock: func(bs *mock.MockBatchService) {
				bs.EXPECT().
					TransformRecords(gomock.Any(), models.SourceSystemSales, "SALE_B1", []models.SourceRecord{{"doc_id": "S001"}}).
					Return(models.BatchResult{
						BatchID:        "SALE_B1",
						SourceSystem:   models.SourceSystemSales,
						SourceRecords:  1,
						LandingRecords: []models.LandingRecord{readyRecord},
					}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: []string{`"kind":"landingBatch"`, `"ready_records":1`, `"source_doc_id":"S001"`},
		},
		{
			name:      "unknown source system",
			urlCalled: "/api/v1/landing/ledger/transform",
			body:      `{"records":[{"doc_id":"S001"}]}`,
			wantCode:  http.StatusBadRequest,
			wantBody:  []string{common.ErrUnknownSourceSystem.Error()},
		},
		{
			name:      "malformed body",
			urlCalled: "/api/v1/landing/hr/transform",
			body:      `{"records":`,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "no records",
			urlCalled: "/api/v1/landing/inv/transform",
			body:      `{"records":[]}`,
			wantCode:  http.StatusUnprocessableEntity,
			wantBody:  []string{common.ErrValidation.Error()},
		},
		{
			name:      "no transformer",
			urlCalled: "/api/v1/landing/inventory/transform",
			body:      `{"records":[{"item_id":"I1"}]}`,
			doMock: func(bs *mock.MockBatchService) {
				bs.EXPECT().
					TransformRecords(gomock.Any(), models.SourceSystemInventory, "", gomock.Any()).
					Return(models.BatchResult{}, fmt.Errorf("%w: INV", common.ErrUnableGetTransformer))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "transform failure",
			urlCalled: "/api/v1/landing/payroll/transform",
			body:      `{"records":[{"employee_id":"E001"}]}`,
			doMock: func(bs *mock.MockBatchService) {
				bs.EXPECT().
					TransformRecords(gomock.Any(), models.SourceSystemHR, "", gomock.Any()).
					Return(models.BatchResult{}, assert.AnError)
			},
			wantCode: http.StatusInternalServerError,
			wantBody: []string{assert.AnError.Error()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHelper := landingTestHelperFor(t)
			if tt.doMock != nil {
				tt.doMock(testHelper.mockBatchSvc)
			}

			code, body, _ := doRequest(t, testHelper.router, http.MethodPost, tt.urlCalled, tt.body)

			assert.Equal(t, tt.wantCode, code)
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
		})
	}
}

func Test_landingHandler_transform_CSV(t *testing.T) {
	testHelper := landingTestHelperFor(t)

	testHelper.mockBatchSvc.EXPECT().
		TransformRecords(gomock.Any(), models.SourceSystemSales, "", gomock.Any()).
		Return(models.BatchResult{
			SourceSystem: models.SourceSystemSales,
			LandingRecords: []models.LandingRecord{
				{SourceSystem: models.SourceSystemSales, SourceDocID: "S001", StatusCode: models.StatusReady},
				{SourceSystem: models.SourceSystemSales, SourceDocID: "S002", StatusCode: models.StatusError},
			},
		}, nil)

	code, body, header := doRequest(t, testHelper.router, http.MethodPost,
		"/api/v1/landing/sale/transform?format=csv", `{"records":[{"doc_id":"S001"},{"doc_id":"S002"}]}`)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "text/csv", header.Get(echo.HeaderContentType))
	assert.Contains(t, header.Get(echo.HeaderContentDisposition), "accounting_txn_interface_sales.csv")

	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(models.LandingColumns, ","), strings.TrimSuffix(lines[0], "\r"))
}

func uploadRequest(t *testing.T, router *echo.Echo, url, fileContent, batchID string) (int, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if fileContent != "" {
		part, err := writer.CreateFormFile("file", "sales.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	if batchID != "" {
		require.NoError(t, writer.WriteField("batch_id", batchID))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec.Code, rec.Body.String()
}

func Test_landingHandler_upload(t *testing.T) {
	tests := []struct {
		name        string
		urlCalled   string
		fileContent string
		batchID     string
		doMock      func(bs *mock.MockBatchService)
		wantCode    int
		wantBody    string
	}{
		{
			name:        "success",
			urlCalled:   "/api/v1/landing/sales/upload",
			fileContent: "Doc_ID,Amount\nS001,100\n\nS002,200\n",
			batchID:     "SALE_B2",
			doMock: func(bs *mock.MockBatchService) {
				bs.EXPECT().
					TransformRecords(gomock.Any(), models.SourceSystemSales, "SALE_B2", []models.SourceRecord{
						{"doc_id": "S001", "amount": "100"},
						{"doc_id": "S002", "amount": "200"},
					}).
					Return(models.BatchResult{BatchID: "SALE_B2", SourceSystem: models.SourceSystemSales, SourceRecords: 2}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"source_records":2`,
		},
		{
			name:      "missing file",
			urlCalled: "/api/v1/landing/sales/upload",
			batchID:   "SALE_B2",
			wantCode:  http.StatusBadRequest,
		},
		{
			name:        "ragged row",
			urlCalled:   "/api/v1/landing/inv/upload",
			fileContent: "item_id,quantity\nI1,2,extra\n",
			wantCode:    http.StatusBadRequest,
			wantBody:    common.ErrCSVHeaderMismatch.Error(),
		},
		{
			name:        "header only",
			urlCalled:   "/api/v1/landing/hr/upload",
			fileContent: "employee_id\n",
			wantCode:    http.StatusUnprocessableEntity,
		},
		{
			name:        "unknown source system",
			urlCalled:   "/api/v1/landing/ledger/upload",
			fileContent: "doc_id\nS001\n",
			wantCode:    http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHelper := landingTestHelperFor(t)
			if tt.doMock != nil {
				tt.doMock(testHelper.mockBatchSvc)
			}

			code, body := uploadRequest(t, testHelper.router, tt.urlCalled, tt.fileContent, tt.batchID)

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, body, tt.wantBody)
		})
	}
}

func Test_landingHandler_listErrorCodes(t *testing.T) {
	testHelper := landingTestHelperFor(t)

	testHelper.mockBatchSvc.EXPECT().
		ListErrorCodes(gomock.Any()).
		Return([]models.ErrorCodeOut{
			{Kind: "errorCode", Code: "E001", Severity: "ERROR", Message: "missing field"},
			{Kind: "errorCode", Code: "W001", Severity: "WARNING", Message: "defaulted"},
		})

	code, body, _ := doRequest(t, testHelper.router, http.MethodGet, "/api/v1/landing/error-codes", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"kind":"collection"`)
	assert.Contains(t, body, `"total_rows":2`)
	assert.Contains(t, body, `"code":"W001"`)
}

func Test_landingHandler_getBatchSummary(t *testing.T) {
	tests := []struct {
		name     string
		doMock   func(bs *mock.MockBatchService)
		wantCode int
		wantBody string
	}{
		{
			name: "success",
			doMock: func(bs *mock.MockBatchService) {
				bs.EXPECT().GetBatchSummary(gomock.Any(), "SALE_B1").Return(models.BatchSummary{
					Kind:    "batchSummary",
					BatchID: "SALE_B1",
					Status:  models.BatchStatusCompleted,
				}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"status":"COMPLETED"`,
		},
		{
			name: "not found",
			doMock: func(bs *mock.MockBatchService) {
				bs.EXPECT().GetBatchSummary(gomock.Any(), "SALE_B1").Return(models.BatchSummary{}, common.ErrDataNotFound)
			},
			wantCode: http.StatusNotFound,
			wantBody: common.ErrDataNotFound.Error(),
		},
		{
			name: "cache failure",
			doMock: func(bs *mock.MockBatchService) {
				bs.EXPECT().GetBatchSummary(gomock.Any(), "SALE_B1").Return(models.BatchSummary{}, assert.AnError)
			},
			wantCode: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHelper := landingTestHelperFor(t)
			tt.doMock(testHelper.mockBatchSvc)

			code, body, _ := doRequest(t, testHelper.router, http.MethodGet, "/api/v1/landing/batches/SALE_B1", "")

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, body, tt.wantBody)
		})
	}
}

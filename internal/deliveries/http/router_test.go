package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"testing"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services/mock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
)

func TestMain(m *testing.M) {
	xlog.InitForTest(zapcore.NewNopCore())
	os.Exit(m.Run())
}

func TestNewHTTPServer(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	batchService := mock.NewMockBatchService(mockCtrl)
	batchService.EXPECT().ListErrorCodes(gomock.Any()).Return([]models.ErrorCodeOut{}).AnyTimes()

	conf := config.Config{App: config.App{Env: "prod", Name: "go-accounting-landing", HTTPPort: 9567, SecretKey: "secret"}}
	server := NewHTTPServer(conf, nil, metrics.New(metrics.WithRegistry(prometheus.NewRegistry())), repositories.NewFileRepository(), batchService)
	assert.Equal(t, ":9567", server.addr)

	tests := []struct {
		name     string
		method   string
		url      string
		secret   string
		wantCode int
	}{
		{name: "health", method: nethttp.MethodGet, url: "/api/health", wantCode: nethttp.StatusOK},
		{name: "trailing slash", method: nethttp.MethodGet, url: "/api/health/", wantCode: nethttp.StatusOK},
		{name: "swagger", method: nethttp.MethodGet, url: "/swagger/doc.json", wantCode: nethttp.StatusOK},
		{name: "metrics", method: nethttp.MethodGet, url: "/metrics", wantCode: nethttp.StatusOK},
		{name: "v1 without secret", method: nethttp.MethodGet, url: "/api/v1/landing/error-codes", wantCode: nethttp.StatusUnauthorized},
		{name: "v1 with secret", method: nethttp.MethodGet, url: "/api/v1/landing/error-codes", secret: "secret", wantCode: nethttp.StatusOK},
		{name: "pprof disabled in prod", method: nethttp.MethodGet, url: "/debug/pprof/", wantCode: nethttp.StatusNotFound},
		{name: "unknown route", method: nethttp.MethodGet, url: "/unknown", wantCode: nethttp.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.secret != "" {
				req.Header.Set("X-Secret-Key", tt.secret)
			}
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

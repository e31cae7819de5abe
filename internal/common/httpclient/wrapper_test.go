package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"
)

func TestRequestWrapper_DoRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "corr-1", r.Header.Get(HeaderCorrelationID))
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	w := NewRequestWrapper(resty.New(), metrics.New(metrics.WithRegistry(prometheus.NewRegistry())), "test", "[TEST]")
	ctx := xlog.WithCorrelationID(context.Background(), "corr-1")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantErr    bool
	}{
		{name: "ok", method: http.MethodGet, path: "/ok", wantStatus: http.StatusOK},
		{name: "not found is not an error", method: http.MethodGet, path: "/missing", wantStatus: http.StatusNotFound},
		{name: "post", method: http.MethodPost, path: "/ok", wantStatus: http.StatusOK},
		{name: "unsupported method", method: http.MethodPatch, path: "/ok", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := w.DoRequest(ctx, tt.method, srv.URL+tt.path, srv.URL+"/:path", nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.StatusCode())
		})
	}
}

func TestRequestWrapper_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	w := NewRequestWrapper(resty.New(), nil, "test", "[TEST]")
	_, err := w.DoRequest(context.Background(), http.MethodGet, url, url, nil)
	assert.Error(t, err)
}

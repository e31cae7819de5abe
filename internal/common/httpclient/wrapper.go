package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"

	"github.com/go-resty/resty/v2"
)

const HeaderCorrelationID = "X-Correlation-Id"

type RequestWrapper struct {
	client      *resty.Client
	metrics     metrics.Metrics
	serviceName string
	logPrefix   string
}

func NewRequestWrapper(client *resty.Client, metrics metrics.Metrics, serviceName, logPrefix string) *RequestWrapper {
	return &RequestWrapper{
		client:      client,
		metrics:     metrics,
		serviceName: serviceName,
		logPrefix:   logPrefix,
	}
}

// DoRequest sends one request and records its latency under groupURL, the
// url with its path parameters replaced by placeholders.
func (w *RequestWrapper) DoRequest(ctx context.Context, method, url, groupURL string, reqFunc func(*resty.Request) *resty.Request) (*resty.Response, error) {
	startTime := time.Now()

	logFields := []xlog.Field{
		xlog.String("url", url),
		xlog.String("method", method),
	}

	xlog.Info(ctx, w.logPrefix, append(logFields, xlog.String("message", "send request"))...)

	req := w.client.R().SetContext(ctx)
	if id := xlog.CorrelationID(ctx); id != "" {
		req = req.SetHeader(HeaderCorrelationID, id)
	}
	if reqFunc != nil {
		req = reqFunc(req)
	}

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	httpRes, err := req.Execute(method, url)
	if err != nil {
		if w.metrics != nil {
			w.metrics.GetHTTPClientPrometheus().RecordTransportError(time.Since(startTime), w.serviceName, method, groupURL)
		}
		xlog.Warn(ctx, w.logPrefix, append(logFields, xlog.Err(err))...)
		return nil, fmt.Errorf("failed send request: %w", err)
	}

	if w.metrics != nil {
		w.metrics.GetHTTPClientPrometheus().Record(
			time.Since(startTime),
			w.serviceName,
			method,
			groupURL,
			httpRes.StatusCode(),
		)
	}

	logFields = append(logFields,
		xlog.String("httpStatusCode", httpRes.Status()),
		xlog.Any("httpResponse", string(httpRes.Body())),
	)

	if httpRes.StatusCode() < 200 || httpRes.StatusCode() >= 300 {
		xlog.Warn(ctx, w.logPrefix, logFields...)
	} else {
		xlog.Info(ctx, w.logPrefix, logFields...)
	}

	return httpRes, nil
}

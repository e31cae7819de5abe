package middleware

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	commonhttp "bitbucket.org/Amartha/go-accounting-landing/internal/common/http"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"

	"golang.org/x/exp/slices"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	ctxKeyRequestStart = "request_start"

	// maxLoggedBody caps request and response bodies in the access log.
	maxLoggedBody = 4096
)

var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
	"x-secret-key":  {},
}

var excludedLogs = []string{
	"/api/health",
	"/metrics",
}

// Logger writes one access log entry per request with masked headers and
// truncated bodies. Csv downloads are logged by size only.
func (m *AppMiddleware) Logger() echo.MiddlewareFunc {
	dump := echomiddleware.BodyDumpWithConfig(echomiddleware.BodyDumpConfig{
		Skipper: func(c echo.Context) bool {
			return slices.Contains(excludedLogs, c.Path())
		},
		Handler: m.logRequest,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		handler := dump(next)
		return func(c echo.Context) error {
			c.Set(ctxKeyRequestStart, time.Now())
			return handler(c)
		}
	}
}

func (m *AppMiddleware) logRequest(c echo.Context, reqBody, resBody []byte) {
	req := c.Request()
	res := c.Response()
	ctx := req.Context()

	start, _ := c.Get(ctxKeyRequestStart).(time.Time)
	latency := time.Since(start)

	response := truncateBody(resBody)
	if strings.HasPrefix(res.Header().Get(echo.HeaderContentType), commonhttp.MIMETextCSV) {
		response = fmt.Sprintf("<csv %d bytes>", len(resBody))
	}

	fields := []xlog.Field{
		xlog.String("timestamp", start.String()),
		xlog.String("method", req.Method),
		xlog.String("url_path", req.URL.String()),
		xlog.String("route", c.Path()),
		xlog.String("request_body", truncateBody(reqBody)),
		xlog.String("request_header", maskedHeader(c)),
		xlog.Int("status", res.Status),
		xlog.String("response", response),
		xlog.Duration("latency", latency),
	}

	message := fmt.Sprintf("%v %v %v %v", res.Status, req.Method, req.URL.String(), latency)

	switch {
	case res.Status >= 500:
		xlog.Error(ctx, message, fields...)
	case res.Status >= 300:
		xlog.Warn(ctx, message, fields...)
	default:
		xlog.Info(ctx, message, fields...)
	}
}

func maskedHeader(c echo.Context) string {
	headers := make(map[string][]string, len(c.Request().Header))
	for k, vals := range c.Request().Header {
		if _, ok := sensitiveHeaders[strings.ToLower(k)]; ok {
			headers[k] = []string{"*****"}
			continue
		}
		headers[k] = vals
	}

	b, _ := json.Marshal(headers)
	return string(b)
}

func truncateBody(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}

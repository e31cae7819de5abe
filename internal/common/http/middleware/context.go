package middleware

import (
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"

	"github.com/labstack/echo/v4"
)

const HeaderCorrelationID = "X-Correlation-Id"

// Context stores the caller's correlation id, or the echo request id, in the request context.
func (m *AppMiddleware) Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderCorrelationID)
			if id == "" {
				id = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			if id != "" {
				ctx := xlog.WithCorrelationID(c.Request().Context(), id)
				c.SetRequest(c.Request().WithContext(ctx))
				c.Response().Header().Set(HeaderCorrelationID, id)
			}
			return next(c)
		}
	}
}

package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common/graceful"
	commonhttp "bitbucket.org/Amartha/go-accounting-landing/internal/common/http"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/http/middleware"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/deliveries/http/health"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services"

	v1landing "bitbucket.org/Amartha/go-accounting-landing/internal/deliveries/http/v1/landing"

	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	echoSwagger "github.com/swaggo/echo-swagger"

	// for swagger docs
	_ "bitbucket.org/Amartha/go-accounting-landing/docs"
)

type svc struct {
	e               *echo.Echo
	addr            string
	gracefulTimeout time.Duration
}

var _ graceful.ProcessStartStopper = (*svc)(nil)

func (s *svc) Start() graceful.ProcessStarter {
	return func() error {
		return s.e.Start(s.addr)
	}
}

func (s *svc) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		err := s.e.Shutdown(ctx)

		if err != nil {
			xlog.Errorf(ctx, "[SHUTDOWN] HTTP server error: %v", err)
		} else {
			xlog.Info(ctx, "[SHUTDOWN] HTTP server stopped successfully")
		}

		return err
	}
}

// Handler exposes the router for tests.
func (s *svc) Handler() nethttp.Handler {
	return s.e
}

// @title GO ACCOUNTING LANDING API DOCUMENTATION
// @version 1.0
// @description Synchronous transform and batch lookup api of the accounting landing engine.

// @host localhost:8080
// @BasePath /api
// @schemes http
func NewHTTPServer(
	conf config.Config,
	nr *newrelic.Application,
	mtc metrics.Metrics,
	fileRepo repositories.FileRepository,
	batchService services.BatchService,
) *svc {
	app := echo.New()
	app.HideBanner = true

	svc := &svc{
		e:               app,
		addr:            fmt.Sprintf(":%d", conf.App.HTTPPort),
		gracefulTimeout: conf.App.GracefulTimeout,
	}

	m := middleware.NewMiddleware(conf)
	// options middleware
	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(echomiddleware.Recover())
	app.Use(echomiddleware.RequestID())
	app.Use(m.Context())
	app.Use(m.Logger())

	if nr != nil {
		app.Use(nrecho.Middleware(nr))

		app.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				txn := newrelic.FromContext(c.Request().Context())
				if txn != nil {
					txn.AddAttribute("x-correlation-id", xlog.CorrelationID(c.Request().Context()))
				}

				return next(c)
			}
		})
	}

	// Endpoint debug/pprof/
	if config.StringToEnvironment(conf.App.Env) != config.PROD_ENV {
		pprof.Register(app)
	}

	// prometheus metrics
	app.Use(mtc.EchoMiddleware(conf.App.Name))
	app.GET("/metrics", mtc.EchoHandler())

	// swagger
	app.GET("/swagger/*", echoSwagger.WrapHandler)

	apiGroup := app.Group("/api")
	health.New(apiGroup)

	v1Group := apiGroup.Group("/v1")
	v1Group.Use(m.InternalAuth)
	v1landing.New(v1Group, batchService, fileRepo)

	// prepare an endpoint for 'Not Found'.
	app.Any("*", func(c echo.Context) error {
		errorMessage := fmt.Errorf("route '%s' does not exist in this API", c.Request().URL)
		return commonhttp.RestErrorResponse(c, nethttp.StatusNotFound, errorMessage)
	})

	return svc
}

package fxrate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/cache"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/httpclient"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/monitoring"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

var logMessage = "[FXRATE-CLIENT]"

const defaultCacheTTL = 10 * time.Minute

//go:generate mockgen -source=client.go -destination=mock/client.go -package=mock

// Client reads daily exchange rates from the exchange-rate service.
type Client interface {
	GetExchangeRate(ctx context.Context, from, to string, date time.Time) (rate decimal.Decimal, err error)
}

type client struct {
	baseURL   string
	secretKey string
	request   *httpclient.RequestWrapper

	cache    cache.Client[string]
	ttlCache time.Duration
}

func New(
	configuration config.HTTPConfiguration,
	metrics metrics.Metrics,
	cache cache.Client[string],
) Client {
	retryWaitTime := time.Duration(configuration.RetryWaitTime) * time.Millisecond

	restyClient := resty.New()
	restyClient = restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		if r == nil {
			return false
		}

		_, shouldRetry := models.RetryableHTTPCodes[r.StatusCode()]
		return shouldRetry
	})

	restyClient = restyClient.
		SetTransport(monitoring.NewMiddlewareRoundTripper(restyClient.GetClient().Transport)).
		SetRetryCount(configuration.RetryCount).
		SetRetryWaitTime(retryWaitTime).
		SetTimeout(configuration.Timeout)

	ttl := configuration.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return client{
		baseURL:   configuration.BaseURL,
		secretKey: configuration.SecretKey,
		request:   httpclient.NewRequestWrapper(restyClient, metrics, ServiceName, logMessage),
		cache:     cache,
		ttlCache:  ttl,
	}
}

func (c client) GetExchangeRate(ctx context.Context, from, to string, date time.Time) (res decimal.Decimal, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	day := common.FormatDate(date)
	raw, err := c.cache.GetOrSet(ctx, cache.GetOrSetOpts[string]{
		Key: fmt.Sprintf("go-accounting-landing:fxrate:%s:%s:%s", from, to, day),
		TTL: c.ttlCache,
		Callback: func() (string, error) {
			url := fmt.Sprintf("%s/api/v1/exchange-rates", c.baseURL)

			httpRes, err := c.request.DoRequest(ctx, http.MethodGet, url, url, func(r *resty.Request) *resty.Request {
				return r.
					SetHeader("Accept", "application/json;  charset=utf-8").
					SetHeader("Cache-Control", "no-cache").
					SetHeader("X-Secret-Key", c.secretKey).
					SetQueryParams(map[string]string{
						"from": from,
						"to":   to,
						"date": day,
					})
			})
			if err != nil {
				return "", err
			}

			if httpRes.StatusCode() != http.StatusOK {
				if httpRes.StatusCode() == http.StatusNotFound {
					return "", fmt.Errorf("%w: %s/%s on %s", common.ErrExchangeRateUnavailable, from, to, day)
				}

				return "", fmt.Errorf("invalid response http code: got %d", httpRes.StatusCode())
			}

			var body ResponseGetExchangeRate
			if err = json.Unmarshal(httpRes.Body(), &body); err != nil {
				return "", fmt.Errorf("error unmarshal response: %w", err)
			}

			if !body.Rate.IsPositive() {
				return "", fmt.Errorf("%w: %s", common.ErrInvalidExchangeRate, body.Rate)
			}

			return body.Rate.String(), nil
		},
	})
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.NewFromString(raw)
}

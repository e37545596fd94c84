package client

import (
	"context"
	"fmt"
	"time"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// priceClientImpl fetches the token price feed over HTTP.
type priceClientImpl struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewPriceClient creates a port.PriceSource backed by the JSON feed at url.
// Outgoing requests are limited to ratePerSecond with the given burst.
func NewPriceClient(url string, timeout time.Duration, ratePerSecond float64, burst int, logger *zap.Logger) port.PriceSource {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	return &priceClientImpl{
		client:  &fasthttp.Client{Name: "balance-formatter"},
		url:     url,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.Named("PriceClient"),
	}
}

// FetchPrices implements port.PriceSource.
func (c *priceClientImpl) FetchPrices(ctx context.Context) ([]entity.TokenPrice, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("price request to %s not sent: %w", c.url, err)
	}

	c.logger.Debug("Requesting token prices", zap.String("url", c.url))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute price request", zap.String("url", c.url), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", c.url, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute price request (with default timeout)", zap.String("url", c.url), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", c.url, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Price feed request failed",
			zap.String("url", c.url),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return nil, fmt.Errorf("price feed request to %s failed with status %d", c.url, resp.StatusCode())
	}

	var prices []entity.TokenPrice
	if err := json.Unmarshal(rawBody, &prices); err != nil {
		c.logger.Error("Failed to unmarshal price feed response",
			zap.String("url", c.url),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to unmarshal price feed response from %s: %w", c.url, err)
	}

	if len(prices) == 0 {
		c.logger.Warn("Price feed returned 200 OK with an empty array", zap.String("url", c.url))
	}
	c.logger.Debug("Price feed decoded", zap.Int("entries", len(prices)))
	return prices, nil
}

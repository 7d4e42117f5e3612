// Package datahub fetches site-specific forecasts from the Met Office DataHub.
//
// A Client sends one request per call. It is rate limited and guarded by a
// circuit breaker, and never retries or caches.
package datahub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather"
)

var (
	ErrNoAPIKey         = errors.New("datahub api key is not configured")
	ErrUnauthorized     = errors.New("datahub rejected api key")
	ErrRateLimited      = errors.New("rate limited")
	ErrServerError      = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrCircuitOpen      = errors.New("circuit breaker open")
)

// Options configures a Client.
type Options struct {
	APIKey string
	// BaseURL replaces the scheme and host of the DataHub URL. Empty keeps
	// the production host.
	BaseURL string
	Timeout time.Duration

	// RateLimitRPS <= 0 disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	Logger *zap.Logger
}

// Client implements the DataHub point forecast request.
type Client struct {
	apiKey  string
	base    *url.URL
	http    *resty.Client
	limiter *rate.Limiter
	circuit *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func New(opts Options) (*Client, error) {
	var base *url.URL
	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid base url %q: scheme and host are required", opts.BaseURL)
		}
		base = u
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if opts.RateLimitRPS > 0 {
		limit = rate.Limit(opts.RateLimitRPS)
	}
	burst := opts.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}

	httpClient := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "metoffice-forecast")
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "datahub",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		apiKey:  opts.APIKey,
		base:    base,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		circuit: cb,
		logger:  logger,
	}, nil
}

// URL returns the request URL for the point, rebased onto the configured
// base URL if there is one.
func (c *Client) URL(g weather.Granularity, lat units.Latitude, lon units.Longitude) url.URL {
	u := weather.URLForLocation(g, lat, lon)
	if c.base != nil {
		u.Scheme = c.base.Scheme
		u.Host = c.base.Host
	}
	return u
}

// Get returns the raw JSON forecast for the point.
func (c *Client) Get(ctx context.Context, g weather.Granularity, lat units.Latitude, lon units.Longitude) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	u := c.URL(g, lat, lon)
	requestID := uuid.NewString()
	log := c.logger.With(
		zap.String("granularity", g.String()),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("apikey", c.apiKey).
			SetHeader("X-Request-ID", requestID).
			Get(u.String())
		if err != nil {
			return nil, err
		}
		if err := checkStatus(resp.StatusCode()); err != nil {
			return nil, err
		}
		return resp.Body(), nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		log.Warn("datahub request failed", zap.Error(err))
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	log.Debug("datahub request complete",
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(body)))
	return body, nil
}

// Forecast fetches and converts the forecast for the point. The result has
// the same dynamic types as weather.ParseAs.
func (c *Client) Forecast(ctx context.Context, g weather.Granularity, lat units.Latitude, lon units.Longitude) (any, error) {
	body, err := c.Get(ctx, g, lat, lon)
	if err != nil {
		return nil, err
	}
	return weather.ParseAs(g, body)
}

// Fetch fetches and converts the forecast for the point at the granularity
// of T.
func Fetch[T weather.Period](ctx context.Context, c *Client, lat units.Latitude, lon units.Longitude) (*weather.Forecast[T], error) {
	body, err := c.Get(ctx, weather.GranularityOf[T](), lat, lon)
	if err != nil {
		return nil, err
	}
	return weather.Parse[T](body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %d", ErrUnauthorized, code)
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return fmt.Errorf("%w: %d", ErrServerError, code)
	case code < 200 || code >= 300:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
	}
	return nil
}

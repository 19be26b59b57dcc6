// Package cmc is the CoinMarketCap v1 API client. A Client binds
// credentials, the rate-limit tracker, and the request dispatcher into
// one context; independent clients can coexist in a process.
package cmc

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/coinlens/coinlens/config"
	"github.com/coinlens/coinlens/dispatch"
	"github.com/coinlens/coinlens/observability"
	"github.com/coinlens/coinlens/ratelimit"
	"github.com/coinlens/coinlens/transport"
)

const (
	// ProductionBaseURL serves live data and counts against the plan.
	ProductionBaseURL = "https://pro-api.coinmarketcap.com"
	// SandboxBaseURL serves canned data for integration work.
	SandboxBaseURL = "https://sandbox-api.coinmarketcap.com"

	apiKeyHeader = "X-CMC_PRO_API_KEY"

	defaultIDMapTTL  = 24 * time.Hour
	defaultIDMapSize = 1024
)

// Credentials supplies the API key and environment at request time.
type Credentials interface {
	APIKey() string
	Sandbox() bool
}

// StaticCredentials is the simplest Credentials implementation.
type StaticCredentials struct {
	Key        string
	UseSandbox bool
}

func (s StaticCredentials) APIKey() string { return s.Key }
func (s StaticCredentials) Sandbox() bool  { return s.UseSandbox }

// Client issues CoinMarketCap API calls through a dispatcher.
type Client struct {
	Credentials Credentials
	Dispatcher  *dispatch.Dispatcher

	// BaseURL overrides the environment-selected base URL; tests point
	// it at a local server.
	BaseURL string

	// IDMapTTL bounds how long symbol→ID mappings are cached.
	IDMapTTL time.Duration

	idMapOnce sync.Once
	idMap     *expirable.LRU[string, MapEntry]
}

// New wires a client from configuration: tracker, dispatcher, and HTTP
// transport all follow cfg. A nil logger falls back to a production
// logger at the configured level.
func New(cfg *config.Config, logger *zap.Logger) *Client {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.Normalize()

	if logger == nil {
		built, err := observability.NewLogger(cfg.Logging.Level)
		if err != nil {
			built = zap.NewNop()
		}
		logger = built
	}

	tracker := ratelimit.NewTracker(ratelimit.Limits{
		PerMinute: cfg.RateLimit.PerMinute,
		PerDay:    cfg.RateLimit.PerDay,
		PerMonth:  cfg.RateLimit.PerMonth,
	}, logger)

	// In config, max_retries 0 means "no retries"; the dispatcher
	// expresses that as a negative value.
	maxRetries := cfg.Retry.MaxRetries
	if maxRetries == 0 {
		maxRetries = -1
	}

	dispatcher := &dispatch.Dispatcher{
		Transport:      &transport.HTTPTransport{Timeout: cfg.Transport.Timeout},
		Tracker:        tracker,
		Logger:         logger,
		MaxRetries:     maxRetries,
		InitialBackoff: cfg.Retry.InitialBackoff,
		RequestSpacing: cfg.Retry.RequestSpacing,
	}

	return &Client{
		Credentials: StaticCredentials{Key: cfg.APIKey, UseSandbox: cfg.Sandbox},
		Dispatcher:  dispatcher,
	}
}

// Usage reports local tracker usage, or a zero snapshot when no tracker
// is wired.
func (c *Client) Usage() ratelimit.UsageSnapshot {
	if c == nil || c.Dispatcher == nil || c.Dispatcher.Tracker == nil {
		return ratelimit.UsageSnapshot{}
	}
	return c.Dispatcher.Tracker.Status()
}

// ResetUsage clears the local tracker.
func (c *Client) ResetUsage() {
	if c != nil && c.Dispatcher != nil && c.Dispatcher.Tracker != nil {
		c.Dispatcher.Tracker.Reset()
	}
}

// Get performs a GET against an API path with the given parameters and
// returns the unwrapped envelope data.
func (c *Client) Get(ctx context.Context, path string, params Params) (*dispatch.Result, error) {
	url := c.baseURL() + path
	if query := params.Encode(); query != "" {
		url += "?" + query
	}

	headers := map[string]string{
		"Accept": "application/json",
	}
	if c.Credentials != nil {
		headers[apiKeyHeader] = c.Credentials.APIKey()
	}

	return c.Dispatcher.Execute(ctx, path, transport.Request{
		URL:     url,
		Method:  http.MethodGet,
		Headers: headers,
	})
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Credentials != nil && c.Credentials.Sandbox() {
		return SandboxBaseURL
	}
	return ProductionBaseURL
}

// Package client executes web3.bio API queries.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/liuran001/Web3Bio-Go/web3bio"
	"github.com/liuran001/Web3Bio-Go/web3bio/cache"
	"github.com/liuran001/Web3Bio-Go/web3bio/config"
	"github.com/liuran001/Web3Bio-Go/web3bio/logger"
	"github.com/liuran001/Web3Bio-Go/web3bio/request"
	"github.com/liuran001/Web3Bio-Go/web3bio/worker"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// APIKeyHeader carries the API key when one is configured.
const APIKeyHeader = "x-api-key"

const maxBodySize = 8 << 20

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL            string
	MetadataURL        string
	APIKey             string
	UserAgent          string
	Timeout            time.Duration
	RetryMax           int
	RetryWaitMin       time.Duration
	RetryWaitMax       time.Duration
	BreakerMaxFailures int
	RateLimitPerSecond float64
	RateLimitBurst     int
	CacheTTL           time.Duration
	Store              web3bio.Store
	Pool               web3bio.WorkerPool
	Logger             web3bio.Logger
	HTTPClient         *http.Client
}

// Client issues GET requests against the API with retry, circuit breaking,
// request de-duplication and response caching.
type Client struct {
	baseURL     string
	metadataURL string
	apiKey      string
	userAgent   string
	cacheTTL    time.Duration
	http        *retryablehttp.Client
	breaker     *gobreaker.CircuitBreaker
	limiter     *rate.Limiter
	group       singleflight.Group
	store       web3bio.Store
	pool        web3bio.WorkerPool
	ownsPool    bool
	logger      web3bio.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = config.ProductionEndpoint
	}
	if opts.MetadataURL == "" {
		opts.MetadataURL = config.MetadataEndpoint
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "web3bio-go"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = 200 * time.Millisecond
	}
	if opts.RetryWaitMax < opts.RetryWaitMin {
		opts.RetryWaitMax = 2 * time.Second
	}
	if opts.BreakerMaxFailures <= 0 {
		opts.BreakerMaxFailures = 5
	}
	if opts.Store == nil {
		opts.Store = cache.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	httpClient := retryablehttp.NewClient()
	if opts.HTTPClient != nil {
		// copy so the timeout below never leaks into a shared client
		hc := *opts.HTTPClient
		httpClient.HTTPClient = &hc
	}
	httpClient.HTTPClient.Timeout = opts.Timeout
	httpClient.RetryMax = opts.RetryMax
	httpClient.RetryWaitMin = opts.RetryWaitMin
	httpClient.RetryWaitMax = opts.RetryWaitMax
	httpClient.Logger = nil
	// surface the last response instead of a generic "giving up" error
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	maxFailures := uint32(opts.BreakerMaxFailures)
	settings := gobreaker.Settings{
		Name:        "web3bio-api",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			opts.Logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	var limiter *rate.Limiter
	if opts.RateLimitPerSecond > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitPerSecond), burst)
	}

	c := &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		metadataURL: strings.TrimRight(opts.MetadataURL, "/"),
		apiKey:      opts.APIKey,
		userAgent:   opts.UserAgent,
		cacheTTL:    opts.CacheTTL,
		http:        httpClient,
		breaker:     gobreaker.NewCircuitBreaker(settings),
		limiter:     limiter,
		store:       opts.Store,
		pool:        opts.Pool,
		logger:      opts.Logger.With("component", "client"),
	}
	if c.pool == nil {
		c.pool = worker.New(4)
		c.ownsPool = true
	}
	return c
}

// NewFromConfig builds a Client and its store and pool from validated configuration.
func NewFromConfig(cfg *config.Config, log *logger.Logger) (*Client, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	store, err := cache.Open(cache.Options{
		Backend:    settings.CacheBackend,
		Size:       settings.CacheSize,
		TTL:        settings.CacheTTL,
		Database:   settings.CacheDatabase,
		GormLogger: logger.NewGormLogger(log.Slog(), logger.GormLevel(settings.LogLevel)),

		MaxOpenConns:    settings.DBMaxOpenConns,
		MaxIdleConns:    settings.DBMaxIdleConns,
		ConnMaxLifetime: settings.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	c := New(Options{
		BaseURL:            settings.Endpoint,
		MetadataURL:        settings.MetadataEndpoint,
		APIKey:             settings.APIKey,
		Timeout:            settings.Timeout,
		RetryMax:           settings.RetryMax,
		RetryWaitMin:       settings.RetryWaitMin,
		RetryWaitMax:       settings.RetryWaitMax,
		BreakerMaxFailures: settings.BreakerMaxFailures,
		RateLimitPerSecond: settings.RateLimitPerSecond,
		RateLimitBurst:     settings.RateLimitBurst,
		CacheTTL:           settings.CacheTTL,
		Store:              store,
		Pool:               worker.New(settings.WorkerPoolSize),
		Logger:             log,
	})
	c.ownsPool = true
	c.logger.Debug("client configured",
		"endpoint", settings.Endpoint,
		"cache", settings.CacheBackend,
		"api_key", settings.APIKey != "",
	)
	return c, nil
}

// BaseURL returns the API root used for requests.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// MetadataURL returns the metadata API root.
func (c *Client) MetadataURL() string {
	return c.metadataURL
}

// Store returns the response store.
func (c *Client) Store() web3bio.Store {
	return c.store
}

// Close stops the worker pool and releases the store.
func (c *Client) Close(ctx context.Context) error {
	var errs []error
	if c.ownsPool && c.pool != nil {
		if err := c.pool.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if closer, ok := c.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// fetch resolves, caches and decodes one request.
func fetch[T any](ctx context.Context, c *Client, endpoint request.Endpoint, universal bool, id request.Identity, opts web3bio.QueryOptions) (T, error) {
	var zero T

	target, ok := request.BuildURL(c.baseURL, id, endpoint, universal)
	if !ok {
		return zero, web3bio.ErrInvalidIdentity
	}

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = c.apiKey
	}
	key := request.Key(endpoint, universal, id, apiKey)

	body, err := c.load(ctx, key, target, apiKey, string(endpoint))
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return out, nil
}

// load returns the response body for key, from the store or the network.
// Concurrent callers with the same key share one network request.
func (c *Client) load(ctx context.Context, key, target, apiKey, endpoint string) ([]byte, error) {
	if body, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		c.logger.Debug("cache hit", "endpoint", endpoint)
		return body, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// the shared request outlives any single caller
		fetchCtx := context.WithoutCancel(ctx)
		body, err := c.get(fetchCtx, target, apiKey, endpoint)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(fetchCtx, key, body, c.cacheTTL); err != nil {
			c.logger.Warn("cache write failed", "key", key, "error", err)
		}
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// get performs the HTTP exchange through the rate limiter and circuit breaker.
func (c *Client) get(ctx context.Context, target, apiKey, endpoint string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("requesting", "endpoint", endpoint, "url", target)
	start := time.Now()

	var body []byte
	err := c.execute(ctx, func() error {
		data, err := c.do(ctx, target, apiKey)
		if err != nil {
			return err
		}
		if msg, ok := apiErrorMessage(data); ok {
			return &web3bio.APIError{Endpoint: endpoint, Message: msg}
		}
		body = data
		return nil
	})
	if err != nil {
		if !web3bio.IsCanceled(err) {
			c.logger.Debug("request failed", "endpoint", endpoint, "error", err, "elapsed", time.Since(start))
		}
		return nil, err
	}
	c.logger.Debug("request completed", "endpoint", endpoint, "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}

func (c *Client) execute(ctx context.Context, fn func() error) error {
	if fn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

func (c *Client) do(ctx context.Context, target, apiKey string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if apiKey != "" {
		req.Header.Set(APIKeyHeader, apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, unwrapTransport(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, unwrapTransport(ctx, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &web3bio.HTTPError{Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

// GetJSON fetches an arbitrary JSON document through the same transport,
// without caching or API-key headers.
func (c *Client) GetJSON(ctx context.Context, target string, out any) error {
	body, err := c.get(ctx, target, "", "external")
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// unwrapTransport returns the caller's cancellation as-is so it stays recognisable.
func unwrapTransport(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// apiErrorMessage extracts a non-empty "error" field from an object body.
func apiErrorMessage(body []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return "", false
	}
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false
	}
	raw := strings.TrimSpace(string(envelope.Error))
	if raw == "" || raw == "null" || raw == "false" || raw == `""` {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(envelope.Error, &msg); err == nil {
		return msg, true
	}
	return raw, true
}

// countsAsSuccess keeps caller-side failures from tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil || web3bio.IsCanceled(err) {
		return true
	}
	var apiErr *web3bio.APIError
	if errors.As(err, &apiErr) {
		return true
	}
	if errors.Is(err, web3bio.ErrInvalidIdentity) {
		return true
	}
	var httpErr *web3bio.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status < 500 && httpErr.Status != http.StatusTooManyRequests
	}
	return false
}

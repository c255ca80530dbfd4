// Package client provides the core PokeAPI HTTP client with response
// caching, throttle handling, and typed errors.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/pokedex-client/pkg/cache"
	"github.com/Sternrassler/pokedex-client/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public PokeAPI v2 root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Prometheus metrics for PokeAPI client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_requests_total",
		Help: "Total PokeAPI requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pokeapi_request_duration_seconds",
		Help:    "PokeAPI request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_errors_total",
		Help: "Total PokeAPI errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 Too Many Requests.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// Client is the PokeAPI client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	throttle   *ratelimit.Tracker
	cache      *cache.Manager
	retry      RetryConfig
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "https://pokeapi.co/api/v2".
	BaseURL string

	// UserAgent identifies this application to PokeAPI.
	UserAgent string

	// Redis enables the shared response cache and throttle gate.
	// Nil disables both.
	Redis *redis.Client

	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration

	// Caching
	RevalidateAfter time.Duration // freshness window of a cached response
	StaleTTL        time.Duration // extra retention for revalidatable entries

	// Retry
	MaxAttempts    int // 1 disables retries
	InitialBackoff time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig(redis *redis.Client, userAgent string) Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		UserAgent:       userAgent,
		Redis:           redis,
		Timeout:         30 * time.Second,
		RevalidateAfter: cache.DefaultRevalidateAfter,
		StaleTTL:        cache.DefaultStaleTTL,
		MaxAttempts:     1,
		InitialBackoff:  500 * time.Millisecond,
	}
}

// New creates a new PokeAPI client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http(s) (got %q)", cfg.BaseURL)
	}

	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("max_attempts must be >= 1 (got %d)", cfg.MaxAttempts)
	}

	if cfg.RevalidateAfter < 0 {
		return nil, fmt.Errorf("revalidate_after must not be negative")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	retry := DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxAttempts
	if cfg.InitialBackoff > 0 {
		retry.InitialBackoff = cfg.InitialBackoff
	}

	logger := log.With().Str("component", "pokeapi-client").Logger()

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		retry:      retry,
		config:     cfg,
		logger:     logger,
	}

	if cfg.Redis != nil {
		c.throttle = ratelimit.NewTracker(cfg.Redis, logger)
		var opts []cache.Option
		if cfg.StaleTTL > 0 {
			opts = append(opts, cache.WithStaleTTL(cfg.StaleTTL))
		}
		c.cache = cache.NewManager(cfg.Redis, opts...)
	}

	return c, nil
}

// Do performs an HTTP request with caching, throttle handling, and error
// classification. Non-2xx responses that are not retried are returned to
// the caller as-is; retried failures surface as *APIError.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := endpointLabel(req.URL.Path)

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Check Cache
	cacheKey := cache.KeyForURL(req.URL)
	var cachedEntry *cache.CacheEntry
	if c.cache != nil && req.Method == http.MethodGet {
		entry, err := c.cache.Get(ctx, cacheKey)
		switch {
		case err == nil && !entry.IsExpired():
			c.logger.Debug().Str("endpoint", endpoint).Msg("Serving fresh cached response")
			requestsTotal.WithLabelValues(endpoint, "cached").Inc()
			return cache.EntryToResponse(entry, req), nil
		case err == nil:
			cachedEntry = entry
		case !errors.Is(err, cache.ErrCacheMiss):
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	// Step 2: Check throttle gate
	if c.throttle != nil {
		allowed, err := c.throttle.ShouldAllowRequest(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Throttle check failed")
		} else if !allowed {
			c.logger.Warn().Str("endpoint", endpoint).Msg("Request blocked by throttle gate")
			requestsTotal.WithLabelValues(endpoint, "throttled").Inc()
			return nil, ErrThrottled
		}
	}

	// Step 3: Conditional request for a stale entry
	if cache.ShouldMakeConditionalRequest(cachedEntry) {
		cache.AddConditionalHeaders(req, cachedEntry)
		cache.ConditionalRequestsSent.Inc()
		c.logger.Debug().
			Str("endpoint", endpoint).
			Str("etag", cachedEntry.ETag).
			Msg("Making conditional request")
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	// Step 4: Execute HTTP request with retry logic
	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("url", req.URL.String()).
		Msg("Executing PokeAPI request")

	var resp *http.Response
	attempts := 0
	retryErr := retryWithBackoff(ctx, c.retry, func() (ErrorClass, error) {
		attempts++
		// A 429 on an earlier attempt may have closed the gate.
		if attempts > 1 && c.throttle != nil {
			if allowed, err := c.throttle.ShouldAllowRequest(ctx); err == nil && !allowed {
				c.logger.Warn().Str("endpoint", endpoint).Int("attempt", attempts).Msg("Retry blocked by throttle gate")
				requestsTotal.WithLabelValues(endpoint, "throttled").Inc()
				return ErrorClassClient, ErrThrottled
			}
		}

		var reqErr error
		resp, reqErr = c.httpClient.Do(req)
		if reqErr != nil {
			resp = nil
			errClass := c.classifyError(nil, reqErr)
			errorsTotal.WithLabelValues(string(errClass)).Inc()
			requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			c.logger.Error().Err(reqErr).Str("endpoint", endpoint).Msg("HTTP request failed")
			if ctx.Err() != nil {
				// Cancellation is final; do not retry.
				return ErrorClassClient, &APIError{URL: req.URL.String(), ErrorClass: errClass, Err: reqErr}
			}
			return errClass, &APIError{URL: req.URL.String(), ErrorClass: errClass, Err: reqErr}
		}

		requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode == http.StatusTooManyRequests && c.throttle != nil {
			if err := c.throttle.UpdateFromResponse(ctx, resp.StatusCode, resp.Header); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to record throttle state")
			}
		}

		if resp.StatusCode < 400 {
			return "", nil
		}

		errClass := c.classifyError(resp, nil)
		errorsTotal.WithLabelValues(string(errClass)).Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("PokeAPI request error")

		if !shouldRetry(errClass) {
			// Let caller handle status
			return "", nil
		}

		apiErr := newStatusError(resp)
		resp.Body.Close()
		resp = nil
		return errClass, apiErr
	})

	if retryErr != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, retryErr
	}

	// Step 5: Handle 304 Not Modified
	if resp.StatusCode == http.StatusNotModified && cachedEntry != nil {
		c.logger.Debug().Str("endpoint", endpoint).Msg("304 Not Modified - using cache")
		cache.NotModifiedResponses.Inc()
		resp.Body.Close()

		if err := c.cache.UpdateTTL(ctx, cacheKey, time.Now().Add(c.config.RevalidateAfter)); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to update cache TTL")
		}
		return cache.EntryToResponse(cachedEntry, req), nil
	}

	// Step 6: Update cache on success
	if resp.StatusCode == http.StatusOK && c.cache != nil && req.Method == http.MethodGet {
		entry, err := cache.ResponseToEntry(resp, c.config.RevalidateAfter)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to create cache entry")
		} else if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache response")
		} else {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Dur("ttl", entry.TTL()).
				Msg("Cached response")
		}
	}

	return resp, nil
}

// classifyError categorizes an error for observability and handling.
func (c *Client) classifyError(resp *http.Response, err error) ErrorClass {
	if err != nil {
		return ErrorClassNetwork
	}
	return classifyStatus(resp.StatusCode)
}

// classifyStatus maps an HTTP status to its error class.
func classifyStatus(status int) ErrorClass {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// isTimeout reports whether err is a transport timeout.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// endpointLabel reduces a request path to its resource kind so metric
// cardinality stays bounded ("/api/v2/pokemon/25/" -> "pokemon").
func endpointLabel(path string) string {
	path = strings.Trim(path, "/")
	path = strings.TrimPrefix(path, "api/v2")
	path = strings.Trim(path, "/")
	if path == "" {
		return "root"
	}
	resource, _, _ := strings.Cut(path, "/")
	return resource
}

// ResolveURL turns a path relative to the base URL, or an absolute URL as
// found in PokeAPI payloads, into a request URL.
func (c *Client) ResolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}
	return c.baseURL.String() + "/" + strings.TrimLeft(pathOrURL, "/")
}

// Get performs a GET request to a PokeAPI resource.
func (c *Client) Get(ctx context.Context, pathOrURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ResolveURL(pathOrURL), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// GetJSON fetches a resource and decodes its JSON body into v.
// Any non-2xx status is returned as *APIError.
func (c *Client) GetJSON(ctx context.Context, pathOrURL string, v any) error {
	resp, err := c.Get(ctx, pathOrURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.Request == nil {
			resp.Request, _ = http.NewRequestWithContext(ctx, http.MethodGet, c.ResolveURL(pathOrURL), nil)
		}
		return newStatusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if isTimeout(err) {
			return &APIError{URL: c.ResolveURL(pathOrURL), ErrorClass: ErrorClassNetwork, Err: err}
		}
		return fmt.Errorf("decode %s: %w", c.ResolveURL(pathOrURL), err)
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// GetCache returns the cache manager, or nil when caching is disabled.
func (c *Client) GetCache() *cache.Manager {
	return c.cache
}

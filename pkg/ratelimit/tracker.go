package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for throttle tracking.
var (
	throttleEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokeapi_throttle_events_total",
		Help: "Total number of HTTP 429 responses received from PokeAPI",
	})

	throttleBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokeapi_throttle_blocks_total",
		Help: "Total number of requests blocked while PokeAPI throttling was active",
	})
)

// Tracker monitors upstream throttling and gates requests.
type Tracker struct {
	redis  *redis.Client
	logger zerolog.Logger
}

// NewTracker creates a new throttle tracker.
func NewTracker(redisClient *redis.Client, logger zerolog.Logger) *Tracker {
	return &Tracker{
		redis:  redisClient,
		logger: logger,
	}
}

// GetState retrieves the current throttle state from Redis.
// Returns an unblocked state if nothing has been recorded yet.
func (t *Tracker) GetState(ctx context.Context) (*ThrottleState, error) {
	values, err := t.redis.MGet(ctx, RedisKeyBlockedUntil, RedisKeyLastUpdate, RedisKeyEvents).Result()
	if err != nil {
		return nil, fmt.Errorf("get throttle state: %w", err)
	}

	state := &ThrottleState{}
	if values[0] == nil {
		t.logger.Debug().Msg("No throttle state in Redis, requests allowed")
		return state, nil
	}

	blockedUntil, err := parseUnixMillis(values[0])
	if err != nil {
		return nil, fmt.Errorf("parse blocked until: %w", err)
	}
	state.BlockedUntil = blockedUntil

	if values[1] != nil {
		lastUpdate, err := parseUnixMillis(values[1])
		if err != nil {
			return nil, fmt.Errorf("parse last update: %w", err)
		}
		state.LastUpdate = lastUpdate
	}

	if values[2] != nil {
		events, err := strconv.ParseInt(fmt.Sprint(values[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse events: %w", err)
		}
		state.Events = events
	}

	return state, nil
}

// UpdateFromResponse records throttling when status is 429. Other statuses are ignored.
func (t *Tracker) UpdateFromResponse(ctx context.Context, status int, headers http.Header) error {
	if status != http.StatusTooManyRequests {
		return nil
	}

	now := time.Now()
	wait := ParseRetryAfter(headers.Get("Retry-After"), now)
	blockedUntil := now.Add(wait)

	// Never shorten an existing block
	current, err := t.GetState(ctx)
	if err != nil {
		return err
	}
	if current.BlockedUntil.After(blockedUntil) {
		blockedUntil = current.BlockedUntil
	}

	pipe := t.redis.TxPipeline()
	pipe.Set(ctx, RedisKeyBlockedUntil, blockedUntil.UnixMilli(), 0)
	pipe.Set(ctx, RedisKeyLastUpdate, now.UnixMilli(), 0)
	pipe.Incr(ctx, RedisKeyEvents)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store throttle state in redis: %w", err)
	}

	throttleEventsTotal.Inc()
	t.logger.Warn().
		Dur("retry_after", wait).
		Time("blocked_until", blockedUntil).
		Msg("PokeAPI throttling detected - requests will be blocked")

	return nil
}

// ShouldAllowRequest reports whether a request may be sent now.
// Returns false while a throttle block is active.
func (t *Tracker) ShouldAllowRequest(ctx context.Context) (bool, error) {
	state, err := t.GetState(ctx)
	if err != nil {
		return false, fmt.Errorf("get throttle state: %w", err)
	}

	if state.IsBlocked() {
		t.logger.Warn().
			Dur("wait_duration", state.TimeUntilUnblock()).
			Msg("PokeAPI throttling active - blocking request")
		throttleBlocksTotal.Inc()
		return false, nil
	}

	return true, nil
}

// Reset clears all throttle state.
func (t *Tracker) Reset(ctx context.Context) error {
	if err := t.redis.Del(ctx, RedisKeyBlockedUntil, RedisKeyLastUpdate, RedisKeyEvents).Err(); err != nil {
		return fmt.Errorf("reset throttle state: %w", err)
	}
	return nil
}

// ParseRetryAfter interprets a Retry-After header value given in seconds or
// as an HTTP date. Missing or invalid values yield DefaultRetryAfter; the
// result is capped at MaxRetryAfter.
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultRetryAfter
	}

	var wait time.Duration
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return DefaultRetryAfter
		}
		wait = time.Duration(seconds) * time.Second
	} else if at, err := http.ParseTime(value); err == nil {
		wait = at.Sub(now)
		if wait < 0 {
			wait = 0
		}
	} else {
		return DefaultRetryAfter
	}

	return min(wait, MaxRetryAfter)
}

func parseUnixMillis(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, errors.New("unexpected value type")
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// Package ratelimit gates PokeAPI requests after the upstream signals throttling.
// It watches for HTTP 429 responses and their Retry-After header and stores a
// shared "blocked until" deadline in Redis, so every process using the same
// Redis instance backs off together.
package ratelimit

import (
	"time"
)

// Redis keys for throttle state storage.
const (
	RedisKeyBlockedUntil = "pokeapi:throttle:blocked_until"
	RedisKeyLastUpdate   = "pokeapi:throttle:last_update"
	RedisKeyEvents       = "pokeapi:throttle:events"
)

// DefaultRetryAfter is used when a 429 response carries no usable Retry-After header.
const DefaultRetryAfter = 60 * time.Second

// MaxRetryAfter caps the block window a single response can impose.
const MaxRetryAfter = 10 * time.Minute

// ThrottleState represents the current upstream throttling state.
type ThrottleState struct {
	// BlockedUntil is when requests may resume. Zero means never blocked.
	BlockedUntil time.Time `json:"blocked_until"`

	// LastUpdate is when this state was last written.
	LastUpdate time.Time `json:"last_update"`

	// Events counts throttling responses seen since the state was created.
	Events int64 `json:"events"`
}

// IsBlocked returns true while the upstream asked us to back off.
func (s *ThrottleState) IsBlocked() bool {
	return time.Now().Before(s.BlockedUntil)
}

// TimeUntilUnblock returns the remaining back-off.
// Returns 0 if requests are already allowed.
func (s *ThrottleState) TimeUntilUnblock() time.Duration {
	d := time.Until(s.BlockedUntil)
	if d < 0 {
		return 0
	}
	return d
}

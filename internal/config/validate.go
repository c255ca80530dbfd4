package config

import (
	"fmt"

	"github.com/Sternrassler/pokedex-client/pkg/logging"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.API.validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Batch.validate(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	switch c.Favorites.Backend {
	case BackendFile, BackendSQLite:
		if c.Favorites.Path == "" {
			return fmt.Errorf("favorites.path is required for the %s backend", c.Favorites.Backend)
		}
	case BackendRedis:
		if !c.RedisEnabled() {
			return fmt.Errorf("favorites.backend redis requires redis.addr")
		}
	default:
		return fmt.Errorf("favorites.backend must be one of file, redis, sqlite (got %q)", c.Favorites.Backend)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func (a *APIConfig) validate() error {
	if a.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if a.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", a.MaxAttempts)
	}
	if a.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative (got %s)", a.Timeout)
	}
	return nil
}

func (b *BatchConfig) validate() error {
	if b.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", b.Concurrency)
	}
	if b.PageSize <= 0 {
		return fmt.Errorf("page_size must be > 0 (got %d)", b.PageSize)
	}
	if b.TypeMemberLimit <= 0 {
		return fmt.Errorf("type_member_limit must be > 0 (got %d)", b.TypeMemberLimit)
	}
	return nil
}

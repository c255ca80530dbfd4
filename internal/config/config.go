// Package config loads the pokedex CLI configuration from YAML and the environment.
package config

import (
	"time"

	"github.com/Sternrassler/pokedex-client/pkg/batch"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

// Favorites backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config is the root application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Batch     BatchConfig     `yaml:"batch"`
	Redis     RedisConfig     `yaml:"redis"`
	Favorites FavoritesConfig `yaml:"favorites"`
	Log       LogConfig       `yaml:"log"`
	Locale    string          `yaml:"locale" env:"POKEDEX_LOCALE" env-default:"en"`
}

// APIConfig holds PokeAPI client settings.
type APIConfig struct {
	BaseURL         string        `yaml:"base_url"         env:"POKEAPI_BASE_URL"         env-default:"https://pokeapi.co/api/v2"`
	UserAgent       string        `yaml:"user_agent"       env:"POKEAPI_USER_AGENT"       env-default:"pokedex-client/1.0"`
	Timeout         time.Duration `yaml:"timeout"          env:"POKEAPI_TIMEOUT"          env-default:"30s"`
	RevalidateAfter time.Duration `yaml:"revalidate_after" env:"POKEAPI_REVALIDATE_AFTER" env-default:"24h"`
	StaleTTL        time.Duration `yaml:"stale_ttl"        env:"POKEAPI_STALE_TTL"        env-default:"168h"`
	MaxAttempts     int           `yaml:"max_attempts"     env:"POKEAPI_MAX_ATTEMPTS"     env-default:"1"`
}

// BatchConfig holds hydration fan-out and paging settings.
type BatchConfig struct {
	Concurrency     int           `yaml:"concurrency"       env:"BATCH_CONCURRENCY"       env-default:"8"`
	ItemTimeout     time.Duration `yaml:"item_timeout"      env:"BATCH_ITEM_TIMEOUT"      env-default:"15s"`
	PageSize        int           `yaml:"page_size"         env:"BATCH_PAGE_SIZE"         env-default:"24"`
	TypeMemberLimit int           `yaml:"type_member_limit" env:"BATCH_TYPE_MEMBER_LIMIT" env-default:"100"`
}

// RedisConfig holds the optional Redis connection. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB" env-default:"0"`
}

// FavoritesConfig selects where favorites are persisted.
// Path is a directory: the file backend writes its JSON file there and the
// sqlite backend keeps pokedex.db there. The redis backend ignores it.
type FavoritesConfig struct {
	Backend string `yaml:"backend" env:"FAVORITES_BACKEND" env-default:"file"`
	Path    string `yaml:"path"    env:"FAVORITES_PATH"    env-default:".pokedex"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY" env-default:"false"`
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// ServiceConfig maps the batch section onto the catalog service configuration.
func (c *Config) ServiceConfig() pokedex.Config {
	return pokedex.Config{
		Batch: batch.Config{
			MaxConcurrency: c.Batch.Concurrency,
			Timeout:        c.Batch.ItemTimeout,
		},
		PageSize:        c.Batch.PageSize,
		TypeMemberLimit: c.Batch.TypeMemberLimit,
	}
}

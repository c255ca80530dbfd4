package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/Sternrassler/pokedex-client/internal/config"
	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/favorites"
	"github.com/Sternrassler/pokedex-client/pkg/logging"
	"github.com/Sternrassler/pokedex-client/pkg/pokeapi"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

// sqliteFile is the database name inside favorites.path for the sqlite backend.
const sqliteFile = "pokedex.db"

// redisPingTimeout bounds the startup connectivity check.
const redisPingTimeout = 3 * time.Second

// env holds the loaded configuration and the lazily built collaborators of
// a single CLI invocation.
type env struct {
	cfg    *config.Config
	out    printer
	locale string
	logger zerolog.Logger

	redis   *redis.Client
	client  *client.Client
	service *pokedex.Service
	store   *favorites.Store
	closers []func() error
}

// setup loads the configuration and configures logging and output.
func (e *env) setup(c *cli.Context) error {
	cfg, err := config.LoadFrom(c.String("config"))
	if err != nil {
		return err
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	format, err := parseFormat(c.String("output"))
	if err != nil {
		return err
	}

	e.logger = logging.Setup(logging.Config{
		Level:  level,
		Pretty: cfg.Log.Pretty,
		Output: c.App.ErrWriter,
	})
	e.cfg = cfg
	e.out = printer{w: c.App.Writer, format: format}
	e.locale = cfg.Locale
	if l := c.String("locale"); l != "" {
		e.locale = l
	}
	return nil
}

// redisClient connects to Redis when configured. It returns nil otherwise.
func (e *env) redisClient(ctx context.Context) (*redis.Client, error) {
	if e.redis != nil || !e.cfg.RedisEnabled() {
		return e.redis, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     e.cfg.Redis.Addr,
		Password: e.cfg.Redis.Password,
		DB:       e.cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", e.cfg.Redis.Addr, err)
	}

	e.logger.Debug().Str("addr", e.cfg.Redis.Addr).Msg("Connected to Redis")
	e.redis = rdb
	e.closers = append(e.closers, rdb.Close)
	return rdb, nil
}

// pokedexService builds the API client and catalog service.
func (e *env) pokedexService(ctx context.Context) (*pokedex.Service, error) {
	if e.service != nil {
		return e.service, nil
	}

	rdb, err := e.redisClient(ctx)
	if err != nil {
		return nil, err
	}

	ccfg := client.DefaultConfig(rdb, e.cfg.API.UserAgent)
	ccfg.BaseURL = e.cfg.API.BaseURL
	ccfg.Timeout = e.cfg.API.Timeout
	ccfg.RevalidateAfter = e.cfg.API.RevalidateAfter
	ccfg.StaleTTL = e.cfg.API.StaleTTL
	ccfg.MaxAttempts = e.cfg.API.MaxAttempts

	c, err := client.New(ccfg)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	e.client = c
	e.closers = append(e.closers, c.Close)
	e.service = pokedex.NewService(pokeapi.NewResources(c), e.cfg.ServiceConfig())
	return e.service, nil
}

// favoritesStore opens the configured backend and hydrates the store.
func (e *env) favoritesStore(ctx context.Context) (*favorites.Store, error) {
	if e.store != nil {
		return e.store, nil
	}

	var storage favorites.Storage
	switch e.cfg.Favorites.Backend {
	case config.BackendFile:
		storage = favorites.NewFileStorage(e.cfg.Favorites.Path)
	case config.BackendSQLite:
		db, err := favorites.OpenSQLite(filepath.Join(e.cfg.Favorites.Path, sqliteFile))
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, db.Close)
		storage = db
	case config.BackendRedis:
		rdb, err := e.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		storage = favorites.NewRedisStorage(rdb)
	default:
		return nil, fmt.Errorf("unknown favorites backend %q", e.cfg.Favorites.Backend)
	}

	store := favorites.New(storage)
	if err := store.Hydrate(ctx); err != nil {
		if !store.Hydrated() {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
		e.logger.Warn().Err(err).Msg("Stored favorites were unreadable, starting empty")
	}

	e.store = store
	return store, nil
}

// close releases everything opened during the invocation, newest first.
func (e *env) close() {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintln(os.Stderr, "pokedex: close:", err)
	}
}

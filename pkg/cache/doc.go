// Package cache provides PokeAPI response caching with a Redis backend.
//
// PokeAPI data is near-static, so responses are treated as fresh for a fixed
// revalidation window (24h by default) and kept around for a further stale
// period so they can be revalidated cheaply:
//
//   - Fresh entries are served without touching the network
//   - Stale entries with an ETag or Last-Modified trigger a conditional request
//   - 304 Not Modified extends the entry by another window
//   - Stale entries without validators are dropped and refetched
//   - Deterministic cache keys (path slashes trimmed, query params sorted)
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.CacheKey{
//		Endpoint:    "/api/v2/pokemon",
//		QueryParams: url.Values{"limit": []string{"24"}, "offset": []string{"0"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from PokeAPI
//	}
//
// # HTTP Response Caching
//
//	entry, err := cache.ResponseToEntry(resp, 24*time.Hour)
//	if err != nil {
//		return err
//	}
//	if err := manager.Set(ctx, key, entry); err != nil {
//		return err
//	}
//
// # Metrics
//
//   - pokeapi_cache_hits_total{layer="redis"} - Fresh cache hits
//   - pokeapi_cache_misses_total - Cache misses
//   - pokeapi_cache_stale_total - Stale entries returned for revalidation
//   - pokeapi_304_responses_total - Successful revalidations
//   - pokeapi_conditional_requests_total - Conditional requests sent
//   - pokeapi_cache_errors_total{operation} - Cache operation errors
package cache

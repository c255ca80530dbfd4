package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// keyPrefix namespaces all response cache keys in Redis.
const keyPrefix = "pokeapi"

// CacheKey represents a unique identifier for a cached PokeAPI response.
type CacheKey struct {
	// Host is the upstream host, e.g. "pokeapi.co". Empty for keys built by hand.
	Host string

	// Endpoint is the request path (e.g., "/api/v2/pokemon/25/")
	Endpoint string

	// QueryParams are the query parameters (e.g., {"limit": "24"})
	QueryParams url.Values
}

// KeyForURL builds the cache key for a request URL.
func KeyForURL(u *url.URL) CacheKey {
	return CacheKey{
		Host:        u.Host,
		Endpoint:    u.Path,
		QueryParams: u.Query(),
	}
}

// String generates a deterministic cache key string.
// Format: pokeapi:host:path:query1=val1:query2=val2
// The host segment is omitted when Host is empty.
//
// Example:
//
//	pokeapi:pokeapi.co:api/v2/pokemon:limit=24:offset=0
func (k CacheKey) String() string {
	parts := []string{keyPrefix}

	if k.Host != "" {
		parts = append(parts, strings.ToLower(k.Host))
	}

	// Trailing slashes are insignificant for PokeAPI paths
	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}

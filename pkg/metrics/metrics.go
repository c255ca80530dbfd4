// Package metrics provides the Prometheus registry reference for the
// Pokedex client. All metrics are defined in their respective packages
// (client, cache, ratelimit, batch) to maintain modularity and avoid
// circular dependencies.
package metrics

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the registry metrics are read back from.
var Gatherer prometheus.Gatherer = prometheus.DefaultGatherer

// WriteText writes every gathered metric family whose name starts with one
// of prefixes (all of them when none are given) in the Prometheus text
// exposition format.
func WriteText(w io.Writer, prefixes ...string) error {
	families, err := Gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		if !matchesPrefix(mf.GetName(), prefixes) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func matchesPrefix(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Metrics Documentation
//
// Throttle Metrics (pkg/ratelimit):
//   - pokeapi_throttle_events_total (Counter): 429 responses recorded
//   - pokeapi_throttle_blocks_total (Counter): Requests refused while the gate was closed
//
// Cache Metrics (pkg/cache):
//   - pokeapi_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - pokeapi_cache_misses_total (Counter): Cache misses
//   - pokeapi_cache_stale_total (Counter): Stale entries returned for revalidation
//   - pokeapi_304_responses_total (Counter): 304 Not Modified responses
//   - pokeapi_conditional_requests_total (Counter): Conditional requests sent
//   - pokeapi_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/client):
//   - pokeapi_requests_total{endpoint, status} (Counter): Requests by resource kind and HTTP status
//   - pokeapi_request_duration_seconds{endpoint} (Histogram): Request duration by resource kind
//   - pokeapi_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - pokeapi_retries_total{error_class} (Counter): Retry attempts by error class
//   - pokeapi_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - pokeapi_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Batch Metrics (pkg/batch):
//   - pokedex_batch_items_total{outcome} (Counter): Batch items by outcome (ok, failed, skipped)
//   - pokedex_batch_duration_seconds (Histogram): Wall time of one batch
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(pokeapi_cache_hits_total[5m])) /
//   (sum(rate(pokeapi_cache_hits_total[5m])) + sum(rate(pokeapi_cache_misses_total[5m])))
//
//   # Dropped batch items
//   rate(pokedex_batch_items_total{outcome="failed"}[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(pokeapi_request_duration_seconds_bucket[5m]))
//
//   # 304 Response Rate
//   rate(pokeapi_304_responses_total[5m]) / rate(pokeapi_requests_total[5m])

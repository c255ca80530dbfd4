package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchItems counts mapped items by outcome ("ok", "failed", "skipped").
	BatchItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokedex_batch_items_total",
			Help: "Total number of items processed by the bounded-concurrency mapper",
		},
		[]string{"outcome"},
	)

	// BatchDuration tracks wall-clock time of whole batches.
	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pokedex_batch_duration_seconds",
			Help:    "Duration of bounded-concurrency batches in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
	)
)

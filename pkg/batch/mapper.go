package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds mapper configuration.
type Config struct {
	// MaxConcurrency is the maximum number of in-flight operations.
	// Values below 1 are coerced to 1.
	MaxConcurrency int
	// Timeout bounds each individual operation. Zero disables the per-item timeout.
	Timeout time.Duration
}

// DefaultConfig returns the configuration used for list and type hydration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 8,
		Timeout:        15 * time.Second,
	}
}

// Func maps one input to one output. index is the position of item in the input slice.
type Func[T, R any] func(ctx context.Context, item T, index int) (R, error)

type slot[R any] struct {
	value R
	ok    bool
}

// MapSettled applies fn to every item with at most cfg.MaxConcurrency calls in flight.
// Failed items are dropped; the call itself never fails. Successful results keep
// their relative input order.
func MapSettled[T, R any](ctx context.Context, items []T, fn Func[T, R], cfg Config) []R {
	if len(items) == 0 {
		return []R{}
	}

	start := time.Now()
	defer func() {
		BatchDuration.Observe(time.Since(start).Seconds())
	}()

	workers := max(1, cfg.MaxConcurrency)
	workers = min(workers, len(items))

	results := make([]slot[R], len(items))
	var next atomic.Int64
	var failed atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			processed := 0

			for {
				if ctx.Err() != nil {
					log.Debug().
						Int("worker_id", workerID).
						Int("items_processed", processed).
						Msg("Worker stopping (context cancelled)")
					return
				}

				current := int(next.Add(1) - 1)
				if current >= len(items) {
					break
				}

				value, err := invoke(ctx, fn, items[current], current, cfg.Timeout)
				processed++
				if err != nil {
					failed.Add(1)
					BatchItems.WithLabelValues("failed").Inc()
					log.Warn().
						Err(err).
						Int("worker_id", workerID).
						Int("index", current).
						Msg("Batch item failed")
					continue
				}

				results[current] = slot[R]{value: value, ok: true}
				BatchItems.WithLabelValues("ok").Inc()
			}

			log.Debug().
				Int("worker_id", workerID).
				Int("items_processed", processed).
				Msg("Worker completed")
		}(i)
	}
	wg.Wait()

	out := make([]R, 0, len(items))
	for _, r := range results {
		if r.ok {
			out = append(out, r.value)
		}
	}

	if skipped := len(items) - len(out) - int(failed.Load()); skipped > 0 {
		BatchItems.WithLabelValues("skipped").Add(float64(skipped))
	}

	log.Debug().
		Int("items", len(items)).
		Int("succeeded", len(out)).
		Int64("failed", failed.Load()).
		Int("concurrency", workers).
		Dur("duration", time.Since(start)).
		Msg("Batch complete")

	return out
}

// invoke runs fn for a single item, converting panics into errors.
func invoke[T, R any](ctx context.Context, fn Func[T, R], item T, index int, timeout time.Duration) (value R, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("batch item %d panicked: %v", index, r)
		}
	}()

	return fn(ctx, item, index)
}

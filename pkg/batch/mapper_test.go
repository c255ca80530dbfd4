package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapSettled_EmptyInput(t *testing.T) {
	var calls atomic.Int32
	got := MapSettled(context.Background(), []int{}, func(ctx context.Context, item int, _ int) (int, error) {
		calls.Add(1)
		return item, nil
	}, DefaultConfig())

	if len(got) != 0 {
		t.Errorf("len(result) = %d, want 0", len(got))
	}
	if calls.Load() != 0 {
		t.Errorf("fn called %d times, want 0", calls.Load())
	}
}

func TestMapSettled_PreservesInputOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got := MapSettled(context.Background(), items, func(ctx context.Context, item int, _ int) (int, error) {
		// Later items finish first.
		time.Sleep(time.Duration(len(items)-item) * time.Millisecond)
		return item * 10, nil
	}, Config{MaxConcurrency: 4})

	if len(got) != len(items) {
		t.Fatalf("len(result) = %d, want %d", len(got), len(items))
	}
	for i, v := range got {
		if v != items[i]*10 {
			t.Errorf("result[%d] = %d, want %d", i, v, items[i]*10)
		}
	}
}

func TestMapSettled_DropsFailures(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}

	got := MapSettled(context.Background(), items, func(ctx context.Context, item int, _ int) (int, error) {
		if item%2 == 0 {
			return 0, errors.New("even items fail")
		}
		return item, nil
	}, Config{MaxConcurrency: 3})

	want := []int{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("len(result) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMapSettled_AllFail(t *testing.T) {
	got := MapSettled(context.Background(), []string{"a", "b"}, func(ctx context.Context, item string, _ int) (string, error) {
		return "", errors.New("boom")
	}, DefaultConfig())

	if len(got) != 0 {
		t.Errorf("len(result) = %d, want 0", len(got))
	}
}

func TestMapSettled_RecoversPanics(t *testing.T) {
	got := MapSettled(context.Background(), []int{1, 2, 3}, func(ctx context.Context, item int, _ int) (int, error) {
		if item == 2 {
			panic("bad record")
		}
		return item, nil
	}, Config{MaxConcurrency: 2})

	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("result = %v, want [1 3]", got)
	}
}

func TestMapSettled_ConcurrencyCap(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		items       int
		wantMax     int32
	}{
		{name: "cap below item count", concurrency: 3, items: 20, wantMax: 3},
		{name: "cap above item count", concurrency: 50, items: 5, wantMax: 5},
		{name: "zero coerced to one", concurrency: 0, items: 6, wantMax: 1},
		{name: "negative coerced to one", concurrency: -4, items: 6, wantMax: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			for i := range items {
				items[i] = i
			}

			var inFlight, peak atomic.Int32
			got := MapSettled(context.Background(), items, func(ctx context.Context, item int, _ int) (int, error) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inFlight.Add(-1)
				return item, nil
			}, Config{MaxConcurrency: tt.concurrency})

			if len(got) != tt.items {
				t.Errorf("len(result) = %d, want %d", len(got), tt.items)
			}
			if peak.Load() > tt.wantMax {
				t.Errorf("peak in-flight = %d, want <= %d", peak.Load(), tt.wantMax)
			}
		})
	}
}

func TestMapSettled_IndexMatchesItem(t *testing.T) {
	items := []string{"bulbasaur", "ivysaur", "venusaur"}

	got := MapSettled(context.Background(), items, func(ctx context.Context, item string, index int) (string, error) {
		if items[index] != item {
			return "", errors.New("index mismatch")
		}
		return item, nil
	}, DefaultConfig())

	if len(got) != len(items) {
		t.Errorf("len(result) = %d, want %d", len(got), len(items))
	}
}

func TestMapSettled_PerItemTimeout(t *testing.T) {
	got := MapSettled(context.Background(), []int{1, 2}, func(ctx context.Context, item int, _ int) (int, error) {
		if item == 2 {
			<-ctx.Done()
			return 0, ctx.Err()
		}
		return item, nil
	}, Config{MaxConcurrency: 2, Timeout: 20 * time.Millisecond})

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("result = %v, want [1]", got)
	}
}

func TestMapSettled_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	got := MapSettled(ctx, []int{1, 2, 3}, func(ctx context.Context, item int, _ int) (int, error) {
		calls.Add(1)
		return item, nil
	}, DefaultConfig())

	if len(got) != 0 {
		t.Errorf("len(result) = %d, want 0", len(got))
	}
	if calls.Load() != 0 {
		t.Errorf("fn called %d times after cancellation, want 0", calls.Load())
	}
}

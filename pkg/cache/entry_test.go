package cache

import (
	"testing"
	"time"
)

func TestCacheEntry_IsExpired(t *testing.T) {
	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{
			name:    "expired entry",
			expires: time.Now().Add(-1 * time.Hour),
			want:    true,
		},
		{
			name:    "fresh entry",
			expires: time.Now().Add(24 * time.Hour),
			want:    false,
		},
		{
			name:    "just expired",
			expires: time.Now().Add(-1 * time.Second),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &CacheEntry{Expires: tt.expires}
			if got := entry.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCacheEntry_TTL(t *testing.T) {
	tests := []struct {
		name    string
		expires time.Time
		wantMin time.Duration
		wantMax time.Duration
	}{
		{
			name:    "one day remaining",
			expires: time.Now().Add(24 * time.Hour),
			wantMin: 24*time.Hour - time.Minute,
			wantMax: 24*time.Hour + time.Minute,
		},
		{
			name:    "already expired",
			expires: time.Now().Add(-1 * time.Hour),
			wantMin: 0,
			wantMax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &CacheEntry{Expires: tt.expires}
			got := entry.TTL()
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("TTL() = %v, want between %v and %v", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestCacheEntry_HasValidator(t *testing.T) {
	tests := []struct {
		name  string
		entry CacheEntry
		want  bool
	}{
		{name: "etag", entry: CacheEntry{ETag: `W/"abc"`}, want: true},
		{name: "last modified", entry: CacheEntry{LastModified: time.Now()}, want: true},
		{name: "none", entry: CacheEntry{Data: []byte("{}")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.HasValidator(); got != tt.want {
				t.Errorf("HasValidator() = %v, want %v", got, tt.want)
			}
		})
	}
}

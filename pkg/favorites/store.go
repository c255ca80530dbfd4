// Package favorites holds the favorites collection: an injectable,
// write-through store with an explicit hydration signal, and the storage
// backends it persists to.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Sternrassler/pokedex-client/pkg/logging"
	"github.com/rs/zerolog"
)

// ErrNotHydrated is returned when the store is mutated before Hydrate.
var ErrNotHydrated = errors.New("favorites store not hydrated")

// Store is the favorites collection. It starts empty and unhydrated;
// Hydrate loads the persisted value once. Every mutation writes through to
// storage, last write wins.
type Store struct {
	storage Storage
	logger  zerolog.Logger

	mu       sync.RWMutex
	items    []Item
	hydrated bool
	ready    chan struct{}
}

// New creates an unhydrated store backed by storage.
func New(storage Storage) *Store {
	return &Store{
		storage: storage,
		logger:  logging.NewLogger("favorites"),
		items:   []Item{},
		ready:   make(chan struct{}),
	}
}

// Hydrate loads the persisted favorites. A missing value yields an empty
// collection. A value that cannot be decoded also yields an empty, hydrated
// collection, and the decode error is returned. Storage read failures leave
// the store unhydrated.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return nil
	}

	data, err := s.storage.Load(ctx)
	switch {
	case errors.Is(err, ErrNoData):
		s.markHydrated([]Item{})
		return nil
	case err != nil:
		return fmt.Errorf("load favorites: %w", err)
	}

	items, decodeErr := Decode(data)
	if decodeErr != nil {
		s.logger.Warn().Err(decodeErr).Msg("Discarding unreadable favorites")
		s.markHydrated([]Item{})
		return decodeErr
	}

	s.markHydrated(items)
	return nil
}

func (s *Store) markHydrated(items []Item) {
	s.items = items
	s.hydrated = true
	close(s.ready)
	s.logger.Info().Int("count", len(items)).Msg("Favorites hydrated")
}

// Hydrated distinguishes "not loaded yet" from "loaded and empty".
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Ready is closed once hydration completes.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// List returns a copy of the favorites in insertion order.
func (s *Store) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the favorite with id.
func (s *Store) Get(id int) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return Item{}, false
}

// IsFavorite reports whether id is in the collection.
func (s *Store) IsFavorite(id int) bool {
	_, ok := s.Get(id)
	return ok
}

// Add appends item. Adding an id that is already present is a no-op.
func (s *Store) Add(ctx context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return ErrNotHydrated
	}
	if s.indexOf(item.ID) >= 0 {
		return nil
	}
	return s.commit(ctx, append(slices.Clone(s.items), item))
}

// Remove deletes the favorite with id, if present.
func (s *Store) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return ErrNotHydrated
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	return s.commit(ctx, slices.Delete(slices.Clone(s.items), i, i+1))
}

// Toggle removes item if present and adds it otherwise. It reports whether
// the item is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, item Item) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return false, ErrNotHydrated
	}
	if i := s.indexOf(item.ID); i >= 0 {
		return false, s.commit(ctx, slices.Delete(slices.Clone(s.items), i, i+1))
	}
	return true, s.commit(ctx, append(slices.Clone(s.items), item))
}

// Clear removes every favorite.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hydrated {
		return ErrNotHydrated
	}
	return s.commit(ctx, []Item{})
}

// commit persists next and swaps it in. The in-memory state is unchanged
// when the write fails. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []Item) error {
	data, err := Encode(next)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist favorites")
		return fmt.Errorf("save favorites: %w", err)
	}
	s.items = next
	s.logger.Debug().Int("count", len(next)).Msg("Favorites saved")
	return nil
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.items, func(it Item) bool { return it.ID == id })
}

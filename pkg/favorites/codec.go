package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// StorageKey is the fixed key the favorites value lives under.
	StorageKey = "pokelocator-favorites"

	// SchemaVersion is the version marker written with every value.
	SchemaVersion = 0
)

var (
	// ErrNoData is returned by a Storage when nothing has been saved yet.
	ErrNoData = errors.New("no favorites stored")

	// ErrUnsupportedVersion is returned when the stored schema version is unknown.
	ErrUnsupportedVersion = errors.New("unsupported favorites schema version")
)

type envelope struct {
	State   state `json:"state"`
	Version int   `json:"version"`
}

type state struct {
	Favorites []Item `json:"favorites"`
}

// Encode serializes items into the persisted envelope.
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(envelope{State: state{Favorites: items}, Version: SchemaVersion})
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}
	return data, nil
}

// Decode parses a persisted envelope.
func Decode(data []byte) ([]Item, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if env.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if env.State.Favorites == nil {
		return []Item{}, nil
	}
	return env.State.Favorites, nil
}

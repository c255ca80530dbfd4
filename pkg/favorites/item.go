package favorites

import (
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

// Item is the persisted projection of a favorite. Stats and moves are left
// out to keep the stored value small.
type Item struct {
	ID     int                   `json:"id" yaml:"id"`
	Name   string                `json:"name" yaml:"name"`
	Types  []pokedex.PokemonType `json:"types" yaml:"types"`
	Sprite string                `json:"sprite" yaml:"sprite"`
}

// FromListItem projects a card model, using the official artwork as sprite.
func FromListItem(li pokedex.ListItem) Item {
	return Item{
		ID:     li.ID,
		Name:   li.Name,
		Types:  li.Types,
		Sprite: li.Sprites.OfficialArtwork,
	}
}

// ListItem rebuilds a card model from the stored projection.
func (i Item) ListItem() pokedex.ListItem {
	return pokedex.ListItem{
		ID:    i.ID,
		Name:  i.Name,
		Types: i.Types,
		Sprites: pokedex.Sprites{
			OfficialArtwork: i.Sprite,
			FrontDefault:    i.Sprite,
			FrontShiny:      nil,
		},
		URL: pokedex.CanonicalPokemonURL(i.ID),
	}
}

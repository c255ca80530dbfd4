package pokedex

import (
	"fmt"

	"github.com/Sternrassler/pokedex-client/pkg/pokeapi"
)

const fallbackSpriteURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"

// FallbackSpriteURL is the sprite URL built from the id alone.
func FallbackSpriteURL(id int) string {
	return fmt.Sprintf(fallbackSpriteURL, id)
}

// firstNonNil returns the first candidate that is set and non-empty.
func firstNonNil(candidates ...*string) (string, bool) {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c, true
		}
	}
	return "", false
}

// officialArtwork resolves: official artwork, home artwork, default front
// sprite, then the id-based fallback.
func officialArtwork(raw *pokeapi.Pokemon) string {
	if url, ok := firstNonNil(
		raw.Sprites.Other.OfficialArtwork.FrontDefault,
		raw.Sprites.Other.Home.FrontDefault,
		raw.Sprites.FrontDefault,
	); ok {
		return url
	}
	return FallbackSpriteURL(raw.ID)
}

func frontDefault(raw *pokeapi.Pokemon) string {
	if url, ok := firstNonNil(raw.Sprites.FrontDefault); ok {
		return url
	}
	return FallbackSpriteURL(raw.ID)
}

func normalizeSprites(raw *pokeapi.Pokemon) Sprites {
	return Sprites{
		OfficialArtwork: officialArtwork(raw),
		FrontDefault:    frontDefault(raw),
		FrontShiny:      raw.Sprites.FrontShiny,
	}
}

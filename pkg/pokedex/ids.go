package pokedex

import (
	"strconv"
	"strings"
)

// IDFromURL extracts the trailing numeric id from a resource URL:
// ".../pokemon/25/" and ".../pokemon/25" both yield 25. Returns 0 when the
// last segment is not a number.
func IDFromURL(rawURL string) int {
	segments := strings.FieldsFunc(rawURL, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return 0
	}
	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		return 0
	}
	return id
}

// CanonicalPokemonURL is the public locator of a Pokemon.
func CanonicalPokemonURL(id int) string {
	return "https://pokeapi.co/api/v2/pokemon/" + strconv.Itoa(id) + "/"
}

// Package pokeapi holds the raw PokeAPI response shapes and one fetch per
// endpoint. Payloads are decoded as-is; nothing here reshapes data.
package pokeapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const (
	// TypeListLimit covers every type in a single page.
	TypeListLimit = 100

	// AllNamesLimit is large enough to return the full name catalog.
	AllNamesLimit = 10000
)

// Fetcher retrieves a resource and decodes its JSON body into v.
// *client.Client satisfies it.
type Fetcher interface {
	GetJSON(ctx context.Context, pathOrURL string, v any) error
}

// Resources issues raw PokeAPI requests.
type Resources struct {
	fetcher Fetcher
}

// NewResources creates a raw resource fetcher.
func NewResources(fetcher Fetcher) *Resources {
	return &Resources{fetcher: fetcher}
}

// ListPokemon fetches one page of the Pokemon name/url list.
func (r *Resources) ListPokemon(ctx context.Context, offset, limit int) (*ResourceList, error) {
	var list ResourceList
	if err := r.fetcher.GetJSON(ctx, listPath("pokemon", offset, limit), &list); err != nil {
		return nil, fmt.Errorf("list pokemon: %w", err)
	}
	return &list, nil
}

// Pokemon fetches a single Pokemon by numeric id or name.
func (r *Resources) Pokemon(ctx context.Context, idOrName string) (*Pokemon, error) {
	return r.PokemonByURL(ctx, "pokemon/"+url.PathEscape(idOrName))
}

// PokemonByURL fetches a Pokemon from a locator found in another payload.
func (r *Resources) PokemonByURL(ctx context.Context, pathOrURL string) (*Pokemon, error) {
	var p Pokemon
	if err := r.fetcher.GetJSON(ctx, pathOrURL, &p); err != nil {
		return nil, fmt.Errorf("get pokemon: %w", err)
	}
	return &p, nil
}

// Species fetches a species record by numeric id or name.
func (r *Resources) Species(ctx context.Context, idOrName string) (*Species, error) {
	var s Species
	if err := r.fetcher.GetJSON(ctx, "pokemon-species/"+url.PathEscape(idOrName), &s); err != nil {
		return nil, fmt.Errorf("get species: %w", err)
	}
	return &s, nil
}

// EvolutionChain fetches an evolution tree by id.
func (r *Resources) EvolutionChain(ctx context.Context, id int) (*EvolutionChain, error) {
	var c EvolutionChain
	if err := r.fetcher.GetJSON(ctx, "evolution-chain/"+strconv.Itoa(id), &c); err != nil {
		return nil, fmt.Errorf("get evolution chain %d: %w", id, err)
	}
	return &c, nil
}

// Types fetches the list of all type names.
func (r *Resources) Types(ctx context.Context) (*ResourceList, error) {
	var list ResourceList
	path := "type?" + url.Values{"limit": {strconv.Itoa(TypeListLimit)}}.Encode()
	if err := r.fetcher.GetJSON(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	return &list, nil
}

// Type fetches a type including its member Pokemon.
func (r *Resources) Type(ctx context.Context, name string) (*TypeDetail, error) {
	var t TypeDetail
	if err := r.fetcher.GetJSON(ctx, "type/"+url.PathEscape(name), &t); err != nil {
		return nil, fmt.Errorf("get type %s: %w", name, err)
	}
	return &t, nil
}

// AllPokemonNames fetches the complete name catalog in one page.
func (r *Resources) AllPokemonNames(ctx context.Context) (*ResourceList, error) {
	var list ResourceList
	if err := r.fetcher.GetJSON(ctx, listPath("pokemon", 0, AllNamesLimit), &list); err != nil {
		return nil, fmt.Errorf("list pokemon names: %w", err)
	}
	return &list, nil
}

func listPath(resource string, offset, limit int) string {
	return fmt.Sprintf("%s?limit=%d&offset=%d", resource, limit, offset)
}

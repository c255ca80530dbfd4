// Package batch provides bounded-concurrency fan-out for hydrating many
// PokeAPI detail records from a single list or type lookup.
//
// A list page returns name/url pairs only; every card needs its own detail
// request. MapSettled runs those requests through a fixed worker pool:
//
//	cfg := batch.DefaultConfig()
//	items := batch.MapSettled(ctx, refs, func(ctx context.Context, ref pokeapi.NamedResource, _ int) (pokedex.ListItem, error) {
//		raw, err := resources.PokemonByURL(ctx, ref.URL)
//		if err != nil {
//			return pokedex.ListItem{}, err
//		}
//		return pokedex.NormalizeListItem(raw), nil
//	}, cfg)
//
// The mapper:
//   - Starts min(MaxConcurrency, len(items)) workers
//   - Each worker claims the next unclaimed index from a shared counter
//   - Drops items whose operation fails, panics or times out
//   - Returns the successes in input order
//   - Stops claiming new work once the context is cancelled
package batch

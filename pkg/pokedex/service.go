package pokedex

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Sternrassler/pokedex-client/pkg/batch"
	"github.com/Sternrassler/pokedex-client/pkg/logging"
	"github.com/Sternrassler/pokedex-client/pkg/pokeapi"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultPageSize is the number of cards on one list page.
	DefaultPageSize = 24

	// DefaultTypeMemberLimit caps how many members of a type are hydrated.
	DefaultTypeMemberLimit = 100

	// MinSearchLength is the shortest query that produces suggestions.
	MinSearchLength = 2

	// MaxSuggestions caps the number of search suggestions.
	MaxSuggestions = 8
)

// excludedTypes are non-standard types left out of the type catalog.
var excludedTypes = map[string]bool{
	"unknown": true,
	"shadow":  true,
}

// Config controls the aggregate fetchers.
type Config struct {
	Batch           batch.Config
	PageSize        int
	TypeMemberLimit int
}

// DefaultConfig returns the default aggregate fetch configuration.
func DefaultConfig() Config {
	return Config{
		Batch:           batch.DefaultConfig(),
		PageSize:        DefaultPageSize,
		TypeMemberLimit: DefaultTypeMemberLimit,
	}
}

// Service composes raw fetches, the batch mapper, and the normalizers into
// UI-ready collections.
type Service struct {
	res    *pokeapi.Resources
	cfg    Config
	logger zerolog.Logger

	names   singleflight.Group
	mu      sync.RWMutex
	catalog []pokeapi.NamedResource
}

// NewService creates a Service. Zero values in cfg take their defaults.
func NewService(res *pokeapi.Resources, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.Batch.MaxConcurrency <= 0 {
		cfg.Batch.MaxConcurrency = def.Batch.MaxConcurrency
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.TypeMemberLimit <= 0 {
		cfg.TypeMemberLimit = def.TypeMemberLimit
	}

	return &Service{
		res:    res,
		cfg:    cfg,
		logger: logging.NewLogger("pokedex"),
	}
}

// ListPage fetches one page of the list and hydrates every entry.
// Entries whose detail fetch fails are left out, so a page can hold fewer
// items than limit. A non-positive limit uses the configured page size.
func (s *Service) ListPage(ctx context.Context, offset, limit int) (*Page, error) {
	if offset < 0 {
		return nil, fmt.Errorf("offset must not be negative (got %d)", offset)
	}
	if limit <= 0 {
		limit = s.cfg.PageSize
	}

	list, err := s.res.ListPokemon(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	items := s.hydrate(ctx, list.Results)

	meta := PaginationMeta{Total: list.Count}
	if list.HasNext() {
		next := offset + limit
		meta.NextOffset = &next
	}

	s.logger.Info().
		Int("offset", offset).
		Int("limit", limit).
		Int("items", len(items)).
		Msg("List page loaded")

	return &Page{Items: items, Meta: meta}, nil
}

// ListByType hydrates the members of a type, capped at the configured
// member limit. There is no pagination.
func (s *Service) ListByType(ctx context.Context, typeName string) ([]ListItem, error) {
	detail, err := s.res.Type(ctx, typeName)
	if err != nil {
		return nil, err
	}

	members := detail.Pokemon
	if len(members) > s.cfg.TypeMemberLimit {
		members = members[:s.cfg.TypeMemberLimit]
	}

	refs := make([]pokeapi.NamedResource, 0, len(members))
	for _, m := range members {
		refs = append(refs, m.Pokemon)
	}

	items := s.hydrate(ctx, refs)

	s.logger.Info().
		Str("type", typeName).
		Int("members", len(detail.Pokemon)).
		Int("items", len(items)).
		Msg("Type listing loaded")

	return items, nil
}

// hydrate fetches and normalizes every reference through the batch mapper.
func (s *Service) hydrate(ctx context.Context, refs []pokeapi.NamedResource) []ListItem {
	return batch.MapSettled(ctx, refs, func(ctx context.Context, ref pokeapi.NamedResource, _ int) (ListItem, error) {
		raw, err := s.res.PokemonByURL(ctx, ref.URL)
		if err != nil {
			return ListItem{}, err
		}
		return NormalizeListItem(raw), nil
	}, s.cfg.Batch)
}

// Detail fetches and normalizes one Pokemon.
func (s *Service) Detail(ctx context.Context, idOrName string) (*Detail, error) {
	raw, err := s.res.Pokemon(ctx, normalizeKey(idOrName))
	if err != nil {
		return nil, err
	}
	d := NormalizeDetail(raw)
	return &d, nil
}

// Species fetches a species record resolved for locale.
func (s *Service) Species(ctx context.Context, idOrName, locale string) (*Species, error) {
	raw, err := s.res.Species(ctx, normalizeKey(idOrName))
	if err != nil {
		return nil, err
	}
	sp := NormalizeSpecies(raw, locale)
	return &sp, nil
}

// EvolutionChain fetches an evolution tree by chain id.
func (s *Service) EvolutionChain(ctx context.Context, chainID int) (*EvolutionNode, error) {
	raw, err := s.res.EvolutionChain(ctx, chainID)
	if err != nil {
		return nil, err
	}
	node := NormalizeEvolutionChain(raw)
	return &node, nil
}

// EvolutionChainForSpecies resolves the chain id from the species record
// first, then fetches the chain.
func (s *Service) EvolutionChainForSpecies(ctx context.Context, idOrName string) (*EvolutionNode, error) {
	raw, err := s.res.Species(ctx, normalizeKey(idOrName))
	if err != nil {
		return nil, err
	}
	chainID := IDFromURL(raw.EvolutionChain.URL)
	if chainID == 0 {
		return nil, fmt.Errorf("species %s has no evolution chain", raw.Name)
	}
	return s.EvolutionChain(ctx, chainID)
}

// Profile loads detail and species in parallel, then the evolution chain
// the species points to.
func (s *Service) Profile(ctx context.Context, idOrName, locale string) (*Profile, error) {
	start := time.Now()
	var profile Profile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.Detail(gctx, idOrName)
		if err != nil {
			return fmt.Errorf("detail: %w", err)
		}
		profile.Detail = d
		return nil
	})
	g.Go(func() error {
		sp, err := s.Species(gctx, idOrName, locale)
		if err != nil {
			return fmt.Errorf("species: %w", err)
		}
		profile.Species = sp
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if profile.Species.EvolutionChainID != 0 {
		evo, err := s.EvolutionChain(ctx, profile.Species.EvolutionChainID)
		if err != nil {
			return nil, fmt.Errorf("evolution chain: %w", err)
		}
		profile.Evolution = evo
	}

	s.logger.Info().
		Str("pokemon", profile.Detail.Name).
		Dur("duration", time.Since(start)).
		Msg("Profile loaded")

	return &profile, nil
}

// AllNames returns the full name catalog. It is fetched once and kept for
// the lifetime of the Service; concurrent first calls share one request.
// The shared request is detached from the caller that started it, so a
// cancelled caller only abandons its own wait.
func (s *Service) AllNames(ctx context.Context) ([]pokeapi.NamedResource, error) {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()
	if catalog != nil {
		return catalog, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.names.DoChan("all-names", func() (any, error) {
		list, err := s.res.AllPokemonNames(loadCtx)
		if err != nil {
			return nil, err
		}
		results := list.Results
		if results == nil {
			results = []pokeapi.NamedResource{}
		}
		s.mu.Lock()
		s.catalog = results
		s.mu.Unlock()
		return results, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		s.logger.Debug().Bool("shared", res.Shared).Msg("Name catalog loaded")
		return res.Val.([]pokeapi.NamedResource), nil
	}
}

// Types lists every standard type name in upstream order.
func (s *Service) Types(ctx context.Context) ([]string, error) {
	list, err := s.res.Types(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(list.Results))
	for _, r := range list.Results {
		if excludedTypes[r.Name] {
			continue
		}
		names = append(names, r.Name)
	}
	return names, nil
}

// Search prefix-matches query against the name catalog. Queries shorter
// than MinSearchLength return no suggestions and do not load the catalog.
func (s *Service) Search(ctx context.Context, query string) ([]Suggestion, error) {
	if len(query) < MinSearchLength {
		return []Suggestion{}, nil
	}
	q := strings.ToLower(strings.TrimSpace(query))

	catalog, err := s.AllNames(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, MaxSuggestions)
	for _, r := range catalog {
		if !strings.HasPrefix(r.Name, q) {
			continue
		}
		suggestions = append(suggestions, Suggestion{ID: IDFromURL(r.URL), Name: r.Name})
		if len(suggestions) == MaxSuggestions {
			break
		}
	}
	return suggestions, nil
}

// normalizeKey lower-cases names; PokeAPI lookups are case-sensitive.
func normalizeKey(idOrName string) string {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	if id, err := strconv.Atoi(key); err == nil {
		return strconv.Itoa(id)
	}
	return key
}

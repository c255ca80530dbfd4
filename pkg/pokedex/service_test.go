package pokedex

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Sternrassler/pokedex-client/internal/testutil"
	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/pokeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cfg Config) (*Service, *testutil.MockPokeAPI) {
	t.Helper()

	mock := testutil.NewMockPokeAPI()
	t.Cleanup(mock.Close)

	ccfg := client.DefaultConfig(nil, "PokedexTest/1.0")
	ccfg.BaseURL = mock.BaseURL()
	c, err := client.New(ccfg)
	require.NoError(t, err)

	return NewService(pokeapi.NewResources(c), cfg), mock
}

func servePokemon(mock *testutil.MockPokeAPI, id int, name string, types ...string) {
	mock.SetJSON(fmt.Sprintf("/pokemon/%d/", id), testutil.PokemonJSON(mock.BaseURL(), id, name, types...))
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService(nil, Config{})

	assert.Equal(t, 24, s.cfg.PageSize)
	assert.Equal(t, 100, s.cfg.TypeMemberLimit)
	assert.Equal(t, 8, s.cfg.Batch.MaxConcurrency)
}

func TestService_ListPage(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	base := mock.BaseURL()

	mock.SetHandler("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "24", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		w.Write([]byte(testutil.ResourceListJSON(base, "pokemon", 1302, true,
			testutil.Ref{ID: 1, Name: "bulbasaur"},
			testutil.Ref{ID: 2, Name: "ivysaur"},
			testutil.Ref{ID: 3, Name: "venusaur"},
		)))
	})
	servePokemon(mock, 1, "bulbasaur", "grass", "poison")
	// ivysaur is missing upstream and must be dropped silently
	servePokemon(mock, 3, "venusaur", "grass", "poison")

	page, err := s.ListPage(context.Background(), 0, 0)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "bulbasaur", page.Items[0].Name)
	assert.Equal(t, "venusaur", page.Items[1].Name)
	assert.Equal(t, 1302, page.Meta.Total)
	require.NotNil(t, page.Meta.NextOffset)
	assert.Equal(t, 24, *page.Meta.NextOffset)
}

func TestService_ListPage_LastPage(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	base := mock.BaseURL()

	mock.SetJSON("/pokemon", testutil.ResourceListJSON(base, "pokemon", 1, false, testutil.Ref{ID: 1, Name: "bulbasaur"}))
	servePokemon(mock, 1, "bulbasaur", "grass")

	page, err := s.ListPage(context.Background(), 1296, 24)
	require.NoError(t, err)

	assert.Len(t, page.Items, 1)
	assert.Nil(t, page.Meta.NextOffset)
}

func TestService_ListPage_ListFailurePropagates(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	mock.SetResponse("/pokemon", testutil.NewServerErrorResponse())

	_, err := s.ListPage(context.Background(), 0, 24)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, client.StatusCode(err))
}

func TestService_ListPage_NegativeOffset(t *testing.T) {
	s, _ := newTestService(t, DefaultConfig())

	_, err := s.ListPage(context.Background(), -1, 24)
	assert.Error(t, err)
}

func TestService_ListByType_CapsMembers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TypeMemberLimit = 2
	s, mock := newTestService(t, cfg)

	mock.SetJSON("/type/fire", testutil.TypeJSON(mock.BaseURL(), 10, "fire",
		testutil.Ref{ID: 4, Name: "charmander"},
		testutil.Ref{ID: 5, Name: "charmeleon"},
		testutil.Ref{ID: 6, Name: "charizard"},
	))
	servePokemon(mock, 4, "charmander", "fire")
	servePokemon(mock, 5, "charmeleon", "fire")
	servePokemon(mock, 6, "charizard", "fire", "flying")

	items, err := s.ListByType(context.Background(), "fire")
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "charmander", items[0].Name)
	assert.Equal(t, "charmeleon", items[1].Name)
	assert.Equal(t, 0, mock.PathCount("/pokemon/6/"))
}

func TestService_ListByType_UnknownType(t *testing.T) {
	s, _ := newTestService(t, DefaultConfig())

	_, err := s.ListByType(context.Background(), "cosmic")
	assert.True(t, client.IsNotFound(err))
}

func TestService_Detail(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	mock.SetJSON("/pokemon/pikachu", testutil.PokemonJSON(mock.BaseURL(), 25, "pikachu", "electric"))

	d, err := s.Detail(context.Background(), " Pikachu ")
	require.NoError(t, err)

	assert.Equal(t, 25, d.ID)
	assert.Equal(t, "Overgrow", d.Abilities[0].DisplayName)
}

func TestService_Detail_NumericKey(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	mock.SetJSON("/pokemon/25", testutil.PokemonJSON(mock.BaseURL(), 25, "pikachu", "electric"))

	d, err := s.Detail(context.Background(), "025")
	require.NoError(t, err)
	assert.Equal(t, "pikachu", d.Name)
}

func TestService_SpeciesAndEvolution(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	mock.SetJSON("/pokemon-species/1", testutil.SpeciesJSON(mock.BaseURL(), 1, "bulbasaur", 1))
	mock.SetJSON("/evolution-chain/1", testutil.EvolutionChainJSON(mock.BaseURL(), 1))

	sp, err := s.Species(context.Background(), "1", "fr-CA")
	require.NoError(t, err)
	assert.Equal(t, "Pokémon Graine", sp.Genus)

	evo, err := s.EvolutionChainForSpecies(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur"}, evo.SpeciesNames())
}

func TestService_Profile(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	mock.SetJSON("/pokemon/1", testutil.PokemonJSON(mock.BaseURL(), 1, "bulbasaur", "grass", "poison"))
	mock.SetJSON("/pokemon-species/1", testutil.SpeciesJSON(mock.BaseURL(), 1, "bulbasaur", 1))
	mock.SetJSON("/evolution-chain/1", testutil.EvolutionChainJSON(mock.BaseURL(), 1))

	p, err := s.Profile(context.Background(), "1", "en")
	require.NoError(t, err)

	assert.Equal(t, "bulbasaur", p.Detail.Name)
	assert.Equal(t, "Seed Pokémon", p.Species.Genus)
	require.NotNil(t, p.Evolution)
	assert.Equal(t, "bulbasaur", p.Evolution.SpeciesName)
}

func TestService_Profile_SpeciesMissing(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	mock.SetJSON("/pokemon/1", testutil.PokemonJSON(mock.BaseURL(), 1, "bulbasaur", "grass"))

	_, err := s.Profile(context.Background(), "1", "en")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
	assert.Equal(t, 0, mock.PathCount("/evolution-chain/1"))
}

func TestService_Types(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	mock.SetJSON("/type", testutil.ResourceListJSON(mock.BaseURL(), "type", 4, false,
		testutil.Ref{ID: 1, Name: "normal"},
		testutil.Ref{ID: 10, Name: "fire"},
		testutil.Ref{ID: 10001, Name: "unknown"},
		testutil.Ref{ID: 10002, Name: "shadow"},
	))

	types, err := s.Types(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"normal", "fire"}, types)
}

func serveCatalog(mock *testutil.MockPokeAPI, names ...string) {
	refs := make([]testutil.Ref, 0, len(names))
	for i, n := range names {
		refs = append(refs, testutil.Ref{ID: i + 1, Name: n})
	}
	mock.SetJSON("/pokemon", testutil.ResourceListJSON(mock.BaseURL(), "pokemon", len(refs), false, refs...))
}

func TestService_Search(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	serveCatalog(mock, "bulbasaur", "pikachu", "raichu", "pichu", "pidgey")

	tests := []struct {
		query string
		want  []Suggestion
	}{
		{"p", []Suggestion{}},
		{"", []Suggestion{}},
		{"pi", []Suggestion{{ID: 2, Name: "pikachu"}, {ID: 4, Name: "pichu"}, {ID: 5, Name: "pidgey"}}},
		{" PIC ", []Suggestion{{ID: 4, Name: "pichu"}}},
		{"zz", []Suggestion{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := s.Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 1, mock.PathCount("/pokemon"), "catalog is loaded once")
}

func TestService_Search_ShortQuerySkipsCatalog(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())

	got, err := s.Search(context.Background(), "b")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, mock.RequestCount())
}

func TestService_Search_CapsSuggestions(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	names := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		names = append(names, fmt.Sprintf("mon-%02d", i))
	}
	serveCatalog(mock, names...)

	got, err := s.Search(context.Background(), "mon")
	require.NoError(t, err)
	require.Len(t, got, MaxSuggestions)
	assert.Equal(t, "mon-00", got[0].Name)
	assert.Equal(t, "mon-07", got[7].Name)
}

func TestService_AllNames_CancelledCallerDoesNotFailOthers(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	resp := testutil.NewHealthyResponse(testutil.ResourceListJSON(mock.BaseURL(), "pokemon", 2, false,
		testutil.Ref{ID: 1, Name: "bulbasaur"},
		testutil.Ref{ID: 2, Name: "ivysaur"},
	))
	resp.Delay = 200 * time.Millisecond
	mock.SetResponse("/pokemon", resp)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := s.AllNames(ctx)
		firstErr <- err
	}()

	time.Sleep(10 * time.Millisecond)
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	names, err := s.AllNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 2)

	assert.ErrorIs(t, <-firstErr, context.Canceled)
	assert.Equal(t, 1, mock.PathCount("/pokemon"))

	// The catalog stays cached for later callers.
	names, err = s.AllNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 2)
	assert.Equal(t, 1, mock.PathCount("/pokemon"))
}

func TestService_AllNames_ConcurrentCallsShareFetch(t *testing.T) {
	s, mock := newTestService(t, DefaultConfig())
	serveCatalog(mock, "bulbasaur", "ivysaur")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names, err := s.AllNames(context.Background())
			assert.NoError(t, err)
			assert.Len(t, names, 2)
		}()
	}
	wg.Wait()

	names, err := s.AllNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 2)
	assert.LessOrEqual(t, mock.PathCount("/pokemon"), 10)
	before := mock.PathCount("/pokemon")
	_, _ = s.AllNames(context.Background())
	assert.Equal(t, before, mock.PathCount("/pokemon"))
}

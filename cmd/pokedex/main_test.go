package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sternrassler/pokedex-client/internal/testutil"
	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/compare"
	"github.com/Sternrassler/pokedex-client/pkg/favorites"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

type testConfig struct {
	backend   string
	redisAddr string
}

func writeConfig(t *testing.T, mock *testutil.MockPokeAPI, tc testConfig) string {
	t.Helper()
	if tc.backend == "" {
		tc.backend = "file"
	}

	dir := t.TempDir()
	content := fmt.Sprintf(`
api:
  base_url: %q
  user_agent: "pokedex-cli-test/1.0"
redis:
  addr: %q
favorites:
  backend: %q
  path: %q
log:
  level: "error"
`, mock.BaseURL(), tc.redisAddr, tc.backend, filepath.Join(dir, "data"))

	path := filepath.Join(dir, "pokedex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runApp(t *testing.T, configPath string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(&out, &errOut)
	err = app.Run(append([]string{"pokedex", "--config", configPath}, args...))
	return out.String(), errOut.String(), err
}

func serveBulbasaurLine(mock *testutil.MockPokeAPI) {
	base := mock.BaseURL()
	mock.SetJSON("/pokemon/bulbasaur", testutil.PokemonJSON(base, 1, "bulbasaur", "grass", "poison"))
	mock.SetJSON("/pokemon-species/bulbasaur", testutil.SpeciesJSON(base, 1, "bulbasaur", 1))
	mock.SetJSON("/evolution-chain/1", testutil.EvolutionChainJSON(base, 1))
}

func newMock(t *testing.T) *testutil.MockPokeAPI {
	t.Helper()
	mock := testutil.NewMockPokeAPI()
	t.Cleanup(mock.Close)
	return mock
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    outputFormat
		wantErr bool
	}{
		{"", formatText, false},
		{"text", formatText, false},
		{"JSON", formatJSON, false},
		{"yaml", formatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShow_JSON(t *testing.T) {
	mock := newMock(t)
	serveBulbasaurLine(mock)
	cfg := writeConfig(t, mock, testConfig{})

	out, _, err := runApp(t, cfg, "--output", "json", "show", "Bulbasaur")
	require.NoError(t, err)

	var profile pokedex.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	require.NotNil(t, profile.Detail)
	require.NotNil(t, profile.Species)
	require.NotNil(t, profile.Evolution)

	assert.Equal(t, 1, profile.Detail.ID)
	assert.Equal(t, "bulbasaur", profile.Detail.Name)
	assert.Equal(t, "Seed Pokémon", profile.Species.Genus)
	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur"}, profile.Evolution.SpeciesNames())
}

func TestShow_Text(t *testing.T) {
	mock := newMock(t)
	serveBulbasaurLine(mock)
	cfg := writeConfig(t, mock, testConfig{})

	out, _, err := runApp(t, cfg, "show", "bulbasaur")
	require.NoError(t, err)

	assert.Contains(t, out, "#001 Bulbasaur")
	assert.Contains(t, out, "Grass/Poison")
	assert.Contains(t, out, "Height:  0.7 m")
	assert.Contains(t, out, "Chlorophyll (hidden)")
	assert.Contains(t, out, "Evolution:")
	assert.Contains(t, out, "  ivysaur (Level Up, Lv. 16)")
}

func TestShow_Locale(t *testing.T) {
	mock := newMock(t)
	serveBulbasaurLine(mock)
	cfg := writeConfig(t, mock, testConfig{})

	out, _, err := runApp(t, cfg, "--locale", "fr", "--output", "json", "species", "bulbasaur")
	require.NoError(t, err)

	var sp pokedex.Species
	require.NoError(t, json.Unmarshal([]byte(out), &sp))
	assert.Equal(t, "Pokémon Graine", sp.Genus)
}

func TestShow_NotFound(t *testing.T) {
	mock := newMock(t)
	cfg := writeConfig(t, mock, testConfig{})

	_, _, err := runApp(t, cfg, "show", "missingno")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err), "error = %v", err)
}

func TestShow_MissingArgument(t *testing.T) {
	mock := newMock(t)
	cfg := writeConfig(t, mock, testConfig{})

	_, _, err := runApp(t, cfg, "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing <idOrName>")
	assert.Zero(t, mock.RequestCount())
}

func TestUnknownOutputFormat(t *testing.T) {
	mock := newMock(t)
	cfg := writeConfig(t, mock, testConfig{})

	_, _, err := runApp(t, cfg, "--output", "xml", "types")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestList_YAML(t *testing.T) {
	mock := newMock(t)
	base := mock.BaseURL()
	mock.SetJSON("/pokemon", testutil.ResourceListJSON(base, "pokemon", 1, false, testutil.Ref{ID: 1, Name: "bulbasaur"}))
	mock.SetJSON("/pokemon/1/", testutil.PokemonJSON(base, 1, "bulbasaur", "grass", "poison"))
	cfg := writeConfig(t, mock, testConfig{})

	out, _, err := runApp(t, cfg, "--output", "yaml", "list", "--limit", "5")
	require.NoError(t, err)

	var page pokedex.Page
	require.NoError(t, yaml.Unmarshal([]byte(out), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "bulbasaur", page.Items[0].Name)
	assert.Equal(t, 1, page.Meta.Total)
	assert.Nil(t, page.Meta.NextOffset)
}

func TestTypes(t *testing.T) {
	mock := newMock(t)
	base := mock.BaseURL()
	mock.SetJSON("/type", testutil.ResourceListJSON(base, "type", 3, false,
		testutil.Ref{ID: 1, Name: "normal"},
		testutil.Ref{ID: 10001, Name: "unknown"},
		testutil.Ref{ID: 10002, Name: "shadow"},
	))
	cfg := writeConfig(t, mock, testConfig{})

	out, stderr, err := runApp(t, cfg, "--metrics", "types")
	require.NoError(t, err)

	assert.Equal(t, "Normal\n", out)
	assert.Contains(t, stderr, "pokeapi_requests_total")
}

func TestSearch(t *testing.T) {
	mock := newMock(t)
	base := mock.BaseURL()
	mock.SetJSON("/pokemon", testutil.ResourceListJSON(base, "pokemon", 3, false,
		testutil.Ref{ID: 1, Name: "bulbasaur"},
		testutil.Ref{ID: 2, Name: "ivysaur"},
		testutil.Ref{ID: 25, Name: "pikachu"},
	))
	cfg := writeConfig(t, mock, testConfig{})

	out, _, err := runApp(t, cfg, "--output", "json", "search", "PI")
	require.NoError(t, err)

	var got []pokedex.Suggestion
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []pokedex.Suggestion{{ID: 25, Name: "pikachu"}}, got)
}

func TestCompare(t *testing.T) {
	mock := newMock(t)
	base := mock.BaseURL()
	mock.SetJSON("/pokemon/bulbasaur", testutil.PokemonJSON(base, 1, "bulbasaur", "grass"))
	mock.SetJSON("/pokemon/25", testutil.PokemonJSON(base, 25, "pikachu", "electric"))
	cfg := writeConfig(t, mock, testConfig{})

	out, _, err := runApp(t, cfg, "--output", "json", "compare", "bulbasaur", "25")
	require.NoError(t, err)

	var result compare.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "bulbasaur", result.NameA)
	assert.Equal(t, "pikachu", result.NameB)
	assert.Len(t, result.Rows, 6)
	assert.Equal(t, result.TotalA, result.TotalB)
	assert.Equal(t, compare.WinnerTie, result.TotalWinner)
}

func TestCompare_MissingSecond(t *testing.T) {
	mock := newMock(t)
	cfg := writeConfig(t, mock, testConfig{})

	_, _, err := runApp(t, cfg, "compare", "bulbasaur")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing <b>")
}

func listFavorites(t *testing.T, cfg string) []favorites.Item {
	t.Helper()
	out, _, err := runApp(t, cfg, "--output", "json", "favorites", "list")
	require.NoError(t, err)

	var items []favorites.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	return items
}

func exerciseFavorites(t *testing.T, cfg string) {
	t.Helper()

	assert.Empty(t, listFavorites(t, cfg))

	_, _, err := runApp(t, cfg, "favorites", "add", "bulbasaur")
	require.NoError(t, err)
	_, _, err = runApp(t, cfg, "favorites", "add", "bulbasaur")
	require.NoError(t, err)

	items := listFavorites(t, cfg)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, "bulbasaur", items[0].Name)
	assert.True(t, strings.HasPrefix(items[0].Sprite, "https://"), "sprite = %q", items[0].Sprite)

	out, _, err := runApp(t, cfg, "favorites", "toggle", "bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, "removed Bulbasaur\n", out)
	assert.Empty(t, listFavorites(t, cfg))

	out, _, err = runApp(t, cfg, "favorites", "toggle", "bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, "added Bulbasaur\n", out)

	_, _, err = runApp(t, cfg, "favorites", "remove", "Bulbasaur")
	require.NoError(t, err)
	assert.Empty(t, listFavorites(t, cfg))

	_, _, err = runApp(t, cfg, "favorites", "remove", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a favorite")
}

func TestFavorites_FileBackend(t *testing.T) {
	mock := newMock(t)
	serveBulbasaurLine(mock)
	exerciseFavorites(t, writeConfig(t, mock, testConfig{backend: "file"}))
}

func TestFavorites_SQLiteBackend(t *testing.T) {
	mock := newMock(t)
	serveBulbasaurLine(mock)
	exerciseFavorites(t, writeConfig(t, mock, testConfig{backend: "sqlite"}))
}

func TestFavorites_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	mock := newMock(t)
	serveBulbasaurLine(mock)
	cfg := writeConfig(t, mock, testConfig{backend: "redis", redisAddr: mr.Addr()})

	exerciseFavorites(t, cfg)
	assert.True(t, mr.Exists(favorites.StorageKey))
}

func TestRedisCacheSharedAcrossRuns(t *testing.T) {
	mr := miniredis.RunT(t)
	mock := newMock(t)
	serveBulbasaurLine(mock)
	cfg := writeConfig(t, mock, testConfig{redisAddr: mr.Addr()})

	_, _, err := runApp(t, cfg, "species", "bulbasaur")
	require.NoError(t, err)
	_, _, err = runApp(t, cfg, "species", "bulbasaur")
	require.NoError(t, err)

	assert.Equal(t, 1, mock.PathCount("/pokemon-species/bulbasaur"))
}

func TestRedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	mock := newMock(t)
	cfg := writeConfig(t, mock, testConfig{redisAddr: addr})

	_, _, err := runApp(t, cfg, "types")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

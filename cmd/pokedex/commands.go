package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/Sternrassler/pokedex-client/pkg/compare"
	"github.com/Sternrassler/pokedex-client/pkg/favorites"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

// arg returns the positional argument at i or a usage error.
func arg(c *cli.Context, i int, name string) (string, error) {
	v := strings.TrimSpace(c.Args().Get(i))
	if v == "" {
		return "", fmt.Errorf("%s: missing <%s> argument", c.Command.Name, name)
	}
	return v, nil
}

func (e *env) list(c *cli.Context) error {
	svc, err := e.pokedexService(c.Context)
	if err != nil {
		return err
	}

	page, err := svc.ListPage(c.Context, c.Int("offset"), c.Int("limit"))
	if err != nil {
		return err
	}
	return e.out.print(page, func(w io.Writer) { writePage(w, page) })
}

func (e *env) listByType(c *cli.Context) error {
	name, err := arg(c, 0, "name")
	if err != nil {
		return err
	}
	svc, err := e.pokedexService(c.Context)
	if err != nil {
		return err
	}

	items, err := svc.ListByType(c.Context, strings.ToLower(name))
	if err != nil {
		return err
	}
	return e.out.print(items, func(w io.Writer) { writeListItems(w, items) })
}

func (e *env) types(c *cli.Context) error {
	svc, err := e.pokedexService(c.Context)
	if err != nil {
		return err
	}

	names, err := svc.Types(c.Context)
	if err != nil {
		return err
	}
	return e.out.print(names, func(w io.Writer) {
		for _, n := range names {
			fmt.Fprintln(w, pokedex.Capitalize(n))
		}
	})
}

func (e *env) show(c *cli.Context) error {
	key, err := arg(c, 0, "idOrName")
	if err != nil {
		return err
	}
	svc, err := e.pokedexService(c.Context)
	if err != nil {
		return err
	}

	profile, err := svc.Profile(c.Context, key, e.locale)
	if err != nil {
		return err
	}
	return e.out.print(profile, func(w io.Writer) { writeProfile(w, profile) })
}

func (e *env) species(c *cli.Context) error {
	key, err := arg(c, 0, "idOrName")
	if err != nil {
		return err
	}
	svc, err := e.pokedexService(c.Context)
	if err != nil {
		return err
	}

	sp, err := svc.Species(c.Context, key, e.locale)
	if err != nil {
		return err
	}
	return e.out.print(sp, func(w io.Writer) { writeSpecies(w, sp) })
}

func (e *env) evolution(c *cli.Context) error {
	key, err := arg(c, 0, "idOrName")
	if err != nil {
		return err
	}
	svc, err := e.pokedexService(c.Context)
	if err != nil {
		return err
	}

	chain, err := svc.EvolutionChainForSpecies(c.Context, key)
	if err != nil {
		return err
	}
	return e.out.print(chain, func(w io.Writer) { fmt.Fprintln(w, chain.String()) })
}

func (e *env) search(c *cli.Context) error {
	query, err := arg(c, 0, "query")
	if err != nil {
		return err
	}
	svc, err := e.pokedexService(c.Context)
	if err != nil {
		return err
	}

	suggestions, err := svc.Search(c.Context, query)
	if err != nil {
		return err
	}
	return e.out.print(suggestions, func(w io.Writer) { writeSuggestions(w, suggestions) })
}

func (e *env) compare(c *cli.Context) error {
	keyA, err := arg(c, 0, "a")
	if err != nil {
		return err
	}
	keyB, err := arg(c, 1, "b")
	if err != nil {
		return err
	}
	svc, err := e.pokedexService(c.Context)
	if err != nil {
		return err
	}

	sel := compare.NewSelection()
	details := make(map[compare.SlotName]*pokedex.Detail, 2)
	for _, pick := range []struct {
		slot compare.SlotName
		key  string
	}{{compare.SlotA, keyA}, {compare.SlotB, keyB}} {
		slot := pick.slot
		d, err := svc.Detail(c.Context, pick.key)
		if err != nil {
			return fmt.Errorf("slot %s: %w", slot, err)
		}
		if err := sel.Set(slot, compare.NewSlot(d.ID, d.Name)); err != nil {
			return err
		}
		details[slot] = d
	}
	if !sel.Ready() {
		return fmt.Errorf("compare: both slots must be filled")
	}

	result := compare.Table(*details[compare.SlotA], *details[compare.SlotB])
	return e.out.print(result, func(w io.Writer) { writeComparison(w, result) })
}

func (e *env) favoritesList(c *cli.Context) error {
	store, err := e.favoritesStore(c.Context)
	if err != nil {
		return err
	}

	items := store.List()
	return e.out.print(items, func(w io.Writer) { writeFavorites(w, items) })
}

func (e *env) favoritesAdd(c *cli.Context) error {
	item, store, err := e.resolveFavorite(c)
	if err != nil {
		return err
	}
	if err := store.Add(c.Context, item); err != nil {
		return err
	}
	return e.out.print(item, func(w io.Writer) {
		fmt.Fprintf(w, "added %s\n", pokedex.FormatAPIName(item.Name))
	})
}

func (e *env) favoritesRemove(c *cli.Context) error {
	key, err := arg(c, 0, "idOrName")
	if err != nil {
		return err
	}
	store, err := e.favoritesStore(c.Context)
	if err != nil {
		return err
	}

	id, ok := favoriteID(store, key)
	if !ok {
		return fmt.Errorf("%s is not a favorite", key)
	}
	if err := store.Remove(c.Context, id); err != nil {
		return err
	}
	remaining := store.List()
	return e.out.print(remaining, func(w io.Writer) {
		fmt.Fprintf(w, "removed %s\n", pokedex.FormatDexNumber(id))
	})
}

func (e *env) favoritesToggle(c *cli.Context) error {
	item, store, err := e.resolveFavorite(c)
	if err != nil {
		return err
	}
	added, err := store.Toggle(c.Context, item)
	if err != nil {
		return err
	}

	result := struct {
		Item  favorites.Item `json:"item" yaml:"item"`
		Added bool           `json:"added" yaml:"added"`
	}{item, added}
	return e.out.print(result, func(w io.Writer) {
		verb := "removed"
		if added {
			verb = "added"
		}
		fmt.Fprintf(w, "%s %s\n", verb, pokedex.FormatAPIName(item.Name))
	})
}

// resolveFavorite looks the argument up upstream and builds the favorite
// snapshot from its list view.
func (e *env) resolveFavorite(c *cli.Context) (favorites.Item, *favorites.Store, error) {
	key, err := arg(c, 0, "idOrName")
	if err != nil {
		return favorites.Item{}, nil, err
	}
	store, err := e.favoritesStore(c.Context)
	if err != nil {
		return favorites.Item{}, nil, err
	}
	svc, err := e.pokedexService(c.Context)
	if err != nil {
		return favorites.Item{}, nil, err
	}

	d, err := svc.Detail(c.Context, key)
	if err != nil {
		return favorites.Item{}, nil, err
	}
	return favorites.FromListItem(d.ListItem), store, nil
}

// favoriteID matches key against stored favorites by id or name, so removal
// works without a network round trip.
func favoriteID(store *favorites.Store, key string) (int, bool) {
	if id, err := strconv.Atoi(key); err == nil {
		return id, store.IsFavorite(id)
	}
	name := strings.ToLower(key)
	for _, it := range store.List() {
		if it.Name == name {
			return it.ID, true
		}
	}
	return 0, false
}


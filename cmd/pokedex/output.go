package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sternrassler/pokedex-client/pkg/compare"
	"github.com/Sternrassler/pokedex-client/pkg/favorites"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	case "":
		return formatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or yaml)", s)
	}
}

// printer renders command results in the selected format.
type printer struct {
	w      io.Writer
	format outputFormat
}

// print writes v as JSON or YAML, or calls text for the text format.
func (p printer) print(v any, text func(w io.Writer)) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(p.w)
		return nil
	}
}

func typeNames(types []pokedex.PokemonType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = pokedex.Capitalize(t.Name)
	}
	return strings.Join(names, "/")
}

func writeListItems(w io.Writer, items []pokedex.ListItem) {
	for _, it := range items {
		fmt.Fprintf(w, "%s  %-16s %s\n", pokedex.FormatDexNumber(it.ID), pokedex.FormatAPIName(it.Name), typeNames(it.Types))
	}
}

func writePage(w io.Writer, page *pokedex.Page) {
	writeListItems(w, page.Items)
	if page.Meta.NextOffset != nil {
		fmt.Fprintf(w, "\n%d total, next page at --offset %d\n", page.Meta.Total, *page.Meta.NextOffset)
	} else {
		fmt.Fprintf(w, "\n%d total, last page\n", page.Meta.Total)
	}
}

func writeDetail(w io.Writer, d *pokedex.Detail) {
	fmt.Fprintf(w, "%s %s\n", pokedex.FormatDexNumber(d.ID), pokedex.FormatAPIName(d.Name))
	fmt.Fprintf(w, "Types:   %s\n", typeNames(d.Types))
	fmt.Fprintf(w, "Height:  %s\n", pokedex.FormatHeight(d.Height))
	fmt.Fprintf(w, "Weight:  %s\n", pokedex.FormatWeight(d.Weight))
	if d.BaseExperience != nil {
		fmt.Fprintf(w, "Base XP: %d\n", *d.BaseExperience)
	}

	fmt.Fprintln(w, "Stats:")
	for _, s := range d.Stats {
		bar := strings.Repeat("#", int(pokedex.StatPercent(s.BaseStat)/5))
		fmt.Fprintf(w, "  %-8s %3d %s\n", s.DisplayName, s.BaseStat, bar)
	}

	fmt.Fprintln(w, "Abilities:")
	for _, a := range d.Abilities {
		if a.IsHidden {
			fmt.Fprintf(w, "  %s (hidden)\n", a.DisplayName)
			continue
		}
		fmt.Fprintf(w, "  %s\n", a.DisplayName)
	}
	fmt.Fprintf(w, "Moves:   %d\n", len(d.Moves))
}

func writeSpecies(w io.Writer, s *pokedex.Species) {
	fmt.Fprintf(w, "%s, the %s\n", pokedex.FormatAPIName(s.Name), s.Genus)
	if s.FlavorText != "" {
		fmt.Fprintf(w, "%s\n", s.FlavorText)
	}
	fmt.Fprintf(w, "Generation:   %s\n", pokedex.FormatGeneration(s.Generation))
	fmt.Fprintf(w, "Growth rate:  %s\n", pokedex.FormatAPIName(s.GrowthRate))
	if s.Habitat != nil {
		fmt.Fprintf(w, "Habitat:      %s\n", pokedex.FormatAPIName(*s.Habitat))
	}
	fmt.Fprintf(w, "Capture rate: %d\n", s.CaptureRate)
	if len(s.EggGroups) > 0 {
		groups := make([]string, len(s.EggGroups))
		for i, g := range s.EggGroups {
			groups[i] = pokedex.FormatAPIName(g)
		}
		fmt.Fprintf(w, "Egg groups:   %s\n", strings.Join(groups, ", "))
	}
	switch {
	case s.IsLegendary:
		fmt.Fprintln(w, "Legendary")
	case s.IsMythical:
		fmt.Fprintln(w, "Mythical")
	case s.IsBaby:
		fmt.Fprintln(w, "Baby")
	}
}

func writeProfile(w io.Writer, p *pokedex.Profile) {
	writeDetail(w, p.Detail)
	fmt.Fprintln(w)
	writeSpecies(w, p.Species)
	if p.Evolution != nil {
		fmt.Fprintln(w, "\nEvolution:")
		fmt.Fprintln(w, p.Evolution.String())
	}
}

func writeSuggestions(w io.Writer, suggestions []pokedex.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "no matches")
		return
	}
	for _, s := range suggestions {
		fmt.Fprintf(w, "%s  %s\n", pokedex.FormatDexNumber(s.ID), pokedex.FormatAPIName(s.Name))
	}
}

func writeComparison(w io.Writer, r compare.Result) {
	fmt.Fprintf(w, "%-10s %12s %12s\n", "", pokedex.FormatAPIName(r.NameA), pokedex.FormatAPIName(r.NameB))
	for _, row := range r.Rows {
		fmt.Fprintf(w, "%-10s %12d %12d  %s\n", row.Label, row.A, row.B, row.Winner)
	}
	fmt.Fprintf(w, "%-10s %12d %12d  %s\n", "Total", r.TotalA, r.TotalB, r.TotalWinner)
}

func writeFavorites(w io.Writer, items []favorites.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no favorites")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "%s  %-16s %s\n", pokedex.FormatDexNumber(it.ID), pokedex.FormatAPIName(it.Name), typeNames(it.Types))
	}
}

package pokedex

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Sternrassler/pokedex-client/pkg/pokeapi"
)

// UnknownLearnMethod marks a move without any version-group record.
const UnknownLearnMethod = "unknown"

// NormalizeListItem maps a raw Pokemon to its card model. Types are
// ordered by slot.
func NormalizeListItem(raw *pokeapi.Pokemon) ListItem {
	types := slices.Clone(raw.Types)
	slices.SortStableFunc(types, func(a, b pokeapi.TypeSlot) int { return a.Slot - b.Slot })

	out := make([]PokemonType, 0, len(types))
	for _, t := range types {
		out = append(out, PokemonType{Name: t.Type.Name, Slot: t.Slot})
	}

	return ListItem{
		ID:      raw.ID,
		Name:    raw.Name,
		Types:   out,
		Sprites: normalizeSprites(raw),
		URL:     CanonicalPokemonURL(raw.ID),
	}
}

// NormalizeDetail maps a raw Pokemon to the full detail model.
// Stats keep upstream order, abilities are ordered by slot, and each move
// keeps only its first version-group record.
func NormalizeDetail(raw *pokeapi.Pokemon) Detail {
	stats := make([]Stat, 0, len(raw.Stats))
	for _, s := range raw.Stats {
		stats = append(stats, Stat{
			Name:        s.Stat.Name,
			DisplayName: StatDisplayName(s.Stat.Name),
			BaseStat:    s.BaseStat,
			Effort:      s.Effort,
		})
	}

	abilitySlots := slices.Clone(raw.Abilities)
	slices.SortStableFunc(abilitySlots, func(a, b pokeapi.AbilitySlot) int { return a.Slot - b.Slot })
	abilities := make([]Ability, 0, len(abilitySlots))
	for _, a := range abilitySlots {
		abilities = append(abilities, Ability{
			Name:        a.Ability.Name,
			DisplayName: FormatAPIName(a.Ability.Name),
			IsHidden:    a.IsHidden,
		})
	}

	moves := make([]Move, 0, len(raw.Moves))
	for _, m := range raw.Moves {
		moves = append(moves, normalizeMove(m))
	}

	return Detail{
		ListItem:       NormalizeListItem(raw),
		Height:         raw.Height,
		Weight:         raw.Weight,
		BaseExperience: raw.BaseExperience,
		Stats:          stats,
		Abilities:      abilities,
		Moves:          moves,
		SpeciesURL:     raw.Species.URL,
	}
}

func normalizeMove(m pokeapi.MoveEntry) Move {
	move := Move{
		Name:        m.Move.Name,
		DisplayName: FormatAPIName(m.Move.Name),
		LearnMethod: UnknownLearnMethod,
	}
	if len(m.VersionGroupDetails) > 0 {
		first := m.VersionGroupDetails[0]
		move.LearnMethod = first.MoveLearnMethod.Name
		move.LevelLearnedAt = first.LevelLearnedAt
	}
	return move
}

// NormalizeSpecies flattens a species record, picking flavor text and
// genus for locale independently.
func NormalizeSpecies(raw *pokeapi.Species, locale string) Species {
	var flavorText, genus string
	if entry, ok := pickLocalized(raw.FlavorTextEntries, locale, func(e pokeapi.FlavorTextEntry) pokeapi.NamedResource {
		return e.Language
	}); ok {
		flavorText = CleanFlavorText(entry.FlavorText)
	}
	if entry, ok := pickLocalized(raw.Genera, locale, func(e pokeapi.Genus) pokeapi.NamedResource {
		return e.Language
	}); ok {
		genus = entry.Genus
	}

	var habitat *string
	if raw.Habitat != nil {
		h := FormatAPIName(raw.Habitat.Name)
		habitat = &h
	}

	eggGroups := make([]string, 0, len(raw.EggGroups))
	for _, g := range raw.EggGroups {
		eggGroups = append(eggGroups, FormatAPIName(g.Name))
	}

	return Species{
		ID:               raw.ID,
		Name:             raw.Name,
		FlavorText:       flavorText,
		Genus:            genus,
		IsLegendary:      raw.IsLegendary,
		IsMythical:       raw.IsMythical,
		IsBaby:           raw.IsBaby,
		CaptureRate:      raw.CaptureRate,
		BaseHappiness:    raw.BaseHappiness,
		GrowthRate:       FormatAPIName(raw.GrowthRate.Name),
		Habitat:          habitat,
		Generation:       FormatGeneration(raw.Generation.Name),
		EggGroups:        eggGroups,
		EvolutionChainID: IDFromURL(raw.EvolutionChain.URL),
	}
}

// NormalizeEvolutionChain walks the chain tree from its root.
func NormalizeEvolutionChain(raw *pokeapi.EvolutionChain) EvolutionNode {
	return normalizeChainLink(&raw.Chain, true)
}

func normalizeChainLink(link *pokeapi.ChainLink, isRoot bool) EvolutionNode {
	node := EvolutionNode{
		SpeciesName: link.Species.Name,
		SpeciesID:   IDFromURL(link.Species.URL),
		EvolvesTo:   make([]EvolutionNode, 0, len(link.EvolvesTo)),
	}

	// Alternative unlock conditions collapse to the first one.
	if !isRoot && len(link.EvolutionDetails) > 0 {
		detail := link.EvolutionDetails[0]
		if detail.MinLevel != nil {
			level := *detail.MinLevel
			node.MinLevel = &level
		}
		node.TriggerName = detail.Trigger.Name
		switch {
		case detail.Item != nil:
			item := detail.Item.Name
			node.Item = &item
		case detail.HeldItem != nil:
			item := detail.HeldItem.Name
			node.Item = &item
		}
	}

	for i := range link.EvolvesTo {
		node.EvolvesTo = append(node.EvolvesTo, normalizeChainLink(&link.EvolvesTo[i], false))
	}
	return node
}

// SpeciesNames flattens the tree depth-first.
func (n EvolutionNode) SpeciesNames() []string {
	names := []string{n.SpeciesName}
	for _, child := range n.EvolvesTo {
		names = append(names, child.SpeciesNames()...)
	}
	return names
}

// String renders the tree one stage per line, children indented under
// their parent with the evolution condition in parentheses.
func (n EvolutionNode) String() string {
	var b strings.Builder
	writeEvolution(&b, n, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeEvolution(b *strings.Builder, n EvolutionNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.SpeciesName)
	if depth > 0 {
		var cond []string
		if n.TriggerName != "" {
			cond = append(cond, FormatAPIName(n.TriggerName))
		}
		if n.MinLevel != nil {
			cond = append(cond, "Lv. "+strconv.Itoa(*n.MinLevel))
		}
		if n.Item != nil {
			cond = append(cond, FormatAPIName(*n.Item))
		}
		if len(cond) > 0 {
			b.WriteString(" (" + strings.Join(cond, ", ") + ")")
		}
	}
	b.WriteString("\n")
	for _, child := range n.EvolvesTo {
		writeEvolution(b, child, depth+1)
	}
}

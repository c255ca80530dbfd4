package testutil

import (
	"encoding/json"
	"fmt"
)

// Ref names a resource in a list or type payload.
type Ref struct {
	ID   int
	Name string
}

type object = map[string]any

func named(baseURL, resource, name string, id int) object {
	return object{"name": name, "url": fmt.Sprintf("%s/%s/%d/", baseURL, resource, id)}
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal fixture: %v", err))
	}
	return string(data)
}

// PokemonJSON builds a /pokemon/{id} payload. Types are given in slot order.
// Abilities are emitted hidden-slot first so sorting by slot is observable;
// the first move carries two version-group records.
func PokemonJSON(baseURL string, id int, name string, types ...string) string {
	typeSlots := make([]object, 0, len(types))
	for i, t := range types {
		typeSlots = append(typeSlots, object{
			"slot": i + 1,
			"type": named(baseURL, "type", t, i+1),
		})
	}

	artwork := fmt.Sprintf("https://img.example/official/%d.png", id)
	front := fmt.Sprintf("https://img.example/front/%d.png", id)
	shiny := fmt.Sprintf("https://img.example/shiny/%d.png", id)

	return mustJSON(object{
		"id":              id,
		"name":            name,
		"base_experience": 64,
		"height":          7,
		"weight":          69,
		"is_default":      true,
		"order":           id,
		"abilities": []object{
			{"ability": named(baseURL, "ability", "chlorophyll", 34), "is_hidden": true, "slot": 3},
			{"ability": named(baseURL, "ability", "overgrow", 65), "is_hidden": false, "slot": 1},
		},
		"moves": []object{
			{
				"move": named(baseURL, "move", "razor-wind", 13),
				"version_group_details": []object{
					{"level_learned_at": 0, "move_learn_method": named(baseURL, "move-learn-method", "egg", 2), "version_group": named(baseURL, "version-group", "gold-silver", 3)},
					{"level_learned_at": 7, "move_learn_method": named(baseURL, "move-learn-method", "level-up", 1), "version_group": named(baseURL, "version-group", "red-blue", 1)},
				},
			},
			{
				"move":                  named(baseURL, "move", "vine-whip", 22),
				"version_group_details": []object{},
			},
		},
		"species": named(baseURL, "pokemon-species", name, id),
		"sprites": object{
			"front_default": front,
			"front_shiny":   shiny,
			"back_default":  nil,
			"back_shiny":    nil,
			"other": object{
				"official-artwork": object{"front_default": artwork, "front_shiny": nil},
				"home":             object{"front_default": nil, "front_shiny": nil},
			},
		},
		"stats": []object{
			{"base_stat": 45, "effort": 0, "stat": named(baseURL, "stat", "hp", 1)},
			{"base_stat": 49, "effort": 0, "stat": named(baseURL, "stat", "attack", 2)},
			{"base_stat": 49, "effort": 0, "stat": named(baseURL, "stat", "defense", 3)},
			{"base_stat": 65, "effort": 1, "stat": named(baseURL, "stat", "special-attack", 4)},
			{"base_stat": 65, "effort": 0, "stat": named(baseURL, "stat", "special-defense", 5)},
			{"base_stat": 45, "effort": 0, "stat": named(baseURL, "stat", "speed", 6)},
		},
		"types": typeSlots,
	})
}

// SpeciesJSON builds a /pokemon-species/{id} payload with English and
// French text entries. The English flavor text contains form feeds and
// line breaks as the real API does.
func SpeciesJSON(baseURL string, id int, name string, chainID int) string {
	return mustJSON(object{
		"id":             id,
		"name":           name,
		"base_happiness": 50,
		"capture_rate":   45,
		"color":          named(baseURL, "pokemon-color", "green", 5),
		"flavor_text_entries": []object{
			{"flavor_text": "A strange seed was\nplanted on its\fback at birth.", "language": named(baseURL, "language", "en", 9), "version": named(baseURL, "version", "red", 1)},
			{"flavor_text": "Une graine étrange\nest plantée sur son dos.", "language": named(baseURL, "language", "fr", 5), "version": named(baseURL, "version", "x", 23)},
		},
		"gender_rate": 1,
		"genera": []object{
			{"genus": "Seed Pokémon", "language": named(baseURL, "language", "en", 9)},
			{"genus": "Pokémon Graine", "language": named(baseURL, "language", "fr", 5)},
		},
		"generation":             named(baseURL, "generation", "generation-i", 1),
		"growth_rate":            named(baseURL, "growth-rate", "medium-slow", 4),
		"habitat":                named(baseURL, "pokemon-habitat", "grassland", 3),
		"has_gender_differences": false,
		"is_legendary":           false,
		"is_mythical":            false,
		"is_baby":                false,
		"evolution_chain":        object{"url": fmt.Sprintf("%s/evolution-chain/%d/", baseURL, chainID)},
		"egg_groups": []object{
			named(baseURL, "egg-group", "monster", 1),
			named(baseURL, "egg-group", "plant", 7),
		},
	})
}

// ResourceListJSON builds a paginated list payload for resource.
func ResourceListJSON(baseURL, resource string, count int, hasNext bool, refs ...Ref) string {
	results := make([]object, 0, len(refs))
	for _, r := range refs {
		results = append(results, named(baseURL, resource, r.Name, r.ID))
	}

	var next any
	if hasNext {
		next = fmt.Sprintf("%s/%s?offset=%d&limit=%d", baseURL, resource, len(refs), len(refs))
	}

	return mustJSON(object{
		"count":    count,
		"next":     next,
		"previous": nil,
		"results":  results,
	})
}

// TypeJSON builds a /type/{name} payload listing members.
func TypeJSON(baseURL string, id int, name string, members ...Ref) string {
	pokemon := make([]object, 0, len(members))
	for _, m := range members {
		pokemon = append(pokemon, object{"pokemon": named(baseURL, "pokemon", m.Name, m.ID), "slot": 1})
	}

	empty := []object{}
	return mustJSON(object{
		"id":   id,
		"name": name,
		"damage_relations": object{
			"double_damage_from": empty,
			"double_damage_to":   empty,
			"half_damage_from":   empty,
			"half_damage_to":     empty,
			"no_damage_from":     empty,
			"no_damage_to":       empty,
		},
		"pokemon": pokemon,
	})
}

func evolutionDetail(baseURL string, minLevel any, trigger string, item, heldItem any) object {
	return object{
		"min_level":               minLevel,
		"trigger":                 named(baseURL, "evolution-trigger", trigger, 1),
		"item":                    item,
		"held_item":               heldItem,
		"min_happiness":           nil,
		"min_beauty":              nil,
		"min_affection":           nil,
		"known_move":              nil,
		"known_move_type":         nil,
		"location":                nil,
		"needs_overworld_rain":    false,
		"party_species":           nil,
		"party_type":              nil,
		"relative_physical_stats": nil,
		"time_of_day":             "",
		"trade_species":           nil,
		"turn_upside_down":        false,
	}
}

// EvolutionChainJSON builds a three-stage chain (species 1 -> 2 -> 3).
// The root carries a stray detail record, the middle stage has two
// alternative details (level 16 first), and the final stage evolves via a
// held item only.
func EvolutionChainJSON(baseURL string, id int) string {
	return mustJSON(object{
		"id": id,
		"chain": object{
			"is_baby":           false,
			"species":           named(baseURL, "pokemon-species", "bulbasaur", 1),
			"evolution_details": []object{evolutionDetail(baseURL, 99, "level-up", nil, nil)},
			"evolves_to": []object{
				{
					"is_baby": false,
					"species": named(baseURL, "pokemon-species", "ivysaur", 2),
					"evolution_details": []object{
						evolutionDetail(baseURL, 16, "level-up", nil, nil),
						evolutionDetail(baseURL, nil, "use-item", named(baseURL, "item", "leaf-stone", 85), nil),
					},
					"evolves_to": []object{
						{
							"is_baby":           false,
							"species":           named(baseURL, "pokemon-species", "venusaur", 3),
							"evolution_details": []object{evolutionDetail(baseURL, nil, "trade", nil, named(baseURL, "item", "metal-coat", 210))},
							"evolves_to":        []object{},
						},
					},
				},
			},
		},
	})
}

package pokedex

// PokemonType is a type name with its slot on the creature.
type PokemonType struct {
	Name string `json:"name" yaml:"name"`
	Slot int    `json:"slot" yaml:"slot"`
}

type Stat struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	BaseStat    int    `json:"baseStat" yaml:"baseStat"`
	Effort      int    `json:"effort" yaml:"effort"`
}

type Ability struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	IsHidden    bool   `json:"isHidden" yaml:"isHidden"`
}

type Move struct {
	Name           string `json:"name" yaml:"name"`
	DisplayName    string `json:"displayName" yaml:"displayName"`
	LearnMethod    string `json:"learnMethod" yaml:"learnMethod"`
	LevelLearnedAt int    `json:"levelLearnedAt" yaml:"levelLearnedAt"`
}

// Sprites holds resolved image URLs. Only FrontShiny may be absent.
type Sprites struct {
	OfficialArtwork string  `json:"officialArtwork" yaml:"officialArtwork"`
	FrontDefault    string  `json:"frontDefault" yaml:"frontDefault"`
	FrontShiny      *string `json:"frontShiny" yaml:"frontShiny"`
}

// ListItem is the card-level model used by lists, search, and favorites.
type ListItem struct {
	ID      int           `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Types   []PokemonType `json:"types" yaml:"types"`
	Sprites Sprites       `json:"sprites" yaml:"sprites"`
	URL     string        `json:"url" yaml:"url"`
}

// Detail is the full model of one Pokemon.
type Detail struct {
	ListItem `yaml:",inline"`

	Height         int       `json:"height" yaml:"height"` // decimetres
	Weight         int       `json:"weight" yaml:"weight"` // hectograms
	BaseExperience *int      `json:"baseExperience" yaml:"baseExperience"`
	Stats          []Stat    `json:"stats" yaml:"stats"`
	Abilities      []Ability `json:"abilities" yaml:"abilities"`
	Moves          []Move    `json:"moves" yaml:"moves"`
	SpeciesURL     string    `json:"speciesUrl" yaml:"speciesUrl"`
}

// Species is the locale-resolved species record.
type Species struct {
	ID               int      `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	FlavorText       string   `json:"flavorText" yaml:"flavorText"`
	Genus            string   `json:"genus" yaml:"genus"`
	IsLegendary      bool     `json:"isLegendary" yaml:"isLegendary"`
	IsMythical       bool     `json:"isMythical" yaml:"isMythical"`
	IsBaby           bool     `json:"isBaby" yaml:"isBaby"`
	CaptureRate      int      `json:"captureRate" yaml:"captureRate"`
	BaseHappiness    *int     `json:"baseHappiness" yaml:"baseHappiness"`
	GrowthRate       string   `json:"growthRate" yaml:"growthRate"`
	Habitat          *string  `json:"habitat" yaml:"habitat"`
	Generation       string   `json:"generation" yaml:"generation"`
	EggGroups        []string `json:"eggGroups" yaml:"eggGroups"`
	EvolutionChainID int      `json:"evolutionChainId" yaml:"evolutionChainId"`
}

// EvolutionNode is one stage of an evolution tree. The root stage never
// carries a trigger, level, or item.
type EvolutionNode struct {
	SpeciesName string          `json:"speciesName" yaml:"speciesName"`
	SpeciesID   int             `json:"speciesId" yaml:"speciesId"`
	MinLevel    *int            `json:"minLevel" yaml:"minLevel"`
	TriggerName string          `json:"triggerName" yaml:"triggerName"`
	Item        *string         `json:"item" yaml:"item"`
	EvolvesTo   []EvolutionNode `json:"evolvesTo" yaml:"evolvesTo"`
}

// PaginationMeta describes where the next page starts, if anywhere.
type PaginationMeta struct {
	Total      int  `json:"total" yaml:"total"`
	NextOffset *int `json:"nextOffset" yaml:"nextOffset"`
}

// Page is one hydrated list page.
type Page struct {
	Items []ListItem     `json:"items" yaml:"items"`
	Meta  PaginationMeta `json:"meta" yaml:"meta"`
}

// Suggestion is one search hit from the name catalog.
type Suggestion struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Profile bundles everything shown on a detail view.
type Profile struct {
	Detail    *Detail        `json:"detail" yaml:"detail"`
	Species   *Species       `json:"species" yaml:"species"`
	Evolution *EvolutionNode `json:"evolution" yaml:"evolution"`
}

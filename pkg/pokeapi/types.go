package pokeapi

// NamedResource is a name + locator pair PokeAPI returns wherever it refers
// to another resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResourceList is a paginated list of resource references.
type ResourceList struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// HasNext reports whether the source has more pages.
func (l *ResourceList) HasNext() bool {
	return l.Next != nil && *l.Next != ""
}

// Pokemon endpoint (/pokemon/{id})

type Stat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type VersionGroupDetail struct {
	LevelLearnedAt  int           `json:"level_learned_at"`
	MoveLearnMethod NamedResource `json:"move_learn_method"`
	VersionGroup    NamedResource `json:"version_group"`
}

type MoveEntry struct {
	Move                NamedResource        `json:"move"`
	VersionGroupDetails []VersionGroupDetail `json:"version_group_details"`
}

// SpriteVariant is one artwork source with nullable images.
type SpriteVariant struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
}

type SpriteOther struct {
	OfficialArtwork SpriteVariant `json:"official-artwork"`
	Home            SpriteVariant `json:"home"`
}

type Sprites struct {
	FrontDefault *string     `json:"front_default"`
	FrontShiny   *string     `json:"front_shiny"`
	BackDefault  *string     `json:"back_default"`
	BackShiny    *string     `json:"back_shiny"`
	Other        SpriteOther `json:"other"`
}

// Pokemon is the full record of one creature.
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	BaseExperience *int          `json:"base_experience"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	IsDefault      bool          `json:"is_default"`
	Order          int           `json:"order"`
	Abilities      []AbilitySlot `json:"abilities"`
	Moves          []MoveEntry   `json:"moves"`
	Species        NamedResource `json:"species"`
	Sprites        Sprites       `json:"sprites"`
	Stats          []Stat        `json:"stats"`
	Types          []TypeSlot    `json:"types"`
}

// Species endpoint (/pokemon-species/{id})

type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

type Species struct {
	ID                   int               `json:"id"`
	Name                 string            `json:"name"`
	BaseHappiness        *int              `json:"base_happiness"`
	CaptureRate          int               `json:"capture_rate"`
	Color                NamedResource     `json:"color"`
	FlavorTextEntries    []FlavorTextEntry `json:"flavor_text_entries"`
	GenderRate           int               `json:"gender_rate"`
	Genera               []Genus           `json:"genera"`
	Generation           NamedResource     `json:"generation"`
	GrowthRate           NamedResource     `json:"growth_rate"`
	Habitat              *NamedResource    `json:"habitat"`
	HasGenderDifferences bool              `json:"has_gender_differences"`
	IsLegendary          bool              `json:"is_legendary"`
	IsMythical           bool              `json:"is_mythical"`
	IsBaby               bool              `json:"is_baby"`
	EvolutionChain       struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
	EggGroups []NamedResource `json:"egg_groups"`
}

// Evolution chain endpoint (/evolution-chain/{id})

type EvolutionDetail struct {
	MinLevel              *int           `json:"min_level"`
	Trigger               NamedResource  `json:"trigger"`
	Item                  *NamedResource `json:"item"`
	MinHappiness          *int           `json:"min_happiness"`
	MinBeauty             *int           `json:"min_beauty"`
	MinAffection          *int           `json:"min_affection"`
	HeldItem              *NamedResource `json:"held_item"`
	KnownMove             *NamedResource `json:"known_move"`
	KnownMoveType         *NamedResource `json:"known_move_type"`
	Location              *NamedResource `json:"location"`
	NeedsOverworldRain    bool           `json:"needs_overworld_rain"`
	PartySpecies          *NamedResource `json:"party_species"`
	PartyType             *NamedResource `json:"party_type"`
	RelativePhysicalStats *int           `json:"relative_physical_stats"`
	TimeOfDay             string         `json:"time_of_day"`
	TradeSpecies          *NamedResource `json:"trade_species"`
	TurnUpsideDown        bool           `json:"turn_upside_down"`
}

// ChainLink is one node of the recursive evolution tree.
type ChainLink struct {
	IsBaby           bool              `json:"is_baby"`
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// Type endpoint (/type/{name})

type TypeRelations struct {
	DoubleDamageFrom []NamedResource `json:"double_damage_from"`
	DoubleDamageTo   []NamedResource `json:"double_damage_to"`
	HalfDamageFrom   []NamedResource `json:"half_damage_from"`
	HalfDamageTo     []NamedResource `json:"half_damage_to"`
	NoDamageFrom     []NamedResource `json:"no_damage_from"`
	NoDamageTo       []NamedResource `json:"no_damage_to"`
}

type TypeMember struct {
	Pokemon NamedResource `json:"pokemon"`
	Slot    int           `json:"slot"`
}

type TypeDetail struct {
	ID              int           `json:"id"`
	Name            string        `json:"name"`
	DamageRelations TypeRelations `json:"damage_relations"`
	Pokemon         []TypeMember  `json:"pokemon"`
}

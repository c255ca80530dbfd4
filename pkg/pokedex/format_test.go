package pokedex

import (
	"math"
	"testing"
)

func TestFormatHeightWeight(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"height 7", FormatHeight(7), "0.7 m"},
		{"height 17", FormatHeight(17), "1.7 m"},
		{"height 0", FormatHeight(0), "0.0 m"},
		{"weight 69", FormatWeight(69), "6.9 kg"},
		{"weight 9999", FormatWeight(9999), "999.9 kg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestFormatDexNumber(t *testing.T) {
	tests := map[int]string{
		1:    "#001",
		25:   "#025",
		151:  "#151",
		1000: "#1000",
	}

	for id, want := range tests {
		if got := FormatDexNumber(id); got != want {
			t.Errorf("FormatDexNumber(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"pikachu": "Pikachu",
		"PIKACHU": "PIKACHU",
		"Eevee":   "Eevee",
		"é":       "É",
	}

	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAPIName(t *testing.T) {
	tests := map[string]string{
		"special-attack": "Special Attack",
		"overgrow":       "Overgrow",
		"medium-slow":    "Medium Slow",
		"":               "",
	}

	for in, want := range tests {
		if got := FormatAPIName(in); got != want {
			t.Errorf("FormatAPIName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatDisplayName(t *testing.T) {
	tests := map[string]string{
		"hp":              "HP",
		"special-attack":  "Sp. Atk",
		"special-defense": "Sp. Def",
		"speed":           "Speed",
		"accuracy":        "Accuracy",
		"evasion-bonus":   "Evasion Bonus",
	}

	for in, want := range tests {
		if got := StatDisplayName(in); got != want {
			t.Errorf("StatDisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatGeneration(t *testing.T) {
	tests := map[string]string{
		"generation-i":    "Gen i",
		"generation-iv":   "Gen iv",
		"generation-viii": "Gen viii",
		"legends-arceus":  "Legends Arceus",
		"":                "",
	}

	for in, want := range tests {
		if got := FormatGeneration(in); got != want {
			t.Errorf("FormatGeneration(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanFlavorText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A strange seed was\nplanted on its\fback at birth.", "A strange seed was planted on its back at birth."},
		{"  leading\r\nand trailing  ", "leading and trailing"},
		{"many     spaces", "many spaces"},
		{"\f\n\r", ""},
		{"clean", "clean"},
	}

	for _, tt := range tests {
		if got := CleanFlavorText(tt.in); got != tt.want {
			t.Errorf("CleanFlavorText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatPercent(t *testing.T) {
	tests := []struct {
		base int
		want float64
	}{
		{0, 0},
		{255, 100},
		{300, 100},
		{-5, 0},
		{51, 20},
	}

	for _, tt := range tests {
		if got := StatPercent(tt.base); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("StatPercent(%d) = %v, want %v", tt.base, got, tt.want)
		}
	}
}

func TestIDFromURL(t *testing.T) {
	tests := map[string]int{
		"https://pokeapi.co/api/v2/pokemon/25/":        25,
		"https://pokeapi.co/api/v2/pokemon/25":         25,
		"https://pokeapi.co/api/v2/evolution-chain/1/": 1,
		"https://pokeapi.co/api/v2/pokemon/10034/":     10034,
		"https://pokeapi.co/api/v2/pokemon/pikachu/":   0,
		"":    0,
		"///": 0,
	}

	for in, want := range tests {
		if got := IDFromURL(in); got != want {
			t.Errorf("IDFromURL(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestBaseLanguage(t *testing.T) {
	tests := map[string]string{
		"":        "en",
		"en":      "en",
		"fr-CA":   "fr",
		"es-MX":   "es",
		"ES":      "es",
		"zh-Hant": "zh",
		"ja-Hrkt": "ja",
	}

	for in, want := range tests {
		if got := BaseLanguage(in); got != want {
			t.Errorf("BaseLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

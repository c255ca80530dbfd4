package pokedex

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxBaseStat is the ceiling used when drawing stat bars.
const MaxBaseStat = 255

var statDisplayNames = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Sp. Atk",
	"special-defense": "Sp. Def",
	"speed":           "Speed",
}

var (
	lineBreaks = regexp.MustCompile(`[\n\f\r]`)
	spaceRuns  = regexp.MustCompile(`\s{2,}`)
)

// FormatHeight renders decimetres as metres: 7 -> "0.7 m".
func FormatHeight(decimetres int) string {
	return fmt.Sprintf("%.1f m", float64(decimetres)/10)
}

// FormatWeight renders hectograms as kilograms: 69 -> "6.9 kg".
func FormatWeight(hectograms int) string {
	return fmt.Sprintf("%.1f kg", float64(hectograms)/10)
}

// FormatDexNumber zero-pads a dex number to three digits: 25 -> "#025".
func FormatDexNumber(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatAPIName turns a hyphenated identifier into a display name:
// "special-attack" -> "Special Attack".
func FormatAPIName(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		parts[i] = Capitalize(p)
	}
	return strings.Join(parts, " ")
}

// StatDisplayName uses the short stat labels and falls back to FormatAPIName.
func StatDisplayName(name string) string {
	if display, ok := statDisplayNames[name]; ok {
		return display
	}
	return FormatAPIName(name)
}

// FormatGeneration renders "generation-iv" as "Gen iv". Only the leading
// "generation-" is shortened; the rest follows FormatAPIName.
func FormatGeneration(name string) string {
	return FormatAPIName(strings.Replace(name, "generation-", "Gen ", 1))
}

// CleanFlavorText replaces embedded line breaks with spaces, collapses
// whitespace runs, and trims.
func CleanFlavorText(text string) string {
	text = lineBreaks.ReplaceAllString(text, " ")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StatPercent is base as a share of MaxBaseStat, clamped to [0, 100].
func StatPercent(base int) float64 {
	pct := float64(base) / MaxBaseStat * 100
	return min(max(pct, 0), 100)
}

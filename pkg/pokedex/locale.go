package pokedex

import (
	"strings"

	"github.com/Sternrassler/pokedex-client/pkg/pokeapi"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is requested and as the first fallback.
const DefaultLocale = "en"

// BaseLanguage strips region and script subtags: "es-MX" -> "es".
func BaseLanguage(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return DefaultLocale
	}
	if tag, err := language.Parse(locale); err == nil {
		if base, _ := tag.Base(); base.String() != "und" {
			return base.String()
		}
	}
	// Tags PokeAPI uses that BCP 47 rejects fall through to a plain split.
	head, _, _ := strings.Cut(strings.ToLower(locale), "-")
	if head == "" {
		return DefaultLocale
	}
	return head
}

// pickLocalized selects the entry in the requested language, then English,
// then the first entry. ok is false only for an empty list.
func pickLocalized[T any](entries []T, locale string, lang func(T) pokeapi.NamedResource) (T, bool) {
	var zero T
	if len(entries) == 0 {
		return zero, false
	}

	want := BaseLanguage(locale)
	for _, e := range entries {
		if lang(e).Name == want {
			return e, true
		}
	}
	for _, e := range entries {
		if lang(e).Name == DefaultLocale {
			return e, true
		}
	}
	return entries[0], true
}

package database

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics removes diacritical marks from a string (e.g., "Žižkov" -> "Zizkov").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizeText normalizes free text for comparison (lowercase, no diacritics,
// collapsed whitespace). Used to match location filters against stored items.
func NormalizeText(s string) string {
	s = RemoveDiacritics(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// MatchesLocation reports whether an item's location contains the given
// filter after normalization. An empty filter matches everything.
func MatchesLocation(itemLocation, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(NormalizeText(itemLocation), NormalizeText(filter))
}

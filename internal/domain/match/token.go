// Package match implements the fuzzy text matching engine: query
// tokenization, bounded string similarity, field matching over items and
// their variants, and match highlighting. Every function is pure.
package match

import (
	"strings"
	"unicode"
)

// MinTokenLength is the shortest query term that participates in matching.
const MinTokenLength = 2

// Tokenize normalizes a free-text query into search terms: lowercased,
// punctuation stripped, split on whitespace, terms shorter than
// MinTokenLength dropped. An empty or all-noise query yields an empty slice.
func Tokenize(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, query)

	var terms []string
	for _, t := range strings.Fields(cleaned) {
		if len(t) >= MinTokenLength {
			terms = append(terms, t)
		}
	}
	return terms
}

package match

import (
	"strings"
	"unicode/utf8"
)

// SubstringScore is the fixed score for a case-insensitive containment match.
// Containment is rewarded independently of edit distance so that a short
// query inside a long field ("pomp" in "bronpompen") still scores high.
const SubstringScore = 0.9

// Similarity computes a bounded similarity score in [0,1] between two
// strings. Rules apply in order, first match wins:
//
//	empty input            -> 0
//	case-insensitive equal -> 1
//	substring either way   -> SubstringScore
//	otherwise              -> 1 - lev(a,b)/max(len), floored at 0
//
// The function is symmetric in its arguments.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	al := strings.ToLower(a)
	bl := strings.ToLower(b)

	if al == bl {
		return 1
	}
	if strings.Contains(al, bl) || strings.Contains(bl, al) {
		return SubstringScore
	}

	// levenshtein counts runes, so the normalizing length must too.
	maxLen := utf8.RuneCountInString(al)
	if n := utf8.RuneCountInString(bl); n > maxLen {
		maxLen = n
	}
	score := 1 - float64(levenshtein(al, bl))/float64(maxLen)
	if score < 0 {
		return 0
	}
	return score
}

// levenshtein computes the edit distance between two strings using a
// two-row dynamic programming table.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j-1]+cost, // substitution
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

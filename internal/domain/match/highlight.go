package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Highlight markers wrapped around matched substrings.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlight wraps every case-insensitive occurrence of the whole query
// substring in highlight markers, preserving the original casing of the
// matched text. An empty or whitespace-only query returns text unchanged.
func Highlight(text, query string) string {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return text
	}

	lowerQuery := strings.ToLower(query)
	lowerText, offsets := lowerWithOffsets(text)

	var b strings.Builder
	start := 0
	origStart := 0
	for {
		idx := strings.Index(lowerText[start:], lowerQuery)
		if idx < 0 {
			break
		}
		idx += start
		end := idx + len(lowerQuery)
		b.WriteString(text[origStart:offsets[idx]])
		b.WriteString(markOpen)
		b.WriteString(text[offsets[idx]:offsets[end]])
		b.WriteString(markClose)
		start = end
		origStart = offsets[end]
	}
	if b.Len() == 0 {
		return text
	}
	b.WriteString(text[origStart:])
	return b.String()
}

// IndexFold returns the byte offsets in s of the first case-insensitive
// occurrence of substr, or (-1, -1) if there is none. Offsets are always
// rune boundaries of s, even when lowercasing changes a rune's encoded
// length.
func IndexFold(s, substr string) (int, int) {
	if s == "" || substr == "" {
		return -1, -1
	}
	lowerSub := strings.ToLower(substr)
	lowerText, offsets := lowerWithOffsets(s)
	idx := strings.Index(lowerText, lowerSub)
	if idx < 0 {
		return -1, -1
	}
	return offsets[idx], offsets[idx+len(lowerSub)]
}

// lowerWithOffsets lowercases text rune by rune and records, for every byte
// of the lowered string, the byte offset of the original rune it came from.
// Lowercasing can change a rune's encoded length, so match offsets found in
// the lowered string must be mapped back through this table rather than
// applied to text directly.
func lowerWithOffsets(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		lr := unicode.ToLower(r)
		for j := 0; j < utf8.RuneLen(lr); j++ {
			offsets = append(offsets, i)
		}
		b.WriteRune(lr)
	}
	return b.String(), append(offsets, len(text))
}

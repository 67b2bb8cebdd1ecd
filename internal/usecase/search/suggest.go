package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/dema-cloud/prodmatch/internal/domain/match"
	"github.com/dema-cloud/prodmatch/internal/domain/product"
)

// Suggestion caps. Each suggestion type contributes at most PerTypeCap
// entries; the merged list is capped at MaxSuggestions.
const (
	PerTypeCap         = 5
	DefaultSuggestions = 15
	MaxSuggestions     = 20
)

// Suggestion types, in priority order.
const (
	TypeSKU         = "sku"
	TypeCategory    = "category"
	TypeDescription = "description"
)

// Suggestion is a single typeahead entry.
type Suggestion struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Highlight string `json:"highlight"`
	Priority  int    `json:"priority"`
	// Category of the matched product (sku and description types).
	Category string `json:"category,omitempty"`
	// Count of products in the category (category type only).
	Count int `json:"count,omitempty"`
	// Display is the description snippet shown to the user.
	Display string `json:"display,omitempty"`
}

// Suggest builds typeahead suggestions for a partial query: matching SKUs,
// categories (with product counts), and description snippets, each
// highlighted and deduplicated. An empty query yields an empty list. When no
// category contains the query literally, a fuzzy fallback catches typos.
func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestions
	}
	if limit > s.maxSuggestions {
		limit = s.maxSuggestions
	}

	pool, err := s.catalog.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var out []Suggestion
	out = append(out, s.skuSuggestions(pool, q)...)

	cats, err := s.categorySuggestions(ctx, q)
	if err != nil {
		return nil, err
	}
	out = append(out, cats...)
	out = append(out, s.descriptionSuggestions(pool, q)...)

	// Stable on priority only: within a type the producers already emit
	// their own order (categories by product count, SKUs by catalog order).
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Service) skuSuggestions(pool []product.Product, q string) []Suggestion {
	var out []Suggestion
	seen := make(map[string]struct{})
	for i := range pool {
		sku := pool[i].SKU
		if !strings.Contains(strings.ToLower(sku), q) {
			continue
		}
		key := strings.ToLower(sku)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Suggestion{
			Type:      TypeSKU,
			Value:     sku,
			Highlight: match.Highlight(sku, q),
			Priority:  1,
			Category:  pool[i].Category,
		})
		if len(out) == PerTypeCap {
			break
		}
	}
	return out
}

func (s *Service) categorySuggestions(ctx context.Context, q string) ([]Suggestion, error) {
	counts, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	var out []Suggestion
	for _, c := range counts {
		if !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		out = append(out, Suggestion{
			Type:      TypeCategory,
			Value:     c.Name,
			Highlight: match.Highlight(c.Name, q),
			Priority:  2,
			Count:     c.Count,
		})
		if len(out) == PerTypeCap {
			break
		}
	}
	if len(out) > 0 {
		return out, nil
	}

	// Typo fallback: no category contains the query literally, so rank
	// categories by fuzzy match distance instead.
	names := make([]string, len(counts))
	countByName := make(map[string]int, len(counts))
	for i, c := range counts {
		names[i] = c.Name
		countByName[c.Name] = c.Count
	}
	ranks := fuzzy.RankFindNormalizedFold(q, names)
	sort.Sort(ranks)
	for _, r := range ranks {
		out = append(out, Suggestion{
			Type:      TypeCategory,
			Value:     r.Target,
			Highlight: r.Target,
			Priority:  2,
			Count:     countByName[r.Target],
		})
		if len(out) == PerTypeCap {
			break
		}
	}
	return out, nil
}

// snippetContext is how many characters of description surround the match.
const snippetContext = 20

func (s *Service) descriptionSuggestions(pool []product.Product, q string) []Suggestion {
	var out []Suggestion
	for i := range pool {
		desc := pool[i].Description
		matchStart, matchEnd := match.IndexFold(desc, q)
		if matchStart < 0 {
			continue
		}

		start := matchStart - snippetContext
		if start < 0 {
			start = 0
		}
		end := matchEnd + snippetContext
		if end > len(desc) {
			end = len(desc)
		}
		// Snippet context is counted in bytes, so clamp the cut points back
		// onto rune boundaries.
		for start > 0 && !utf8.RuneStart(desc[start]) {
			start--
		}
		for end < len(desc) && !utf8.RuneStart(desc[end]) {
			end++
		}
		snippet := desc[start:end]
		if start > 0 {
			snippet = "..." + snippet
		}
		if end < len(desc) {
			snippet += "..."
		}

		out = append(out, Suggestion{
			Type:      TypeDescription,
			Value:     pool[i].SKU,
			Display:   snippet,
			Highlight: match.Highlight(snippet, q),
			Priority:  3,
			Category:  pool[i].Category,
		})
		if len(out) == PerTypeCap {
			break
		}
	}
	return out
}

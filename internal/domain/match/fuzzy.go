package match

import (
	"fmt"
	"sort"

	"github.com/dema-cloud/prodmatch/internal/domain"
)

// DefaultThreshold is the minimum per-field similarity for an item to be
// considered a match. Empirically tuned; overridable per call.
const DefaultThreshold = 0.3

// Item is a searchable record: named string fields plus one level of
// variant sub-records. Variant traversal is exactly depth 1.
type Item struct {
	Fields   map[string]string
	Variants []map[string]string
}

// Result pairs a pool index with the score and the fields that matched.
type Result struct {
	// Index is the position of the matched item in the input pool.
	Index int
	// Score is the maximum similarity found across all token/field pairs.
	Score float64
	// MatchedFields names the fields that met the threshold, in field order.
	MatchedFields []string
}

// Config holds fuzzy search options.
type Config struct {
	// Threshold is the minimum similarity to include an item. Zero means
	// DefaultThreshold.
	Threshold float64
	// MaxResults caps the result slice. Zero means unrestricted.
	MaxResults int
}

// Validate rejects parameters outside their documented ranges. All errors
// wrap domain.ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be in [0,1], got %v", domain.ErrInvalidConfig, c.Threshold)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("%w: max results must be positive, got %d", domain.ErrInvalidConfig, c.MaxResults)
	}
	return nil
}

func (c Config) threshold() float64 {
	if c.Threshold == 0 {
		return DefaultThreshold
	}
	return c.Threshold
}

// Search scores every item against the tokenized query and returns matches
// ordered by descending score, ties broken by pool order. An item's score is
// the maximum similarity across all (token, field) and (token, variant-field)
// pairs: a single strong match beats many weak ones. Empty items, query, or
// fields yield an empty result without error.
func Search(items []Item, query string, fields []string, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("%w: field names must be non-empty", domain.ErrInvalidConfig)
		}
	}

	terms := Tokenize(query)
	if len(items) == 0 || len(terms) == 0 || len(fields) == 0 {
		return nil, nil
	}

	threshold := cfg.threshold()
	var results []Result

	for i := range items {
		score, matched := scoreItem(&items[i], terms, fields, threshold)
		if score >= threshold {
			results = append(results, Result{Index: i, Score: score, MatchedFields: matched})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if cfg.MaxResults > 0 && len(results) > cfg.MaxResults {
		results = results[:cfg.MaxResults]
	}
	return results, nil
}

// scoreItem returns the best similarity for one item and the fields that
// individually met the threshold.
func scoreItem(item *Item, terms, fields []string, threshold float64) (float64, []string) {
	var best float64
	var matched []string

	for _, field := range fields {
		value, ok := item.Fields[field]
		if !ok || value == "" {
			continue
		}
		fieldBest := bestTermScore(value, terms)
		if fieldBest > best {
			best = fieldBest
		}
		if fieldBest >= threshold {
			matched = append(matched, field)
		}
	}

	// Depth-1 variant traversal: a query matching a variant SKU or label
	// surfaces the parent item.
	for _, variant := range item.Variants {
		for _, value := range variant {
			variantBest := bestTermScore(value, terms)
			if variantBest > best {
				best = variantBest
			}
			if variantBest >= threshold {
				matched = appendUnique(matched, "variants")
			}
		}
	}

	return best, matched
}

func bestTermScore(value string, terms []string) float64 {
	var best float64
	for _, term := range terms {
		if s := Similarity(term, value); s > best {
			best = s
		}
	}
	return best
}

func appendUnique(ss []string, s string) []string {
	for _, v := range ss {
		if v == s {
			return ss
		}
	}
	return append(ss, s)
}

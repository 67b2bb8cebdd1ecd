// Package rank orders a candidate pool against an anchor product by weighted
// attribute overlap, with a deterministic fallback ordering when no anchor is
// available.
package rank

import (
	"math"
	"strings"

	"github.com/dema-cloud/prodmatch/internal/domain/product"
)

// Attribute weights. The exact constants are tuning knobs; the contract is
// the relative ordering they produce: category match dominates, then exact
// dimension overlap, then material overlap, then pressure/voltage/power
// closeness.
const (
	weightCategory     = 40.0
	weightDimExact     = 15.0
	weightDimNear      = 10.0
	weightMaterials    = 15.0
	weightPressure     = 8.0
	weightVoltage      = 8.0
	weightPower        = 8.0
	bonusSameSource    = 15.0
	bonusNearbyPages   = 10.0
	sourcePageWindow   = 3
)

// AttributeScore computes the weighted similarity of candidate to anchor
// across structured attributes. The score is non-negative and unbounded
// above; a missing attribute on either side contributes zero for that term.
func AttributeScore(candidate, anchor *product.Product) float64 {
	var score float64

	if anchor.Category != "" && candidate.Category == anchor.Category {
		score += weightCategory
	}

	exact, near := numericSetOverlap(candidate.DimensionsMM, anchor.DimensionsMM)
	if exact {
		score += weightDimExact
	} else {
		score += weightDimNear * near
	}

	score += weightMaterials * setOverlap(candidate.Materials, anchor.Materials)
	score += weightPressure * closeness(candidate.PressureMaxBar, anchor.PressureMaxBar)
	score += weightVoltage * closeness(candidate.VoltageV, anchor.VoltageV)

	powerKW := closeness(candidate.PowerKW, anchor.PowerKW)
	powerHP := closeness(candidate.PowerHP, anchor.PowerHP)
	score += weightPower * math.Max(powerKW, powerHP)

	score += sourceBonus(candidate, anchor)

	return score
}

// closeness is a smooth decay on absolute distance: 1/(1+|a-b|). Identical
// values contribute the full weight, and the term never reaches zero for
// finite distances.
func closeness(a, b *float64) float64 {
	if a == nil || b == nil {
		return 0
	}
	return 1 / (1 + math.Abs(*a-*b))
}

// numericSetOverlap reports whether any candidate value exactly equals an
// anchor value, and otherwise the best nearest-neighbor decay over all pairs.
func numericSetOverlap(candidate, anchor []float64) (exact bool, near float64) {
	if len(candidate) == 0 || len(anchor) == 0 {
		return false, 0
	}
	for _, c := range candidate {
		for _, a := range anchor {
			if c == a {
				return true, 1
			}
			if s := 1 / (1 + math.Abs(c-a)); s > near {
				near = s
			}
		}
	}
	return false, near
}

// setOverlap computes |candidate ∩ anchor| / |candidate| over
// case-insensitive, deduplicated tag sets.
func setOverlap(candidate, anchor []string) float64 {
	if len(candidate) == 0 || len(anchor) == 0 {
		return 0
	}

	anchorSet := make(map[string]struct{}, len(anchor))
	for _, s := range anchor {
		anchorSet[strings.ToLower(s)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(candidate))
	hits := 0
	for _, s := range candidate {
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := anchorSet[k]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(seen))
}

// sourceBonus rewards candidates extracted from the same source document as
// the anchor, with an extra bonus when their pages are within a small window.
// Nearby pages are a weak proxy for "presented as related products".
func sourceBonus(candidate, anchor *product.Product) float64 {
	if anchor.PDFSource == "" || candidate.PDFSource != anchor.PDFSource {
		return 0
	}
	bonus := bonusSameSource
	for _, a := range anchor.SourcePages {
		for _, c := range candidate.SourcePages {
			if abs(a-c) <= sourcePageWindow {
				return bonus + bonusNearbyPages
			}
		}
	}
	return bonus
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

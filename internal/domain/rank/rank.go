package rank

import (
	"math"
	"sort"

	"github.com/dema-cloud/prodmatch/internal/domain/product"
)

// Similar ranks pool against the anchor by descending AttributeScore. The
// anchor itself is excluded, the optional category filter is applied first,
// and ties fall through the deterministic chain: higher rating, in stock
// before out of stock, lower price (missing price sorts last). The result is
// truncated to req.Limit().
//
// A nil anchor falls back to Popular ordering (with optional
// preferred-category partitioning).
func Similar(pool []product.Product, anchor *product.Product, req Request) []product.Product {
	if anchor == nil {
		return Popular(pool, req)
	}

	candidates := make([]product.Product, 0, len(pool))
	for _, p := range pool {
		if p.SKU == anchor.SKU {
			continue
		}
		if req.Category() != "" && p.Category != req.Category() {
			continue
		}
		candidates = append(candidates, p)
	}

	scores := make([]float64, len(candidates))
	for i := range candidates {
		scores[i] = AttributeScore(&candidates[i], anchor)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return lessByFallback(&candidates[a], &candidates[b])
	})

	ranked := make([]product.Product, 0, len(order))
	for _, idx := range order {
		ranked = append(ranked, candidates[idx])
	}
	return truncate(ranked, req.Limit())
}

// Popular orders pool by the fallback chain alone: rating, stock, price.
// When personalization is requested with a preferred category, products in
// that category are partitioned first, keeping pool order within each group.
func Popular(pool []product.Product, req Request) []product.Product {
	candidates := make([]product.Product, 0, len(pool))
	for _, p := range pool {
		if req.Category() != "" && p.Category != req.Category() {
			continue
		}
		candidates = append(candidates, p)
	}

	if req.Personalized() && req.PreferredCategory() != "" {
		preferred := make([]product.Product, 0, len(candidates))
		others := make([]product.Product, 0, len(candidates))
		for _, p := range candidates {
			if p.Category == req.PreferredCategory() {
				preferred = append(preferred, p)
			} else {
				others = append(others, p)
			}
		}
		return truncate(append(preferred, others...), req.Limit())
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return lessByFallback(&candidates[i], &candidates[j])
	})
	return truncate(candidates, req.Limit())
}

// lessByFallback is the deterministic tie-break chain: higher rating first,
// then in-stock before out-of-stock, then lower price with missing prices
// sorting last.
func lessByFallback(a, b *product.Product) bool {
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	if a.InStock != b.InStock {
		return a.InStock
	}
	return priceOrInf(a) < priceOrInf(b)
}

func priceOrInf(p *product.Product) float64 {
	if p.Price == nil {
		return math.Inf(1)
	}
	return *p.Price
}

func truncate(ps []product.Product, limit int) []product.Product {
	if limit > 0 && len(ps) > limit {
		return ps[:limit]
	}
	return ps
}

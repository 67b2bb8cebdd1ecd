// Package recommend produces "similar products" recommendations and
// history-driven marketing suggestions.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dema-cloud/prodmatch/internal/domain"
	"github.com/dema-cloud/prodmatch/internal/domain/product"
	"github.com/dema-cloud/prodmatch/internal/domain/rank"
)

// historyTerms is how many distinct recent search terms drive the marketing
// suggestions.
const historyTerms = 5

// Service handles product recommendations.
type Service struct {
	catalog  Catalog
	profiles ProfileReader
}

// New creates a recommendation service.
func New(catalog Catalog, profiles ProfileReader) *Service {
	return &Service{catalog: catalog, profiles: profiles}
}

// Recommendations holds a ranked product list and whether it was anchored.
type Recommendations struct {
	Items []product.Product
	// Personalized is true when an anchor product drove the ranking.
	Personalized bool
}

// Similar ranks the catalog against the product identified by sku. An
// unknown or empty SKU falls back to the popularity ordering rather than
// failing: the widget must render something on every product page.
func (s *Service) Similar(ctx context.Context, sku string, req rank.Request) (Recommendations, error) {
	pool, err := s.catalog.All(ctx)
	if err != nil {
		return Recommendations{}, fmt.Errorf("load catalog: %w", err)
	}

	var anchor *product.Product
	if sku != "" {
		p, err := s.catalog.BySKU(ctx, sku)
		switch {
		case err == nil:
			anchor = &p
		case errors.Is(err, domain.ErrProductNotFound):
			// fall back to unanchored ranking
		default:
			return Recommendations{}, fmt.Errorf("resolve anchor: %w", err)
		}
	}

	return Recommendations{
		Items:        rank.Similar(pool, anchor, req),
		Personalized: anchor != nil,
	}, nil
}

// Marketing term-match weights. A free-text hit anywhere outweighs a
// category or SKU hit; stock and rating provide small nudges.
const (
	termTextWeight     = 5.0
	termCategoryWeight = 3.0
	termSKUWeight      = 2.0
	inStockBoost       = 1.0
	ratingBoost        = 0.5
)

// Marketing suggests products based on the client's recent search history.
// Clients without history get the popularity fallback with Personalized
// false. An empty clientID is rejected: the caller must identify the client.
func (s *Service) Marketing(ctx context.Context, clientID string, limit int) (Recommendations, error) {
	if strings.TrimSpace(clientID) == "" {
		return Recommendations{}, domain.ErrClientIDRequired
	}

	pool, err := s.catalog.All(ctx)
	if err != nil {
		return Recommendations{}, fmt.Errorf("load catalog: %w", err)
	}

	req := rank.NewRequest(limit, "", "", false)

	prof, err := s.profiles.Get(ctx, clientID)
	if err != nil {
		return Recommendations{}, fmt.Errorf("load profile: %w", err)
	}
	terms := prof.RecentTerms(historyTerms)
	if len(terms) == 0 {
		return Recommendations{Items: rank.Popular(pool, req)}, nil
	}

	type scored struct {
		idx   int
		score float64
	}
	var hits []scored
	for i := range pool {
		if sc := termScore(&pool[i], terms); sc > 0 {
			hits = append(hits, scored{idx: i, score: sc})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	items := make([]product.Product, 0, len(hits))
	for _, h := range hits {
		items = append(items, pool[h.idx])
		if len(items) == req.Limit() {
			break
		}
	}
	return Recommendations{Items: items, Personalized: true}, nil
}

// termScore scores one product against the client's search terms.
func termScore(p *product.Product, terms []string) float64 {
	text := strings.ToLower(strings.Join([]string{
		p.SKU, p.Name, p.Description, p.Category, strings.Join(p.ConnectionTypes, " "),
	}, " "))
	category := strings.ToLower(p.Category)
	sku := strings.ToLower(p.SKU)

	var score float64
	for _, t := range terms {
		if t == "" {
			continue
		}
		if strings.Contains(text, t) {
			score += termTextWeight
		}
		if strings.Contains(category, t) {
			score += termCategoryWeight
		}
		if strings.Contains(sku, t) {
			score += termSKUWeight
		}
	}
	if score == 0 {
		return 0
	}
	if p.InStock {
		score += inStockBoost
	}
	score += p.Rating * ratingBoost
	return score
}

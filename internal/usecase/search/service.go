// Package search implements fuzzy product search and search suggestions.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dema-cloud/prodmatch/internal/domain/match"
	"github.com/dema-cloud/prodmatch/internal/domain/product"
)

// Result limits for a product search call.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ScoredProduct pairs a product with its match score.
type ScoredProduct struct {
	Product       product.Product
	Score         float64
	MatchedFields []string
}

// Service handles fuzzy product search over the catalog.
type Service struct {
	catalog        Catalog
	history        HistoryRecorder
	threshold      float64
	defaultLimit   int
	maxLimit       int
	maxSuggestions int
	logger         *zap.Logger
}

// New creates a search service. history may be nil to disable personalization.
func New(catalog Catalog, history HistoryRecorder, logger *zap.Logger) *Service {
	return &Service{
		catalog:        catalog,
		history:        history,
		threshold:      match.DefaultThreshold,
		defaultLimit:   DefaultLimit,
		maxLimit:       MaxLimit,
		maxSuggestions: MaxSuggestions,
		logger:         logger,
	}
}

// WithThreshold overrides the default similarity threshold.
func (s *Service) WithThreshold(threshold float64) *Service {
	if threshold > 0 {
		s.threshold = threshold
	}
	return s
}

// WithPagination overrides the default and maximum result counts for
// product searches.
func (s *Service) WithPagination(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// WithSuggestionLimit overrides the maximum number of merged suggestions.
func (s *Service) WithSuggestionLimit(max int) *Service {
	if max > 0 {
		s.maxSuggestions = max
	}
	return s
}

// Products runs a fuzzy search over the catalog's text fields. A non-empty
// clientID records the query in the client's search history; recording
// failures are logged and never fail the search (the history is advisory).
// An empty query yields an empty result by contract.
func (s *Service) Products(
	ctx context.Context, query, category, clientID string, limit int,
) ([]ScoredProduct, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	pool, err := s.catalog.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if category != "" {
		filtered := make([]product.Product, 0, len(pool))
		for _, p := range pool {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		pool = filtered
	}

	items := make([]match.Item, len(pool))
	for i := range pool {
		items[i] = match.Item{
			Fields:   pool[i].TextFields(),
			Variants: pool[i].VariantFields(),
		}
	}

	results, err := match.Search(items, query, product.SearchFields, match.Config{
		Threshold:  s.threshold,
		MaxResults: limit,
	})
	if err != nil {
		return nil, err
	}

	if clientID != "" && s.history != nil {
		if err := s.history.RecordSearch(ctx, clientID, query); err != nil {
			s.logger.Warn("failed to record search history",
				zap.String("client_id", clientID), zap.Error(err))
		}
	}

	scored := make([]ScoredProduct, len(results))
	for i, r := range results {
		scored[i] = ScoredProduct{
			Product:       pool[r.Index],
			Score:         r.Score,
			MatchedFields: r.MatchedFields,
		}
	}
	return scored, nil
}

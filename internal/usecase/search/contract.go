package search

import (
	"context"

	"github.com/dema-cloud/prodmatch/internal/domain/product"
	"github.com/dema-cloud/prodmatch/internal/repository/catalog"
)

// Catalog provides the candidate pool for search calls.
type Catalog interface {
	All(ctx context.Context) ([]product.Product, error)
	Categories(ctx context.Context) ([]catalog.CategoryCount, error)
}

// HistoryRecorder records client search terms for personalization.
type HistoryRecorder interface {
	RecordSearch(ctx context.Context, clientID, query string) error
}

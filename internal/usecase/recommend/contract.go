package recommend

import (
	"context"

	"github.com/dema-cloud/prodmatch/internal/domain/product"
	"github.com/dema-cloud/prodmatch/internal/repository/profile"
)

// Catalog provides the candidate pool and anchor resolution.
type Catalog interface {
	All(ctx context.Context) ([]product.Product, error)
	BySKU(ctx context.Context, sku string) (product.Product, error)
}

// ProfileReader loads client marketing profiles.
type ProfileReader interface {
	Get(ctx context.Context, clientID string) (profile.Profile, error)
}

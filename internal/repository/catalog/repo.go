// Package catalog provides the product candidate pool from a JSON catalog
// file. The file is re-read only when its mtime changes, so every request
// sees a consistent in-memory snapshot.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/dema-cloud/prodmatch/internal/domain"
	"github.com/dema-cloud/prodmatch/internal/domain/product"
)

// Repo loads and caches products from a catalog file.
type Repo struct {
	path string

	mu       sync.RWMutex
	products []product.Product
	mtime    int64
}

// New creates a catalog repository reading from path.
func New(path string) *Repo {
	return &Repo{path: path}
}

// All returns the full candidate pool. The returned slice is shared; callers
// must not mutate it.
func (r *Repo) All(ctx context.Context) ([]product.Product, error) {
	if err := r.refresh(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.products, nil
}

// BySKU resolves a single product. Returns domain.ErrProductNotFound when
// the SKU is unknown.
func (r *Repo) BySKU(ctx context.Context, sku string) (product.Product, error) {
	pool, err := r.All(ctx)
	if err != nil {
		return product.Product{}, err
	}
	for i := range pool {
		if pool[i].SKU == sku {
			return pool[i], nil
		}
	}
	return product.Product{}, fmt.Errorf("sku %q: %w", sku, domain.ErrProductNotFound)
}

// Categories returns the distinct product categories with their product
// counts, ordered by descending count then name.
func (r *Repo) Categories(ctx context.Context) ([]CategoryCount, error) {
	pool, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range pool {
		if c := pool[i].Category; c != "" {
			counts[c]++
		}
	}

	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// CategoryCount pairs a category name with its product count.
type CategoryCount struct {
	Name  string
	Count int
}

// HealthCheck reports whether the catalog file is readable.
func (r *Repo) HealthCheck(ctx context.Context) error {
	return r.refresh(ctx)
}

// refresh reloads the catalog when the file changed since the last read.
func (r *Repo) refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", domain.ErrCatalogUnavailable, r.path, err)
	}
	mtime := info.ModTime().UnixNano()

	r.mu.RLock()
	fresh := r.products != nil && r.mtime == mtime
	r.mu.RUnlock()
	if fresh {
		return nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", domain.ErrCatalogUnavailable, r.path, err)
	}

	products, err := decode(data)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %w", domain.ErrCatalogUnavailable, r.path, err)
	}

	r.mu.Lock()
	r.products = products
	r.mtime = mtime
	r.mu.Unlock()
	return nil
}

// decode parses the catalog file, accepting either a bare array or a
// {"products": [...]} wrapper. Records without a SKU are dropped rather
// than failing the whole load.
func decode(data []byte) ([]product.Product, error) {
	var products []product.Product
	if err := json.Unmarshal(data, &products); err != nil {
		var wrapper struct {
			Products []product.Product `json:"products"`
		}
		if werr := json.Unmarshal(data, &wrapper); werr != nil {
			return nil, err
		}
		products = wrapper.Products
	}

	kept := products[:0]
	for _, p := range products {
		if strings.TrimSpace(p.SKU) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return kept, nil
}

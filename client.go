// Package prodmatch is an in-process SDK for fuzzy product search and
// recommendations over a JSON catalog.
package prodmatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dema-cloud/prodmatch/internal/db"
	dbMemory "github.com/dema-cloud/prodmatch/internal/db/memory"
	dbRedis "github.com/dema-cloud/prodmatch/internal/db/redis"
	"github.com/dema-cloud/prodmatch/internal/domain/rank"
	catalogrepo "github.com/dema-cloud/prodmatch/internal/repository/catalog"
	profilerepo "github.com/dema-cloud/prodmatch/internal/repository/profile"
	recommenduc "github.com/dema-cloud/prodmatch/internal/usecase/recommend"
	searchuc "github.com/dema-cloud/prodmatch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the prodmatch SDK entry point.
type Client struct {
	store        db.Store
	profiles     *profilerepo.Store
	searchSvc    *searchuc.Service
	recommendSvc *recommenduc.Service
}

// New creates a prodmatch Client: loads the catalog and connects the
// profile store.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:    "memory",
		keyPrefix: "prodmatch:",
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.catalogPath == "" {
		return nil, errors.New("prodmatch: catalog file required (use WithCatalogFile)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("prodmatch: database not ready: %w", err)
	}

	catalog := catalogrepo.New(cfg.catalogPath)
	if _, err := catalog.All(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("prodmatch: load catalog: %w", err)
	}

	profiles := profilerepo.New(store, cfg.keyPrefix)

	searchSvc := searchuc.New(catalog, profiles, cfg.logger)
	if cfg.threshold > 0 {
		searchSvc = searchSvc.WithThreshold(cfg.threshold)
	}

	return &Client{
		store:        store,
		profiles:     profiles,
		searchSvc:    searchSvc,
		recommendSvc: recommenduc.New(catalog, profiles),
	}, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("prodmatch: create redis store: %w", err)
		}
		return s, nil
	case "memory":
		return dbMemory.NewStore(), nil
	default:
		return nil, fmt.Errorf("prodmatch: unknown driver %q", cfg.driver)
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a fuzzy search over the catalog.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) ([]ScoredProduct, error) {
	var sc searchConfig
	for _, o := range opts {
		o(&sc)
	}

	results, err := c.searchSvc.Products(ctx, query, sc.category, sc.clientID, sc.limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]ScoredProduct, len(results))
	for i, r := range results {
		out[i] = ScoredProduct{
			Product:       productFromInternal(r.Product),
			Score:         r.Score,
			MatchedFields: r.MatchedFields,
		}
	}
	return out, nil
}

// Suggest builds typeahead suggestions for a partial query.
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	items, err := c.searchSvc.Suggest(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	out := make([]Suggestion, len(items))
	for i, s := range items {
		out[i] = suggestionFromInternal(s)
	}
	return out, nil
}

// Similar recommends products related to the one identified by sku. An
// empty or unknown SKU yields the popularity fallback.
func (c *Client) Similar(ctx context.Context, sku string, opts ...RecommendOption) (Recommendations, error) {
	var rc recommendConfig
	for _, o := range opts {
		o(&rc)
	}

	req := rank.NewRequest(rc.limit, rc.category, rc.preferredCategory, rc.personalized)
	recs, err := c.recommendSvc.Similar(ctx, sku, req)
	if err != nil {
		return Recommendations{}, fmt.Errorf("similar: %w", err)
	}
	return Recommendations{
		Items:        productsFromInternal(recs.Items),
		Personalized: recs.Personalized,
	}, nil
}

// Marketing suggests products based on the client's recorded search history.
func (c *Client) Marketing(ctx context.Context, clientID string, limit int) (Recommendations, error) {
	recs, err := c.recommendSvc.Marketing(ctx, clientID, limit)
	if err != nil {
		return Recommendations{}, fmt.Errorf("marketing: %w", err)
	}
	return Recommendations{
		Items:        productsFromInternal(recs.Items),
		Personalized: recs.Personalized,
	}, nil
}

// RecordSearch appends a query to the client's search history.
func (c *Client) RecordSearch(ctx context.Context, clientID, query string) error {
	if err := c.profiles.RecordSearch(ctx, clientID, query); err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// UpdateContact stores the client's email and consent flag.
func (c *Client) UpdateContact(ctx context.Context, clientID, email string, consent *bool) error {
	if err := c.profiles.SetContact(ctx, clientID, email, consent); err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

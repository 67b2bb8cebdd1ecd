package prodmatch

import "go.uber.org/zap"

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver      string
	addrs       []string
	password    string
	catalogPath string
	keyPrefix   string
	threshold   float64
	logger      *zap.Logger
}

// WithRedis connects the client to a Redis instance for profiles and
// rate-limit state.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithMemoryStore uses an in-process store. Profile data does not survive
// restarts; intended for tests and single-binary deployments.
func WithMemoryStore() Option {
	return func(c *clientConfig) {
		c.driver = "memory"
	}
}

// WithCatalogFile sets the product catalog JSON file.
func WithCatalogFile(path string) Option {
	return func(c *clientConfig) {
		c.catalogPath = path
	}
}

// WithThreshold overrides the minimum similarity score for search matches.
func WithThreshold(threshold float64) Option {
	return func(c *clientConfig) {
		c.threshold = threshold
	}
}

// WithKeyPrefix namespaces all store keys. Defaults to "prodmatch:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithLogger sets the client logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// SearchOption refines a Search call.
type SearchOption func(*searchConfig)

type searchConfig struct {
	category string
	clientID string
	limit    int
}

// InCategory restricts the search to one product category.
func InCategory(category string) SearchOption {
	return func(c *searchConfig) {
		c.category = category
	}
}

// ForClient records the query in the client's search history.
func ForClient(clientID string) SearchOption {
	return func(c *searchConfig) {
		c.clientID = clientID
	}
}

// WithLimit caps the number of search results.
func WithLimit(limit int) SearchOption {
	return func(c *searchConfig) {
		c.limit = limit
	}
}

// RecommendOption refines a Similar call.
type RecommendOption func(*recommendConfig)

type recommendConfig struct {
	limit             int
	category          string
	preferredCategory string
	personalized      bool
}

// MaxItems caps the number of recommendations.
func MaxItems(limit int) RecommendOption {
	return func(c *recommendConfig) {
		c.limit = limit
	}
}

// OnlyCategory restricts recommendations to one category.
func OnlyCategory(category string) RecommendOption {
	return func(c *recommendConfig) {
		c.category = category
	}
}

// PreferCategory floats products from the given category to the front of
// unanchored recommendations.
func PreferCategory(category string) RecommendOption {
	return func(c *recommendConfig) {
		c.preferredCategory = category
		c.personalized = true
	}
}

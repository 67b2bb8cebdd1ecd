package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodmatch",
			Name:      "search_queries_total",
			Help:      "Total number of search queries",
		},
		[]string{"kind", "status"}, // kind: products, suggestions
	)

	SearchResultCount = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prodmatch",
			Name:      "search_result_count",
			Help:      "Number of results returned per search query",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"kind"},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodmatch",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"kind", "personalized"}, // kind: similar, marketing
	)

	RateLimitRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prodmatch",
			Name:      "ratelimit_rejections_total",
			Help:      "Total number of rate limited requests",
		},
	)

	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "prodmatch",
			Name:      "catalog_products",
			Help:      "Number of products in the loaded catalog",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(SearchResultCount)
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(RateLimitRejectionsTotal)
	prometheus.MustRegister(CatalogProducts)
	searchMetricsRegistered = true
}

// Package chi implements the HTTP API on top of go-chi.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dema-cloud/prodmatch/internal/domain"
	"github.com/dema-cloud/prodmatch/internal/domain/product"
	"github.com/dema-cloud/prodmatch/internal/domain/rank"
	"github.com/dema-cloud/prodmatch/internal/metrics"
	healthuc "github.com/dema-cloud/prodmatch/internal/usecase/health"
	recommenduc "github.com/dema-cloud/prodmatch/internal/usecase/recommend"
	searchuc "github.com/dema-cloud/prodmatch/internal/usecase/search"
)

// ErrorCode identifies an API error class in responses.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeProductNotFound    ErrorCode = "product_not_found"
	CodeClientIDRequired   ErrorCode = "client_id_required"
	CodeRateLimited        ErrorCode = "rate_limited"
	CodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// profileWriter updates client marketing profiles.
type profileWriter interface {
	SetContact(ctx context.Context, clientID, email string, consent *bool) error
}

// Server wires the usecase services to HTTP handlers.
type Server struct {
	search        *searchuc.Service
	recommend     *recommenduc.Service
	health        *healthuc.Service
	profiles      profileWriter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	recommend *recommenduc.Service,
	health *healthuc.Service,
	profiles profileWriter,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		recommend: recommend,
		health:    health,
		profiles:  profiles,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, CodeProductNotFound),
		sentinelHandler(domain.ErrInvalidConfig, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrClientIDRequired, http.StatusBadRequest, CodeClientIDRequired),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, CodeCatalogUnavailable),
	}
	return s
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/api/v1/products/search", s.SearchProducts)
	r.Get("/api/v1/search/suggestions", s.SearchSuggestions)
	r.Get("/api/v1/recommendations", s.Recommendations)
	r.Get("/api/v1/marketing/suggestions", s.MarketingSuggestions)
	r.Post("/api/v1/marketing/profile", s.UpdateProfile)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchItemResponse is one scored product in a search response.
type SearchItemResponse struct {
	product.Product
	Score         float64  `json:"score"`
	MatchedFields []string `json:"matched_fields,omitempty"`
}

// SearchResponse is the body of GET /products/search.
type SearchResponse struct {
	Items []SearchItemResponse `json:"items"`
	Total int                  `json:"total"`
	Query string               `json:"query"`
}

// SearchProducts handles GET /api/v1/products/search.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	clientID := r.URL.Query().Get("clientId")

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	results, err := s.search.Products(r.Context(), q, category, clientID, limit)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("products", "error").Inc()
		s.handleDomainError(w, err)
		return
	}
	metrics.SearchQueriesTotal.WithLabelValues("products", "ok").Inc()
	metrics.SearchResultCount.WithLabelValues("products").Observe(float64(len(results)))

	items := make([]SearchItemResponse, len(results))
	for i, res := range results {
		items[i] = SearchItemResponse{
			Product:       res.Product,
			Score:         res.Score,
			MatchedFields: res.MatchedFields,
		}
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Items: items,
		Total: len(items),
		Query: q,
	})
}

// SuggestionsResponse is the body of GET /search/suggestions.
type SuggestionsResponse struct {
	Items []searchuc.Suggestion `json:"items"`
}

// SearchSuggestions handles GET /api/v1/search/suggestions.
func (s *Server) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	items, err := s.search.Suggest(r.Context(), q, limit)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("suggestions", "error").Inc()
		s.handleDomainError(w, err)
		return
	}
	metrics.SearchQueriesTotal.WithLabelValues("suggestions", "ok").Inc()
	metrics.SearchResultCount.WithLabelValues("suggestions").Observe(float64(len(items)))

	if items == nil {
		items = []searchuc.Suggestion{}
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Items: items})
}

// RecommendationsResponse is the body of the recommendation endpoints.
type RecommendationsResponse struct {
	Items        []product.Product `json:"items"`
	Personalized bool              `json:"personalized"`
}

// Recommendations handles GET /api/v1/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	sku := r.URL.Query().Get("sku")
	category := r.URL.Query().Get("category")
	preferred := r.URL.Query().Get("preferredCategory")
	personalized := r.URL.Query().Get("personalized") == "true"

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	req := rank.NewRequest(limit, category, preferred, personalized)
	recs, err := s.recommend.Similar(r.Context(), sku, req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	metrics.RecommendationsTotal.
		WithLabelValues("similar", strconv.FormatBool(recs.Personalized)).Inc()

	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Items:        emptyIfNil(recs.Items),
		Personalized: recs.Personalized,
	})
}

// MarketingSuggestions handles GET /api/v1/marketing/suggestions.
func (s *Server) MarketingSuggestions(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	recs, err := s.recommend.Marketing(r.Context(), clientID, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	metrics.RecommendationsTotal.
		WithLabelValues("marketing", strconv.FormatBool(recs.Personalized)).Inc()

	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Items:        emptyIfNil(recs.Items),
		Personalized: recs.Personalized,
	})
}

// UpdateProfileRequest is the body of POST /marketing/profile.
type UpdateProfileRequest struct {
	ClientID string `json:"client_id"`
	Email    string `json:"email,omitempty"`
	Consent  *bool  `json:"consent,omitempty"`
}

// UpdateProfile handles POST /api/v1/marketing/profile.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.ClientID == "" {
		writeError(w, http.StatusBadRequest, CodeClientIDRequired, "client_id is required")
		return
	}

	if err := s.profiles.SetContact(r.Context(), req.ClientID, req.Email, req.Consent); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// queryInt parses an optional integer query parameter. On a malformed value
// it writes a 400 response and reports false.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func emptyIfNil(items []product.Product) []product.Product {
	if items == nil {
		return []product.Product{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrInvalidConfig,
		domain.ErrClientIDRequired,
		domain.ErrRateLimited,
		domain.ErrCatalogUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

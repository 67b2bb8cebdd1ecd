package chi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/dema-cloud/prodmatch/internal/domain"
	"github.com/dema-cloud/prodmatch/internal/metrics"
	"github.com/dema-cloud/prodmatch/internal/repository/ratelimit"
)

// requestLimiter is the consumer interface for the rate limit middleware.
type requestLimiter interface {
	Allow(ctx context.Context, identifier string) (ratelimit.Status, error)
}

// RateLimitMiddleware limits API requests per client. Requests carrying a
// clientId are limited per client, anonymous requests per remote IP. Health
// and metrics routes are exempt.
func RateLimitMiddleware(limiter requestLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			status, err := limiter.Allow(r.Context(), clientIdentifier(r))
			switch {
			case err == nil:
				w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(status.Remaining, 10))
				next.ServeHTTP(w, r)
			case errors.Is(err, domain.ErrRateLimited):
				metrics.RateLimitRejectionsTotal.Inc()
				retryAfter := int(status.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
			default:
				// Limiter store failure: let the request through rather than
				// turning a Redis outage into an API outage.
				next.ServeHTTP(w, r)
			}
		})
	}
}

func clientIdentifier(r *http.Request) string {
	if id := r.URL.Query().Get("clientId"); id != "" {
		return "client:" + id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}

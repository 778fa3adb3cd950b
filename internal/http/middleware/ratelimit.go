package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/cache"
)

// RateLimit limits requests per client IP. Limiter failures let the request
// through.
func RateLimit(limiter cache.RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.WarnContext(r.Context(), "error checking rate limit", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
				writeError(w, r, logger, apperr.TooManyRequestsErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the request's remote host. chi's RealIP middleware rewrites
// RemoteAddr from proxy headers upstream.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

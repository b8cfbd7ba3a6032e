package middleware

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/ratelimit"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Result, error)
}

// RateLimit throttles requests per client IP. Limiter failures let the request through.
func RateLimit(limiter RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				slog.Error("rate limiter unavailable", "error", err, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}
			if !res.Allowed {
				response.TooManyRequests(w, int(math.Ceil(res.RetryAfter.Seconds())))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

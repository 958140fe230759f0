package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/api/response"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/repository/redis"
)

// RateLimitMiddleware throttles the chat endpoint per client IP
type RateLimitMiddleware struct {
	limiter *redis.RateLimiter
}

// NewRateLimitMiddleware creates the middleware. A nil limiter disables
// throttling (no Redis configured).
func NewRateLimitMiddleware(limiter *redis.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit enforces the fixed-window allowance
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}

		allowed, remaining, reset, err := m.limiter.Allow(r.Context(), key)
		if err != nil {
			// a broken limiter must not take the chat down
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			response.TooManyRequests(w, "rate limit exceeded, slow down")
			return
		}

		next.ServeHTTP(w, r)
	})
}

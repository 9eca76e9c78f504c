package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"
)

// Limiter decides whether one more request from a client is allowed.
// It is injected into the middleware so handlers and tests never depend on
// wall-clock time or process-wide state.
type Limiter interface {
	Allow(client string) bool
}

// TokenBucketLimiter refills rate tokens per second up to bucketSize for
// each client key.
type TokenBucketLimiter struct {
	tokens     map[string]float64
	lastRefill map[string]time.Time
	mu         sync.Mutex
	rate       float64
	bucketSize float64
	now        func() time.Time
}

func NewTokenBucketLimiter(rate, bucketSize float64, now func() time.Time) *TokenBucketLimiter {
	if now == nil {
		now = time.Now
	}
	return &TokenBucketLimiter{
		tokens:     make(map[string]float64),
		lastRefill: make(map[string]time.Time),
		rate:       rate,
		bucketSize: bucketSize,
		now:        now,
	}
}

func (l *TokenBucketLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if _, exists := l.lastRefill[client]; !exists {
		l.tokens[client] = l.bucketSize
		l.lastRefill[client] = now
	}

	elapsed := now.Sub(l.lastRefill[client])
	refill := elapsed.Seconds() * l.rate
	l.tokens[client] = min(l.bucketSize, l.tokens[client]+refill)
	l.lastRefill[client] = now

	if l.tokens[client] < 1 {
		return false
	}
	l.tokens[client]--
	return true
}

// RateLimitMiddleware rejects clients that exhausted their bucket with a 429.
func RateLimitMiddleware(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientAddr(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Rate limit exceeded. Please try again later.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

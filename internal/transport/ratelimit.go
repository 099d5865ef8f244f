// Copyright 2025 Joseph Cumines
//
// Token bucket rate limiter for HTTP transport

package transport

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a token bucket holding up to twice the per-second rate.
// A nil *RateLimiter allows everything.
type RateLimiter struct {
	clock      func() time.Time
	lastUpdate time.Time
	rate       float64
	burst      float64
	tokens     float64
	mu         sync.Mutex
}

// NewRateLimiter returns a limiter admitting requestsPerSecond, or nil
// (unlimited) when requestsPerSecond is not positive. A nil clock means
// time.Now.
func NewRateLimiter(requestsPerSecond int, clock func() time.Time) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if clock == nil {
		clock = time.Now
	}
	burst := float64(requestsPerSecond * 2)
	return &RateLimiter{
		clock:      clock,
		lastUpdate: clock(),
		rate:       float64(requestsPerSecond),
		burst:      burst,
		tokens:     burst,
	}
}

// Allow consumes a token, reporting false if none is available.
func (r *RateLimiter) Allow() bool {
	if r == nil {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()
	r.tokens = min(r.burst, r.tokens+now.Sub(r.lastUpdate).Seconds()*r.rate)
	r.lastUpdate = now

	if r.tokens < 1 {
		return false
	}
	r.tokens--
	return true
}

// RateLimitMiddleware rejects requests with 429 once limiter is exhausted.
// The health endpoint is exempt.
func RateLimitMiddleware(limiter *RateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == healthPath || limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Retry-After", "1")
		http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
	})
}

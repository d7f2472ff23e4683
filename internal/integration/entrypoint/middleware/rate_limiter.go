// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/financaspro/backend/internal/domain/error"
	"github.com/financaspro/backend/internal/integration/entrypoint/dto"
)

const (
	defaultMutationBudget = 30
	defaultWindow         = 1 * time.Minute
)

// bucket is a fixed-window counter for one caller.
type bucket struct {
	used      int
	windowEnd time.Time
}

// RateLimiter caps mutating requests per caller per window. Mutating routes
// run behind authentication, so the key is the session owner; unauthenticated
// callers fall back to the client IP.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	budget  int
	window  time.Duration
}

// NewRateLimiter creates a rate limiter with the default budget.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMutationBudget, defaultWindow)
}

// NewRateLimiterWithConfig creates a rate limiter with a custom budget and window.
func NewRateLimiterWithConfig(budget int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		budget:  budget,
		window:  window,
	}
}

// Middleware returns a Gin handler enforcing the mutation budget.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if session, ok := GetSessionFromContext(c); ok {
			key = session.OwnerID.String()
		}

		if !rl.take(key) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// take consumes one unit of the caller's budget, opening a fresh window when
// the current one has elapsed.
func (rl *RateLimiter) take(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok || now.After(b.windowEnd) {
		rl.buckets[key] = &bucket{used: 1, windowEnd: now.Add(rl.window)}
		return true
	}

	if b.used >= rl.budget {
		return false
	}
	b.used++
	return true
}

// Reset drops all counters (useful for testing).
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.buckets = make(map[string]*bucket)
}

// Cleanup removes elapsed windows so idle callers don't accumulate.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, b := range rl.buckets {
		if now.After(b.windowEnd) {
			delete(rl.buckets, key)
		}
	}
}

package mockapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter throttles per-user request rates through Redis. The counter
// lives in a one-minute window keyed by user ID.
type RateLimiter struct {
	rdb               *redis.Client
	requestsPerMinute int
	burst             int
}

// NewRateLimiter creates a rate limiter on an existing Redis client.
func NewRateLimiter(rdb *redis.Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		rdb:               rdb,
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
	}
}

// Allow checks whether one more request fits in the current window.
// Returns (allowed, remaining, resetTime, error).
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	fullKey := rateLimitPrefix + key
	windowEnd := time.Now().Truncate(time.Minute).Add(time.Minute)

	pipe := r.rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	count := incrCmd.Val()
	limit := int64(r.requestsPerMinute + r.burst)
	remaining := int(limit - count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= limit, remaining, windowEnd, nil
}

// Reset clears the counter for a key.
func (r *RateLimiter) Reset(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, rateLimitPrefix+key).Err()
}

// limit applies the rate limiter to authenticated routes. A limiter failure
// lets the request through; throttling must not take the mock down with it.
func (r *RateLimiter) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		userID, ok := callerID(req.Context())
		if !ok {
			unauthorized(w, "unauthorized")
			return
		}

		allowed, remaining, resetTime, err := r.Allow(req.Context(), strconv.FormatInt(userID, 10))
		if err != nil {
			next.ServeHTTP(w, req)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.UTC().Format("2006-01-02T15:04:05Z"))

		if !allowed {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, req)
	})
}

package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	rateLimitMax    = 5
	rateLimitWindow = time.Minute
)

// rateLimiter keeps a sliding window of send timestamps per client IP
// behind a single lock.
type rateLimiter struct {
	mu      sync.Mutex
	history map[string][]time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{history: make(map[string][]time.Time)}
}

func (rl *rateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	kept := rl.history[ip][:0]
	for _, ts := range rl.history[ip] {
		if now.Sub(ts) < rateLimitWindow {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= rateLimitMax {
		rl.history[ip] = kept
		return false
	}
	rl.history[ip] = append(kept, now)
	return true
}

// MessageRateLimit caps message sends at 5 per minute per client IP.
// Non-POST requests pass through untouched.
func MessageRateLimit() fiber.Handler {
	limiter := newRateLimiter()

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		if !limiter.allow(c.IP(), time.Now()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Maximum 5 messages per minute allowed.",
			})
		}
		return c.Next()
	}
}

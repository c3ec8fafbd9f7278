package middleware

import (
	"sync"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// refillRate spreads maxRequests tokens over window. It stays finite for any positive window.
func refillRate(maxRequests int, window time.Duration) rate.Limit {
	return rate.Limit(float64(maxRequests) / window.Seconds())
}

// RateLimiter limits requests per client IP with a token bucket refilled evenly over window.
// Idle visitors are swept on the request path; no goroutine is started.
// maxRequests <= 0 disables limiting.
func RateLimiter(maxRequests int, window time.Duration) fiber.Handler {
	if maxRequests <= 0 || window <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	store := make(map[string]*visitor)
	var mu sync.Mutex

	expiry := window * 3
	if expiry < time.Minute {
		expiry = time.Minute
	}
	lastSweep := time.Now()

	r := refillRate(maxRequests, window)

	return func(c *fiber.Ctx) error {
		key := c.IP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > expiry {
			for ip, v := range store {
				if now.Sub(v.lastSeen) > expiry {
					delete(store, ip)
				}
			}
			lastSweep = now
		}
		v, exists := store[key]
		if !exists {
			v = &visitor{limiter: rate.NewLimiter(r, maxRequests)}
			store[key] = v
		}
		v.lastSeen = now
		allowed := v.limiter.Allow()
		mu.Unlock()

		if !allowed {
			logger.Get().Warn("Rate limit exceeded", zap.String("ip", key), zap.String("path", c.Path()))
			return domain.NewError(domain.CodeTooManyRequests, "Too many requests, please try again later", nil)
		}
		return c.Next()
	}
}

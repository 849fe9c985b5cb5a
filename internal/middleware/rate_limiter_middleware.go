package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter allows max requests per client IP within a sliding window.
// name tags the log line written when a client is throttled.
func RateLimiter(name string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 50
	}
	if window <= 0 {
		window = 1 * time.Minute
	}
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			slog.Warn("rate limit reached", "limiter", name, "ip", c.IP(), "path", c.Path())
			c.Set(fiber.HeaderRetryAfter, retryAfter)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

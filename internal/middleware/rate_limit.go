package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
)

// RateLimit allows max requests per client IP within a sliding window.
func RateLimit(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return dto.Fail(c, fiber.StatusTooManyRequests, message)
		},
	})
}

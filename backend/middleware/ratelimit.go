package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/orderlycore/orderlycore/backend/utils"
)

// RateLimit limits requests per client IP within a sliding window.
func RateLimit(limit int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               limit,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      utils.GetIPAddress,
		LimitReached: func(c *fiber.Ctx) error {
			slog.Warn("Rate limit exceeded",
				slog.String("ip", utils.GetIPAddress(c)),
				slog.String("path", c.Path()),
				slog.String("method", c.Method()),
				slog.Int("limit", limit),
				slog.Duration("window", window))
			return utils.SendTooManyRequests(c)
		},
	})
}

// UploadRateLimit is the tighter limit applied to banner uploads.
func UploadRateLimit() fiber.Handler {
	return RateLimit(10, time.Hour)
}

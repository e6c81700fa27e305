package middleware

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orderlycore/orderlycore/backend/utils"
)

const (
	apiKeyHeader = "X-API-Key"
	localsClient = "api_client"
)

// APIKeyRequired guards write routes with a shared key sent either as
// X-API-Key or as a bearer token. An empty configured key rejects every
// request so a misconfigured deployment stays read-only.
func APIKeyRequired(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			slog.Warn("Write route called but no API key is configured",
				slog.String("path", c.Path()),
				slog.String("ip", utils.GetIPAddress(c)))
			return utils.SendForbidden(c, "Write access is disabled")
		}

		provided := extractAPIKey(c)
		if provided == "" {
			return utils.SendUnauthorized(c, "API key required")
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			slog.Warn("Invalid API key",
				slog.String("path", c.Path()),
				slog.String("ip", utils.GetIPAddress(c)))
			return utils.SendUnauthorized(c, "Invalid API key")
		}

		c.Locals(localsClient, "dashboard")
		return c.Next()
	}
}

func extractAPIKey(c *fiber.Ctx) string {
	if key := c.Get(apiKeyHeader); key != "" {
		return key
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// apiClient returns the authenticated client name, if any.
func apiClient(c *fiber.Ctx) string {
	client, _ := c.Locals(localsClient).(string)
	return client
}

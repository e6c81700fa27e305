package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orderlycore/orderlycore/backend/config"
	webmodels "github.com/orderlycore/orderlycore/backend/models"
	"github.com/orderlycore/orderlycore/backend/utils"
	"github.com/orderlycore/orderlycore/internal/domain/leveling"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// BannerStore is the level-up banner bucket. It is nil when Spaces is not
// configured.
type BannerStore interface {
	BannerURL(ctx context.Context, guildID string) (string, bool)
	Upload(ctx context.Context, guildID string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, guildID string) error
}

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config  *config.WebAppConfig
	DB      Pinger
	Repos   *webmodels.Repositories
	Queries *leveling.Queries
	Banners BannerStore
	Version string
	Commit  string
	Now     func() time.Time
}

func (w *WebApp) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	timeout := 10 * time.Second
	if w.Config != nil && w.Config.RequestTimeout > 0 {
		timeout = w.Config.RequestTimeout
	}
	return context.WithTimeout(c.UserContext(), timeout)
}

func (w *WebApp) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// guildParam returns the validated :guild parameter or writes a 400.
func guildParam(c *fiber.Ctx) (string, bool) {
	id := c.Params("guild")
	if !utils.ValidSnowflake(id) {
		_ = utils.SendBadRequest(c, "Invalid guild ID", map[string]string{"guild": id})
		return "", false
	}
	return id, true
}

func HealthCheck(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		health := webmodels.NewHealthCheck(w.Version, w.Commit)
		if err := w.DB.Ping(ctx); err != nil {
			health.AddComponent("database", "unhealthy", err.Error())
		} else {
			health.AddComponent("database", "healthy", "")
		}
		if w.Banners == nil {
			health.AddComponent("banners", "disabled", "")
		} else {
			health.AddComponent("banners", "healthy", "")
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, health)
	}
}

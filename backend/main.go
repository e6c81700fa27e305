package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/orderlycore/orderlycore/backend/config"
	"github.com/orderlycore/orderlycore/backend/handlers"
	"github.com/orderlycore/orderlycore/backend/middleware"
	webmodels "github.com/orderlycore/orderlycore/backend/models"
	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/internal/domain/voice"
	"github.com/orderlycore/orderlycore/orderly"
	"github.com/orderlycore/orderlycore/orderly/database"
	"github.com/orderlycore/orderlycore/orderly/database/repositories"
	"github.com/orderlycore/orderlycore/orderly/logger"
	"github.com/orderlycore/orderlycore/orderly/services"
	"github.com/orderlycore/orderlycore/orderly/sessions"
)

var (
	version = "dev"
	commit  = "unknown"
)

const appName = "OrderlyCore-Backend"

func main() {
	configPath := "../config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	slog.SetDefault(slog.New(logger.NewHandler(appName, slog.LevelInfo)))

	cfg, err := orderly.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(appName, cfg.Log.Level)))

	logger.LogSystem("Starting OrderlyCore dashboard API",
		slog.String("version", version),
		slog.String("commit", commit))

	webCfg := config.NewWebAppConfig(cfg, cfg.Log.Level <= slog.LevelDebug)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	repos := webmodels.NewRepositories(
		repositories.NewProgressRepository(db.BunDB()),
		repositories.NewVoiceStatsRepository(db.BunDB()),
		repositories.NewGuildSettingsRepository(db.BunDB()),
	)

	// Open voice sessions live in Redis; without it profiles omit them.
	var tracker *voice.Tracker
	if cfg.Redis.Addr != "" {
		client, err := sessions.Connect(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, open voice sessions will not be shown",
				slog.String("type", "sys"),
				slog.Any("error", err))
		} else {
			defer client.Close()
			tracker = voice.NewTracker(sessions.NewRedisStore(client))
		}
	}

	webApp := &handlers.WebApp{
		Config:  webCfg,
		DB:      db,
		Repos:   repos,
		Queries: leveling.NewQueries(repos.Progress, repos.VoiceStats, tracker, cfg.Leveling.RankCacheTTL()),
		Version: version,
		Commit:  commit,
	}
	if webCfg.BannersEnabled() {
		banners, err := services.NewBannerStore(ctx, cfg.Spaces.Key, cfg.Spaces.Secret, cfg.Spaces.Region, cfg.Spaces.Bucket, cfg.Spaces.BannerPrefix)
		if err != nil {
			slog.Error("Failed to initialize banner storage", slog.String("type", "sys"), slog.Any("error", err))
			os.Exit(1)
		}
		webApp.Banners = banners
	}

	app := newApp(webApp)

	address := webCfg.Address()
	logger.LogSystem("Starting backend server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	logger.LogSystem("Shutting down backend server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), webCfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	logger.LogSystem("Backend server shutdown complete")
}

func newApp(webApp *handlers.WebApp) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "OrderlyCore Dashboard API",
		ServerHeader: appName,
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    9 << 20,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: webApp.Config.AllowedOrigins(),
		AllowMethods: "GET,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key",
	}))
	app.Use(middleware.LoggingMiddleware())

	setupRoutes(app, webApp)
	return app
}

func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "OrderlyCore Dashboard API",
			"version": webApp.Version,
			"status":  "running",
		})
	})

	api := app.Group("/api", middleware.RateLimit(webApp.Config.RateLimit, webApp.Config.RateWindow))
	guild := api.Group("/guilds/:guild")

	guild.Get("/leaderboard", handlers.Leaderboard(webApp))
	guild.Get("/users/:user/progress", handlers.MemberProgress(webApp))
	guild.Get("/settings/leveling", handlers.GetSettings(webApp))
	guild.Get("/banner", handlers.GetBanner(webApp))

	write := middleware.APIKeyRequired(webApp.Config.APIKey())
	guild.Put("/settings/leveling", write, middleware.AuditLogMiddleware("update_settings"), handlers.UpdateSettings(webApp))
	guild.Put("/banner", write, middleware.UploadRateLimit(), middleware.AuditLogMiddleware("upload_banner"), handlers.UploadBanner(webApp))
	guild.Delete("/banner", write, middleware.AuditLogMiddleware("delete_banner"), handlers.DeleteBanner(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()))
		return c.Status(fiber.StatusNotFound).JSON(webmodels.NewErrorResponse(
			"NOT_FOUND", "The requested endpoint does not exist", nil))
	})
}

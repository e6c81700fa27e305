package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/redis/go-redis/v9"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/internal/domain/voice"
	"github.com/orderlycore/orderlycore/orderly"
	"github.com/orderlycore/orderlycore/orderly/commands"
	"github.com/orderlycore/orderlycore/orderly/database"
	"github.com/orderlycore/orderlycore/orderly/database/repositories"
	"github.com/orderlycore/orderlycore/orderly/handlers"
	"github.com/orderlycore/orderlycore/orderly/logger"
	"github.com/orderlycore/orderlycore/orderly/services"
	"github.com/orderlycore/orderlycore/orderly/sessions"
)

var (
	version = "dev"
	commit  = "unknown"
)

const appName = "OrderlyCore"

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(appName, slog.LevelInfo)))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := orderly.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(appName, cfg.Log.Level)))

	logger.LogSystem("Starting OrderlyCore",
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbStartTime := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(-1)
	}
	logger.LogSystem("Database ready",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	b := orderly.New(*cfg, version, commit)
	b.DB = db
	b.ProgressRepository = repositories.NewProgressRepository(db.BunDB())
	b.VoiceStatsRepository = repositories.NewVoiceStatsRepository(db.BunDB())
	b.SettingsRepository = repositories.NewGuildSettingsRepository(db.BunDB())

	var store voice.Store
	if cfg.Redis.Addr != "" {
		client, err := sessions.Connect(ctx, cfg.Redis)
		if err != nil {
			slog.Error("Failed to connect to Redis", slog.String("type", "sys"), slog.Any("error", err))
			os.Exit(-1)
		}
		defer func(c *redis.Client) { _ = c.Close() }(client)
		store = sessions.NewRedisStore(client)
	} else {
		slog.Warn("No Redis address configured, voice sessions are kept in memory and lost on restart",
			slog.String("type", "sys"))
		store = voice.NewMemoryStore()
	}
	tracker := voice.NewTracker(store)
	b.Queries = leveling.NewQueries(b.ProgressRepository, b.VoiceStatsRepository, tracker, cfg.Leveling.RankCacheTTL())

	if cfg.Spaces.Key != "" {
		banners, err := services.NewBannerStore(ctx, cfg.Spaces.Key, cfg.Spaces.Secret, cfg.Spaces.Region, cfg.Spaces.Bucket, cfg.Spaces.BannerPrefix)
		if err != nil {
			slog.Error("Failed to initialize banner storage", slog.String("type", "sys"), slog.Any("error", err))
			os.Exit(-1)
		}
		b.Banners = banners
	}

	h := handler.New()
	commands.Register(h, b)

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	var notifierOpts []services.NotifierOption
	if b.Banners != nil {
		notifierOpts = append(notifierOpts, services.WithBanners(b.Banners))
	}
	if cfg.GenAI.APIKey != "" {
		flavor, err := services.NewGeminiFlavor(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model, time.Duration(cfg.GenAI.TimeoutSeconds)*time.Second)
		if err != nil {
			slog.Warn("Flavor text disabled", slog.String("type", "sys"), slog.Any("error", err))
		} else {
			notifierOpts = append(notifierOpts, services.WithFlavor(flavor))
		}
	}
	b.Roles = services.NewGuildRoles(b.Client)
	b.Notifier = services.NewLevelUpNotifier(b.Client.Rest(), notifierOpts...)

	b.Leveling = leveling.NewService(cfg.Leveling.Domain(), leveling.Deps{
		Progress:   b.ProgressRepository,
		VoiceStats: b.VoiceStatsRepository,
		Settings:   b.SettingsRepository,
		Tracker:    tracker,
		Roles:      b.Roles,
		Notifier:   b.Notifier,
		Queries:    b.Queries,
	})
	b.Client.AddEventListeners(handlers.NewLevelingHandler(b.Leveling, cfg.Leveling.EventTimeout()).Listeners()...)

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
		b.Notifier.Wait()
	}()

	if *shouldSyncCommands {
		logger.LogSystem("Syncing commands", slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("status", "failed"),
			)
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	logger.LogSystem("Shutting down bot...")
}

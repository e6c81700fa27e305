package orderly

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/config"
	"github.com/orderlycore/orderlycore/orderly/database"
	"github.com/orderlycore/orderlycore/orderly/sessions"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Leveling = cfg.Leveling.WithDefaults()
	return &cfg, nil
}

type Config struct {
	Log      LogConfig            `toml:"log"`
	Bot      BotConfig            `toml:"bot"`
	DB       database.DBConfig    `toml:"db"`
	Redis    sessions.RedisConfig `toml:"redis"`
	Leveling LevelingConfig       `toml:"leveling"`
	Spaces   SpacesConfig         `toml:"spaces"`
	GenAI    GenAIConfig          `toml:"genai"`
	Web      WebConfig            `toml:"web"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

// LevelingConfig durations are whole seconds.
type LevelingConfig struct {
	MessageCooldownSeconds int   `toml:"message_cooldown_seconds"`
	MessageXPMin           int64 `toml:"message_xp_min"`
	MessageXPMax           int64 `toml:"message_xp_max"`
	VoiceXPPerMinute       int64 `toml:"voice_xp_per_minute"`
	RankCacheTTLSeconds    int   `toml:"rank_cache_ttl_seconds"`
	EventTimeoutSeconds    int   `toml:"event_timeout_seconds"`
}

func (c LevelingConfig) WithDefaults() LevelingConfig {
	if c.MessageCooldownSeconds <= 0 {
		c.MessageCooldownSeconds = int(leveling.DefaultMessageCooldown / time.Second)
	}
	if c.MessageXPMin <= 0 || c.MessageXPMax < c.MessageXPMin {
		c.MessageXPMin, c.MessageXPMax = leveling.DefaultMessageXPMin, leveling.DefaultMessageXPMax
	}
	if c.VoiceXPPerMinute <= 0 {
		c.VoiceXPPerMinute = leveling.DefaultVoiceXPPerMinute
	}
	if c.RankCacheTTLSeconds <= 0 {
		c.RankCacheTTLSeconds = int(leveling.DefaultRankCacheTTL / time.Second)
	}
	if c.EventTimeoutSeconds <= 0 {
		c.EventTimeoutSeconds = int(config.EventTimeout / time.Second)
	}
	return c
}

func (c LevelingConfig) Domain() leveling.Config {
	return leveling.Config{
		MessageCooldown:  time.Duration(c.MessageCooldownSeconds) * time.Second,
		MessageXPMin:     c.MessageXPMin,
		MessageXPMax:     c.MessageXPMax,
		VoiceXPPerMinute: c.VoiceXPPerMinute,
	}
}

func (c LevelingConfig) RankCacheTTL() time.Duration {
	return time.Duration(c.RankCacheTTLSeconds) * time.Second
}

func (c LevelingConfig) EventTimeout() time.Duration {
	return time.Duration(c.EventTimeoutSeconds) * time.Second
}

// SpacesConfig points at an S3-compatible bucket holding level-up banners.
// An empty Key disables banners.
type SpacesConfig struct {
	Key          string `toml:"key"`
	Secret       string `toml:"secret"`
	Region       string `toml:"region"`
	Bucket       string `toml:"bucket"`
	BannerPrefix string `toml:"banner_prefix"`
}

// GenAIConfig enables flavor text on level-up messages. An empty APIKey
// keeps the fixed templates.
type GenAIConfig struct {
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type WebConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	APIKey         string   `toml:"api_key"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

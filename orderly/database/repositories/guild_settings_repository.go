package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/database/models"
)

const settingsEntity = "guild_settings"

type GuildSettingsRepository struct {
	*BaseRepository
	db *bun.DB
}

var _ leveling.SettingsRepository = (*GuildSettingsRepository)(nil)

func NewGuildSettingsRepository(db *bun.DB) *GuildSettingsRepository {
	return &GuildSettingsRepository{BaseRepository: NewBaseRepository(db), db: db}
}

// Get returns leveling.DefaultSettings when the guild has no row.
func (r *GuildSettingsRepository) Get(ctx context.Context, guildID string) (*leveling.Settings, error) {
	row := new(models.GuildSettings)
	err := r.read(ctx, settingsEntity, "get", guildID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(row).
			Where("guild_id = ?", guildID).
			Scan(ctx)
	})
	if IsNotFound(err) {
		return leveling.DefaultSettings(guildID), nil
	}
	if err != nil {
		return nil, err
	}
	return SettingsFromModel(row), nil
}

func (r *GuildSettingsRepository) Save(ctx context.Context, s *leveling.Settings) error {
	row := SettingsToModel(s)
	now := time.Now()
	row.CreatedAt, row.UpdatedAt = now, now

	return r.exec(ctx, settingsEntity, "save", s.GuildID, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(row).
			On("CONFLICT (guild_id) DO UPDATE").
			Set("enabled = EXCLUDED.enabled").
			Set("notification_channel_id = EXCLUDED.notification_channel_id").
			Set("role_rewards = EXCLUDED.role_rewards").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
	})
}

func (r *GuildSettingsRepository) DeleteGuild(ctx context.Context, guildID string) error {
	return r.exec(ctx, settingsEntity, "delete_guild", guildID, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewDelete().
			Model((*models.GuildSettings)(nil)).
			Where("guild_id = ?", guildID).
			Exec(ctx)
	})
}

func SettingsFromModel(row *models.GuildSettings) *leveling.Settings {
	s := &leveling.Settings{
		GuildID:               row.GuildID,
		Enabled:               row.Enabled,
		NotificationChannelID: row.NotificationChannelID,
		RoleRewards:           make([]leveling.RoleReward, 0, len(row.RoleRewards)),
	}
	for _, rr := range row.RoleRewards {
		s.RoleRewards = append(s.RoleRewards, leveling.RoleReward{Level: rr.Level, RoleID: rr.RoleID})
	}
	return s
}

func SettingsToModel(s *leveling.Settings) *models.GuildSettings {
	row := &models.GuildSettings{
		GuildID:               s.GuildID,
		Enabled:               s.Enabled,
		NotificationChannelID: s.NotificationChannelID,
		RoleRewards:           make([]models.RoleReward, 0, len(s.RoleRewards)),
	}
	for _, rr := range s.RoleRewards {
		row.RoleRewards = append(row.RoleRewards, models.RoleReward{Level: rr.Level, RoleID: rr.RoleID})
	}
	return row
}

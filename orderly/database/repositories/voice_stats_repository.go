package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/database/models"
)

const voiceStatsEntity = "voice_stats"

type VoiceStatsRepository struct {
	*BaseRepository
	db *bun.DB
}

var _ leveling.VoiceStatsRepository = (*VoiceStatsRepository)(nil)

func NewVoiceStatsRepository(db *bun.DB) *VoiceStatsRepository {
	return &VoiceStatsRepository{BaseRepository: NewBaseRepository(db), db: db}
}

func (r *VoiceStatsRepository) Get(ctx context.Context, guildID, userID string) (*leveling.VoiceStats, error) {
	row := new(models.VoiceStats)
	err := r.read(ctx, voiceStatsEntity, "get", guildID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(row).
			Where("guild_id = ?", guildID).
			Where("user_id = ?", userID).
			Scan(ctx)
	})
	if IsNotFound(err) {
		return &leveling.VoiceStats{GuildID: guildID, UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &leveling.VoiceStats{
		GuildID:       row.GuildID,
		UserID:        row.UserID,
		TotalStayTime: time.Duration(row.TotalStayMS) * time.Millisecond,
		Sessions:      row.Sessions,
	}, nil
}

// AddStayTime increments the total in SQL so concurrent sessions of the same
// member never overwrite each other.
func (r *VoiceStatsRepository) AddStayTime(ctx context.Context, guildID, userID string, d time.Duration) error {
	row := &models.VoiceStats{
		GuildID:     guildID,
		UserID:      userID,
		TotalStayMS: d.Milliseconds(),
		Sessions:    1,
		UpdatedAt:   time.Now(),
	}
	return r.exec(ctx, voiceStatsEntity, "add_stay_time", guildID, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(row).
			On("CONFLICT (guild_id, user_id) DO UPDATE").
			Set("total_stay_ms = ?TableAlias.total_stay_ms + EXCLUDED.total_stay_ms").
			Set("sessions = ?TableAlias.sessions + EXCLUDED.sessions").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
	})
}

func (r *VoiceStatsRepository) DeleteGuild(ctx context.Context, guildID string) error {
	return r.exec(ctx, voiceStatsEntity, "delete_guild", guildID, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewDelete().
			Model((*models.VoiceStats)(nil)).
			Where("guild_id = ?", guildID).
			Exec(ctx)
	})
}

// ImportBatch overwrites totals with legacy values.
func (r *VoiceStatsRepository) ImportBatch(ctx context.Context, rows []models.VoiceStats) error {
	if len(rows) == 0 {
		return nil
	}
	return r.exec(ctx, voiceStatsEntity, "import", rows[0].GuildID, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(&rows).
			On("CONFLICT (guild_id, user_id) DO UPDATE").
			Set("total_stay_ms = EXCLUDED.total_stay_ms").
			Set("sessions = EXCLUDED.sessions").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
	})
}

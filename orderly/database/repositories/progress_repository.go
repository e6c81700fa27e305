package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/database/models"
)

const progressEntity = "user_progress"

type ProgressRepository struct {
	*BaseRepository
	db *bun.DB
}

var _ leveling.ProgressRepository = (*ProgressRepository)(nil)

func NewProgressRepository(db *bun.DB) *ProgressRepository {
	return &ProgressRepository{BaseRepository: NewBaseRepository(db), db: db}
}

func (r *ProgressRepository) Get(ctx context.Context, guildID, userID string) (*leveling.Progress, error) {
	row := new(models.UserProgress)
	err := r.read(ctx, progressEntity, "get", guildID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(row).
			Where("guild_id = ?", guildID).
			Where("user_id = ?", userID).
			Scan(ctx)
	})
	if IsNotFound(err) {
		return &leveling.Progress{GuildID: guildID, UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return ProgressFromModel(row), nil
}

// Save upserts the leveling columns only; boost columns keep whatever the
// boost feature wrote.
func (r *ProgressRepository) Save(ctx context.Context, p *leveling.Progress) error {
	row := ProgressToModel(p)
	row.UpdatedAt = time.Now()

	return r.exec(ctx, progressEntity, "save", p.GuildID, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(row).
			Column("guild_id", "user_id", "xp", "level", "message_count", "last_message_ts", "updated_at").
			On("CONFLICT (guild_id, user_id) DO UPDATE").
			Set("xp = EXCLUDED.xp").
			Set("level = EXCLUDED.level").
			Set("message_count = EXCLUDED.message_count").
			Set("last_message_ts = EXCLUDED.last_message_ts").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
	})
}

// ListByGuild returns the guild's records in leaderboard order.
func (r *ProgressRepository) ListByGuild(ctx context.Context, guildID string) ([]leveling.Progress, error) {
	var rows []models.UserProgress
	err := r.read(ctx, progressEntity, "list", guildID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("guild_id = ?", guildID).
			OrderExpr("level DESC, xp DESC, user_id ASC").
			Scan(ctx)
	})
	if err != nil && !IsNotFound(err) {
		return nil, err
	}

	out := make([]leveling.Progress, 0, len(rows))
	for i := range rows {
		out = append(out, *ProgressFromModel(&rows[i]))
	}
	return out, nil
}

func (r *ProgressRepository) DeleteGuild(ctx context.Context, guildID string) error {
	return r.exec(ctx, progressEntity, "delete_guild", guildID, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewDelete().
			Model((*models.UserProgress)(nil)).
			Where("guild_id = ?", guildID).
			Exec(ctx)
	})
}

// ImportBatch upserts full rows including boost state. Used by the legacy
// import only.
func (r *ProgressRepository) ImportBatch(ctx context.Context, rows []models.UserProgress) error {
	if len(rows) == 0 {
		return nil
	}
	return r.exec(ctx, progressEntity, "import", rows[0].GuildID, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(&rows).
			On("CONFLICT (guild_id, user_id) DO UPDATE").
			Set("xp = EXCLUDED.xp").
			Set("level = EXCLUDED.level").
			Set("message_count = EXCLUDED.message_count").
			Set("last_message_ts = EXCLUDED.last_message_ts").
			Set("boost_active = EXCLUDED.boost_active").
			Set("boost_expires_at = EXCLUDED.boost_expires_at").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
	})
}

func ProgressFromModel(row *models.UserProgress) *leveling.Progress {
	p := &leveling.Progress{
		GuildID:      row.GuildID,
		UserID:       row.UserID,
		XP:           row.XP,
		Level:        row.Level,
		MessageCount: row.MessageCount,
	}
	if row.LastMessageTS > 0 {
		p.LastMessageAt = time.UnixMilli(row.LastMessageTS)
	}
	if row.BoostActive || !row.BoostExpiresAt.IsZero() {
		p.Boost = &leveling.Boost{Active: row.BoostActive, ExpiresAt: row.BoostExpiresAt}
	}
	return p
}

func ProgressToModel(p *leveling.Progress) *models.UserProgress {
	row := &models.UserProgress{
		GuildID:      p.GuildID,
		UserID:       p.UserID,
		XP:           p.XP,
		Level:        p.Level,
		MessageCount: p.MessageCount,
	}
	if !p.LastMessageAt.IsZero() {
		row.LastMessageTS = p.LastMessageAt.UnixMilli()
	}
	if p.Boost != nil {
		row.BoostActive = p.Boost.Active
		row.BoostExpiresAt = p.Boost.ExpiresAt
	}
	return row
}

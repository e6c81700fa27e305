package models

import (
	"time"

	"github.com/uptrace/bun"
)

type VoiceStats struct {
	bun.BaseModel `bun:"table:voice_stats,alias:vs"`

	GuildID     string    `bun:"guild_id,pk"`
	UserID      string    `bun:"user_id,pk"`
	TotalStayMS int64     `bun:"total_stay_ms,notnull,default:0"`
	Sessions    int64     `bun:"sessions,notnull,default:0"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserProgress is one member's leveling row in one guild.
// boost_* columns are written by the boost feature, never by leveling.
type UserProgress struct {
	bun.BaseModel `bun:"table:user_progress,alias:up"`

	GuildID        string    `bun:"guild_id,pk"`
	UserID         string    `bun:"user_id,pk"`
	XP             int64     `bun:"xp,notnull,default:0"`
	Level          int       `bun:"level,notnull,default:0"`
	MessageCount   int64     `bun:"message_count,notnull,default:0"`
	LastMessageTS  int64     `bun:"last_message_ts,notnull,default:0"`
	BoostActive    bool      `bun:"boost_active,notnull,default:false"`
	BoostExpiresAt time.Time `bun:"boost_expires_at,nullzero"`
	UpdatedAt      time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

type GuildSettings struct {
	bun.BaseModel `bun:"table:guild_settings,alias:gs"`

	GuildID               string       `bun:"guild_id,pk"`
	Enabled               bool         `bun:"enabled,notnull"`
	NotificationChannelID string       `bun:"notification_channel_id"`
	RoleRewards           []RoleReward `bun:"role_rewards,type:jsonb,notnull"`
	CreatedAt             time.Time    `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt             time.Time    `bun:"updated_at,notnull,default:current_timestamp"`
}

// RoleReward is stored inside the role_rewards jsonb array.
type RoleReward struct {
	Level  int    `json:"level"`
	RoleID string `json:"role_id"`
}

package leveling

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// ProgressRepository persists Progress records keyed by (guild, user).
// Get returns a zero record, not an error, when nothing is stored.
// Save upserts only the columns leveling owns so concurrent writers of
// other fields (boost) are preserved.
type ProgressRepository interface {
	Get(ctx context.Context, guildID, userID string) (*Progress, error)
	Save(ctx context.Context, p *Progress) error
	ListByGuild(ctx context.Context, guildID string) ([]Progress, error)
	DeleteGuild(ctx context.Context, guildID string) error
}

type VoiceStatsRepository interface {
	Get(ctx context.Context, guildID, userID string) (*VoiceStats, error)
	AddStayTime(ctx context.Context, guildID, userID string, d time.Duration) error
	DeleteGuild(ctx context.Context, guildID string) error
}

// SettingsRepository returns DefaultSettings for guilds without a row.
type SettingsRepository interface {
	Get(ctx context.Context, guildID string) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
	DeleteGuild(ctx context.Context, guildID string) error
}

// RoleManager is the guild/member/role view used to grant rewards.
type RoleManager interface {
	Role(ctx context.Context, guildID, roleID string) (Role, bool, error)
	MemberRoleIDs(ctx context.Context, guildID, userID string) ([]string, error)
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	BotHighestRolePosition(ctx context.Context, guildID string) (int, error)
}

// Notifier delivers level-up announcements. Implementations must not block
// the caller on network I/O.
type Notifier interface {
	NotifyLevelUp(ctx context.Context, n LevelUp)
}

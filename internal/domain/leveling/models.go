package leveling

import "time"

// Progress is the durable per-(guild, user) leveling record.
// XP counts toward the current level only and is reduced on every level-up.
type Progress struct {
	GuildID       string
	UserID        string
	XP            int64
	Level         int
	MessageCount  int64
	LastMessageAt time.Time
	Boost         *Boost
}

// Boost is owned by the boost feature; leveling only reads it.
type Boost struct {
	Active    bool
	ExpiresAt time.Time
}

// Multiplier returns 2 while the boost is active and unexpired, 1 otherwise.
func (b *Boost) Multiplier(now time.Time) int64 {
	if b == nil || !b.Active || !now.Before(b.ExpiresAt) {
		return 1
	}
	return 2
}

// Valid reports whether the record satisfies 0 <= XP < RequiredXP(Level).
func (p Progress) Valid() bool {
	return p.Level >= 0 && p.XP >= 0 && p.XP < RequiredXP(p.Level)
}

// Advance is the result of applying an XP gain to a record.
type Advance struct {
	Progress  Progress
	LeveledUp bool
	OldLevel  int
	NewLevel  int
}

type VoiceStats struct {
	GuildID       string
	UserID        string
	TotalStayTime time.Duration
	Sessions      int64
}

// RoleReward grants RoleID once a member reaches Level.
type RoleReward struct {
	Level  int    `json:"level"`
	RoleID string `json:"role_id"`
}

// Settings is the typed per-guild leveling configuration.
// A guild without a stored row gets DefaultSettings.
type Settings struct {
	GuildID               string
	Enabled               bool
	NotificationChannelID string
	RoleRewards           []RoleReward
}

func DefaultSettings(guildID string) *Settings {
	return &Settings{
		GuildID:     guildID,
		Enabled:     true,
		RoleRewards: []RoleReward{},
	}
}

// Role is the subset of a guild role the reward resolver needs.
type Role struct {
	ID       string
	Name     string
	Position int
}

type Source string

const (
	SourceMessage Source = "message"
	SourceVoice   Source = "voice"
)

// LevelUp is the payload handed to the notification collaborator.
type LevelUp struct {
	GuildID      string
	GuildName    string
	UserID       string
	DisplayName  string
	ChannelID    string
	OldLevel     int
	NewLevel     int
	Rank         int
	Ranked       bool
	MessageCount int64
	GrantedRoles []Role
	Source       Source
}

// Outcome describes what an accrual event did. A nil Outcome means the
// event was dropped before any write.
type Outcome struct {
	XPGained     int64
	Advance      Advance
	GrantedRoles []Role
	StayTime     time.Duration
}

// Profile is the read model used by the rank and profile displays.
type Profile struct {
	Progress    Progress
	RequiredXP  int64
	Rank        int
	Ranked      bool
	Voice       VoiceStats
	OpenSession *OpenSession
}

type OpenSession struct {
	ChannelID   string
	ChannelName string
	JoinedAt    time.Time
}

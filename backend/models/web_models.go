package models

import (
	"time"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
)

// LeaderboardEntry is one ranked row of a guild leaderboard.
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"user_id"`
	Level        int    `json:"level"`
	XP           int64  `json:"xp"`
	RequiredXP   int64  `json:"required_xp"`
	MessageCount int64  `json:"message_count"`
}

type VoiceDTO struct {
	TotalStaySeconds int64 `json:"total_stay_seconds"`
	Sessions         int64 `json:"sessions"`
}

type ProgressDTO struct {
	GuildID       string     `json:"guild_id"`
	UserID        string     `json:"user_id"`
	Level         int        `json:"level"`
	XP            int64      `json:"xp"`
	RequiredXP    int64      `json:"required_xp"`
	MessageCount  int64      `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	Rank          *int       `json:"rank,omitempty"`
	BoostActive   bool       `json:"boost_active"`
	Voice         VoiceDTO   `json:"voice"`
}

type SettingsDTO struct {
	GuildID               string                `json:"guild_id"`
	Enabled               bool                  `json:"enabled"`
	NotificationChannelID string                `json:"notification_channel_id,omitempty"`
	RoleRewards           []leveling.RoleReward `json:"role_rewards"`
}

// SettingsUpdateRequest is a partial update; nil fields are left alone.
// RoleRewards, when present, replaces the whole table.
type SettingsUpdateRequest struct {
	Enabled               *bool                  `json:"enabled"`
	NotificationChannelID *string                `json:"notification_channel_id"`
	RoleRewards           *[]leveling.RoleReward `json:"role_rewards"`
}

type BannerDTO struct {
	GuildID string `json:"guild_id"`
	URL     string `json:"url"`
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func ConvertLeaderboard(records []leveling.Progress, offset int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(records))
	for i, p := range records {
		entries = append(entries, LeaderboardEntry{
			Rank:         offset + i + 1,
			UserID:       p.UserID,
			Level:        p.Level,
			XP:           p.XP,
			RequiredXP:   leveling.RequiredXP(p.Level),
			MessageCount: p.MessageCount,
		})
	}
	return entries
}

func ConvertProfile(guildID, userID string, profile *leveling.Profile, now time.Time) *ProgressDTO {
	p := profile.Progress
	dto := &ProgressDTO{
		GuildID:      guildID,
		UserID:       userID,
		Level:        p.Level,
		XP:           p.XP,
		RequiredXP:   profile.RequiredXP,
		MessageCount: p.MessageCount,
		BoostActive:  p.Boost.Multiplier(now) > 1,
		Voice: VoiceDTO{
			TotalStaySeconds: int64(profile.Voice.TotalStayTime / time.Second),
			Sessions:         profile.Voice.Sessions,
		},
	}
	if !p.LastMessageAt.IsZero() {
		at := p.LastMessageAt
		dto.LastMessageAt = &at
	}
	if profile.Ranked {
		rank := profile.Rank
		dto.Rank = &rank
	}
	return dto
}

func ConvertSettings(s *leveling.Settings) *SettingsDTO {
	rewards := s.RoleRewards
	if rewards == nil {
		rewards = []leveling.RoleReward{}
	}
	return &SettingsDTO{
		GuildID:               s.GuildID,
		Enabled:               s.Enabled,
		NotificationChannelID: s.NotificationChannelID,
		RoleRewards:           rewards,
	}
}

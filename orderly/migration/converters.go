package migration

import (
	"errors"
	"math"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/database/models"
	"github.com/orderlycore/orderlycore/orderly/database/repositories"
)

var errMissingIdentity = errors.New("document has no valid guildId/userId")

func validSnowflake(s string) bool {
	_, err := snowflake.Parse(s)
	return err == nil
}

func toInt64(f float64) int64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return int64(f)
}

func fromMillis(ms float64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(ms))
}

// convertLevel maps a legacy level document and re-applies the level curve
// so the stored record always satisfies 0 <= xp < RequiredXP(level).
// normalized reports whether the legacy values had to be adjusted.
func convertLevel(doc LegacyLevel) (row models.UserProgress, normalized bool, err error) {
	if !validSnowflake(doc.GuildID) || !validSnowflake(doc.UserID) {
		return models.UserProgress{}, false, errMissingIdentity
	}

	p := leveling.Progress{
		GuildID:       doc.GuildID,
		UserID:        doc.UserID,
		Level:         int(toInt64(doc.Level)),
		MessageCount:  toInt64(doc.MessageCount),
		LastMessageAt: fromMillis(doc.LastMessageTimestamp),
	}
	if doc.Boost != nil {
		p.Boost = &leveling.Boost{Active: doc.Boost.Active, ExpiresAt: fromMillis(doc.Boost.ExpiresAt)}
	}

	xp := toInt64(doc.XP)
	next := leveling.ApplyXP(p, xp).Progress
	normalized = next.Level != p.Level || next.XP != xp || float64(xp) != doc.XP || float64(p.Level) != doc.Level

	return *repositories.ProgressToModel(&next), normalized, nil
}

func convertVoiceStats(doc LegacyVoiceStats) (models.VoiceStats, error) {
	if !validSnowflake(doc.GuildID) || !validSnowflake(doc.UserID) {
		return models.VoiceStats{}, errMissingIdentity
	}
	return models.VoiceStats{
		GuildID:     doc.GuildID,
		UserID:      doc.UserID,
		TotalStayMS: toInt64(doc.TotalStayTime),
	}, nil
}

// convertSettings keeps valid rewards only. A missing levelingEnabled flag
// means enabled.
func convertSettings(doc LegacyGuildSettings) (*leveling.Settings, int, error) {
	if !validSnowflake(doc.GuildID) {
		return nil, 0, errMissingIdentity
	}

	s := leveling.DefaultSettings(doc.GuildID)
	if doc.LevelingEnabled != nil {
		s.Enabled = *doc.LevelingEnabled
	}
	if validSnowflake(doc.LevelUpChannelID) {
		s.NotificationChannelID = doc.LevelUpChannelID
	}

	dropped := 0
	for _, r := range doc.RoleRewards {
		if !validSnowflake(r.RoleID) {
			dropped++
			continue
		}
		if _, err := s.SetReward(leveling.RoleReward{Level: int(toInt64(r.Level)), RoleID: r.RoleID}); err != nil {
			dropped++
		}
	}
	return s, dropped, nil
}

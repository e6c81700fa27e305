package levels

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
)

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, 3, PageCount(25, 10))
}

func TestLeaderboardPage(t *testing.T) {
	records := make([]leveling.Progress, 12)
	for i := range records {
		records[i] = leveling.Progress{UserID: string(rune('a' + i)), Level: 20 - i, XP: int64(1000 + i)}
	}

	first := strings.Split(strings.TrimSpace(LeaderboardPage(records, 0, 10)), "\n")
	require.Len(t, first, 10)
	assert.Equal(t, "`#1` <@a> · Level **20** · 1,000 XP", first[0])

	second := strings.Split(strings.TrimSpace(LeaderboardPage(records, 1, 10)), "\n")
	require.Len(t, second, 2)
	assert.True(t, strings.HasPrefix(second[0], "`#11` <@k>"))

	assert.Empty(t, LeaderboardPage(records, 5, 10))
}

func TestHasActivity(t *testing.T) {
	assert.False(t, HasActivity(&leveling.Profile{}))
	assert.True(t, HasActivity(&leveling.Profile{Progress: leveling.Progress{XP: 5}}))
	assert.True(t, HasActivity(&leveling.Profile{Voice: leveling.VoiceStats{TotalStayTime: time.Minute}}))
	assert.True(t, HasActivity(&leveling.Profile{OpenSession: &leveling.OpenSession{ChannelID: "1"}}))
}

func TestRankEmbed(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	profile := &leveling.Profile{
		Progress:   leveling.Progress{Level: 3, XP: 50, MessageCount: 1234},
		RequiredXP: 295,
		Rank:       4,
		Ranked:     true,
		Voice:      leveling.VoiceStats{TotalStayTime: 90 * time.Minute, Sessions: 7},
		OpenSession: &leveling.OpenSession{
			ChannelID: "55",
			JoinedAt:  now.Add(-12 * time.Minute),
		},
	}

	embed := RankEmbed("Kai", "", profile, now)
	assert.Equal(t, "Kai's rank", embed.Title)

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "#4", fields["Rank"])
	assert.Equal(t, "3", fields["Level"])
	assert.Equal(t, "1,234", fields["Messages"])
	assert.True(t, strings.HasSuffix(fields["XP"], "50 / 295"))
	assert.Equal(t, "1h 30m\nIn <#55> for 12m", fields["Voice time"])
	assert.Equal(t, "7", fields["Voice sessions"])

	profile.Ranked = false
	profile.OpenSession = nil
	embed = RankEmbed("Kai", "", profile, now)
	for _, f := range embed.Fields {
		if f.Name == "Rank" {
			assert.Equal(t, "Unranked", f.Value)
		}
		if f.Name == "Voice time" {
			assert.Equal(t, "1h 30m", f.Value)
		}
	}
}

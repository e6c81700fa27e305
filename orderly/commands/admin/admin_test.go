package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
)

func rewardItems() RewardItems {
	return RewardItems{
		{Reward: leveling.RoleReward{Level: 5, RoleID: "1"}, Label: "Level 5 · Regular"},
		{Reward: leveling.RoleReward{Level: 10, RoleID: "2"}, Label: "Level 10 · Veteran"},
		{Reward: leveling.RoleReward{Level: 25, RoleID: "3"}, Label: "Level 25 · Legend"},
	}
}

func TestMatchRewards(t *testing.T) {
	t.Run("empty query keeps order", func(t *testing.T) {
		got := MatchRewards("  ", rewardItems())
		require.Len(t, got, 3)
		assert.Equal(t, "1", got[0].Reward.RoleID)
	})

	t.Run("fuzzy match", func(t *testing.T) {
		got := MatchRewards("vet", rewardItems())
		require.NotEmpty(t, got)
		assert.Equal(t, "2", got[0].Reward.RoleID)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, MatchRewards("zzz", rewardItems()))
	})

	t.Run("capped", func(t *testing.T) {
		items := make(RewardItems, 40)
		for i := range items {
			items[i] = RewardItem{Label: "Level · Role"}
		}
		assert.Len(t, MatchRewards("", items), maxAutocompleteChoices)
		assert.Len(t, MatchRewards("role", items), maxAutocompleteChoices)
	})
}

func TestSettingsEmbed(t *testing.T) {
	s := leveling.DefaultSettings("1")
	cfg := leveling.DefaultConfig()

	embed := SettingsEmbed(s, cfg)
	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "Enabled", fields["Status"])
	assert.Equal(t, "Where the level-up happens", fields["Announcements"])
	assert.Equal(t, "15–25 every "+(60*time.Second).String(), fields["Message XP"])
	assert.Equal(t, "5 per minute", fields["Voice XP"])

	s.Enabled = false
	s.NotificationChannelID = "99"
	embed = SettingsEmbed(s, cfg)
	fields = map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "Disabled", fields["Status"])
	assert.Equal(t, "<#99>", fields["Announcements"])
}

package migration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/database/models"
)

func TestConvertLevel(t *testing.T) {
	tests := []struct {
		name           string
		doc            LegacyLevel
		wantXP         int64
		wantLevel      int
		wantNormalized bool
		wantErr        bool
	}{
		{
			name:      "valid record kept",
			doc:       LegacyLevel{GuildID: "1", UserID: "2", XP: 20, Level: 1, MessageCount: 7},
			wantXP:    20,
			wantLevel: 1,
		},
		{
			name:           "overflowing xp rolled into levels",
			doc:            LegacyLevel{GuildID: "1", UserID: "2", XP: 120, Level: 0},
			wantXP:         20,
			wantLevel:      1,
			wantNormalized: true,
		},
		{
			name:           "negative values clamped",
			doc:            LegacyLevel{GuildID: "1", UserID: "2", XP: -5, Level: -1},
			wantXP:         0,
			wantLevel:      0,
			wantNormalized: true,
		},
		{
			name:    "missing identity",
			doc:     LegacyLevel{UserID: "2", XP: 10},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, normalized, err := convertLevel(tt.doc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantXP, row.XP)
			assert.Equal(t, tt.wantLevel, row.Level)
			assert.Equal(t, tt.wantNormalized, normalized)
			assert.Less(t, row.XP, leveling.RequiredXP(row.Level))
		})
	}
}

func TestConvertLevelKeepsTimestampsAndBoost(t *testing.T) {
	last := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	expires := last.Add(time.Hour)

	row, _, err := convertLevel(LegacyLevel{
		GuildID:              "1",
		UserID:               "2",
		LastMessageTimestamp: float64(last.UnixMilli()),
		Boost:                &LegacyBoost{Active: true, ExpiresAt: float64(expires.UnixMilli())},
	})
	require.NoError(t, err)
	assert.Equal(t, last.UnixMilli(), row.LastMessageTS)
	assert.True(t, row.BoostActive)
	assert.True(t, expires.Equal(row.BoostExpiresAt))
}

func TestConvertSettings(t *testing.T) {
	disabled := false
	s, dropped, err := convertSettings(LegacyGuildSettings{
		GuildID:          "10",
		LevelingEnabled:  &disabled,
		LevelUpChannelID: "20",
		RoleRewards: []LegacyRoleReward{
			{Level: 10, RoleID: "30"},
			{Level: 5, RoleID: "31"},
			{Level: 0, RoleID: "32"},
			{Level: 3, RoleID: "not-a-role"},
		},
	})
	require.NoError(t, err)
	assert.False(t, s.Enabled)
	assert.Equal(t, "20", s.NotificationChannelID)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, []leveling.RoleReward{{Level: 5, RoleID: "31"}, {Level: 10, RoleID: "30"}}, s.RoleRewards)

	s, _, err = convertSettings(LegacyGuildSettings{GuildID: "10"})
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Empty(t, s.NotificationChannelID)

	_, _, err = convertSettings(LegacyGuildSettings{})
	assert.Error(t, err)
}

type fakeProgress struct {
	batches [][]models.UserProgress
	err     error
}

func (f *fakeProgress) ImportBatch(_ context.Context, rows []models.UserProgress) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, append([]models.UserProgress(nil), rows...))
	return nil
}

func cursor(t *testing.T, docs ...any) *mongo.Cursor {
	t.Helper()
	cur, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	require.NoError(t, err)
	return cur
}

func TestImportLevelsBatches(t *testing.T) {
	progress := &fakeProgress{}
	m := NewMigrator(nil, progress, nil, nil)
	m.SetBatchSize(2)

	cur := cursor(t,
		bson.M{"guildId": "1", "userId": "10", "xp": 5, "level": 1},
		bson.M{"guildId": "1", "userId": "11", "xp": int64(500), "level": 0},
		bson.M{"guildId": "1", "userId": "12", "xp": 1.0, "level": 2},
		bson.M{"guildId": "", "userId": "13"},
		bson.M{"guildId": "1", "userId": "12", "xp": 2.0, "level": 2},
	)
	stats := &TableStats{}
	require.NoError(t, m.importLevels(context.Background(), cur, stats))

	require.Len(t, progress.batches, 2)
	assert.Len(t, progress.batches[0], 2)
	require.Len(t, progress.batches[1], 1)
	assert.Equal(t, int64(2), progress.batches[1][0].XP)

	assert.Equal(t, 5, stats.Processed)
	assert.Equal(t, 3, stats.Successful)
	assert.Equal(t, 1, stats.Normalized)
	assert.Equal(t, 2, stats.Skipped)

	for _, batch := range progress.batches {
		for _, row := range batch {
			assert.Less(t, row.XP, leveling.RequiredXP(row.Level))
		}
	}
}

func TestImportLevelsWriteFailure(t *testing.T) {
	progress := &fakeProgress{err: errors.New("connection reset")}
	m := NewMigrator(nil, progress, nil, nil)

	cur := cursor(t, bson.M{"guildId": "1", "userId": "10", "xp": 5, "level": 1})
	err := m.importLevels(context.Background(), cur, &TableStats{})
	assert.ErrorContains(t, err, "connection reset")
}

type fakeSettings struct {
	saved []*leveling.Settings
}

func (f *fakeSettings) Save(_ context.Context, s *leveling.Settings) error {
	f.saved = append(f.saved, s)
	return nil
}

func TestImportSettings(t *testing.T) {
	settings := &fakeSettings{}
	m := NewMigrator(nil, nil, nil, settings)

	cur := cursor(t,
		bson.M{"guildId": "1", "levelUpChannelId": "5", "roleRewards": bson.A{bson.M{"level": 3, "roleId": "7"}}},
		bson.M{"guildId": "2", "levelingEnabled": false},
	)
	stats := &TableStats{}
	require.NoError(t, m.importSettings(context.Background(), cur, stats))

	require.Len(t, settings.saved, 2)
	assert.Equal(t, "5", settings.saved[0].NotificationChannelID)
	assert.Equal(t, []leveling.RoleReward{{Level: 3, RoleID: "7"}}, settings.saved[0].RoleRewards)
	assert.False(t, settings.saved[1].Enabled)
	assert.Equal(t, 2, stats.Successful)
}

package repositories

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/database/models"
)

func TestProgressMapping(t *testing.T) {
	last := time.UnixMilli(1714564800123)
	expires := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		row  models.UserProgress
		want leveling.Progress
	}{
		{
			name: "fresh row",
			row:  models.UserProgress{GuildID: "g", UserID: "u"},
			want: leveling.Progress{GuildID: "g", UserID: "u"},
		},
		{
			name: "with boost",
			row: models.UserProgress{
				GuildID:        "g",
				UserID:         "u",
				XP:             42,
				Level:          3,
				MessageCount:   120,
				LastMessageTS:  last.UnixMilli(),
				BoostActive:    true,
				BoostExpiresAt: expires,
			},
			want: leveling.Progress{
				GuildID:       "g",
				UserID:        "u",
				XP:            42,
				Level:         3,
				MessageCount:  120,
				LastMessageAt: last,
				Boost:         &leveling.Boost{Active: true, ExpiresAt: expires},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressFromModel(&tt.row)
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("ProgressFromModel() = %+v, want %+v", *got, tt.want)
			}

			back := ProgressToModel(got)
			if back.LastMessageTS != tt.row.LastMessageTS || back.XP != tt.row.XP || back.BoostActive != tt.row.BoostActive {
				t.Errorf("ProgressToModel() = %+v, want %+v", back, tt.row)
			}
		})
	}
}

func TestSettingsMapping(t *testing.T) {
	row := &models.GuildSettings{
		GuildID:               "g",
		Enabled:               false,
		NotificationChannelID: "c",
		RoleRewards:           []models.RoleReward{{Level: 5, RoleID: "r5"}},
	}
	want := &leveling.Settings{
		GuildID:               "g",
		Enabled:               false,
		NotificationChannelID: "c",
		RoleRewards:           []leveling.RoleReward{{Level: 5, RoleID: "r5"}},
	}

	got := SettingsFromModel(row)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SettingsFromModel() = %+v, want %+v", got, want)
	}

	empty := SettingsToModel(leveling.DefaultSettings("g"))
	if empty.RoleRewards == nil || !empty.Enabled {
		t.Errorf("SettingsToModel(defaults) = %+v, want enabled with empty rewards", empty)
	}
}

func TestIsNotFound(t *testing.T) {
	base := &BaseRepository{}
	err := base.HandleError("get", "user_progress", "g", fmt.Errorf("scan: %w", errors.New("boom")))
	var repoErr *RepositoryError
	if IsNotFound(err) || !errors.As(err, &repoErr) {
		t.Errorf("HandleError() = %v, want RepositoryError", err)
	}

	wrapped := fmt.Errorf("load: %w", &NotFoundError{Entity: "user_progress", ID: "g"})
	if !IsNotFound(wrapped) {
		t.Errorf("IsNotFound(%v) = false, want true", wrapped)
	}
}

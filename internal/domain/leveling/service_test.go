package leveling_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/internal/domain/leveling/mock"
	"github.com/orderlycore/orderlycore/internal/domain/voice"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	progress   *mock.MockProgressRepository
	voiceStats *mock.MockVoiceStatsRepository
	settings   *mock.MockSettingsRepository
	roles      *mock.MockRoleManager
	notifier   *mock.MockNotifier
	store      *voice.MemoryStore
	now        time.Time
	service    *leveling.Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		progress:   mock.NewMockProgressRepository(ctrl),
		voiceStats: mock.NewMockVoiceStatsRepository(ctrl),
		settings:   mock.NewMockSettingsRepository(ctrl),
		roles:      mock.NewMockRoleManager(ctrl),
		notifier:   mock.NewMockNotifier(ctrl),
		store:      voice.NewMemoryStore(),
		now:        t0,
	}
	clock := func() time.Time { return f.now }
	tracker := voice.NewTracker(f.store, voice.WithClock(clock))

	f.service = leveling.NewService(leveling.DefaultConfig(), leveling.Deps{
		Progress:   f.progress,
		VoiceStats: f.voiceStats,
		Settings:   f.settings,
		Tracker:    tracker,
		Roles:      f.roles,
		Notifier:   f.notifier,
	},
		leveling.WithServiceClock(clock),
		leveling.WithRoller(func(min, max int64) int64 { return 20 }),
	)
	return f
}

func messageAt(at time.Time) leveling.MessageEvent {
	return leveling.MessageEvent{
		GuildID:     "g",
		GuildName:   "Guild",
		ChannelID:   "text",
		UserID:      "u",
		DisplayName: "Member",
		At:          at,
	}
}

func TestService_OnMessage(t *testing.T) {
	tests := []struct {
		name     string
		event    leveling.MessageEvent
		stored   *leveling.Progress
		settings *leveling.Settings
		wantSave *leveling.Progress
		wantXP   int64
	}{
		{
			name:     "first message",
			event:    messageAt(t0),
			stored:   &leveling.Progress{},
			settings: leveling.DefaultSettings("g"),
			wantSave: &leveling.Progress{GuildID: "g", UserID: "u", XP: 20, MessageCount: 1, LastMessageAt: t0},
			wantXP:   20,
		},
		{
			name:  "boosted",
			event: messageAt(t0),
			stored: &leveling.Progress{
				XP:            5,
				MessageCount:  3,
				LastMessageAt: t0.Add(-2 * time.Minute),
				Boost:         &leveling.Boost{Active: true, ExpiresAt: t0.Add(time.Hour)},
			},
			settings: leveling.DefaultSettings("g"),
			wantSave: &leveling.Progress{
				GuildID:       "g",
				UserID:        "u",
				XP:            45,
				MessageCount:  4,
				LastMessageAt: t0,
				Boost:         &leveling.Boost{Active: true, ExpiresAt: t0.Add(time.Hour)},
			},
			wantXP: 40,
		},
		{
			name:     "inside cooldown",
			event:    messageAt(t0),
			stored:   &leveling.Progress{XP: 5, MessageCount: 1, LastMessageAt: t0.Add(-30 * time.Second)},
			settings: leveling.DefaultSettings("g"),
		},
		{
			name:     "disabled guild",
			event:    messageAt(t0),
			settings: &leveling.Settings{GuildID: "g", Enabled: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.settings.EXPECT().Get(gomock.Any(), "g").Return(tt.settings, nil)
			if tt.stored != nil {
				f.progress.EXPECT().Get(gomock.Any(), "g", "u").Return(tt.stored, nil)
			}
			if tt.wantSave != nil {
				f.progress.EXPECT().Save(gomock.Any(), tt.wantSave).Return(nil)
			}

			out, err := f.service.OnMessage(context.Background(), tt.event)
			if err != nil {
				t.Fatalf("OnMessage() error = %v", err)
			}
			if tt.wantSave == nil {
				if out != nil {
					t.Errorf("OnMessage() = %+v, want dropped event", out)
				}
				return
			}
			if out == nil || out.XPGained != tt.wantXP {
				t.Errorf("OnMessage() = %+v, want XPGained %d", out, tt.wantXP)
			}
		})
	}
}

func TestService_OnMessageIgnoresBots(t *testing.T) {
	f := newFixture(t)
	ev := messageAt(t0)
	ev.AuthorIsBot = true

	out, err := f.service.OnMessage(context.Background(), ev)
	if out != nil || err != nil {
		t.Errorf("OnMessage() = (%v, %v), want (nil, nil)", out, err)
	}
}

func TestService_OnMessageLevelUp(t *testing.T) {
	f := newFixture(t)
	settings := &leveling.Settings{
		GuildID:     "g",
		Enabled:     true,
		RoleRewards: []leveling.RoleReward{{Level: 1, RoleID: "r1"}, {Level: 2, RoleID: "r2"}},
	}
	f.settings.EXPECT().Get(gomock.Any(), "g").Return(settings, nil)
	f.progress.EXPECT().Get(gomock.Any(), "g", "u").Return(&leveling.Progress{XP: 90, MessageCount: 9}, nil)
	f.progress.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	f.roles.EXPECT().BotHighestRolePosition(gomock.Any(), "g").Return(10, nil)
	f.roles.EXPECT().MemberRoleIDs(gomock.Any(), "g", "u").Return(nil, nil)
	f.roles.EXPECT().Role(gomock.Any(), "g", "r1").Return(leveling.Role{ID: "r1", Name: "Newcomer", Position: 2}, true, nil)
	f.roles.EXPECT().AddMemberRole(gomock.Any(), "g", "u", "r1").Return(nil)

	f.progress.EXPECT().ListByGuild(gomock.Any(), "g").Return([]leveling.Progress{
		{UserID: "other", Level: 4},
		{UserID: "u", Level: 1, XP: 10},
	}, nil)

	granted := []leveling.Role{{ID: "r1", Name: "Newcomer", Position: 2}}
	f.notifier.EXPECT().NotifyLevelUp(gomock.Any(), leveling.LevelUp{
		GuildID:      "g",
		GuildName:    "Guild",
		UserID:       "u",
		DisplayName:  "Member",
		ChannelID:    "text",
		OldLevel:     0,
		NewLevel:     1,
		Rank:         2,
		Ranked:       true,
		MessageCount: 10,
		GrantedRoles: granted,
		Source:       leveling.SourceMessage,
	})

	out, err := f.service.OnMessage(context.Background(), messageAt(t0))
	if err != nil {
		t.Fatalf("OnMessage() error = %v", err)
	}
	if !out.Advance.LeveledUp || out.Advance.Progress.XP != 10 {
		t.Errorf("OnMessage() advance = %+v, want level 1 with 10 XP", out.Advance)
	}
	if !reflect.DeepEqual(out.GrantedRoles, granted) {
		t.Errorf("OnMessage() granted = %v, want %v", out.GrantedRoles, granted)
	}
}

func TestService_OnMessageUsesNotificationChannel(t *testing.T) {
	f := newFixture(t)
	settings := &leveling.Settings{GuildID: "g", Enabled: true, NotificationChannelID: "levels"}
	f.settings.EXPECT().Get(gomock.Any(), "g").Return(settings, nil)
	f.progress.EXPECT().Get(gomock.Any(), "g", "u").Return(&leveling.Progress{XP: 99}, nil)
	f.progress.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	f.progress.EXPECT().ListByGuild(gomock.Any(), "g").Return(nil, errors.New("db down"))
	f.notifier.EXPECT().NotifyLevelUp(gomock.Any(), gomock.Any()).Do(func(_ context.Context, n leveling.LevelUp) {
		if n.ChannelID != "levels" {
			t.Errorf("notification channel = %q, want %q", n.ChannelID, "levels")
		}
		if n.Ranked {
			t.Errorf("notification ranked without a leaderboard")
		}
	})

	if _, err := f.service.OnMessage(context.Background(), messageAt(t0)); err != nil {
		t.Fatalf("OnMessage() error = %v", err)
	}
}

func TestService_OnMessageInvariantViolated(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().Get(gomock.Any(), "g").Return(leveling.DefaultSettings("g"), nil)
	f.progress.EXPECT().Get(gomock.Any(), "g", "u").Return(&leveling.Progress{Level: -1}, nil)

	_, err := f.service.OnMessage(context.Background(), messageAt(t0))
	if !errors.Is(err, leveling.ErrInvariantViolated) {
		t.Errorf("OnMessage() error = %v, want ErrInvariantViolated", err)
	}
}

func voiceEvent(channelID string) leveling.VoiceEvent {
	return leveling.VoiceEvent{
		GuildID:     "g",
		GuildName:   "Guild",
		UserID:      "u",
		DisplayName: "Member",
		ChannelID:   channelID,
		ChannelName: "Lounge " + channelID,
	}
}

func TestService_VoiceRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.service.OnVoiceJoin(ctx, voiceEvent("v1")); err != nil {
		t.Fatalf("OnVoiceJoin() error = %v", err)
	}
	f.now = t0.Add(3*time.Minute + 30*time.Second)

	f.voiceStats.EXPECT().AddStayTime(gomock.Any(), "g", "u", 3*time.Minute+30*time.Second).Return(nil)
	f.settings.EXPECT().Get(gomock.Any(), "g").Return(leveling.DefaultSettings("g"), nil)
	f.progress.EXPECT().Get(gomock.Any(), "g", "u").Return(&leveling.Progress{XP: 7, MessageCount: 4}, nil)
	f.progress.EXPECT().Save(gomock.Any(), &leveling.Progress{GuildID: "g", UserID: "u", XP: 22, MessageCount: 4}).Return(nil)

	out, err := f.service.OnVoiceLeave(ctx, voiceEvent("v1"))
	if err != nil {
		t.Fatalf("OnVoiceLeave() error = %v", err)
	}
	if out.XPGained != 15 || out.StayTime != 3*time.Minute+30*time.Second {
		t.Errorf("OnVoiceLeave() = %+v, want 15 XP over 3m30s", out)
	}
	if f.store.Len() != 0 {
		t.Errorf("session still stored after leave")
	}
}

func TestService_VoiceSubMinute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.service.OnVoiceJoin(ctx, voiceEvent("v1")); err != nil {
		t.Fatalf("OnVoiceJoin() error = %v", err)
	}
	f.now = t0.Add(45 * time.Second)
	f.voiceStats.EXPECT().AddStayTime(gomock.Any(), "g", "u", 45*time.Second).Return(nil)

	out, err := f.service.OnVoiceLeave(ctx, voiceEvent("v1"))
	if err != nil {
		t.Fatalf("OnVoiceLeave() error = %v", err)
	}
	if out.XPGained != 0 || out.StayTime != 45*time.Second {
		t.Errorf("OnVoiceLeave() = %+v, want stay time only", out)
	}
}

func TestService_VoiceMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.service.OnVoiceJoin(ctx, voiceEvent("v1")); err != nil {
		t.Fatalf("OnVoiceJoin() error = %v", err)
	}
	f.now = t0.Add(2 * time.Minute)

	gomock.InOrder(
		f.voiceStats.EXPECT().AddStayTime(gomock.Any(), "g", "u", 2*time.Minute).Return(nil),
		f.voiceStats.EXPECT().AddStayTime(gomock.Any(), "g", "u", 90*time.Second).Return(nil),
	)
	f.settings.EXPECT().Get(gomock.Any(), "g").Return(leveling.DefaultSettings("g"), nil).Times(2)
	gomock.InOrder(
		f.progress.EXPECT().Get(gomock.Any(), "g", "u").Return(&leveling.Progress{}, nil),
		f.progress.EXPECT().Save(gomock.Any(), &leveling.Progress{GuildID: "g", UserID: "u", XP: 10}).Return(nil),
		f.progress.EXPECT().Get(gomock.Any(), "g", "u").Return(&leveling.Progress{XP: 10}, nil),
		f.progress.EXPECT().Save(gomock.Any(), &leveling.Progress{GuildID: "g", UserID: "u", XP: 15}).Return(nil),
	)

	out, err := f.service.OnVoiceMove(ctx, voiceEvent("v2"))
	if err != nil {
		t.Fatalf("OnVoiceMove() error = %v", err)
	}
	if out.StayTime != 2*time.Minute {
		t.Errorf("OnVoiceMove() stay = %v, want 2m", out.StayTime)
	}

	s, _ := f.store.Get(ctx, "g", "u")
	if s == nil || s.ChannelID != "v2" || !s.JoinedAt.Equal(f.now) {
		t.Fatalf("session after move = %+v, want v2 joined at %v", s, f.now)
	}

	f.now = f.now.Add(90 * time.Second)
	out, err = f.service.OnVoiceLeave(ctx, voiceEvent("v2"))
	if err != nil {
		t.Fatalf("OnVoiceLeave() error = %v", err)
	}
	if out.XPGained != 5 {
		t.Errorf("OnVoiceLeave() XP = %d, want 5", out.XPGained)
	}
}

func TestService_VoiceLeaveWithoutSession(t *testing.T) {
	f := newFixture(t)

	out, err := f.service.OnVoiceLeave(context.Background(), voiceEvent("v1"))
	if out != nil || err != nil {
		t.Errorf("OnVoiceLeave() = (%v, %v), want (nil, nil)", out, err)
	}
}

func TestService_VoiceStatsFailureStillAccruesXP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.service.OnVoiceJoin(ctx, voiceEvent("v1")); err != nil {
		t.Fatalf("OnVoiceJoin() error = %v", err)
	}
	f.now = t0.Add(time.Minute)

	f.voiceStats.EXPECT().AddStayTime(gomock.Any(), "g", "u", time.Minute).Return(errors.New("db down"))
	f.settings.EXPECT().Get(gomock.Any(), "g").Return(leveling.DefaultSettings("g"), nil)
	f.progress.EXPECT().Get(gomock.Any(), "g", "u").Return(&leveling.Progress{}, nil)
	f.progress.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	out, err := f.service.OnVoiceLeave(ctx, voiceEvent("v1"))
	if err == nil {
		t.Errorf("OnVoiceLeave() error = nil, want stay time failure")
	}
	if out == nil || out.XPGained != 5 {
		t.Errorf("OnVoiceLeave() = %+v, want 5 XP", out)
	}
}

func TestService_PurgeGuild(t *testing.T) {
	f := newFixture(t)
	f.progress.EXPECT().DeleteGuild(gomock.Any(), "g").Return(nil)
	f.voiceStats.EXPECT().DeleteGuild(gomock.Any(), "g").Return(errors.New("db down"))
	f.settings.EXPECT().DeleteGuild(gomock.Any(), "g").Return(nil)

	if err := f.service.PurgeGuild(context.Background(), "g"); err == nil {
		t.Errorf("PurgeGuild() error = nil, want failure")
	}
}

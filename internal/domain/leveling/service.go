package leveling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/orderlycore/orderlycore/internal/domain/voice"
)

// ErrInvariantViolated is returned when a computed record breaks
// 0 <= XP < RequiredXP(Level). The write is skipped.
var ErrInvariantViolated = errors.New("leveling: progress invariant violated")

type MessageEvent struct {
	GuildID     string
	GuildName   string
	ChannelID   string
	UserID      string
	DisplayName string
	AuthorIsBot bool
	At          time.Time
}

type VoiceEvent struct {
	GuildID     string
	GuildName   string
	UserID      string
	DisplayName string
	ChannelID   string
	ChannelName string
}

// Deps are the collaborators of a Service. Roles and Notifier may be nil.
type Deps struct {
	Progress   ProgressRepository
	VoiceStats VoiceStatsRepository
	Settings   SettingsRepository
	Tracker    *voice.Tracker
	Roles      RoleManager
	Notifier   Notifier
	Queries    *Queries
}

type Service struct {
	cfg        Config
	progress   ProgressRepository
	voiceStats VoiceStatsRepository
	settings   SettingsRepository
	tracker    *voice.Tracker
	roles      RoleManager
	notifier   Notifier
	queries    *Queries
	locks      *keyedMutex
	now        func() time.Time
	roll       func(min, max int64) int64
}

type ServiceOption func(*Service)

func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithRoller replaces the uniform message XP roll.
func WithRoller(roll func(min, max int64) int64) ServiceOption {
	return func(s *Service) {
		s.roll = roll
	}
}

func NewService(cfg Config, deps Deps, opts ...ServiceOption) *Service {
	s := &Service{
		cfg:        cfg.normalize(),
		progress:   deps.Progress,
		voiceStats: deps.VoiceStats,
		settings:   deps.Settings,
		tracker:    deps.Tracker,
		roles:      deps.Roles,
		notifier:   deps.Notifier,
		queries:    deps.Queries,
		locks:      newKeyedMutex(),
		now:        time.Now,
		roll:       uniformRoll,
	}
	if s.queries == nil {
		s.queries = NewQueries(deps.Progress, deps.VoiceStats, deps.Tracker, DefaultRankCacheTTL)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func uniformRoll(min, max int64) int64 {
	return min + rand.Int64N(max-min+1)
}

// OnMessage accrues message XP. A nil Outcome means the message did not
// qualify or fell inside the cooldown.
func (s *Service) OnMessage(ctx context.Context, ev MessageEvent) (*Outcome, error) {
	if ev.AuthorIsBot || ev.GuildID == "" {
		return nil, nil
	}
	now := ev.At
	if now.IsZero() {
		now = s.now()
	}

	settings, err := s.settings.Get(ctx, ev.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild settings: %w", err)
	}
	if !settings.Enabled {
		return nil, nil
	}

	var gained int64
	adv, applied, err := s.accrue(ctx, ev.GuildID, ev.UserID, func(p *Progress) (Progress, bool) {
		if now.Sub(p.LastMessageAt) < s.cfg.MessageCooldown {
			return Progress{}, false
		}
		gained = s.roll(s.cfg.MessageXPMin, s.cfg.MessageXPMax) * p.Boost.Multiplier(now)
		next := ApplyXP(*p, gained).Progress
		next.MessageCount++
		next.LastMessageAt = now
		return next, true
	})
	if err != nil || !applied {
		return nil, err
	}

	out := &Outcome{XPGained: gained, Advance: adv}
	if adv.LeveledUp {
		out.GrantedRoles = s.levelUp(ctx, settings, adv, levelUpTarget{
			guildName:   ev.GuildName,
			displayName: ev.DisplayName,
			channelID:   ev.ChannelID,
			source:      SourceMessage,
		})
	}
	return out, nil
}

func (s *Service) OnVoiceJoin(ctx context.Context, ev VoiceEvent) error {
	started, err := s.tracker.Join(ctx, ev.GuildID, ev.UserID, ev.ChannelID, ev.ChannelName)
	if err != nil {
		return err
	}
	if started {
		slog.Debug("Voice session started",
			slog.String("type", "voice"),
			slog.String("guild_id", ev.GuildID),
			slog.String("user_id", ev.UserID),
			slog.String("channel_id", ev.ChannelID))
	}
	return nil
}

// OnVoiceLeave closes the member's session, records the stay time and
// accrues voice XP for every whole minute.
func (s *Service) OnVoiceLeave(ctx context.Context, ev VoiceEvent) (*Outcome, error) {
	closed, ok, err := s.tracker.Leave(ctx, ev.GuildID, ev.UserID)
	if err != nil || !ok {
		return nil, err
	}
	return s.closeSession(ctx, ev, closed)
}

// OnVoiceMove accrues the old session as a leave and opens a new one in
// ev.ChannelID.
func (s *Service) OnVoiceMove(ctx context.Context, ev VoiceEvent) (*Outcome, error) {
	closed, ok, moveErr := s.tracker.Move(ctx, ev.GuildID, ev.UserID, ev.ChannelID, ev.ChannelName)
	if !ok {
		return nil, moveErr
	}
	out, err := s.closeSession(ctx, ev, closed)
	return out, errors.Join(moveErr, err)
}

func (s *Service) closeSession(ctx context.Context, ev VoiceEvent, closed voice.Closed) (*Outcome, error) {
	out := &Outcome{StayTime: closed.Elapsed}

	var statsErr error
	if err := s.voiceStats.AddStayTime(ctx, ev.GuildID, ev.UserID, closed.Elapsed); err != nil {
		statsErr = fmt.Errorf("failed to record stay time: %w", err)
	}

	minutes := int64(closed.Elapsed / time.Minute)
	if minutes <= 0 {
		return out, statsErr
	}

	settings, err := s.settings.Get(ctx, ev.GuildID)
	if err != nil {
		return out, errors.Join(statsErr, fmt.Errorf("failed to load guild settings: %w", err))
	}
	if !settings.Enabled {
		return out, statsErr
	}

	now := s.now()
	adv, _, err := s.accrue(ctx, ev.GuildID, ev.UserID, func(p *Progress) (Progress, bool) {
		out.XPGained = minutes * s.cfg.VoiceXPPerMinute * p.Boost.Multiplier(now)
		return ApplyXP(*p, out.XPGained).Progress, true
	})
	if err != nil {
		return out, errors.Join(statsErr, err)
	}
	out.Advance = adv

	if adv.LeveledUp {
		out.GrantedRoles = s.levelUp(ctx, settings, adv, levelUpTarget{
			guildName:   ev.GuildName,
			displayName: ev.DisplayName,
			channelID:   closed.Session.ChannelID,
			source:      SourceVoice,
		})
	}
	return out, statsErr
}

// accrue serializes load, mutate and commit for one member. mutate returns
// the next record, or false to drop the event without writing.
func (s *Service) accrue(ctx context.Context, guildID, userID string, mutate func(p *Progress) (Progress, bool)) (Advance, bool, error) {
	unlock := s.locks.Lock(guildID + ":" + userID)
	defer unlock()

	p, err := s.progress.Get(ctx, guildID, userID)
	if err != nil {
		return Advance{}, false, fmt.Errorf("failed to load progress: %w", err)
	}
	p.GuildID, p.UserID = guildID, userID

	next, ok := mutate(p)
	if !ok {
		return Advance{}, false, nil
	}
	if !next.Valid() {
		slog.Error("Refusing to commit invalid progress",
			slog.String("type", "lvl"),
			slog.String("guild_id", guildID),
			slog.String("user_id", userID),
			slog.Int64("xp", next.XP),
			slog.Int("level", next.Level))
		return Advance{}, false, ErrInvariantViolated
	}
	if err := s.progress.Save(ctx, &next); err != nil {
		return Advance{}, false, fmt.Errorf("failed to save progress: %w", err)
	}

	return Advance{
		Progress:  next,
		LeveledUp: next.Level > p.Level,
		OldLevel:  p.Level,
		NewLevel:  next.Level,
	}, true, nil
}

type levelUpTarget struct {
	guildName   string
	displayName string
	channelID   string
	source      Source
}

func (s *Service) levelUp(ctx context.Context, settings *Settings, adv Advance, t levelUpTarget) []Role {
	guildID, userID := adv.Progress.GuildID, adv.Progress.UserID

	var granted []Role
	due := ResolveRewards(adv.OldLevel, adv.NewLevel, settings.RoleRewards)
	if len(due) > 0 && s.roles != nil {
		botTop, err := s.roles.BotHighestRolePosition(ctx, guildID)
		if err != nil {
			slog.Warn("Failed to resolve bot role position, skipping rewards",
				slog.String("type", "lvl"),
				slog.String("guild_id", guildID),
				slog.Any("error", err))
		} else {
			granted = GrantRewards(ctx, s.roles, guildID, userID, due, botTop)
		}
	}

	var rank int
	var ranked bool
	if board, err := s.queries.Refresh(ctx, guildID); err != nil {
		slog.Warn("Failed to compute rank for level-up",
			slog.String("type", "lvl"),
			slog.String("guild_id", guildID),
			slog.Any("error", err))
	} else {
		rank, ranked = ComputeRank(board, userID)
	}

	slog.Info("Member leveled up",
		slog.String("type", "lvl"),
		slog.String("guild_id", guildID),
		slog.String("user_id", userID),
		slog.String("source", string(t.source)),
		slog.Int("old_level", adv.OldLevel),
		slog.Int("new_level", adv.NewLevel),
		slog.Int("roles_granted", len(granted)))

	channelID := settings.NotificationChannelID
	if channelID == "" {
		channelID = t.channelID
	}
	if s.notifier == nil || channelID == "" {
		return granted
	}
	s.notifier.NotifyLevelUp(ctx, LevelUp{
		GuildID:      guildID,
		GuildName:    t.guildName,
		UserID:       userID,
		DisplayName:  t.displayName,
		ChannelID:    channelID,
		OldLevel:     adv.OldLevel,
		NewLevel:     adv.NewLevel,
		Rank:         rank,
		Ranked:       ranked,
		MessageCount: adv.Progress.MessageCount,
		GrantedRoles: granted,
		Source:       t.source,
	})
	return granted
}

// PurgeGuild removes every durable leveling row of a guild. Open voice
// sessions are left in place.
func (s *Service) PurgeGuild(ctx context.Context, guildID string) error {
	s.queries.Invalidate(guildID)
	return errors.Join(
		s.progress.DeleteGuild(ctx, guildID),
		s.voiceStats.DeleteGuild(ctx, guildID),
		s.settings.DeleteGuild(ctx, guildID),
	)
}

// Queries exposes the read side shared with command handlers.
func (s *Service) Queries() *Queries {
	return s.queries
}

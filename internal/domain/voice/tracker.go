// Package voice tracks which members are connected to a voice channel.
//
// A member is either Absent (no session stored) or Active (session stored).
// Sessions live in a Store outside the process so a restart does not lose
// them; the elapsed time is still computed on the eventual leave.
package voice

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Session struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	JoinedAt    time.Time `json:"-"`
}

// Closed is a finished session and how long it lasted.
type Closed struct {
	Session Session
	Elapsed time.Duration
}

// Store holds at most one session per (guild, user).
// Get and Take return a nil session when none is stored.
// PutIfAbsent stores s only when no session exists and reports whether it
// did. Take must remove and return the session atomically. Both are atomic
// so duplicate joins or leaves cannot both win.
type Store interface {
	Get(ctx context.Context, guildID, userID string) (*Session, error)
	PutIfAbsent(ctx context.Context, guildID, userID string, s Session) (bool, error)
	Take(ctx context.Context, guildID, userID string) (*Session, error)
}

type Tracker struct {
	store Store
	now   func() time.Time
}

type TrackerOption func(*Tracker)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

func NewTracker(store Store, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Join starts a session. Joining while a session is already active keeps
// the existing one and reports started=false.
func (t *Tracker) Join(ctx context.Context, guildID, userID, channelID, channelName string) (bool, error) {
	s := Session{
		ChannelID:   channelID,
		ChannelName: channelName,
		JoinedAt:    t.now(),
	}
	stored, err := t.store.PutIfAbsent(ctx, guildID, userID, s)
	if err != nil {
		return false, fmt.Errorf("failed to store voice session: %w", err)
	}
	if !stored {
		slog.Debug("Voice join ignored, session already active",
			slog.String("type", "voice"),
			slog.String("guild_id", guildID),
			slog.String("user_id", userID),
			slog.String("channel_id", channelID))
	}
	return stored, nil
}

// Leave ends the active session and returns how long it lasted.
// ok is false when there was no session to end.
func (t *Tracker) Leave(ctx context.Context, guildID, userID string) (Closed, bool, error) {
	s, err := t.store.Take(ctx, guildID, userID)
	if err != nil {
		return Closed{}, false, fmt.Errorf("failed to end voice session: %w", err)
	}
	if s == nil {
		slog.Debug("Voice leave ignored, no active session",
			slog.String("type", "voice"),
			slog.String("guild_id", guildID),
			slog.String("user_id", userID))
		return Closed{}, false, nil
	}

	elapsed := t.now().Sub(s.JoinedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return Closed{Session: *s, Elapsed: elapsed}, true, nil
}

// Move closes the current session and opens a new one in channelID.
// The returned Closed is the old session; ok is false when there was none.
func (t *Tracker) Move(ctx context.Context, guildID, userID, channelID, channelName string) (Closed, bool, error) {
	closed, ok, err := t.Leave(ctx, guildID, userID)
	if err != nil {
		return Closed{}, false, err
	}
	if _, err := t.Join(ctx, guildID, userID, channelID, channelName); err != nil {
		return closed, ok, err
	}
	return closed, ok, nil
}

func (t *Tracker) Current(ctx context.Context, guildID, userID string) (*Session, error) {
	s, err := t.store.Get(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read voice session: %w", err)
	}
	return s, nil
}

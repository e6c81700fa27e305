package leveling

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/orderlycore/orderlycore/internal/domain/voice"
)

const leaderboardCacheSize = 1024

type cachedBoard struct {
	records  []Progress
	loadedAt time.Time
}

// Queries serves the read side: rank, progress and leaderboards.
// Leaderboards are cached per guild for ttl; level-ups refresh them.
type Queries struct {
	progress   ProgressRepository
	voiceStats VoiceStatsRepository
	sessions   *voice.Tracker
	cache      *lru.Cache
	ttl        time.Duration
	now        func() time.Time
}

// NewQueries builds the read side. sessions may be nil when the caller has
// no access to the voice session store.
func NewQueries(progress ProgressRepository, voiceStats VoiceStatsRepository, sessions *voice.Tracker, ttl time.Duration) *Queries {
	cache, _ := lru.New(leaderboardCacheSize)
	return &Queries{
		progress:   progress,
		voiceStats: voiceStats,
		sessions:   sessions,
		cache:      cache,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Leaderboard returns the guild's records sorted by level and XP.
func (q *Queries) Leaderboard(ctx context.Context, guildID string) ([]Progress, error) {
	if v, ok := q.cache.Get(guildID); ok {
		board := v.(cachedBoard)
		if q.now().Sub(board.loadedAt) < q.ttl {
			return board.records, nil
		}
	}
	return q.Refresh(ctx, guildID)
}

// Refresh reloads the guild leaderboard from the store and caches it.
func (q *Queries) Refresh(ctx context.Context, guildID string) ([]Progress, error) {
	records, err := q.progress.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	SortLeaderboard(records)
	q.cache.Add(guildID, cachedBoard{records: records, loadedAt: q.now()})
	return records, nil
}

func (q *Queries) Invalidate(guildID string) {
	q.cache.Remove(guildID)
}

// GetRank returns the member's 1-based rank; ok is false when unranked.
func (q *Queries) GetRank(ctx context.Context, guildID, userID string) (rank int, ok bool, err error) {
	board, err := q.Leaderboard(ctx, guildID)
	if err != nil {
		return 0, false, err
	}
	rank, ok = ComputeRank(board, userID)
	return rank, ok, nil
}

func (q *Queries) GetProgress(ctx context.Context, guildID, userID string) (*Progress, error) {
	p, err := q.progress.Get(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return p, nil
}

// GetProfile gathers progress, rank, voice stats and the open voice session
// concurrently.
func (q *Queries) GetProfile(ctx context.Context, guildID, userID string) (*Profile, error) {
	profile := &Profile{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := q.GetProgress(gctx, guildID, userID)
		if err != nil {
			return err
		}
		profile.Progress = *p
		profile.RequiredXP = RequiredXP(p.Level)
		return nil
	})
	g.Go(func() error {
		rank, ok, err := q.GetRank(gctx, guildID, userID)
		if err != nil {
			return err
		}
		profile.Rank, profile.Ranked = rank, ok
		return nil
	})
	g.Go(func() error {
		stats, err := q.voiceStats.Get(gctx, guildID, userID)
		if err != nil {
			return fmt.Errorf("failed to load voice stats: %w", err)
		}
		profile.Voice = *stats
		return nil
	})
	if q.sessions != nil {
		g.Go(func() error {
			s, err := q.sessions.Current(gctx, guildID, userID)
			if err != nil {
				return err
			}
			if s != nil {
				profile.OpenSession = &OpenSession{
					ChannelID:   s.ChannelID,
					ChannelName: s.ChannelName,
					JoinedAt:    s.JoinedAt,
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profile, nil
}

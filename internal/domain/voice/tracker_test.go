package voice

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestTracker() (*Tracker, *MemoryStore, *clock) {
	c := &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	return NewTracker(store, WithClock(c.Now)), store, c
}

func TestTracker_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tr, store, c := newTestTracker()

	started, err := tr.Join(ctx, "g", "u", "v1", "Lounge")
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, 1, store.Len())

	c.now = c.now.Add(3*time.Minute + 30*time.Second)
	closed, ok, err := tr.Leave(ctx, "g", "u")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3*time.Minute+30*time.Second, closed.Elapsed)
	assert.Equal(t, "v1", closed.Session.ChannelID)
	assert.Equal(t, "Lounge", closed.Session.ChannelName)
	assert.Equal(t, 0, store.Len())
}

func TestTracker_JoinWhileActiveKeepsSession(t *testing.T) {
	ctx := context.Background()
	tr, _, c := newTestTracker()
	joined := c.now

	_, err := tr.Join(ctx, "g", "u", "v1", "Lounge")
	require.NoError(t, err)

	c.now = c.now.Add(time.Minute)
	started, err := tr.Join(ctx, "g", "u", "v2", "Studio")
	require.NoError(t, err)
	assert.False(t, started)

	s, err := tr.Current(ctx, "g", "u")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "v1", s.ChannelID)
	assert.True(t, s.JoinedAt.Equal(joined))
}

func TestTracker_LeaveWithoutSession(t *testing.T) {
	tr, _, _ := newTestTracker()

	closed, ok, err := tr.Leave(context.Background(), "g", "u")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Closed{}, closed)
}

func TestTracker_MoveDecomposes(t *testing.T) {
	ctx := context.Background()
	tr, _, c := newTestTracker()

	_, err := tr.Join(ctx, "g", "u", "v1", "Lounge")
	require.NoError(t, err)

	c.now = c.now.Add(2 * time.Minute)
	moved := c.now
	closed, ok, err := tr.Move(ctx, "g", "u", "v2", "Studio")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2*time.Minute, closed.Elapsed)
	assert.Equal(t, "v1", closed.Session.ChannelID)

	c.now = c.now.Add(90 * time.Second)
	closed, ok, err = tr.Leave(ctx, "g", "u")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, closed.Elapsed)
	assert.Equal(t, "v2", closed.Session.ChannelID)
	assert.True(t, closed.Session.JoinedAt.Equal(moved))
}

func TestTracker_ClampsClockSkew(t *testing.T) {
	ctx := context.Background()
	tr, _, c := newTestTracker()

	_, err := tr.Join(ctx, "g", "u", "v1", "Lounge")
	require.NoError(t, err)

	c.now = c.now.Add(-time.Minute)
	closed, ok, err := tr.Leave(ctx, "g", "u")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), closed.Elapsed)
}

func TestTracker_SessionsAreScopedPerGuild(t *testing.T) {
	ctx := context.Background()
	tr, store, _ := newTestTracker()

	_, err := tr.Join(ctx, "g1", "u", "v1", "Lounge")
	require.NoError(t, err)
	_, err = tr.Join(ctx, "g2", "u", "v9", "Other")
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	_, ok, err := tr.Leave(ctx, "g1", "u")
	require.NoError(t, err)
	assert.True(t, ok)

	s, err := tr.Current(ctx, "g2", "u")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "v9", s.ChannelID)
}

func TestTracker_DuplicateJoinsStartOneSession(t *testing.T) {
	ctx := context.Background()
	tr, store, c := newTestTracker()
	joined := c.now

	var started atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := tr.Join(ctx, "g", "u", "v1", "Lounge")
			assert.NoError(t, err)
			if ok {
				started.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), started.Load())
	assert.Equal(t, 1, store.Len())
	s, err := tr.Current(ctx, "g", "u")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, s.JoinedAt.Equal(joined))
}

// Package sessions stores open voice sessions in Redis so they survive a
// bot restart.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orderlycore/orderlycore/internal/domain/voice"
	"github.com/orderlycore/orderlycore/orderly/config"
)

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
}

// Connect dials Redis and verifies the connection with a PING.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// record is the stored JSON form; joined_at is epoch milliseconds.
type record struct {
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	JoinedAt    int64  `json:"joined_at"`
}

// RedisStore implements voice.Store. Keys have no TTL: a session lives
// until the member leaves.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

var _ voice.Store = (*RedisStore)(nil)

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, prefix: config.VoiceSessionKeyPrefix}
}

func (s *RedisStore) key(guildID, userID string) string {
	return SessionKey(s.prefix, guildID, userID)
}

// SessionKey builds prefix:guild:user.
func SessionKey(prefix, guildID, userID string) string {
	return prefix + ":" + guildID + ":" + userID
}

func (s *RedisStore) Get(ctx context.Context, guildID, userID string) (*voice.Session, error) {
	data, err := s.client.Get(ctx, s.key(guildID, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// PutIfAbsent uses SETNX so a duplicate join keeps the first JoinedAt.
func (s *RedisStore) PutIfAbsent(ctx context.Context, guildID, userID string, session voice.Session) (bool, error) {
	data, err := encode(session)
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, s.key(guildID, userID), data, 0).Result()
}

// Take uses GETDEL so only one of two concurrent leaves sees the session.
func (s *RedisStore) Take(ctx context.Context, guildID, userID string) (*voice.Session, error) {
	data, err := s.client.GetDel(ctx, s.key(guildID, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	session, err := decode(data)
	if err != nil {
		slog.Warn("Dropping unreadable voice session",
			slog.String("type", "voice"),
			slog.String("guild_id", guildID),
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil, nil
	}
	return session, nil
}

func encode(s voice.Session) ([]byte, error) {
	return json.Marshal(record{
		ChannelID:   s.ChannelID,
		ChannelName: s.ChannelName,
		JoinedAt:    s.JoinedAt.UnixMilli(),
	})
}

func decode(data []byte) (*voice.Session, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode voice session: %w", err)
	}
	return &voice.Session{
		ChannelID:   r.ChannelID,
		ChannelName: r.ChannelName,
		JoinedAt:    time.UnixMilli(r.JoinedAt),
	}, nil
}

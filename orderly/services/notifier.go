package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/config"
)

// MessageCreator is the slice of the disgo REST client the notifier uses.
type MessageCreator interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

// BannerSource resolves an optional per-guild banner image.
type BannerSource interface {
	BannerURL(ctx context.Context, guildID string) (string, bool)
}

// LevelUpNotifier posts level-up embeds in the background.
type LevelUpNotifier struct {
	messages MessageCreator
	flavor   FlavorGenerator
	banners  BannerSource
	timeout  time.Duration
	wg       sync.WaitGroup
}

var _ leveling.Notifier = (*LevelUpNotifier)(nil)

type NotifierOption func(*LevelUpNotifier)

func WithFlavor(f FlavorGenerator) NotifierOption {
	return func(n *LevelUpNotifier) {
		n.flavor = f
	}
}

func WithBanners(b BannerSource) NotifierOption {
	return func(n *LevelUpNotifier) {
		n.banners = b
	}
}

func NewLevelUpNotifier(messages MessageCreator, opts ...NotifierOption) *LevelUpNotifier {
	n := &LevelUpNotifier{
		messages: messages,
		timeout:  config.NotifyTimeout,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NotifyLevelUp returns immediately. Failures are logged and never reach
// the accrual path.
func (n *LevelUpNotifier) NotifyLevelUp(ctx context.Context, lu leveling.LevelUp) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()

		if err := n.send(ctx, lu); err != nil {
			slog.Error("Failed to send level-up message",
				slog.String("type", "lvl"),
				slog.String("guild_id", lu.GuildID),
				slog.String("channel_id", lu.ChannelID),
				slog.String("user_id", lu.UserID),
				slog.Any("error", err))
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (n *LevelUpNotifier) Wait() {
	n.wg.Wait()
}

func (n *LevelUpNotifier) send(ctx context.Context, lu leveling.LevelUp) error {
	channelID, err := snowflake.Parse(lu.ChannelID)
	if err != nil {
		return fmt.Errorf("invalid channel id %q: %w", lu.ChannelID, err)
	}
	_, err = n.messages.CreateMessage(channelID, n.BuildMessage(ctx, lu))
	return err
}

// BuildMessage renders the announcement, falling back to a fixed line when
// no flavor text is available.
func (n *LevelUpNotifier) BuildMessage(ctx context.Context, lu leveling.LevelUp) discord.MessageCreate {
	comment := ""
	if n.flavor != nil {
		text, err := n.flavor.GenerateComment(ctx, lu)
		if err != nil {
			slog.Warn("Flavor text unavailable, using template",
				slog.String("type", "lvl"),
				slog.String("guild_id", lu.GuildID),
				slog.Any("error", err))
		} else {
			comment = text
		}
	}
	if comment == "" {
		comment = FallbackComment(lu)
	}

	rank := "Unranked"
	if lu.Ranked {
		rank = fmt.Sprintf("#%d", lu.Rank)
	}

	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("%s reached level %d!", lu.DisplayName, lu.NewLevel)).
		SetDescription(comment).
		SetColor(config.LevelUpColor).
		AddField("Level", fmt.Sprintf("%d → %d", lu.OldLevel, lu.NewLevel), true).
		AddField("Rank", rank, true).
		SetTimestamp(time.Now())

	if lu.Source == leveling.SourceMessage {
		embed.AddField("Messages", fmt.Sprintf("%d", lu.MessageCount), true)
	}
	if len(lu.GrantedRoles) > 0 {
		mentions := make([]string, 0, len(lu.GrantedRoles))
		for _, r := range lu.GrantedRoles {
			mentions = append(mentions, fmt.Sprintf("<@&%s>", r.ID))
		}
		embed.AddField("New roles", strings.Join(mentions, " "), false)
	}
	if n.banners != nil {
		if url, ok := n.banners.BannerURL(ctx, lu.GuildID); ok {
			embed.SetImage(url)
		}
	}

	msg := discord.MessageCreate{
		Content: fmt.Sprintf("<@%s>", lu.UserID),
		Embeds:  []discord.Embed{embed.Build()},
	}
	if userID, err := snowflake.Parse(lu.UserID); err == nil {
		msg.AllowedMentions = &discord.AllowedMentions{Users: []snowflake.ID{userID}}
	}
	return msg
}

// FallbackComment is the fixed line used when no flavor text is available.
func FallbackComment(lu leveling.LevelUp) string {
	if lu.Source == leveling.SourceVoice {
		return fmt.Sprintf("GG <@%s>, all that time in voice paid off. Welcome to level %d!", lu.UserID, lu.NewLevel)
	}
	return fmt.Sprintf("GG <@%s>, you just advanced to level %d!", lu.UserID, lu.NewLevel)
}

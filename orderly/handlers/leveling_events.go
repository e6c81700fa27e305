package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly/logger"
	"github.com/orderlycore/orderlycore/orderly/utils"
)

// LevelingHandler feeds gateway events into the leveling service. Failures
// are logged and the event is dropped.
type LevelingHandler struct {
	service *leveling.Service
	timeout time.Duration
}

func NewLevelingHandler(service *leveling.Service, timeout time.Duration) *LevelingHandler {
	return &LevelingHandler{service: service, timeout: timeout}
}

func (h *LevelingHandler) Listeners() []bot.EventListener {
	return []bot.EventListener{
		bot.NewListenerFunc(h.OnMessage),
		bot.NewListenerFunc(h.OnVoiceJoin),
		bot.NewListenerFunc(h.OnVoiceMove),
		bot.NewListenerFunc(h.OnVoiceLeave),
		bot.NewListenerFunc(h.OnGuildLeave),
	}
}

func (h *LevelingHandler) eventContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.timeout)
}

func (h *LevelingHandler) OnMessage(e *events.GuildMessageCreate) {
	ctx, cancel := h.eventContext()
	defer cancel()

	ev := MessageEventFrom(e.GuildID, e.ChannelID, e.Message, guildName(e.Client(), e.GuildID))
	out, err := h.service.OnMessage(ctx, ev)
	if err != nil {
		logger.LogEvent("lvl", "Failed to accrue message XP", err,
			slog.String("guild_id", ev.GuildID),
			slog.String("user_id", ev.UserID))
		return
	}
	if out != nil {
		slog.Debug("Message XP accrued",
			slog.String("type", "lvl"),
			slog.String("guild_id", ev.GuildID),
			slog.String("user_id", ev.UserID),
			slog.Int64("xp", out.XPGained))
	}
}

func (h *LevelingHandler) OnVoiceJoin(e *events.GuildVoiceJoin) {
	if e.Member.User.Bot || e.VoiceState.ChannelID == nil {
		return
	}
	ctx, cancel := h.eventContext()
	defer cancel()

	ev := h.voiceEvent(e.Client(), e.VoiceState.GuildID, e.VoiceState.UserID, e.VoiceState.ChannelID, e.Member)
	if err := h.service.OnVoiceJoin(ctx, ev); err != nil {
		logger.LogEvent("voice", "Failed to start voice session", err,
			slog.String("guild_id", ev.GuildID),
			slog.String("user_id", ev.UserID))
	}
}

// OnVoiceMove also fires for mute, deafen, stream and video toggles, which
// keep the member in the same channel and must not split the session.
func (h *LevelingHandler) OnVoiceMove(e *events.GuildVoiceMove) {
	if e.Member.User.Bot || e.VoiceState.ChannelID == nil {
		return
	}
	if old := e.OldVoiceState.ChannelID; old != nil && *old == *e.VoiceState.ChannelID {
		return
	}
	ctx, cancel := h.eventContext()
	defer cancel()

	ev := h.voiceEvent(e.Client(), e.VoiceState.GuildID, e.VoiceState.UserID, e.VoiceState.ChannelID, e.Member)
	out, err := h.service.OnVoiceMove(ctx, ev)
	logVoiceClose(ev, "Failed to close voice session on move", out, err)
}

// OnVoiceLeave keys the session by the new state. The old state is zero
// when it was not cached (after a restart), but the stored session still
// has to be closed.
func (h *LevelingHandler) OnVoiceLeave(e *events.GuildVoiceLeave) {
	if e.Member.User.Bot {
		return
	}
	ctx, cancel := h.eventContext()
	defer cancel()

	ev := h.voiceEvent(e.Client(), e.VoiceState.GuildID, e.VoiceState.UserID, e.OldVoiceState.ChannelID, e.Member)
	out, err := h.service.OnVoiceLeave(ctx, ev)
	logVoiceClose(ev, "Failed to close voice session", out, err)
}

// Partial failures still carry an outcome, so both are logged.
func logVoiceClose(ev leveling.VoiceEvent, msg string, out *leveling.Outcome, err error) {
	if err != nil {
		logger.LogEvent("voice", msg, err,
			slog.String("guild_id", ev.GuildID),
			slog.String("user_id", ev.UserID))
	}
	if out != nil {
		slog.Debug("Voice session closed",
			slog.String("type", "voice"),
			slog.String("guild_id", ev.GuildID),
			slog.String("user_id", ev.UserID),
			slog.Duration("stay", out.StayTime),
			slog.Int64("xp", out.XPGained))
	}
}

// OnGuildLeave removes the guild's leveling data once the bot is removed.
func (h *LevelingHandler) OnGuildLeave(e *events.GuildLeave) {
	ctx, cancel := h.eventContext()
	defer cancel()

	if err := h.service.PurgeGuild(ctx, e.GuildID.String()); err != nil {
		logger.LogEvent("lvl", "Failed to purge guild data", err,
			slog.String("guild_id", e.GuildID.String()))
		return
	}
	logger.LogSystem("Purged leveling data for removed guild",
		slog.String("guild_id", e.GuildID.String()),
		slog.String("name", e.Guild.Name))
}

func (h *LevelingHandler) voiceEvent(client bot.Client, guildID, userID snowflake.ID, channelID *snowflake.ID, member discord.Member) leveling.VoiceEvent {
	ev := leveling.VoiceEvent{
		GuildID:     guildID.String(),
		GuildName:   guildName(client, guildID),
		UserID:      userID.String(),
		DisplayName: utils.DisplayName(member.User, &member),
	}
	if channelID != nil {
		ev.ChannelID = channelID.String()
		if ch, ok := client.Caches().Channel(*channelID); ok {
			ev.ChannelName = ch.Name()
		}
	}
	return ev
}

// MessageEventFrom maps a guild message onto the accrual input.
func MessageEventFrom(guildID, channelID snowflake.ID, msg discord.Message, guildName string) leveling.MessageEvent {
	return leveling.MessageEvent{
		GuildID:     guildID.String(),
		GuildName:   guildName,
		ChannelID:   channelID.String(),
		UserID:      msg.Author.ID.String(),
		DisplayName: utils.DisplayName(msg.Author, msg.Member),
		AuthorIsBot: msg.Author.Bot || msg.WebhookID != nil,
		At:          msg.CreatedAt,
	}
}

func guildName(client bot.Client, guildID snowflake.ID) string {
	if guild, ok := client.Caches().Guild(guildID); ok {
		return guild.Name
	}
	return ""
}

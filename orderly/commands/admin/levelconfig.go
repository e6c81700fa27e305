package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly"
	"github.com/orderlycore/orderlycore/orderly/config"
	"github.com/orderlycore/orderlycore/orderly/utils"
)

var LevelConfig = discord.SlashCommandCreate{
	Name:        "levelconfig",
	Description: "Configure leveling for this server",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "channel",
			Description: "Set where level-up announcements go. Leave empty to announce in place.",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:         "channel",
					Description:  "Announcement channel",
					Required:     false,
					ChannelTypes: []discord.ChannelType{discord.ChannelTypeGuildText, discord.ChannelTypeGuildNews},
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "enable",
			Description: "Start awarding XP in this server",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "disable",
			Description: "Stop awarding XP in this server",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "show",
			Description: "Show the current leveling settings",
		},
	},
}

func updateSettings(b *orderly.Bot, e *handler.CommandEvent, mutate func(s *leveling.Settings) string) error {
	if ok, err := requireManageGuild(e, "configure leveling"); !ok {
		return err
	}
	guildID := e.GuildID().String()

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()

	settings, err := b.SettingsRepository.Get(ctx, guildID)
	if err != nil {
		return utils.EH.CreateErrorEmbed(e, "Failed to load leveling settings.")
	}
	msg := mutate(settings)
	if err := b.SettingsRepository.Save(ctx, settings); err != nil {
		return utils.EH.CreateErrorEmbed(e, "Failed to save leveling settings.")
	}

	slog.Info("Leveling settings updated",
		slog.String("type", "cmd"),
		slog.String("guild_id", guildID),
		slog.Bool("enabled", settings.Enabled),
		slog.String("notification_channel_id", settings.NotificationChannelID))
	return utils.EH.CreateSuccessEmbed(e, msg)
}

func LevelConfigChannelHandler(b *orderly.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		channel, set := e.SlashCommandInteractionData().OptChannel("channel")
		return updateSettings(b, e, func(s *leveling.Settings) string {
			if !set {
				s.NotificationChannelID = ""
				return "Level-ups will be announced in the channel where they happen."
			}
			s.NotificationChannelID = channel.ID.String()
			return fmt.Sprintf("Level-ups will be announced in <#%s>.", channel.ID)
		})
	}
}

func LevelConfigEnableHandler(b *orderly.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return updateSettings(b, e, func(s *leveling.Settings) string {
			s.Enabled = true
			return "Leveling is enabled. Members earn XP from messages and voice."
		})
	}
}

func LevelConfigDisableHandler(b *orderly.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return updateSettings(b, e, func(s *leveling.Settings) string {
			s.Enabled = false
			return "Leveling is disabled. Existing levels are kept."
		})
	}
}

func LevelConfigShowHandler(b *orderly.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Leveling is configured per server.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		settings, err := b.SettingsRepository.Get(ctx, guildID.String())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load leveling settings.")
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{SettingsEmbed(settings, b.Cfg.Leveling.Domain())},
		})
	}
}

func SettingsEmbed(s *leveling.Settings, cfg leveling.Config) discord.Embed {
	status := "Enabled"
	if !s.Enabled {
		status = "Disabled"
	}
	channel := "Where the level-up happens"
	if s.NotificationChannelID != "" {
		channel = fmt.Sprintf("<#%s>", s.NotificationChannelID)
	}

	return discord.NewEmbedBuilder().
		SetTitle("Leveling settings").
		SetColor(config.InfoColor).
		AddField("Status", status, true).
		AddField("Announcements", channel, true).
		AddField("Role rewards", fmt.Sprintf("%d", len(s.RoleRewards)), true).
		AddField("Message XP", fmt.Sprintf("%d–%d every %s", cfg.MessageXPMin, cfg.MessageXPMax, cfg.MessageCooldown), true).
		AddField("Voice XP", fmt.Sprintf("%d per minute", cfg.VoiceXPPerMinute), true).
		Build()
}

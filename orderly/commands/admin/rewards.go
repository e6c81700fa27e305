package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sahilm/fuzzy"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly"
	"github.com/orderlycore/orderlycore/orderly/config"
	"github.com/orderlycore/orderlycore/orderly/utils"
)

var Rewards = discord.SlashCommandCreate{
	Name:        "rewards",
	Description: "Manage the roles members receive when they level up",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "list",
			Description: "Show the configured role rewards",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "add",
			Description: "Grant a role when members reach a level",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "level",
					Description: "Level that unlocks the role",
					Required:    true,
					MinValue:    utils.Ptr(1),
				},
				discord.ApplicationCommandOptionRole{
					Name:        "role",
					Description: "Role to grant",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Stop granting a reward role",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:         "reward",
					Description:  "Reward to remove",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
	},
}

func RewardsListHandler(b *orderly.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Rewards are configured per server.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		settings, err := b.SettingsRepository.Get(ctx, guildID.String())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load the reward table.")
		}
		if len(settings.RoleRewards) == 0 {
			return utils.EH.CreateNoDataEmbed(e, "No role rewards configured. Add one with `/rewards add`.")
		}

		lines := make([]string, 0, len(settings.RoleRewards))
		for i, r := range settings.RoleRewards {
			if i == config.RewardsPageSize {
				lines = append(lines, fmt.Sprintf("…and %d more", len(settings.RoleRewards)-i))
				break
			}
			line := fmt.Sprintf("Level **%d** → <@&%s>", r.Level, r.RoleID)
			if _, ok, _ := b.Roles.Role(ctx, guildID.String(), r.RoleID); !ok {
				line += " *(role deleted)*"
			}
			lines = append(lines, line)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{discord.NewEmbedBuilder().
				SetTitle("Role rewards").
				SetDescription(strings.Join(lines, "\n")).
				SetColor(config.InfoColor).
				Build()},
		})
	}
}

func RewardsAddHandler(b *orderly.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if ok, err := requireManageGuild(e, "manage role rewards"); !ok {
			return err
		}
		guildID := e.GuildID()

		data := e.SlashCommandInteractionData()
		level := data.Int("level")
		role := data.Role("role")

		if role.ID == *guildID {
			return utils.EH.CreateErrorEmbed(e, "The @everyone role can't be a reward.")
		}
		if role.Managed {
			return utils.EH.CreateErrorEmbed(e, "Integration-managed roles can't be granted by the bot.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		settings, err := b.SettingsRepository.Get(ctx, guildID.String())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load the reward table.")
		}
		replaced, err := settings.SetReward(leveling.RoleReward{Level: level, RoleID: role.ID.String()})
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, err.Error())
		}
		if err := b.SettingsRepository.Save(ctx, settings); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the reward table.")
		}

		slog.Info("Role reward configured",
			slog.String("type", "cmd"),
			slog.String("guild_id", guildID.String()),
			slog.String("role_id", role.ID.String()),
			slog.Int("level", level),
			slog.Bool("replaced", replaced))

		msg := fmt.Sprintf("Members reaching level **%d** will now receive <@&%s>.", level, role.ID)
		if replaced {
			msg = fmt.Sprintf("<@&%s> moved to level **%d**.", role.ID, level)
		}
		if top, err := b.Roles.BotHighestRolePosition(ctx, guildID.String()); err == nil && role.Position >= top {
			msg += "\n⚠️ This role sits above my highest role, so I can't grant it until it's moved below me."
		}
		return utils.EH.CreateSuccessEmbed(e, msg)
	}
}

func RewardsRemoveHandler(b *orderly.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if ok, err := requireManageGuild(e, "manage role rewards"); !ok {
			return err
		}
		guildID := e.GuildID()
		roleID := strings.TrimSpace(e.SlashCommandInteractionData().String("reward"))
		if _, err := snowflake.Parse(roleID); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Pick a reward from the suggestions.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		settings, err := b.SettingsRepository.Get(ctx, guildID.String())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load the reward table.")
		}
		removed, ok := settings.RemoveReward(roleID)
		if !ok {
			return utils.EH.CreateErrorEmbed(e, "That role isn't a configured reward.")
		}
		if err := b.SettingsRepository.Save(ctx, settings); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the reward table.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("<@&%s> is no longer granted at level **%d**. Members who already have it keep it.", removed.RoleID, removed.Level))
	}
}

func RewardsAutocompleteHandler(b *orderly.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.AutocompleteTimeout)
		defer cancel()

		settings, err := b.SettingsRepository.Get(ctx, guildID.String())
		if err != nil {
			slog.Error("Failed to load rewards for autocomplete",
				slog.String("type", "cmd"),
				slog.String("guild_id", guildID.String()),
				slog.Any("error", err))
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		items := make(RewardItems, 0, len(settings.RoleRewards))
		for _, r := range settings.RoleRewards {
			name := r.RoleID
			if role, ok, _ := b.Roles.Role(ctx, guildID.String(), r.RoleID); ok {
				name = role.Name
			}
			items = append(items, RewardItem{Reward: r, Label: fmt.Sprintf("Level %d · %s", r.Level, name)})
		}

		matches := MatchRewards(e.Data.String("reward"), items)
		choices := make([]discord.AutocompleteChoice, 0, len(matches))
		for _, m := range matches {
			choices = append(choices, discord.AutocompleteChoiceString{
				Name:  m.Label,
				Value: m.Reward.RoleID,
			})
		}
		return e.AutocompleteResult(choices)
	}
}

const maxAutocompleteChoices = 25

type RewardItem struct {
	Reward leveling.RoleReward
	Label  string
}

// RewardItems implements fuzzy.Source over reward labels.
type RewardItems []RewardItem

func (items RewardItems) Len() int {
	return len(items)
}

func (items RewardItems) String(i int) string {
	return items[i].Label
}

// MatchRewards fuzzy-filters items by query. An empty query keeps the
// configured order.
func MatchRewards(query string, items RewardItems) RewardItems {
	query = strings.TrimSpace(query)
	if query == "" {
		return items[:min(len(items), maxAutocompleteChoices)]
	}

	matches := fuzzy.FindFrom(query, items)
	out := make(RewardItems, 0, min(len(matches), maxAutocompleteChoices))
	for _, m := range matches {
		if len(out) == maxAutocompleteChoices {
			break
		}
		out = append(out, items[m.Index])
	}
	return out
}

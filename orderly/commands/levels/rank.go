package levels

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly"
	"github.com/orderlycore/orderlycore/orderly/config"
	"github.com/orderlycore/orderlycore/orderly/utils"
)

var Rank = discord.SlashCommandCreate{
	Name:        "rank",
	Description: "Show your level, XP and voice time",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Member to look up",
			Required:    false,
		},
	},
}

func RankHandler(b *orderly.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Levels only exist inside a server.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		data := e.SlashCommandInteractionData()
		target := e.User()
		var member *discord.Member
		if u, ok := data.OptUser("user"); ok {
			target = u
			if m, ok := data.OptMember("user"); ok {
				member = &m.Member
			}
		} else if m := e.Member(); m != nil {
			member = &m.Member
		}
		if target.Bot {
			return utils.EH.CreateErrorEmbed(e, "Bots don't earn XP.")
		}

		profile, err := b.Queries.GetProfile(ctx, guildID.String(), target.ID.String())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load rank data. Please try again later.")
		}
		if !HasActivity(profile) {
			return utils.EH.CreateNoDataEmbed(e, fmt.Sprintf("%s hasn't earned any XP yet.", utils.DisplayName(target, member)))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{RankEmbed(utils.DisplayName(target, member), target.EffectiveAvatarURL(), profile, time.Now())},
		})
	}
}

// HasActivity reports whether the member has any stored or in-flight activity.
func HasActivity(p *leveling.Profile) bool {
	return p.Progress.Level > 0 ||
		p.Progress.XP > 0 ||
		p.Progress.MessageCount > 0 ||
		p.Voice.TotalStayTime > 0 ||
		p.OpenSession != nil
}

func RankEmbed(name, avatarURL string, p *leveling.Profile, now time.Time) discord.Embed {
	rank := "Unranked"
	if p.Ranked {
		rank = fmt.Sprintf("#%d", p.Rank)
	}

	voice := utils.FormatStayTime(p.Voice.TotalStayTime)
	if p.OpenSession != nil {
		voice += fmt.Sprintf("\nIn <#%s> for %s", p.OpenSession.ChannelID, utils.FormatStayTime(now.Sub(p.OpenSession.JoinedAt)))
	}

	return discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("%s's rank", name)).
		SetThumbnail(avatarURL).
		SetColor(config.InfoColor).
		AddField("Rank", rank, true).
		AddField("Level", fmt.Sprintf("%d", p.Progress.Level), true).
		AddField("Messages", utils.FormatNumber(p.Progress.MessageCount), true).
		AddField("XP", fmt.Sprintf("%s %s / %s",
			utils.ProgressBar(p.Progress.XP, p.RequiredXP),
			utils.FormatNumber(p.Progress.XP),
			utils.FormatNumber(p.RequiredXP)), false).
		AddField("Voice time", voice, true).
		AddField("Voice sessions", utils.FormatNumber(p.Voice.Sessions), true).
		Build()
}

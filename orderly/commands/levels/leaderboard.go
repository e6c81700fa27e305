package levels

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
	"github.com/orderlycore/orderlycore/orderly"
	"github.com/orderlycore/orderlycore/orderly/config"
	"github.com/orderlycore/orderlycore/orderly/utils"
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "Show the server's top members by level",
}

func LeaderboardHandler(b *orderly.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Leaderboards only exist inside a server.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		records, err := b.Queries.Leaderboard(ctx, guildID.String())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load the leaderboard. Please try again later.")
		}
		if len(records) == 0 {
			return utils.EH.CreateNoDataEmbed(e, "Nobody has earned XP in this server yet.")
		}

		guildName := "Server"
		if g, ok := e.Guild(); ok {
			guildName = g.Name
		}
		callerRank, ranked := leveling.ComputeRank(records, e.User().ID.String())

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.SetTitle(fmt.Sprintf("%s leaderboard", guildName))
				embed.SetColor(config.InfoColor)
				embed.SetDescription(LeaderboardPage(records, page, config.LeaderboardPageSize))

				footer := fmt.Sprintf("Page %d/%d", page+1, PageCount(len(records), config.LeaderboardPageSize))
				if ranked {
					footer += fmt.Sprintf(" · You are #%d", callerRank)
				}
				embed.SetFooterText(footer)
			},
			Pages:      PageCount(len(records), config.LeaderboardPageSize),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func PageCount(total, size int) int {
	if total == 0 {
		return 1
	}
	return (total + size - 1) / size
}

// LeaderboardPage renders one page of an already ordered leaderboard.
func LeaderboardPage(records []leveling.Progress, page, size int) string {
	start := page * size
	if start >= len(records) {
		return ""
	}
	end := min(start+size, len(records))

	var sb strings.Builder
	for i, p := range records[start:end] {
		fmt.Fprintf(&sb, "`#%d` <@%s> · Level **%d** · %s XP\n",
			start+i+1, p.UserID, p.Level, utils.FormatNumber(p.XP))
	}
	return sb.String()
}

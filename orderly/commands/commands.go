package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/orderlycore/orderlycore/orderly"
	"github.com/orderlycore/orderlycore/orderly/commands/admin"
	"github.com/orderlycore/orderlycore/orderly/commands/levels"
	"github.com/orderlycore/orderlycore/orderly/commands/system"
	"github.com/orderlycore/orderlycore/orderly/handlers"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, levels.Commands...)
	Commands = append(Commands, admin.Commands...)
	Commands = append(Commands, system.Commands...)
}

// Register mounts every slash command and autocomplete route on h.
func Register(h handler.Router, b *orderly.Bot) {
	h.Command("/version", system.VersionHandler(b))

	h.Command("/rank", handlers.WrapWithLogging("rank", levels.RankHandler(b)))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", levels.LeaderboardHandler(b)))

	h.Route("/rewards", func(r handler.Router) {
		r.Command("/list", handlers.WrapWithLogging("rewards list", admin.RewardsListHandler(b)))
		r.Command("/add", handlers.WrapWithLogging("rewards add", admin.RewardsAddHandler(b)))
		r.Command("/remove", handlers.WrapWithLogging("rewards remove", admin.RewardsRemoveHandler(b)))
		r.Autocomplete("/remove", admin.RewardsAutocompleteHandler(b))
	})

	h.Route("/levelconfig", func(r handler.Router) {
		r.Command("/channel", handlers.WrapWithLogging("levelconfig channel", admin.LevelConfigChannelHandler(b)))
		r.Command("/enable", handlers.WrapWithLogging("levelconfig enable", admin.LevelConfigEnableHandler(b)))
		r.Command("/disable", handlers.WrapWithLogging("levelconfig disable", admin.LevelConfigDisableHandler(b)))
		r.Command("/show", handlers.WrapWithLogging("levelconfig show", admin.LevelConfigShowHandler(b)))
	})
}

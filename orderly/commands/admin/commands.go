package admin

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/orderlycore/orderlycore/orderly/utils"
)

var Commands = []discord.ApplicationCommandCreate{
	Rewards,
	LevelConfig,
}

// requireManageGuild answers the interaction itself when the caller lacks
// Manage Server; handlers return the error as-is when ok is false.
func requireManageGuild(e *handler.CommandEvent, action string) (ok bool, err error) {
	if m := e.Member(); m != nil && m.Permissions.Has(discord.PermissionManageGuild) {
		return true, nil
	}
	return false, utils.EH.CreatePermissionError(e, action)
}

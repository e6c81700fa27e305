package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/orderlycore/orderlycore/orderly/config"
)

// ResponseHandler provides standardized command responses.
type ResponseHandler struct{}

var EH = &ResponseHandler{}

func (h *ResponseHandler) reply(e *handler.CommandEvent, title, message string, color int, ephemeral bool) error {
	msg := discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: message,
			Color:       color,
		}},
	}
	if ephemeral {
		msg.Flags = discord.MessageFlagEphemeral
	}
	return e.CreateMessage(msg)
}

func (h *ResponseHandler) CreateErrorEmbed(e *handler.CommandEvent, message string) error {
	return h.reply(e, "", message, config.ErrorColor, true)
}

func (h *ResponseHandler) CreateSuccessEmbed(e *handler.CommandEvent, message string) error {
	return h.reply(e, "", message, config.SuccessColor, false)
}

func (h *ResponseHandler) CreateInfoEmbed(e *handler.CommandEvent, message string) error {
	return h.reply(e, "", message, config.InfoColor, false)
}

// CreatePermissionError is shown when a member lacks Manage Server.
func (h *ResponseHandler) CreatePermissionError(e *handler.CommandEvent, action string) error {
	return h.reply(e, "Missing permission", "You need the Manage Server permission to "+action+".", config.ErrorColor, true)
}

// CreateNoDataEmbed is the neutral reply for members or guilds without records.
func (h *ResponseHandler) CreateNoDataEmbed(e *handler.CommandEvent, message string) error {
	return h.reply(e, "No data yet", message, config.EmbedDefaultColor, true)
}

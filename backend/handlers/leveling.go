package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/orderlycore/orderlycore/backend/models"
	"github.com/orderlycore/orderlycore/backend/utils"
)

// Leaderboard serves GET /api/guilds/:guild/leaderboard?page=&limit=.
func Leaderboard(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guildID, ok := guildParam(c)
		if !ok {
			return nil
		}
		page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))

		ctx, cancel := w.requestContext(c)
		defer cancel()

		board, err := w.Queries.Leaderboard(ctx, guildID)
		if err != nil {
			slog.Error("Failed to load leaderboard",
				slog.String("guild_id", guildID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to load leaderboard")
		}

		start := (page - 1) * limit
		if start > len(board) {
			start = len(board)
		}
		end := min(start+limit, len(board))

		entries := webmodels.ConvertLeaderboard(board[start:end], start)
		return utils.SendPaginated(c, entries, webmodels.NewPaginationInfo(page, limit, int64(len(board))), "")
	}
}

// MemberProgress serves GET /api/guilds/:guild/users/:user/progress.
func MemberProgress(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guildID, ok := guildParam(c)
		if !ok {
			return nil
		}
		userID := c.Params("user")
		if !utils.ValidSnowflake(userID) {
			return utils.SendBadRequest(c, "Invalid user ID", map[string]string{"user": userID})
		}

		ctx, cancel := w.requestContext(c)
		defer cancel()

		profile, err := w.Queries.GetProfile(ctx, guildID, userID)
		if err != nil {
			slog.Error("Failed to load member progress",
				slog.String("guild_id", guildID),
				slog.String("user_id", userID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to load member progress")
		}
		p := profile.Progress
		if p.Level == 0 && p.XP == 0 && p.MessageCount == 0 && profile.Voice.Sessions == 0 && profile.OpenSession == nil {
			return utils.SendNotFound(c, "No leveling data for this member")
		}

		return utils.SendSuccess(c, webmodels.ConvertProfile(guildID, userID, profile, w.now()), "")
	}
}

// GetSettings serves GET /api/guilds/:guild/settings/leveling.
func GetSettings(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guildID, ok := guildParam(c)
		if !ok {
			return nil
		}

		ctx, cancel := w.requestContext(c)
		defer cancel()

		settings, err := w.Repos.Settings.Get(ctx, guildID)
		if err != nil {
			slog.Error("Failed to load leveling settings",
				slog.String("guild_id", guildID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to load settings")
		}
		return utils.SendSuccess(c, webmodels.ConvertSettings(settings), "")
	}
}

// UpdateSettings serves PUT /api/guilds/:guild/settings/leveling. The body
// is a partial update; role_rewards replaces the whole table.
func UpdateSettings(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guildID, ok := guildParam(c)
		if !ok {
			return nil
		}

		var req webmodels.SettingsUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		ctx, cancel := w.requestContext(c)
		defer cancel()

		settings, err := w.Repos.Settings.Get(ctx, guildID)
		if err != nil {
			slog.Error("Failed to load leveling settings",
				slog.String("guild_id", guildID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to load settings")
		}
		settings.GuildID = guildID

		if errs := utils.ApplySettingsUpdate(settings, &req); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}
		if err := w.Repos.Settings.Save(ctx, settings); err != nil {
			slog.Error("Failed to save leveling settings",
				slog.String("guild_id", guildID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to save settings")
		}

		return utils.SendSuccess(c, webmodels.ConvertSettings(settings), "Settings updated")
	}
}

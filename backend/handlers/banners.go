package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/orderlycore/orderlycore/backend/models"
	"github.com/orderlycore/orderlycore/backend/utils"
	"github.com/orderlycore/orderlycore/orderly/services"
)

// GetBanner serves GET /api/guilds/:guild/banner.
func GetBanner(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guildID, ok := guildParam(c)
		if !ok {
			return nil
		}
		if w.Banners == nil {
			return utils.SendServiceUnavailable(c, "Banner storage is not configured")
		}

		ctx, cancel := w.requestContext(c)
		defer cancel()

		url, found := w.Banners.BannerURL(ctx, guildID)
		if !found {
			return utils.SendNotFound(c, "No banner uploaded for this guild")
		}
		return utils.SendSuccess(c, webmodels.BannerDTO{GuildID: guildID, URL: url}, "")
	}
}

// UploadBanner serves PUT /api/guilds/:guild/banner with a multipart
// "banner" PNG file.
func UploadBanner(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guildID, ok := guildParam(c)
		if !ok {
			return nil
		}
		if w.Banners == nil {
			return utils.SendServiceUnavailable(c, "Banner storage is not configured")
		}

		header, err := c.FormFile("banner")
		if err != nil {
			return utils.SendBadRequest(c, "Missing banner file", nil)
		}
		if errs := utils.ValidateBanner(header); len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		file, err := header.Open()
		if err != nil {
			return utils.SendBadRequest(c, "Unreadable banner file", nil)
		}
		defer file.Close()

		ctx, cancel := w.requestContext(c)
		defer cancel()

		url, err := w.Banners.Upload(ctx, guildID, file, header.Size)
		if errors.Is(err, services.ErrBannerTooLarge) {
			return utils.HandleValidationErrors(c, []webmodels.ValidationError{{Field: "banner", Message: err.Error()}})
		}
		if err != nil {
			slog.Error("Failed to upload banner",
				slog.String("guild_id", guildID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to upload banner")
		}

		return utils.SendSuccess(c, webmodels.BannerDTO{GuildID: guildID, URL: url}, "Banner uploaded")
	}
}

// DeleteBanner serves DELETE /api/guilds/:guild/banner.
func DeleteBanner(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guildID, ok := guildParam(c)
		if !ok {
			return nil
		}
		if w.Banners == nil {
			return utils.SendServiceUnavailable(c, "Banner storage is not configured")
		}

		ctx, cancel := w.requestContext(c)
		defer cancel()

		if err := w.Banners.Delete(ctx, guildID); err != nil {
			slog.Error("Failed to delete banner",
				slog.String("guild_id", guildID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to delete banner")
		}
		return utils.SendNoContent(c)
	}
}

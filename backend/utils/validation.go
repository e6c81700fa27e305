package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"

	"github.com/orderlycore/orderlycore/backend/models"
	"github.com/orderlycore/orderlycore/internal/domain/leveling"
)

const (
	DefaultPageLimit = 25
	MaxPageLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int range.
	MaxPage = 1_000_000

	// MaxBannerSize matches what the banner store accepts.
	MaxBannerSize int64 = 8 << 20
)

// ValidSnowflake reports whether id parses as a non-zero Discord ID.
func ValidSnowflake(id string) bool {
	parsed, err := snowflake.Parse(id)
	return err == nil && parsed != 0
}

// ParsePagination reads page and limit query values, clamping them to sane
// bounds instead of rejecting the request.
func ParsePagination(pageStr, limitStr string) (page, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// ApplySettingsUpdate validates req and applies it to s. Nothing is applied
// when any field is rejected.
func ApplySettingsUpdate(s *leveling.Settings, req *models.SettingsUpdateRequest) []models.ValidationError {
	var errs []models.ValidationError

	channelID := s.NotificationChannelID
	if req.NotificationChannelID != nil {
		channelID = strings.TrimSpace(*req.NotificationChannelID)
		if channelID != "" && !ValidSnowflake(channelID) {
			errs = append(errs, models.ValidationError{
				Field:   "notification_channel_id",
				Message: "Channel ID must be a Discord snowflake",
			})
		}
	}

	rewards := s.RoleRewards
	if req.RoleRewards != nil {
		table := &leveling.Settings{RoleRewards: []leveling.RoleReward{}}
		for i, r := range *req.RoleRewards {
			field := fmt.Sprintf("role_rewards[%d]", i)
			if r.RoleID != "" && !ValidSnowflake(r.RoleID) {
				errs = append(errs, models.ValidationError{Field: field, Message: "Role ID must be a Discord snowflake"})
				continue
			}
			if _, err := table.SetReward(r); err != nil {
				errs = append(errs, models.ValidationError{Field: field, Message: err.Error()})
			}
		}
		rewards = table.RoleRewards
	}

	if len(errs) > 0 {
		return errs
	}
	if req.Enabled != nil {
		s.Enabled = *req.Enabled
	}
	s.NotificationChannelID = channelID
	s.RoleRewards = rewards
	return nil
}

// ValidateBanner checks an uploaded banner file before it is read.
func ValidateBanner(header *multipart.FileHeader) []models.ValidationError {
	var errs []models.ValidationError
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".png" {
		errs = append(errs, models.ValidationError{Field: "banner", Message: "Banner must be a PNG image"})
	}
	if header.Size <= 0 {
		errs = append(errs, models.ValidationError{Field: "banner", Message: "Banner file is empty"})
	} else if header.Size > MaxBannerSize {
		errs = append(errs, models.ValidationError{Field: "banner", Message: "Banner must be 8 MiB or smaller"})
	}
	return errs
}

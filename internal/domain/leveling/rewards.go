package leveling

import (
	"context"
	"log/slog"
	"sort"
)

// ResolveRewards returns the rewards unlocked by moving from oldLevel to
// newLevel, ordered by level.
func ResolveRewards(oldLevel, newLevel int, table []RoleReward) []RoleReward {
	if newLevel <= oldLevel || len(table) == 0 {
		return nil
	}

	due := make([]RoleReward, 0, len(table))
	for _, r := range table {
		if r.Level > oldLevel && r.Level <= newLevel {
			due = append(due, r)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Level < due[j].Level
	})
	return due
}

// GrantRewards adds each due role the member does not already hold and
// returns the roles that were actually granted. Roles that no longer exist
// or sit at or above botTop are skipped; a failed grant does not stop the
// remaining ones. When the member's roles cannot be read the roles are
// still added, but none are reported since they may have been held.
func GrantRewards(ctx context.Context, roles RoleManager, guildID, userID string, due []RoleReward, botTop int) []Role {
	if len(due) == 0 {
		return nil
	}

	held := make(map[string]bool)
	current, err := roles.MemberRoleIDs(ctx, guildID, userID)
	verified := err == nil
	if err != nil {
		slog.Warn("Failed to read member roles, grants will be unverified",
			slog.String("type", "lvl"),
			slog.String("guild_id", guildID),
			slog.String("user_id", userID),
			slog.Any("error", err))
	}
	for _, id := range current {
		held[id] = true
	}

	var granted []Role
	for _, reward := range due {
		role, ok, err := roles.Role(ctx, guildID, reward.RoleID)
		if err != nil {
			slog.Warn("Failed to look up reward role",
				slog.String("type", "lvl"),
				slog.String("guild_id", guildID),
				slog.String("role_id", reward.RoleID),
				slog.Any("error", err))
			continue
		}
		if !ok {
			slog.Warn("Reward role no longer exists",
				slog.String("type", "lvl"),
				slog.String("guild_id", guildID),
				slog.String("role_id", reward.RoleID),
				slog.Int("level", reward.Level))
			continue
		}
		if role.Position >= botTop {
			slog.Warn("Reward role is above the bot's highest role",
				slog.String("type", "lvl"),
				slog.String("guild_id", guildID),
				slog.String("role_id", role.ID),
				slog.Int("role_position", role.Position),
				slog.Int("bot_position", botTop))
			continue
		}
		if held[role.ID] {
			continue
		}

		if err := roles.AddMemberRole(ctx, guildID, userID, role.ID); err != nil {
			slog.Error("Failed to grant reward role",
				slog.String("type", "lvl"),
				slog.String("guild_id", guildID),
				slog.String("user_id", userID),
				slog.String("role_id", role.ID),
				slog.Any("error", err))
			continue
		}
		held[role.ID] = true
		if !verified {
			slog.Info("Granted reward role, prior membership unverified",
				slog.String("type", "lvl"),
				slog.String("guild_id", guildID),
				slog.String("user_id", userID),
				slog.String("role_id", role.ID))
			continue
		}
		granted = append(granted, role)
	}
	return granted
}

package services

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
)

// GuildRoles implements leveling.RoleManager over the disgo cache, falling
// back to REST for members that are not cached.
type GuildRoles struct {
	client bot.Client
}

var _ leveling.RoleManager = (*GuildRoles)(nil)

func NewGuildRoles(client bot.Client) *GuildRoles {
	return &GuildRoles{client: client}
}

func parseIDs(ids ...string) ([]snowflake.ID, error) {
	out := make([]snowflake.ID, len(ids))
	for i, s := range ids {
		id, err := snowflake.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid snowflake %q: %w", s, err)
		}
		out[i] = id
	}
	return out, nil
}

func (g *GuildRoles) Role(_ context.Context, guildID, roleID string) (leveling.Role, bool, error) {
	ids, err := parseIDs(guildID, roleID)
	if err != nil {
		return leveling.Role{}, false, err
	}
	role, ok := g.client.Caches().Role(ids[0], ids[1])
	if !ok {
		return leveling.Role{}, false, nil
	}
	return leveling.Role{ID: role.ID.String(), Name: role.Name, Position: role.Position}, true, nil
}

func (g *GuildRoles) MemberRoleIDs(_ context.Context, guildID, userID string) ([]string, error) {
	ids, err := parseIDs(guildID, userID)
	if err != nil {
		return nil, err
	}

	var roles []snowflake.ID
	if member, ok := g.client.Caches().Member(ids[0], ids[1]); ok {
		roles = member.RoleIDs
	} else {
		member, err := g.client.Rest().GetMember(ids[0], ids[1])
		if err != nil {
			return nil, fmt.Errorf("failed to fetch member: %w", err)
		}
		roles = member.RoleIDs
	}

	out := make([]string, len(roles))
	for i, id := range roles {
		out[i] = id.String()
	}
	return out, nil
}

func (g *GuildRoles) AddMemberRole(_ context.Context, guildID, userID, roleID string) error {
	ids, err := parseIDs(guildID, userID, roleID)
	if err != nil {
		return err
	}
	return g.client.Rest().AddMemberRole(ids[0], ids[1], ids[2])
}

// BotHighestRolePosition returns the position of the bot's top role. Roles
// at or above it cannot be assigned by the bot.
func (g *GuildRoles) BotHighestRolePosition(_ context.Context, guildID string) (int, error) {
	ids, err := parseIDs(guildID)
	if err != nil {
		return 0, err
	}
	self, ok := g.client.Caches().SelfMember(ids[0])
	if !ok {
		return 0, fmt.Errorf("bot member not cached for guild %s", guildID)
	}
	return highestPosition(self.RoleIDs, func(id snowflake.ID) (discord.Role, bool) {
		return g.client.Caches().Role(ids[0], id)
	}), nil
}

func highestPosition(roleIDs []snowflake.ID, lookup func(snowflake.ID) (discord.Role, bool)) int {
	top := 0
	for _, id := range roleIDs {
		if role, ok := lookup(id); ok && role.Position > top {
			top = role.Position
		}
	}
	return top
}

package utils

import "github.com/disgoorg/disgo/discord"

// DisplayName prefers the guild nickname, then the global name.
func DisplayName(u discord.User, m *discord.Member) string {
	if m != nil && m.Nick != nil && *m.Nick != "" {
		return *m.Nick
	}
	if u.GlobalName != nil && *u.GlobalName != "" {
		return *u.GlobalName
	}
	return u.Username
}

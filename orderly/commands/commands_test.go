package commands

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
)

func TestCommandsAreUnique(t *testing.T) {
	want := map[string]bool{"rank": true, "leaderboard": true, "rewards": true, "levelconfig": true, "version": true}

	seen := map[string]bool{}
	for _, c := range Commands {
		name := c.CommandName()
		if seen[name] {
			t.Errorf("command %q registered twice", name)
		}
		seen[name] = true
		if _, ok := c.(discord.SlashCommandCreate); !ok {
			t.Errorf("command %q is not a slash command", name)
		}
	}
	for name := range want {
		if !seen[name] {
			t.Errorf("command %q missing", name)
		}
	}
	if len(seen) != len(want) {
		t.Errorf("got %d commands, want %d", len(seen), len(want))
	}
}

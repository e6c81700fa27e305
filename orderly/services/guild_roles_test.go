package services

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

func TestHighestPosition(t *testing.T) {
	roles := map[snowflake.ID]discord.Role{
		1: {ID: 1, Position: 3},
		2: {ID: 2, Position: 7},
	}
	lookup := func(id snowflake.ID) (discord.Role, bool) {
		r, ok := roles[id]
		return r, ok
	}

	tests := []struct {
		name string
		ids  []snowflake.ID
		want int
	}{
		{name: "no roles", ids: nil, want: 0},
		{name: "picks the top role", ids: []snowflake.ID{1, 2}, want: 7},
		{name: "skips uncached roles", ids: []snowflake.ID{9, 1}, want: 3},
	}
	for _, tt := range tests {
		if got := highestPosition(tt.ids, lookup); got != tt.want {
			t.Errorf("%s: highestPosition() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("1", "2")
	if err != nil || len(ids) != 2 || ids[1] != 2 {
		t.Fatalf("parseIDs() = %v, %v", ids, err)
	}
	if _, err := parseIDs("x"); err == nil {
		t.Errorf("parseIDs(x) error = nil, want error")
	}
}

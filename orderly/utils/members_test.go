package utils

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
)

func strPtr(s string) *string { return &s }

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		user   discord.User
		member *discord.Member
		want   string
	}{
		{name: "username only", user: discord.User{Username: "kai"}, want: "kai"},
		{name: "global name", user: discord.User{Username: "kai", GlobalName: strPtr("Kai")}, want: "Kai"},
		{
			name:   "nickname wins",
			user:   discord.User{Username: "kai", GlobalName: strPtr("Kai")},
			member: &discord.Member{Nick: strPtr("Captain")},
			want:   "Captain",
		},
		{
			name:   "empty nickname ignored",
			user:   discord.User{Username: "kai"},
			member: &discord.Member{Nick: strPtr("")},
			want:   "kai",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.user, tt.member); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

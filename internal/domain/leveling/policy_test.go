package leveling

import (
	"reflect"
	"testing"
	"time"
)

func TestRequiredXP(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{level: 0, want: 100},
		{level: 1, want: 155},
		{level: 2, want: 220},
		{level: 10, want: 1100},
	}
	for _, tt := range tests {
		if got := RequiredXP(tt.level); got != tt.want {
			t.Errorf("RequiredXP(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}

	for l := 0; l < 500; l++ {
		if RequiredXP(l+1) <= RequiredXP(l) {
			t.Fatalf("RequiredXP not strictly increasing at level %d", l)
		}
	}
}

func TestApplyXP(t *testing.T) {
	tests := []struct {
		name   string
		start  Progress
		gained int64
		want   Advance
	}{
		{
			name:   "below threshold",
			start:  Progress{XP: 10, Level: 0},
			gained: 20,
			want: Advance{
				Progress: Progress{XP: 30, Level: 0},
				OldLevel: 0,
				NewLevel: 0,
			},
		},
		{
			name:   "single level up",
			start:  Progress{XP: 90, Level: 0},
			gained: 30,
			want: Advance{
				Progress:  Progress{XP: 20, Level: 1},
				LeveledUp: true,
				OldLevel:  0,
				NewLevel:  1,
			},
		},
		{
			name:   "exact threshold",
			start:  Progress{XP: 0, Level: 1},
			gained: 155,
			want: Advance{
				Progress:  Progress{XP: 0, Level: 2},
				LeveledUp: true,
				OldLevel:  1,
				NewLevel:  2,
			},
		},
		{
			name:   "multi level jump",
			start:  Progress{XP: 0, Level: 0},
			gained: 100 + 155 + 220 + 7,
			want: Advance{
				Progress:  Progress{XP: 7, Level: 3},
				LeveledUp: true,
				OldLevel:  0,
				NewLevel:  3,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyXP(tt.start, tt.gained)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyXP() = %+v, want %+v", got, tt.want)
			}
			if !got.Progress.Valid() {
				t.Errorf("ApplyXP() left invalid record %+v", got.Progress)
			}
		})
	}
}

func TestApplyXPKeepsInvariant(t *testing.T) {
	p := Progress{}
	for _, g := range []int64{1, 25, 5000, 0, 99, 12345, 3} {
		adv := ApplyXP(p, g)
		if !adv.Progress.Valid() {
			t.Fatalf("invalid record after +%d: %+v", g, adv.Progress)
		}
		if adv.NewLevel < adv.OldLevel {
			t.Fatalf("level decreased after +%d", g)
		}
		p = adv.Progress
	}
}

func TestComputeRank(t *testing.T) {
	records := []Progress{
		{UserID: "a", Level: 2, XP: 10},
		{UserID: "b", Level: 3, XP: 0},
		{UserID: "c", Level: 2, XP: 50},
		{UserID: "d", Level: 2, XP: 10},
	}

	tests := []struct {
		userID   string
		wantRank int
		wantOK   bool
	}{
		{userID: "b", wantRank: 1, wantOK: true},
		{userID: "c", wantRank: 2, wantOK: true},
		{userID: "a", wantRank: 3, wantOK: true},
		{userID: "d", wantRank: 4, wantOK: true},
		{userID: "missing", wantRank: 0, wantOK: false},
	}
	for _, tt := range tests {
		rank, ok := ComputeRank(records, tt.userID)
		if rank != tt.wantRank || ok != tt.wantOK {
			t.Errorf("ComputeRank(%q) = (%d, %v), want (%d, %v)", tt.userID, rank, ok, tt.wantRank, tt.wantOK)
		}
	}

	if records[0].UserID != "a" {
		t.Errorf("ComputeRank() reordered its input")
	}
}

func TestBoostMultiplier(t *testing.T) {
	now := mustTime(t, "2024-05-01T12:00:00Z")

	tests := []struct {
		name  string
		boost *Boost
		want  int64
	}{
		{name: "no boost", boost: nil, want: 1},
		{name: "inactive", boost: &Boost{Active: false, ExpiresAt: now.Add(1)}, want: 1},
		{name: "active", boost: &Boost{Active: true, ExpiresAt: now.Add(1)}, want: 2},
		{name: "expired", boost: &Boost{Active: true, ExpiresAt: now}, want: 1},
	}
	for _, tt := range tests {
		if got := tt.boost.Multiplier(now); got != tt.want {
			t.Errorf("%s: Multiplier() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

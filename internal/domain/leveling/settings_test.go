package leveling

import (
	"errors"
	"reflect"
	"testing"
)

func TestSettingsSetReward(t *testing.T) {
	s := DefaultSettings("g1")

	if _, err := s.SetReward(RoleReward{Level: 0, RoleID: "r1"}); !errors.Is(err, ErrInvalidRewardLevel) {
		t.Fatalf("level 0: got %v, want ErrInvalidRewardLevel", err)
	}
	if _, err := s.SetReward(RoleReward{Level: 3}); !errors.Is(err, ErrMissingRewardRole) {
		t.Fatalf("missing role: got %v, want ErrMissingRewardRole", err)
	}

	for _, r := range []RoleReward{{Level: 10, RoleID: "r10"}, {Level: 5, RoleID: "r5"}} {
		replaced, err := s.SetReward(r)
		if err != nil || replaced {
			t.Fatalf("SetReward(%+v) = %v, %v", r, replaced, err)
		}
	}

	replaced, err := s.SetReward(RoleReward{Level: 15, RoleID: "r5"})
	if err != nil || !replaced {
		t.Fatalf("moving r5: replaced=%v err=%v", replaced, err)
	}

	want := []RoleReward{{Level: 10, RoleID: "r10"}, {Level: 15, RoleID: "r5"}}
	if !reflect.DeepEqual(s.RoleRewards, want) {
		t.Errorf("RoleRewards = %+v, want %+v", s.RoleRewards, want)
	}
}

func TestSettingsRemoveReward(t *testing.T) {
	s := &Settings{RoleRewards: []RoleReward{{Level: 3, RoleID: "a"}, {Level: 5, RoleID: "b"}}}

	if _, ok := s.RemoveReward("missing"); ok {
		t.Fatal("removed a reward that was never configured")
	}
	r, ok := s.RemoveReward("a")
	if !ok || r.Level != 3 {
		t.Fatalf("RemoveReward(a) = %+v, %v", r, ok)
	}
	if len(s.RoleRewards) != 1 || s.RoleRewards[0].RoleID != "b" {
		t.Errorf("RoleRewards = %+v", s.RoleRewards)
	}
}

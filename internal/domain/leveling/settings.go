package leveling

import (
	"errors"
	"sort"
)

var (
	ErrInvalidRewardLevel = errors.New("reward level must be at least 1")
	ErrMissingRewardRole  = errors.New("reward role is required")
)

// SetReward adds a reward or moves an existing one for the same role to a
// new level. It reports whether an existing entry was replaced.
func (s *Settings) SetReward(r RoleReward) (bool, error) {
	if r.Level < 1 {
		return false, ErrInvalidRewardLevel
	}
	if r.RoleID == "" {
		return false, ErrMissingRewardRole
	}
	for i := range s.RoleRewards {
		if s.RoleRewards[i].RoleID == r.RoleID {
			s.RoleRewards[i].Level = r.Level
			s.sortRewards()
			return true, nil
		}
	}
	s.RoleRewards = append(s.RoleRewards, r)
	s.sortRewards()
	return false, nil
}

// RemoveReward drops the reward for roleID and returns it.
func (s *Settings) RemoveReward(roleID string) (RoleReward, bool) {
	for i, r := range s.RoleRewards {
		if r.RoleID == roleID {
			s.RoleRewards = append(s.RoleRewards[:i], s.RoleRewards[i+1:]...)
			return r, true
		}
	}
	return RoleReward{}, false
}

func (s *Settings) sortRewards() {
	sort.SliceStable(s.RoleRewards, func(i, j int) bool {
		return s.RoleRewards[i].Level < s.RoleRewards[j].Level
	})
}

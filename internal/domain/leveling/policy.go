package leveling

import "sort"

// RequiredXP returns the XP needed to advance from level to level+1.
func RequiredXP(level int) int64 {
	l := int64(level)
	return 5*l*l + 50*l + 100
}

// ApplyXP adds gained to the record and rolls over as many levels as the
// total covers. gained must be non-negative; callers drop empty gains.
func ApplyXP(p Progress, gained int64) Advance {
	adv := Advance{OldLevel: p.Level}

	p.XP += gained
	for p.XP >= RequiredXP(p.Level) {
		p.XP -= RequiredXP(p.Level)
		p.Level++
	}

	adv.Progress = p
	adv.NewLevel = p.Level
	adv.LeveledUp = adv.NewLevel > adv.OldLevel
	return adv
}

// SortLeaderboard orders records by level then XP, both descending.
// Equal records keep their input order.
func SortLeaderboard(records []Progress) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Level != records[j].Level {
			return records[i].Level > records[j].Level
		}
		return records[i].XP > records[j].XP
	})
}

// ComputeRank returns the 1-based leaderboard position of userID.
// ok is false when the user has no record in the guild.
func ComputeRank(records []Progress, userID string) (rank int, ok bool) {
	sorted := make([]Progress, len(records))
	copy(sorted, records)
	SortLeaderboard(sorted)

	for i, r := range sorted {
		if r.UserID == userID {
			return i + 1, true
		}
	}
	return 0, false
}

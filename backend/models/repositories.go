package models

import (
	"github.com/orderlycore/orderlycore/internal/domain/leveling"
)

// Repositories holds the leveling stores the dashboard reads and writes.
type Repositories struct {
	Progress   leveling.ProgressRepository
	VoiceStats leveling.VoiceStatsRepository
	Settings   leveling.SettingsRepository
}

func NewRepositories(
	progress leveling.ProgressRepository,
	voiceStats leveling.VoiceStatsRepository,
	settings leveling.SettingsRepository,
) *Repositories {
	return &Repositories{
		Progress:   progress,
		VoiceStats: voiceStats,
		Settings:   settings,
	}
}

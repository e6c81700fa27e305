package config

import "time"

// UI and Display Constants
const (
	// Pagination
	LeaderboardPageSize = 10
	RewardsPageSize     = 25

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	LevelUpColor = 0xFFD700

	EmbedDefaultColor = 0x2B2D31

	// Progress bar
	ProgressBarWidth = 12
	ProgressFilled   = "▰"
	ProgressEmpty    = "▱"
)

// Database and Performance Constants
const (
	DefaultQueryTimeout = 10 * time.Second

	// Upper bound for one gateway event: load, commit, rewards and rank.
	EventTimeout = 15 * time.Second

	CommandExecutionTimeout = 10 * time.Second
	AutocompleteTimeout     = 2 * time.Second

	NotifyTimeout = 20 * time.Second

	MigrationBatchSize = 500
)

// Redis keys
const (
	VoiceSessionKeyPrefix = "orderly:voice:session"
)

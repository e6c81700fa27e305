package migration

import (
	"time"
)

// Legacy documents store numbers as int32, int64 or double depending on
// the writer, so numeric fields decode into float64.

// LegacyLevel is a document from the "levels" collection.
type LegacyLevel struct {
	GuildID              string       `bson:"guildId"`
	UserID               string       `bson:"userId"`
	XP                   float64      `bson:"xp"`
	Level                float64      `bson:"level"`
	MessageCount         float64      `bson:"messageCount"`
	LastMessageTimestamp float64      `bson:"lastMessageTimestamp"`
	Boost                *LegacyBoost `bson:"boost,omitempty"`
}

type LegacyBoost struct {
	Active    bool    `bson:"active"`
	ExpiresAt float64 `bson:"expiresAt"`
}

// LegacyVoiceStats is a document from the "voiceStats" collection.
// totalStayTime is in milliseconds.
type LegacyVoiceStats struct {
	GuildID       string  `bson:"guildId"`
	UserID        string  `bson:"userId"`
	TotalStayTime float64 `bson:"totalStayTime"`
}

// LegacyGuildSettings is a document from the "guildSettings" collection.
// Only the leveling keys are read.
type LegacyGuildSettings struct {
	GuildID          string             `bson:"guildId"`
	LevelingEnabled  *bool              `bson:"levelingEnabled,omitempty"`
	LevelUpChannelID string             `bson:"levelUpChannelId"`
	RoleRewards      []LegacyRoleReward `bson:"roleRewards"`
}

type LegacyRoleReward struct {
	Level  float64 `bson:"level"`
	RoleID string  `bson:"roleId"`
}

// MigrationStats tracks overall migration statistics
type MigrationStats struct {
	Tables         map[string]*TableStats `json:"tables"`
	StartTime      time.Time              `json:"start_time"`
	EndTime        time.Time              `json:"end_time"`
	TotalErrors    int                    `json:"total_errors"`
	TotalSkipped   int                    `json:"total_skipped"`
	TotalProcessed int                    `json:"total_processed"`
}

// TableStats tracks stats for individual tables
type TableStats struct {
	TableName      string          `json:"table_name"`
	Processed      int             `json:"processed"`
	Successful     int             `json:"successful"`
	Normalized     int             `json:"normalized"`
	Skipped        int             `json:"skipped"`
	Errors         int             `json:"errors"`
	SkippedRecords []SkippedRecord `json:"skipped_records"`
	ErrorRecords   []ErrorRecord   `json:"error_records"`
}

// SkippedRecord tracks why a record was skipped
type SkippedRecord struct {
	Reason    string    `json:"reason"`
	Data      string    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorRecord tracks migration errors
type ErrorRecord struct {
	Error     string    `json:"error"`
	Data      string    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *TableStats) skip(reason, data string) {
	s.Skipped++
	s.SkippedRecords = append(s.SkippedRecords, SkippedRecord{Reason: reason, Data: data, Timestamp: time.Now()})
}

func (s *TableStats) fail(err error, data string) {
	s.Errors++
	s.ErrorRecords = append(s.ErrorRecords, ErrorRecord{Error: err.Error(), Data: data, Timestamp: time.Now()})
}

package logger

import (
	"log/slog"
	"time"
)

// QueryLogger times a single repository operation.
type QueryLogger struct {
	Table     string
	Operation string
	GuildID   string
	StartTime time.Time
}

func NewQueryLogger(table, operation, guildID string) *QueryLogger {
	return &QueryLogger{
		Table:     table,
		Operation: operation,
		GuildID:   guildID,
		StartTime: time.Now(),
	}
}

// Log records the outcome. Successful queries log at debug level since
// every message event produces at least two of them.
func (l *QueryLogger) Log(err error, rowsAffected int64) {
	attrs := []any{
		slog.String("type", "db"),
		slog.String("table", l.Table),
		slog.String("operation", l.Operation),
		slog.String("guild_id", l.GuildID),
		slog.Duration("took", time.Since(l.StartTime)),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
		return
	}
	slog.Debug("Query executed", append(attrs, slog.Int64("affected_rows", rowsAffected))...)
}

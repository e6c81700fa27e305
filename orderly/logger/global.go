package logger

import (
	"log/slog"
	"time"
)

// LogCommand logs a finished slash command.
func LogCommand(name, userName string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.String("user_name", userName),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Command failed", append(attrs, slog.String("status", "failed"), slog.Any("error", err))...)
		return
	}
	slog.Info("Command executed", append(attrs, slog.String("status", "ok"))...)
}

// LogEvent logs a dropped gateway event. kind is "lvl" or "voice".
func LogEvent(kind, msg string, err error, attrs ...any) {
	base := []any{
		slog.String("type", kind),
		slog.Any("error", err),
	}
	slog.Error(msg, append(base, attrs...)...)
}

func LogSystem(msg string, attrs ...any) {
	slog.Info(msg, append([]any{slog.String("type", "sys")}, attrs...)...)
}

func LogError(msg string, err error, attrs ...any) {
	base := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(base, attrs...)...)
}

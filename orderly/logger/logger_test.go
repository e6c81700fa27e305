package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCustomHandler(t *testing.T) {
	tests := []struct {
		name    string
		log     func(l *slog.Logger)
		want    []string
		wantOut bool
	}{
		{
			name: "level record",
			log: func(l *slog.Logger) {
				l.Info("Member leveled up", slog.String("type", "lvl"), slog.Int("new_level", 3))
			},
			want:    []string{"[Orderly]", "INFO", "LVL", "Member leveled up", "new_level=3"},
			wantOut: true,
		},
		{
			name: "command record",
			log: func(l *slog.Logger) {
				l.Error("Command failed",
					slog.String("type", "cmd"),
					slog.String("name", "rank"),
					slog.String("user_name", "alice"),
					slog.String("status", "failed"),
					slog.Any("error", errors.New("boom")))
			},
			want:    []string{"ERROR", "CMD", "boom", "[rank by alice]", "[Status: failed]"},
			wantOut: true,
		},
		{
			name: "gateway noise",
			log: func(l *slog.Logger) {
				l.Info("sending heartbeat")
			},
			wantOut: false,
		},
		{
			name: "below level",
			log: func(l *slog.Logger) {
				l.Debug("Voice session started", slog.String("type", "voice"))
			},
			wantOut: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(NewHandler("Orderly", slog.LevelInfo, WithOutput(&buf)))
			tt.log(l)

			out := buf.String()
			if (out != "") != tt.wantOut {
				t.Fatalf("output = %q, want output %v", out, tt.wantOut)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q does not contain %q", out, w)
				}
			}
		})
	}
}

func TestCustomHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler("Orderly", slog.LevelDebug, WithOutput(&buf))).
		With(slog.String("type", "db"), slog.String("table", "user_progress"))
	l.Debug("Query executed")

	out := buf.String()
	for _, w := range []string{"DEBUG", "DB", "table=user_progress"} {
		if !strings.Contains(out, w) {
			t.Errorf("output %q does not contain %q", out, w)
		}
	}
}

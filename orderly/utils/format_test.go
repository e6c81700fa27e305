package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/orderlycore/orderlycore/orderly/config"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		current, total int64
		filled         int
	}{
		{current: 0, total: 100, filled: 0},
		{current: 50, total: 100, filled: config.ProgressBarWidth / 2},
		{current: 100, total: 100, filled: config.ProgressBarWidth},
		{current: 10, total: 0, filled: 0},
	}
	for _, tt := range tests {
		got := ProgressBar(tt.current, tt.total)
		if n := strings.Count(got, config.ProgressFilled); n != tt.filled {
			t.Errorf("ProgressBar(%d, %d) filled = %d, want %d", tt.current, tt.total, n, tt.filled)
		}
		if n := strings.Count(got, config.ProgressFilled) + strings.Count(got, config.ProgressEmpty); n != config.ProgressBarWidth {
			t.Errorf("ProgressBar(%d, %d) width = %d", tt.current, tt.total, n)
		}
	}
}

func TestFormatStayTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 45 * time.Second, want: "45s"},
		{in: 12 * time.Minute, want: "12m"},
		{in: 4*time.Hour + 12*time.Minute, want: "4h 12m"},
		{in: 76*time.Hour + 5*time.Minute, want: "3d 4h 5m"},
	}
	for _, tt := range tests {
		if got := FormatStayTime(tt.in); got != tt.want {
			t.Errorf("FormatStayTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/orderlycore/orderlycore/orderly/config"
)

// ProgressBar renders current/total as a fixed-width bar.
func ProgressBar(current, total int64) string {
	width := config.ProgressBarWidth
	filled := 0
	if total > 0 && current > 0 {
		filled = int(current * int64(width) / total)
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat(config.ProgressFilled, filled) + strings.Repeat(config.ProgressEmpty, width-filled)
}

// FormatStayTime renders a duration as "3d 4h 12m", "4h 12m" or "12m".
func FormatStayTime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	days := int(d / (24 * time.Hour))
	hours := int(d%(24*time.Hour)) / int(time.Hour)
	minutes := int(d%time.Hour) / int(time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatNumber adds thousands separators.
func FormatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func Ptr[T any](v T) *T {
	return &v
}

package leveling

import "time"

const (
	DefaultMessageCooldown  = 60 * time.Second
	DefaultMessageXPMin     = 15
	DefaultMessageXPMax     = 25
	DefaultVoiceXPPerMinute = 5
	DefaultRankCacheTTL     = 30 * time.Second
)

// Config holds the accrual tunables.
type Config struct {
	MessageCooldown  time.Duration
	MessageXPMin     int64
	MessageXPMax     int64
	VoiceXPPerMinute int64
}

func DefaultConfig() Config {
	return Config{
		MessageCooldown:  DefaultMessageCooldown,
		MessageXPMin:     DefaultMessageXPMin,
		MessageXPMax:     DefaultMessageXPMax,
		VoiceXPPerMinute: DefaultVoiceXPPerMinute,
	}
}

// normalize fills zero or inconsistent values with defaults.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.MessageCooldown <= 0 {
		c.MessageCooldown = d.MessageCooldown
	}
	if c.MessageXPMin <= 0 || c.MessageXPMax < c.MessageXPMin {
		c.MessageXPMin, c.MessageXPMax = d.MessageXPMin, d.MessageXPMax
	}
	if c.VoiceXPPerMinute <= 0 {
		c.VoiceXPPerMinute = d.VoiceXPPerMinute
	}
	return c
}

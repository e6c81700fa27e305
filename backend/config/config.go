package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/orderlycore/orderlycore/orderly"
)

const (
	defaultHost   = "0.0.0.0"
	defaultPort   = 8080
	defaultOrigin = "http://localhost:3000"
)

// WebAppConfig wraps the shared bot configuration with the dashboard API
// settings derived from it.
type WebAppConfig struct {
	Config      *orderly.Config
	Debug       bool
	Environment string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	RateLimit       int
	RateWindow      time.Duration
}

func NewWebAppConfig(cfg *orderly.Config, debug bool) *WebAppConfig {
	environment := "production"
	if debug {
		environment = "development"
	}

	return &WebAppConfig{
		Config:          cfg,
		Debug:           debug,
		Environment:     environment,
		RequestTimeout:  10 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		RateLimit:       120,
		RateWindow:      time.Minute,
	}
}

// Address returns host:port, falling back to 0.0.0.0:8080.
func (w *WebAppConfig) Address() string {
	host, port := w.Config.Web.Host, w.Config.Web.Port
	if host == "" {
		host = defaultHost
	}
	if port == 0 {
		port = defaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// AllowedOrigins renders the CORS origin list the way fiber expects it.
func (w *WebAppConfig) AllowedOrigins() string {
	if len(w.Config.Web.AllowedOrigins) == 0 {
		return defaultOrigin
	}
	return strings.Join(w.Config.Web.AllowedOrigins, ",")
}

// APIKey guards the write routes. An empty key disables them.
func (w *WebAppConfig) APIKey() string {
	return w.Config.Web.APIKey
}

func (w *WebAppConfig) BannersEnabled() bool {
	return w.Config.Spaces.Key != ""
}

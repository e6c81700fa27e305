package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlycore/orderlycore/backend/config"
	"github.com/orderlycore/orderlycore/backend/handlers"
	"github.com/orderlycore/orderlycore/orderly"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testApp(apiKey string, pingErr error) *handlers.WebApp {
	cfg := &orderly.Config{}
	cfg.Web.APIKey = apiKey
	return &handlers.WebApp{
		Config:  config.NewWebAppConfig(cfg, true),
		DB:      stubPinger{err: pingErr},
		Version: "test",
	}
}

func TestWriteRoutesRequireAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		value      string
		wantStatus int
	}{
		{name: "writes disabled", configured: "", header: "X-API-Key", value: "anything", wantStatus: http.StatusForbidden},
		{name: "missing key", configured: "secret", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", configured: "secret", header: "X-API-Key", value: "nope", wantStatus: http.StatusUnauthorized},
		{name: "wrong bearer", configured: "secret", header: "Authorization", value: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(testApp(tt.configured, nil))

			req := httptest.NewRequest(http.MethodPut, "/api/guilds/123456789012345678/settings/leveling", strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestHealth(t *testing.T) {
	resp, err := newApp(testApp("", nil)).Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = newApp(testApp("", errors.New("down"))).Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	resp, err := newApp(testApp("", nil)).Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micla/access-console/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "access-console", cfg.App.Name)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 2*time.Second, cfg.Notice.ResetDelay)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend:9000/")
	t.Setenv("BACKEND_TIMEOUT", "5")
	t.Setenv("NOTICE_RESET_DELAY", "1500ms")
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.Backend.BaseURL, "la barra final se recorta")
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Notice.ResetDelay)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_StoreInvalido(t *testing.T) {
	t.Setenv("SESSION_STORE", "postgres")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_ProductionExigeCookieSegura(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Env: "production"},
		Backend: config.BackendConfig{BaseURL: "http://b"},
		Session: config.SessionConfig{Store: "memory", TTL: time.Hour},
	}
	assert.Error(t, cfg.Validate())

	cfg.Session.CookieSecure = true
	assert.NoError(t, cfg.Validate())
}

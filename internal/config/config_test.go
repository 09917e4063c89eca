package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1/", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1200*time.Millisecond, cfg.Suggest.QuietInterval)
	assert.Equal(t, 8, cfg.Suggest.MinPromptLen)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 15*time.Minute, cfg.Mock.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Mock.RefreshTokenTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.Mock.Addr())
	assert.NotEmpty(t, cfg.Auth.StorePath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	t.Setenv("TASKBENCH_API_URL", "https://api.example.com/v1/")
	t.Setenv("TASKBENCH_LOG_LEVEL", "debug")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1/", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "env-secret", cfg.Mock.JWTSecret)
}

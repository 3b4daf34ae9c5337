package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Bridge config
	assert.Equal(t, "127.0.0.1", cfg.Bridge.Host)
	assert.Equal(t, "8770", cfg.Bridge.Port)
	assert.True(t, cfg.Bridge.Enabled)

	// Supervisor config
	assert.Equal(t, time.Second, cfg.Supervisor.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.Supervisor.RestartDelay)
	assert.Equal(t, 3, cfg.Supervisor.MaxRestarts)
	assert.Equal(t, 5*time.Second, cfg.Supervisor.ShutdownTimeout)

	// Mode flags all clear
	assert.False(t, cfg.Mode.Test)
	assert.False(t, cfg.Mode.Dev)
	assert.False(t, cfg.Mode.Safe)
	assert.False(t, cfg.DangerousOpsDisabled())
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"SHELL_TEST_MODE":          "true",
		"SHELL_DEV_MODE":           "true",
		"LOG_LEVEL":                "debug",
		"LOG_DEV":                  "true",
		"BRIDGE_PORT":              "9000",
		"SUPERVISOR_MAX_RESTARTS":  "5",
		"SUPERVISOR_POLL_INTERVAL": "250ms",
		"UI_HOST_CMD":              "render-host",
		"DEFAULT_SHELL_CMD":        "othershell.exe",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Mode.Test)
	assert.True(t, cfg.Mode.Dev)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "9000", cfg.Bridge.Port)
	assert.Equal(t, 5, cfg.Supervisor.MaxRestarts)
	assert.Equal(t, 250*time.Millisecond, cfg.Supervisor.PollInterval)
	assert.Equal(t, "render-host", cfg.Shell.UIHostCommand)
	assert.Equal(t, "othershell.exe", cfg.Shell.DefaultShell)
}

func TestDangerousOpsDisabled(t *testing.T) {
	tests := []struct {
		name     string
		mode     ModeConfig
		disabled bool
	}{
		{"all clear", ModeConfig{}, false},
		{"test mode", ModeConfig{Test: true}, true},
		{"dev mode", ModeConfig{Dev: true}, true},
		{"safe mode", ModeConfig{Safe: true}, true},
		{"test and dev", ModeConfig{Test: true, Dev: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Mode = tt.mode
			assert.Equal(t, tt.disabled, cfg.DangerousOpsDisabled())
		})
	}
}

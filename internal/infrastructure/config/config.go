package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all shell configuration.
type Config struct {
	Mode       ModeConfig
	Logging    LogConfig
	Bridge     BridgeConfig
	Supervisor SupervisorConfig
	Shell      ShellConfig
}

// ModeConfig holds operating-mode flags.
type ModeConfig struct {
	Test         bool `envconfig:"SHELL_TEST_MODE" default:"false"`
	Dev          bool `envconfig:"SHELL_DEV_MODE" default:"false"`
	Safe         bool `envconfig:"SHELL_SAFE_MODE" default:"false"`
	AutoShutdown bool `envconfig:"SHELL_AUTO_SHUTDOWN" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// BridgeConfig holds the rendering bridge server configuration.
type BridgeConfig struct {
	Host    string `envconfig:"BRIDGE_HOST" default:"127.0.0.1"`
	Port    string `envconfig:"BRIDGE_PORT" default:"8770"`
	Enabled bool   `envconfig:"BRIDGE_ENABLED" default:"true"`
}

// SupervisorConfig holds process-supervision tunables.
type SupervisorConfig struct {
	PollInterval      time.Duration `envconfig:"SUPERVISOR_POLL_INTERVAL" default:"1s"`
	RestartDelay      time.Duration `envconfig:"SUPERVISOR_RESTART_DELAY" default:"2s"`
	MaxRestarts       int           `envconfig:"SUPERVISOR_MAX_RESTARTS" default:"3"`
	ShutdownTimeout   time.Duration `envconfig:"SUPERVISOR_SHUTDOWN_TIMEOUT" default:"5s"`
	AutoShutdownDelay time.Duration `envconfig:"SUPERVISOR_AUTO_SHUTDOWN_DELAY" default:"500ms"`
}

// ShellConfig holds shell process paths.
type ShellConfig struct {
	UIHostCommand    string `envconfig:"UI_HOST_CMD" default:""`
	DefaultShell     string `envconfig:"DEFAULT_SHELL_CMD" default:"explorer.exe"`
	RegistrationPath string `envconfig:"SHELL_REGISTRATION_PATH" default:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Bridge: BridgeConfig{
			Host:    "127.0.0.1",
			Port:    "8770",
			Enabled: true,
		},
		Supervisor: SupervisorConfig{
			PollInterval:      time.Second,
			RestartDelay:      2 * time.Second,
			MaxRestarts:       3,
			ShutdownTimeout:   5 * time.Second,
			AutoShutdownDelay: 500 * time.Millisecond,
		},
		Shell: ShellConfig{
			DefaultShell: "explorer.exe",
		},
	}
}

// DangerousOpsDisabled reports whether destructive OS mutation (shell
// registration, registry writes, real process termination) is disabled.
// Test, dev, and safe mode all map to this single effect.
func (c *Config) DangerousOpsDisabled() bool {
	return c.Mode.Test || c.Mode.Dev || c.Mode.Safe
}

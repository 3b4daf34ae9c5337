// Package config provides environment-based configuration for the shell.
//
// Configuration is loaded once at startup from environment variables using
// kelseyhightower/envconfig and then threaded explicitly through the
// orchestrator, supervisor, and adapters. Nothing reads process-wide
// environment state after load; the value is immutable.
//
// Recognized options:
//   - SHELL_TEST_MODE: disable all destructive OS mutation and shell registration
//   - SHELL_DEV_MODE: run alongside the default shell instead of replacing it
//   - SHELL_SAFE_MODE: launch only the default shell
//   - SHELL_AUTO_SHUTDOWN: exit after a short delay (supervision-loop testing)
//   - LOG_LEVEL, LOG_DEV: diagnostic verbosity
//   - BRIDGE_HOST, BRIDGE_PORT, BRIDGE_ENABLED: rendering bridge server
//   - UI_HOST_CMD and the SUPERVISOR_* tunables: process supervision
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	if cfg.DangerousOpsDisabled() {
//	    // stand-in process ids, no registry writes
//	}
package config

package supervisor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/haloshell/haloshell/internal/adapters"
	"github.com/haloshell/haloshell/internal/bridge"
	"github.com/haloshell/haloshell/internal/domain/orchestrator"
	"github.com/haloshell/haloshell/internal/infrastructure/config"
	"github.com/haloshell/haloshell/internal/infrastructure/logging"
	"github.com/haloshell/haloshell/internal/infrastructure/monitoring"
	"github.com/haloshell/haloshell/internal/registration"
)

// Mode is the resolved operating mode.
type Mode string

const (
	ModePanic Mode = "panic"
	ModeSafe  Mode = "safe"
	ModeTest  Mode = "test"
	ModeDev   Mode = "dev"
	ModeFull  Mode = "full"
)

// Resolve determines the operating mode. An explicit panic request
// short-circuits everything else.
func Resolve(cfg *config.Config, panicRequested bool) Mode {
	switch {
	case panicRequested:
		return ModePanic
	case cfg.Mode.Safe:
		return ModeSafe
	case cfg.Mode.Test:
		return ModeTest
	case cfg.Mode.Dev:
		return ModeDev
	default:
		return ModeFull
	}
}

// livenessWait is how often shutdown rechecks the host while waiting for
// a graceful exit.
const livenessWait = 50 * time.Millisecond

// Supervisor owns process startup, rendering-host supervision, and
// recovery.
type Supervisor struct {
	cfg      *config.Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	orch     *orchestrator.Orchestrator
	reg      registration.Store
	launcher adapters.Launcher // used before the orchestrator exists (safe mode, panic, full-mode prep)
}

// New creates a supervisor.
func New(cfg *config.Config, logger *logging.Logger, orch *orchestrator.Orchestrator, reg registration.Store, launcher adapters.Launcher) *Supervisor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Supervisor{
		cfg:      cfg,
		logger:   logger,
		orch:     orch,
		reg:      reg,
		launcher: launcher,
	}
}

// WithMetrics adds metrics tracking to the supervisor
func (s *Supervisor) WithMetrics(metrics *monitoring.Metrics) *Supervisor {
	s.metrics = metrics
	return s
}

// Run executes the resolved mode to completion. It returns nil on a
// clean supervised shutdown or a successful panic recovery.
func (s *Supervisor) Run(ctx context.Context, panicRequested bool) error {
	mode := Resolve(s.cfg, panicRequested)
	s.logger.Info("operating mode resolved", zap.String("mode", string(mode)))

	switch mode {
	case ModePanic:
		return s.Panic()
	case ModeSafe:
		return s.runSafe()
	case ModeFull:
		if err := s.prepareFullMode(); err != nil {
			return err
		}
		return s.runSupervised(ctx)
	default: // dev, test
		return s.runSupervised(ctx)
	}
}

// Panic restores the default shell registration and launches the default
// shell. The launch is attempted even when the restore fails, leaving the
// system in the least-broken state possible.
func (s *Supervisor) Panic() error {
	s.logger.Warn("panic recovery requested")

	restoreErr := s.reg.RestoreDefault(s.cfg.Shell.DefaultShell)
	if restoreErr != nil {
		s.logger.Error("failed to restore default shell registration", zap.Error(restoreErr))
	}

	if _, err := s.launcher.Start(s.cfg.Shell.DefaultShell); err != nil {
		return fmt.Errorf("panic recovery could not launch default shell: %w", err)
	}
	if restoreErr != nil {
		return fmt.Errorf("panic recovery launched default shell but registration restore failed: %w", restoreErr)
	}

	s.logger.Info("panic recovery complete")
	return nil
}

// runSafe launches only the default shell.
func (s *Supervisor) runSafe() error {
	if _, err := s.launcher.Start(s.cfg.Shell.DefaultShell); err != nil {
		return fmt.Errorf("safe mode could not launch default shell: %w", err)
	}
	s.logger.Info("safe mode: default shell launched")
	return nil
}

// prepareFullMode terminates any previously-running default-shell
// instance and registers this process as the session shell.
func (s *Supervisor) prepareFullMode() error {
	if err := s.launcher.TerminateByName(s.cfg.Shell.DefaultShell); err != nil {
		s.logger.Warn("failed to terminate default shell instance", zap.Error(err))
	}
	if err := s.reg.SetSelf(); err != nil {
		return fmt.Errorf("failed to register as session shell: %w", err)
	}
	return nil
}

// runSupervised starts the orchestrator and the bridge, runs the
// supervision loop until it ends or ctx is cancelled, then shuts down.
func (s *Supervisor) runSupervised(ctx context.Context) error {
	if err := s.orch.Start(ctx); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	var bridgeSrv *bridge.Server
	if s.cfg.Bridge.Enabled {
		bridgeSrv = bridge.NewServer(s.cfg, s.orch.Manager(), s.orch.Bus(), s.metrics, s.logger.Named("bridge"))
		go func() {
			if err := bridgeSrv.Run(); err != nil {
				s.logger.Error("bridge server failed", zap.Error(err))
			}
		}()
	}

	s.supervise(ctx)

	if bridgeSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Supervisor.ShutdownTimeout)
		if err := bridgeSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("bridge shutdown failed", zap.Error(err))
		}
		cancel()
	}

	return s.shutdown(ctx)
}

// supervise polls the rendering host's liveness and relaunches it after
// crashes, up to the configured bound of consecutive attempts. The
// auto-shutdown test signal skips the loop entirely so shutdown
// sequencing itself stays testable end-to-end.
func (s *Supervisor) supervise(ctx context.Context) {
	if s.cfg.Mode.AutoShutdown {
		s.logger.Info("auto-shutdown signal present, skipping supervision loop")
		select {
		case <-time.After(s.cfg.Supervisor.AutoShutdownDelay):
		case <-ctx.Done():
		}
		return
	}

	if !s.orch.HasUIHost() {
		// Nothing to watch; wait for cancellation.
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(s.cfg.Supervisor.PollInterval)
	defer ticker.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if s.orch.UIHostAlive() {
			attempts = 0
			continue
		}

		if s.metrics != nil {
			s.metrics.UIHostCrashes.Inc()
		}
		attempts++
		if attempts > s.cfg.Supervisor.MaxRestarts {
			s.logger.Error("rendering host exceeded restart bound, stopping supervision",
				zap.Int("max_restarts", s.cfg.Supervisor.MaxRestarts))
			return
		}

		s.logger.Warn("rendering host exited, relaunching",
			zap.Int("attempt", attempts),
			zap.Int("max_restarts", s.cfg.Supervisor.MaxRestarts))

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.Supervisor.RestartDelay):
		}

		if err := s.orch.RestartUIHost(ctx); err != nil {
			s.logger.Error("rendering host relaunch failed", zap.Error(err))
		}
	}
}

// shutdown requests a graceful rendering-host close, waits up to the
// configured timeout, force-terminates if needed, then stops the
// orchestrator. No path blocks indefinitely.
func (s *Supervisor) shutdown(ctx context.Context) error {
	if s.orch.HasUIHost() {
		launcher := s.orch.Launcher()
		pid := s.orch.UIHostPID()

		if err := launcher.Terminate(pid, true); err != nil {
			s.logger.Warn("graceful rendering host close failed", zap.Error(err))
		}

		deadline := time.Now().Add(s.cfg.Supervisor.ShutdownTimeout)
		for launcher.Alive(pid) && time.Now().Before(deadline) {
			time.Sleep(livenessWait)
		}
		if launcher.Alive(pid) {
			s.logger.Warn("rendering host did not exit in time, terminating",
				zap.Uint32("pid", pid))
			_ = launcher.Terminate(pid, false)
		}
	}

	if err := s.orch.Stop(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

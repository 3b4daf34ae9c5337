package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/haloshell/haloshell/internal/adapters"
	"github.com/haloshell/haloshell/internal/adapters/sim"
	"github.com/haloshell/haloshell/internal/domain/shell"
	"github.com/haloshell/haloshell/internal/events"
	"github.com/haloshell/haloshell/internal/infrastructure/config"
	"github.com/haloshell/haloshell/internal/infrastructure/logging"
	"github.com/haloshell/haloshell/internal/infrastructure/monitoring"
)

// Status is the orchestrator lifecycle state
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
	StatusFailed   Status = "failed"
)

var (
	// ErrNotRunning is returned by operations only valid while Running.
	ErrNotRunning = errors.New("orchestrator is not running")
	// ErrAlreadyRunning is returned by Start when a lifecycle is active.
	ErrAlreadyRunning = errors.New("orchestrator is already running")
)

// Factory constructs one implementation of each adapter boundary.
type Factory func(cfg *config.Config, logger *logging.Logger) (*adapters.Set, error)

// DefaultFactory builds the simulated adapter set. The launcher executes
// real processes only when dangerous operations are enabled.
func DefaultFactory(cfg *config.Config, logger *logging.Logger) (*adapters.Set, error) {
	return &adapters.Set{
		Windows: sim.NewWindowSystem(),
		Launch:  sim.NewLauncher(!cfg.DangerousOpsDisabled(), logger),
		Tray:    sim.NewTrayHost(),
		Hotkeys: sim.NewHotkeyRegistry(),
		System:  sim.NewSystemEventSource(),
	}, nil
}

// Orchestrator wires the shell core together and manages its lifecycle.
type Orchestrator struct {
	mu      sync.Mutex
	status  Status
	cfg     *config.Config
	logger  *logging.Logger
	metrics *monitoring.Metrics
	factory Factory

	bus     *events.Bus
	manager *shell.Manager
	set     *adapters.Set

	uiHostPID uint32
	crashFns  []func(error)
}

// New creates a stopped orchestrator. A nil factory selects the
// simulated adapter set.
func New(cfg *config.Config, logger *logging.Logger, factory Factory) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if factory == nil {
		factory = DefaultFactory
	}
	return &Orchestrator{
		status:  StatusStopped,
		cfg:     cfg,
		logger:  logger,
		factory: factory,
	}
}

// WithMetrics adds metrics tracking to the orchestrator
func (o *Orchestrator) WithMetrics(metrics *monitoring.Metrics) *Orchestrator {
	o.metrics = metrics
	return o
}

// Status returns the current lifecycle state.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Manager returns the core state machine, or nil before Start.
func (o *Orchestrator) Manager() *shell.Manager {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.manager
}

// Bus returns the event bus, or nil before Start.
func (o *Orchestrator) Bus() *events.Bus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bus
}

// Launcher returns the process launcher adapter, or nil before Start.
func (o *Orchestrator) Launcher() adapters.Launcher {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.set == nil {
		return nil
	}
	return o.set.Launch
}

// UIHostPID returns the rendering host's process id, zero when none was
// launched.
func (o *Orchestrator) UIHostPID() uint32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.uiHostPID
}

// HasUIHost reports whether a rendering host was launched.
func (o *Orchestrator) HasUIHost() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.uiHostPID != 0
}

// UIHostAlive reports the rendering host's liveness as observed by the
// launcher. Staleness is bounded by the caller's poll interval.
func (o *Orchestrator) UIHostAlive() bool {
	o.mu.Lock()
	set, pid := o.set, o.uiHostPID
	o.mu.Unlock()
	if set == nil || pid == 0 {
		return false
	}
	return set.Launch.Alive(pid)
}

// OnUIHostCrash registers an observer notified when a relaunch fails.
func (o *Orchestrator) OnUIHostCrash(fn func(error)) {
	o.mu.Lock()
	o.crashFns = append(o.crashFns, fn)
	o.mu.Unlock()
}

// Start constructs the event bus, the adapters, and the state machine,
// wires adapter notifications into it, begins listening for system
// events, and launches the rendering host. Any failure tears down what
// was already constructed and lands in Failed.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.status == StatusRunning || o.status == StatusStarting || o.status == StatusStopping {
		o.mu.Unlock()
		return ErrAlreadyRunning
	}
	o.status = StatusStarting
	o.mu.Unlock()

	o.logger.Info("starting shell core")

	bus := events.NewBus(o.logger.Named("events"))
	if o.metrics != nil {
		bus = bus.WithMetrics(o.metrics)
	}

	set, err := o.factory(o.cfg, o.logger)
	if err != nil {
		return o.failStart(fmt.Errorf("failed to construct adapters: %w", err))
	}

	manager := shell.NewManager(bus, set.Windows, set.Hotkeys, o.logger.Named("shell"))
	if o.metrics != nil {
		manager = manager.WithMetrics(o.metrics)
	}

	set.Windows.Watch(manager)
	set.Tray.Watch(manager)
	set.Hotkeys.Watch(manager)
	set.System.Watch(manager)

	if err := set.System.Start(); err != nil {
		return o.failStart(fmt.Errorf("failed to start system event source: %w", err))
	}

	if err := manager.Sync(set.Tray); err != nil {
		_ = set.System.Stop()
		return o.failStart(fmt.Errorf("failed to sync initial state: %w", err))
	}

	var uiHostPID uint32
	if o.cfg.Shell.UIHostCommand != "" {
		pid, err := set.Launch.Start(o.cfg.Shell.UIHostCommand)
		if err != nil {
			_ = set.System.Stop()
			return o.failStart(fmt.Errorf("failed to launch UI host: %w", err))
		}
		uiHostPID = pid
		o.logger.Info("UI host launched", zap.Uint32("pid", uiHostPID))
	}

	o.mu.Lock()
	o.bus = bus
	o.manager = manager
	o.set = set
	o.uiHostPID = uiHostPID
	o.status = StatusRunning
	o.mu.Unlock()

	o.logger.Info("shell core running")
	return nil
}

// failStart records a failed transition. Callers have already torn down
// anything they constructed.
func (o *Orchestrator) failStart(err error) error {
	o.mu.Lock()
	o.status = StatusFailed
	o.mu.Unlock()
	o.logger.Error("shell core start failed", zap.Error(err))
	return err
}

// Stop tears everything down in reverse construction order.
func (o *Orchestrator) Stop(ctx context.Context) error {
	o.mu.Lock()
	if o.status != StatusRunning {
		o.mu.Unlock()
		return ErrNotRunning
	}
	o.status = StatusStopping
	set, pid := o.set, o.uiHostPID
	o.mu.Unlock()

	o.logger.Info("stopping shell core")

	var firstErr error
	if pid != 0 {
		if err := set.Launch.Terminate(pid, true); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to terminate UI host: %w", err)
		}
	}
	if err := set.System.Stop(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to stop system event source: %w", err)
	}

	o.mu.Lock()
	o.bus = nil
	o.manager = nil
	o.set = nil
	o.uiHostPID = 0
	if firstErr != nil {
		o.status = StatusFailed
	} else {
		o.status = StatusStopped
	}
	o.mu.Unlock()

	if firstErr != nil {
		o.logger.Error("shell core stop failed", zap.Error(firstErr))
		return firstErr
	}
	o.logger.Info("shell core stopped")
	return nil
}

// RestartUIHost relaunches the rendering host without touching the state
// machine or adapters. Only valid while Running. A failed relaunch is
// surfaced to crash observers before being returned.
func (o *Orchestrator) RestartUIHost(ctx context.Context) error {
	o.mu.Lock()
	if o.status != StatusRunning {
		o.mu.Unlock()
		return ErrNotRunning
	}
	set, pid := o.set, o.uiHostPID
	crashFns := make([]func(error), len(o.crashFns))
	copy(crashFns, o.crashFns)
	o.mu.Unlock()

	if pid != 0 && set.Launch.Alive(pid) {
		_ = set.Launch.Terminate(pid, false)
	}

	if o.metrics != nil {
		o.metrics.UIHostRestarts.Inc()
	}

	newPID, err := set.Launch.Start(o.cfg.Shell.UIHostCommand)
	if err != nil {
		err = fmt.Errorf("failed to relaunch UI host: %w", err)
		for _, fn := range crashFns {
			fn(err)
		}
		return err
	}

	o.mu.Lock()
	o.uiHostPID = newPID
	o.mu.Unlock()

	o.logger.Info("UI host relaunched", zap.Uint32("pid", newPID))
	return nil
}

package sim

import (
	"fmt"
	"os/exec"
	"sync"

	"go.uber.org/zap"

	"github.com/haloshell/haloshell/internal/infrastructure/logging"
	"github.com/haloshell/haloshell/internal/shared/types"
)

// standInPIDBase keeps stand-in ids clearly outside the range real
// processes get on any supported platform.
const standInPIDBase uint32 = 0x70000

type process struct {
	name   string
	cmd    *exec.Cmd
	exited bool
}

// Launcher starts and observes processes. With exec disabled it hands out
// stand-in process ids without touching the OS, which is the degraded
// behavior dev/test/safe mode requires.
type Launcher struct {
	mu          sync.Mutex
	execEnabled bool
	nextPID     uint32
	procs       map[uint32]*process
	logger      *logging.Logger
}

// NewLauncher creates a launcher. execEnabled selects real process
// creation; leave it false when dangerous operations are disabled.
func NewLauncher(execEnabled bool, logger *logging.Logger) *Launcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Launcher{
		execEnabled: execEnabled,
		nextPID:     standInPIDBase,
		procs:       make(map[uint32]*process),
		logger:      logger,
	}
}

// Start launches a process and returns its id, or a stand-in id when exec
// is disabled.
func (l *Launcher) Start(command string, args ...string) (uint32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.execEnabled {
		l.nextPID++
		pid := l.nextPID
		l.procs[pid] = &process{name: command}
		l.logger.Debug("stand-in process started",
			zap.String("command", command),
			zap.Uint32("pid", pid),
		)
		return pid, nil
	}

	cmd := exec.Command(command, args...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", command, err)
	}
	pid := uint32(cmd.Process.Pid)
	proc := &process{name: command, cmd: cmd}
	l.procs[pid] = proc

	go func() {
		_ = cmd.Wait()
		l.mu.Lock()
		proc.exited = true
		l.mu.Unlock()
	}()

	l.logger.Info("process started",
		zap.String("command", command),
		zap.Uint32("pid", pid),
	)
	return pid, nil
}

// Processes enumerates processes the launcher has started and still
// believes to be running.
func (l *Launcher) Processes() ([]types.ProcessInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]types.ProcessInfo, 0, len(l.procs))
	for pid, p := range l.procs {
		if !p.exited {
			out = append(out, types.ProcessInfo{PID: pid, Name: p.name})
		}
	}
	return out, nil
}

// Alive reports whether a process is still running. Unknown pids are dead.
func (l *Launcher) Alive(pid uint32) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.procs[pid]
	return ok && !p.exited
}

// Terminate requests process exit. For stand-in processes it just marks
// them exited.
func (l *Launcher) Terminate(pid uint32, graceful bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.procs[pid]
	if !ok || p.exited {
		return nil
	}
	if p.cmd == nil {
		p.exited = true
		return nil
	}
	if graceful {
		return p.cmd.Process.Signal(interruptSignal)
	}
	return p.cmd.Process.Kill()
}

// TerminateByName terminates every running process with the given name.
func (l *Launcher) TerminateByName(name string) error {
	l.mu.Lock()
	var pids []uint32
	for pid, p := range l.procs {
		if p.name == name && !p.exited {
			pids = append(pids, pid)
		}
	}
	l.mu.Unlock()

	for _, pid := range pids {
		if err := l.Terminate(pid, false); err != nil {
			return err
		}
	}
	return nil
}

// MarkExited lets tests simulate a crash of a stand-in process.
func (l *Launcher) MarkExited(pid uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.procs[pid]; ok {
		p.exited = true
	}
}

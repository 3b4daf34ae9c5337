package shell

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/haloshell/haloshell/internal/adapters"
	"github.com/haloshell/haloshell/internal/events"
	"github.com/haloshell/haloshell/internal/infrastructure/logging"
	"github.com/haloshell/haloshell/internal/infrastructure/monitoring"
	"github.com/haloshell/haloshell/internal/shared/types"
)

// ErrEmptyHotkeyID is returned when a caller registers or unregisters a
// hotkey without an id.
var ErrEmptyHotkeyID = errors.New("hotkey id cannot be empty")

// adapterOp is a deferred window-system call, executed after the state
// lock is released so adapter callbacks can never deadlock the writer.
type adapterOp func()

// The manager is the observer for every adapter boundary.
var (
	_ adapters.WindowObserver = (*Manager)(nil)
	_ adapters.TrayObserver   = (*Manager)(nil)
	_ adapters.HotkeyObserver = (*Manager)(nil)
	_ adapters.SystemObserver = (*Manager)(nil)
)

// Manager is the shell core state machine and the single writer of the
// aggregate state.
type Manager struct {
	mu      sync.RWMutex
	state   *types.ShellState
	windows adapters.WindowSystem
	hotkeys adapters.HotkeyRegistry
	bus     *events.Bus
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a manager with the initial aggregate: one default
// workspace, active, empty.
func NewManager(bus *events.Bus, windows adapters.WindowSystem, hotkeys adapters.HotkeyRegistry, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		state:   types.NewShellState(),
		windows: windows,
		hotkeys: hotkeys,
		bus:     bus,
		logger:  logger,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Snapshot returns a deep copy of the aggregate state.
func (m *Manager) Snapshot() *types.ShellState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

// Stats returns aggregate counters for diagnostics.
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return types.Stats{
		Windows:         len(m.state.Windows),
		Workspaces:      len(m.state.Workspaces),
		TrayIcons:       len(m.state.TrayIcons),
		ActiveWorkspace: m.state.ActiveWorkspace,
		FocusedWindow:   m.state.FocusedWindow,
	}
}

// finish runs deferred adapter operations and publishes events, then
// refreshes the state gauges. Must be called without the lock held.
func (m *Manager) finish(ops []adapterOp, evts []events.Event) {
	for _, op := range ops {
		op()
	}
	for _, e := range evts {
		m.bus.Publish(e)
	}
	if m.metrics != nil {
		m.mu.RLock()
		windows, workspaces, icons := len(m.state.Windows), len(m.state.Workspaces), len(m.state.TrayIcons)
		m.mu.RUnlock()
		m.metrics.UpdateStateGauges(windows, workspaces, icons)
	}
}

// touch bumps the aggregate timestamp. Callers hold the write lock.
func (m *Manager) touch() {
	m.state.UpdatedAt = time.Now()
}

// ---- Commands (caller-invoked) ----

// FocusWindow focuses a tracked window and asks the window system to
// raise it. Unknown handles are a no-op.
func (m *Manager) FocusWindow(handle types.WindowHandle) bool {
	m.mu.Lock()
	if _, ok := m.state.Windows[handle]; !ok {
		m.mu.Unlock()
		return false
	}
	previous := m.state.FocusedWindow
	m.state.FocusedWindow = handle
	m.touch()
	m.mu.Unlock()

	m.finish(
		[]adapterOp{func() { _ = m.windows.Raise(handle) }},
		[]events.Event{events.NewFocusChanged(previous, handle)},
	)
	return true
}

// SwitchWorkspace activates a workspace. Every window outside the target
// is hidden and every member of the target is shown at its own stored
// display state, regardless of which workspace was active before. This
// stays correct even when a window's membership went stale between
// switches. Unknown or already-active ids are a no-op.
func (m *Manager) SwitchWorkspace(id string) bool {
	m.mu.Lock()
	target, ok := m.state.Workspaces[id]
	if !ok || m.state.ActiveWorkspace == id {
		m.mu.Unlock()
		return false
	}

	previous := m.state.ActiveWorkspace
	var ops []adapterOp
	for _, win := range m.state.Windows {
		win := win
		if win.WorkspaceID != id {
			win.Visible = false
			win.UpdatedAt = time.Now()
			ops = append(ops, func() { _ = m.windows.Hide(win.Handle) })
		} else {
			state := win.State
			win.Visible = state != types.DisplayHidden
			win.UpdatedAt = time.Now()
			ops = append(ops, func() { _ = m.windows.Show(win.Handle, state) })
		}
	}
	if prev, ok := m.state.Workspaces[previous]; ok {
		prev.Active = false
	}
	target.Active = true
	m.state.ActiveWorkspace = id
	m.touch()
	m.mu.Unlock()

	m.finish(ops, []events.Event{events.NewWorkspaceSwitched(previous, id)})
	return true
}

// CreateWorkspace inserts an inactive workspace. Creation is idempotent:
// the first writer wins and a repeated id is a no-op.
func (m *Manager) CreateWorkspace(id, name string) bool {
	if id == "" {
		return false
	}
	m.mu.Lock()
	if _, exists := m.state.Workspaces[id]; exists {
		m.mu.Unlock()
		return false
	}
	m.state.Workspaces[id] = &types.Workspace{
		ID:        id,
		Name:      name,
		Windows:   []types.WindowHandle{},
		CreatedAt: time.Now(),
	}
	m.touch()
	m.mu.Unlock()

	m.finish(nil, []events.Event{events.NewWorkspaceCreated(id, name)})
	return true
}

// MoveWindowToWorkspace reassigns a window to another workspace and
// recomputes its visibility against the active one. Unknown window or
// workspace, or a window already in the target, is a no-op.
func (m *Manager) MoveWindowToWorkspace(handle types.WindowHandle, id string) bool {
	m.mu.Lock()
	win, ok := m.state.Windows[handle]
	target, tok := m.state.Workspaces[id]
	if !ok || !tok || win.WorkspaceID == id {
		m.mu.Unlock()
		return false
	}

	from := win.WorkspaceID
	if old, ok := m.state.Workspaces[from]; ok {
		old.Remove(handle)
	}
	target.Windows = append(target.Windows, handle)
	win.WorkspaceID = id
	win.UpdatedAt = time.Now()

	var ops []adapterOp
	if id == m.state.ActiveWorkspace {
		state := win.State
		win.Visible = state != types.DisplayHidden
		ops = append(ops, func() { _ = m.windows.Show(handle, state) })
	} else {
		win.Visible = false
		ops = append(ops, func() { _ = m.windows.Hide(handle) })
	}
	m.touch()
	m.mu.Unlock()

	m.finish(ops, []events.Event{events.NewWindowMoved(handle, from, id)})
	return true
}

// RegisterHotkey validates the id and delegates to the hotkey adapter.
// The adapter's boolean result is passed through unchanged.
func (m *Manager) RegisterHotkey(id string, modifiers, key uint32) (bool, error) {
	if id == "" {
		return false, ErrEmptyHotkeyID
	}
	return m.hotkeys.Register(id, modifiers, key), nil
}

// UnregisterHotkey validates the id and delegates to the hotkey adapter.
func (m *Manager) UnregisterHotkey(id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyHotkeyID
	}
	return m.hotkeys.Unregister(id), nil
}

// Sync primes the aggregate from the adapters' current view: every
// unknown top-level window and tray icon is inserted as if it had just
// been reported. Called once by the orchestrator during start.
func (m *Manager) Sync(tray adapters.TrayHost) error {
	wins, err := m.windows.Enumerate()
	if err != nil {
		return err
	}
	for _, win := range wins {
		m.insertWindow(win)
	}
	if tray != nil {
		icons, err := tray.Icons()
		if err != nil {
			return err
		}
		for _, icon := range icons {
			m.TrayIconAdded(icon)
		}
	}
	return nil
}

// ---- Adapter fact handlers ----

// WindowCreated handles a new top-level window notification. The current
// snapshot is fetched from the window system; if it is already gone the
// fact is dropped.
func (m *Manager) WindowCreated(handle types.WindowHandle) {
	win, ok := m.windows.Lookup(handle)
	if !ok {
		m.logger.Debug("dropping created notification for vanished window",
			zap.Uint64("handle", uint64(handle)))
		return
	}
	m.insertWindow(win)
}

// insertWindow assigns the window a workspace (the active one when it
// carries none or an unknown one), hides it when that workspace is not
// active, and inserts it into the aggregate.
func (m *Manager) insertWindow(win *types.Window) {
	m.mu.Lock()
	if _, exists := m.state.Windows[win.Handle]; exists {
		m.mu.Unlock()
		return
	}

	if win.WorkspaceID == "" {
		win.WorkspaceID = m.state.ActiveWorkspace
	}
	ws, ok := m.state.Workspaces[win.WorkspaceID]
	if !ok {
		win.WorkspaceID = m.state.ActiveWorkspace
		ws = m.state.Workspaces[win.WorkspaceID]
	}

	var ops []adapterOp
	if win.WorkspaceID != m.state.ActiveWorkspace {
		handle := win.Handle
		win.Visible = false
		ops = append(ops, func() { _ = m.windows.Hide(handle) })
	}

	stored := win.Clone()
	m.state.Windows[stored.Handle] = stored
	ws.Windows = append(ws.Windows, stored.Handle)
	m.touch()
	snapshot := stored.Clone()
	m.mu.Unlock()

	m.finish(ops, []events.Event{events.NewWindowCreated(snapshot)})
}

// WindowDestroyed removes a window from its workspace and the map, and
// clears focus if it was focused. Unknown handles are ignored.
func (m *Manager) WindowDestroyed(handle types.WindowHandle) {
	m.mu.Lock()
	win, ok := m.state.Windows[handle]
	if !ok {
		m.mu.Unlock()
		return
	}
	workspaceID := win.WorkspaceID
	if ws, ok := m.state.Workspaces[workspaceID]; ok {
		ws.Remove(handle)
	}
	delete(m.state.Windows, handle)
	if m.state.FocusedWindow == handle {
		m.state.FocusedWindow = types.NoWindow
	}
	m.touch()
	m.mu.Unlock()

	m.finish(nil, []events.Event{events.NewWindowDestroyed(handle, workspaceID)})
}

// WindowActivated updates the focused handle for a known window. An
// activation for a window the shell never saw is stale information, not
// an error, and is silently ignored.
func (m *Manager) WindowActivated(handle types.WindowHandle) {
	m.mu.Lock()
	if _, ok := m.state.Windows[handle]; !ok || m.state.FocusedWindow == handle {
		m.mu.Unlock()
		return
	}
	previous := m.state.FocusedWindow
	m.state.FocusedWindow = handle
	m.touch()
	m.mu.Unlock()

	m.finish(nil, []events.Event{events.NewFocusChanged(previous, handle)})
}

// WindowUpdated refreshes the stored snapshot of a tracked window. A
// display-state change additionally emits a state-changed event.
func (m *Manager) WindowUpdated(handle types.WindowHandle) {
	snapshot, ok := m.windows.Lookup(handle)
	if !ok {
		return
	}

	m.mu.Lock()
	stored, tracked := m.state.Windows[handle]
	if !tracked {
		m.mu.Unlock()
		return
	}
	previousState := stored.State

	// Workspace membership and creation time are shell-owned; everything
	// else comes from the adapter.
	stored.Title = snapshot.Title
	stored.ProcessID = snapshot.ProcessID
	stored.ClassName = snapshot.ClassName
	stored.State = snapshot.State
	stored.Visible = snapshot.Visible && stored.WorkspaceID == m.state.ActiveWorkspace
	stored.UpdatedAt = time.Now()
	m.touch()

	updated := stored.Clone()
	m.mu.Unlock()

	evts := []events.Event{events.NewWindowUpdated(updated)}
	if updated.State != previousState {
		evts = append(evts, events.NewWindowStateChanged(handle, previousState, updated.State))
	}
	m.finish(nil, evts)
}

// TrayIconAdded mirrors a new tray icon into the aggregate.
func (m *Manager) TrayIconAdded(icon *types.TrayIcon) {
	if icon == nil || icon.ID == "" {
		return
	}
	m.mu.Lock()
	if _, exists := m.state.TrayIcons[icon.ID]; exists {
		m.mu.Unlock()
		return
	}
	stored := icon.Clone()
	m.state.TrayIcons[stored.ID] = stored
	m.touch()
	snapshot := stored.Clone()
	m.mu.Unlock()

	m.finish(nil, []events.Event{events.NewTrayIconAdded(snapshot)})
}

// TrayIconUpdated refreshes a mirrored tray icon. An update for an
// unknown id is a no-op and never silently creates one.
func (m *Manager) TrayIconUpdated(icon *types.TrayIcon) {
	if icon == nil {
		return
	}
	m.mu.Lock()
	if _, exists := m.state.TrayIcons[icon.ID]; !exists {
		m.mu.Unlock()
		return
	}
	stored := icon.Clone()
	m.state.TrayIcons[stored.ID] = stored
	m.touch()
	snapshot := stored.Clone()
	m.mu.Unlock()

	m.finish(nil, []events.Event{events.NewTrayIconUpdated(snapshot)})
}

// TrayIconRemoved drops a mirrored tray icon. Unknown ids are a no-op.
func (m *Manager) TrayIconRemoved(id string) {
	m.mu.Lock()
	if _, exists := m.state.TrayIcons[id]; !exists {
		m.mu.Unlock()
		return
	}
	delete(m.state.TrayIcons, id)
	m.touch()
	m.mu.Unlock()

	m.finish(nil, []events.Event{events.NewTrayIconRemoved(id)})
}

// TrayIconClicked is a pass-through event with no state mutation.
func (m *Manager) TrayIconClicked(id string) {
	m.bus.Publish(events.NewTrayIconClicked(id))
}

// TrayBalloonShown is a pass-through event with no state mutation.
func (m *Manager) TrayBalloonShown(id string) {
	m.bus.Publish(events.NewTrayBalloonShown(id))
}

// TrayMenuItemClicked is a pass-through event with no state mutation.
func (m *Manager) TrayMenuItemClicked(id, itemID string) {
	m.bus.Publish(events.NewTrayMenuItemClicked(id, itemID))
}

// HotkeyPressed forwards a pressed hotkey, carrying the originally
// registered modifiers and key.
func (m *Manager) HotkeyPressed(hotkey types.Hotkey) {
	m.bus.Publish(events.NewHotkeyPressed(hotkey))
}

// SystemEvent forwards a session/power/display notification verbatim.
// The shell performs no session-specific logic itself; that belongs to
// subscribers.
func (m *Manager) SystemEvent(event types.SystemEvent) {
	m.bus.Publish(events.NewSystem(event))
}

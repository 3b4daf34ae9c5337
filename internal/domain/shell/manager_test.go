package shell

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haloshell/haloshell/internal/adapters/sim"
	"github.com/haloshell/haloshell/internal/events"
	"github.com/haloshell/haloshell/internal/shared/types"
)

// recorder collects every published event for assertions.
type recorder struct {
	mu   sync.Mutex
	evts []events.Event
}

func (r *recorder) record(e events.Event) {
	r.mu.Lock()
	r.evts = append(r.evts, e)
	r.mu.Unlock()
}

func (r *recorder) ofType(t events.Type) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.evts {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.evts)
}

type fixture struct {
	manager *Manager
	windows *sim.WindowSystem
	hotkeys *sim.HotkeyRegistry
	tray    *sim.TrayHost
	system  *sim.SystemEventSource
	rec     *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := events.NewBus(nil)
	windows := sim.NewWindowSystem()
	hotkeys := sim.NewHotkeyRegistry()
	tray := sim.NewTrayHost()
	system := sim.NewSystemEventSource()

	m := NewManager(bus, windows, hotkeys, nil)
	windows.Watch(m)
	hotkeys.Watch(m)
	tray.Watch(m)
	system.Watch(m)

	rec := &recorder{}
	bus.SubscribeAll(rec.record)

	return &fixture{manager: m, windows: windows, hotkeys: hotkeys, tray: tray, system: system, rec: rec}
}

// checkInvariants asserts the aggregate invariants on a snapshot.
func checkInvariants(t *testing.T, st *types.ShellState) {
	t.Helper()

	active := 0
	for _, ws := range st.Workspaces {
		if ws.Active {
			active++
		}
		for _, h := range ws.Windows {
			_, ok := st.Windows[h]
			assert.True(t, ok, "workspace %s references unknown window %d", ws.ID, h)
		}
	}
	assert.Equal(t, 1, active, "exactly one workspace must be active")

	for h, w := range st.Windows {
		ws, ok := st.Workspaces[w.WorkspaceID]
		require.True(t, ok, "window %d references unknown workspace %s", h, w.WorkspaceID)
		assert.True(t, ws.Contains(h), "window %d missing from workspace %s membership", h, w.WorkspaceID)
	}

	if st.FocusedWindow != types.NoWindow {
		_, ok := st.Windows[st.FocusedWindow]
		assert.True(t, ok, "focused handle must reference a tracked window")
	}
}

func TestInitialStateAndUnknownFocus(t *testing.T) {
	f := newFixture(t)

	st := f.manager.Snapshot()
	require.Len(t, st.Workspaces, 1)
	assert.True(t, st.Workspaces[types.DefaultWorkspaceID].Active)
	assert.Empty(t, st.Workspaces[types.DefaultWorkspaceID].Windows)
	assert.Equal(t, types.DefaultWorkspaceID, st.ActiveWorkspace)

	// Focusing an unknown handle changes nothing and emits nothing.
	assert.False(t, f.manager.FocusWindow(42))
	st = f.manager.Snapshot()
	assert.Equal(t, types.NoWindow, st.FocusedWindow)
	assert.Equal(t, 0, f.rec.count())
	checkInvariants(t, st)
}

func TestWindowAutoAssignedToActiveWorkspace(t *testing.T) {
	f := newFixture(t)

	f.windows.AddWindow(&types.Window{Handle: 1, Title: "Editor", State: types.DisplayNormal, Visible: true})

	st := f.manager.Snapshot()
	win, ok := st.Windows[1]
	require.True(t, ok)
	assert.Equal(t, types.DefaultWorkspaceID, win.WorkspaceID)
	assert.True(t, st.Workspaces[types.DefaultWorkspaceID].Contains(1))

	created := f.rec.ofType(events.WindowCreated)
	require.Len(t, created, 1)
	payload := created[0].Payload.(events.WindowCreatedPayload)
	assert.Equal(t, types.WindowHandle(1), payload.Handle)
	assert.Equal(t, "Editor", payload.Title)
	checkInvariants(t, st)
}

func TestWindowCreatedInInactiveWorkspaceIsHidden(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.manager.CreateWorkspace("w1", "Work"))
	f.windows.AddWindow(&types.Window{Handle: 2, Title: "Mail", WorkspaceID: "w1", State: types.DisplayNormal, Visible: true})

	st := f.manager.Snapshot()
	win, ok := st.Windows[2]
	require.True(t, ok)
	assert.Equal(t, "w1", win.WorkspaceID)
	assert.False(t, win.Visible, "window in an inactive workspace must not be visible")
	checkInvariants(t, st)
}

func TestSwitchWorkspace(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.manager.CreateWorkspace("w1", "Work"))
	f.windows.AddWindow(&types.Window{Handle: 1, Title: "Editor", State: types.DisplayNormal, Visible: true})
	f.windows.AddWindow(&types.Window{Handle: 2, Title: "Mail", WorkspaceID: "w1", State: types.DisplayNormal, Visible: true})

	require.True(t, f.manager.SwitchWorkspace("w1"))

	switched := f.rec.ofType(events.WorkspaceSwitched)
	require.Len(t, switched, 1)
	payload := switched[0].Payload.(events.WorkspaceSwitchedPayload)
	assert.Equal(t, types.DefaultWorkspaceID, payload.Previous)
	assert.Equal(t, "w1", payload.WorkspaceID)

	st := f.manager.Snapshot()
	assert.Equal(t, "w1", st.ActiveWorkspace)
	assert.True(t, st.Workspaces["w1"].Active)
	assert.False(t, st.Workspaces[types.DefaultWorkspaceID].Active)
	assert.True(t, st.Windows[2].Visible, "windows of the target workspace are shown")
	assert.False(t, st.Windows[1].Visible, "all other windows are hidden")
	checkInvariants(t, st)
}

func TestSwitchToActiveWorkspaceIsIdempotent(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.manager.SwitchWorkspace(types.DefaultWorkspaceID))
	assert.False(t, f.manager.SwitchWorkspace("nope"))
	assert.Equal(t, 0, f.rec.count())
}

func TestCreateWorkspaceIsIdempotent(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.manager.CreateWorkspace("w1", "First"))
	assert.False(t, f.manager.CreateWorkspace("w1", "Second"))
	assert.False(t, f.manager.CreateWorkspace("", "Empty"))

	st := f.manager.Snapshot()
	assert.Equal(t, "First", st.Workspaces["w1"].Name, "first writer wins")
	assert.False(t, st.Workspaces["w1"].Active, "created workspaces start inactive")
	assert.Len(t, f.rec.ofType(events.WorkspaceCreated), 1)
	checkInvariants(t, st)
}

func TestMoveWindowRoundTrip(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.manager.CreateWorkspace("w1", "Work"))
	f.windows.AddWindow(&types.Window{Handle: 1, Title: "Editor", State: types.DisplayNormal, Visible: true})

	before := f.manager.Snapshot()
	require.True(t, before.Windows[1].Visible)

	require.True(t, f.manager.MoveWindowToWorkspace(1, "w1"))
	mid := f.manager.Snapshot()
	assert.Equal(t, "w1", mid.Windows[1].WorkspaceID)
	assert.False(t, mid.Windows[1].Visible)
	assert.False(t, mid.Workspaces[types.DefaultWorkspaceID].Contains(1))
	assert.True(t, mid.Workspaces["w1"].Contains(1))
	checkInvariants(t, mid)

	require.True(t, f.manager.MoveWindowToWorkspace(1, types.DefaultWorkspaceID))
	after := f.manager.Snapshot()
	assert.Equal(t, before.Windows[1].WorkspaceID, after.Windows[1].WorkspaceID)
	assert.Equal(t, before.Windows[1].Visible, after.Windows[1].Visible)
	assert.True(t, after.Workspaces[types.DefaultWorkspaceID].Contains(1))
	assert.False(t, after.Workspaces["w1"].Contains(1))
	checkInvariants(t, after)

	moved := f.rec.ofType(events.WindowMoved)
	require.Len(t, moved, 2)
	first := moved[0].Payload.(events.WindowMovedPayload)
	assert.Equal(t, types.DefaultWorkspaceID, first.FromID)
	assert.Equal(t, "w1", first.WorkspaceID)
}

func TestMoveWindowNoOps(t *testing.T) {
	f := newFixture(t)

	f.windows.AddWindow(&types.Window{Handle: 1, Title: "Editor", Visible: true})

	assert.False(t, f.manager.MoveWindowToWorkspace(99, types.DefaultWorkspaceID), "unknown window")
	assert.False(t, f.manager.MoveWindowToWorkspace(1, "nope"), "unknown workspace")
	assert.False(t, f.manager.MoveWindowToWorkspace(1, types.DefaultWorkspaceID), "already there")
	assert.Empty(t, f.rec.ofType(events.WindowMoved))
}

func TestDestroyFocusedWindowClearsFocus(t *testing.T) {
	f := newFixture(t)

	f.windows.AddWindow(&types.Window{Handle: 7, Title: "Editor", Visible: true})
	require.True(t, f.manager.FocusWindow(7))
	require.Equal(t, types.WindowHandle(7), f.manager.Snapshot().FocusedWindow)

	f.windows.RemoveWindow(7)

	st := f.manager.Snapshot()
	assert.Equal(t, types.NoWindow, st.FocusedWindow)
	_, ok := st.Windows[7]
	assert.False(t, ok)

	destroyed := f.rec.ofType(events.WindowDestroyed)
	require.Len(t, destroyed, 1)
	payload := destroyed[0].Payload.(events.WindowDestroyedPayload)
	assert.Equal(t, types.WindowHandle(7), payload.Handle)
	assert.Equal(t, types.DefaultWorkspaceID, payload.WorkspaceID)
	checkInvariants(t, st)
}

func TestFocusEmitsPreviousAndNew(t *testing.T) {
	f := newFixture(t)

	f.windows.AddWindow(&types.Window{Handle: 1, Visible: true})
	f.windows.AddWindow(&types.Window{Handle: 2, Visible: true})

	require.True(t, f.manager.FocusWindow(1))
	require.True(t, f.manager.FocusWindow(2))

	focus := f.rec.ofType(events.FocusChanged)
	require.Len(t, focus, 2)
	second := focus[1].Payload.(events.FocusChangedPayload)
	assert.Equal(t, types.WindowHandle(1), second.Previous)
	assert.Equal(t, types.WindowHandle(2), second.Handle)
}

func TestActivationOfUnknownWindowIsIgnored(t *testing.T) {
	f := newFixture(t)

	f.windows.Activate(1234)

	assert.Equal(t, types.NoWindow, f.manager.Snapshot().FocusedWindow)
	assert.Equal(t, 0, f.rec.count())
}

func TestWindowUpdateEmitsStateChange(t *testing.T) {
	f := newFixture(t)

	f.windows.AddWindow(&types.Window{Handle: 1, Title: "Editor", State: types.DisplayNormal, Visible: true})

	f.windows.Update(1, func(w *types.Window) { w.Title = "Editor (saved)" })
	assert.Len(t, f.rec.ofType(events.WindowUpdated), 1)
	assert.Empty(t, f.rec.ofType(events.WindowStateChanged), "title change alone is not a state change")

	f.windows.Update(1, func(w *types.Window) { w.State = types.DisplayMaximized })
	stateChanged := f.rec.ofType(events.WindowStateChanged)
	require.Len(t, stateChanged, 1)
	payload := stateChanged[0].Payload.(events.WindowStateChangedPayload)
	assert.Equal(t, types.DisplayNormal, payload.Previous)
	assert.Equal(t, types.DisplayMaximized, payload.State)

	assert.Equal(t, types.DisplayMaximized, f.manager.Snapshot().Windows[1].State)
}

func TestTrayIconLifecycle(t *testing.T) {
	f := newFixture(t)

	id := f.tray.AddIcon(&types.TrayIcon{Tooltip: "Volume", Visible: true})
	require.NotEmpty(t, id)
	require.Len(t, f.rec.ofType(events.TrayIconAdded), 1)

	f.tray.UpdateIcon(id, func(icon *types.TrayIcon) { icon.Tooltip = "Muted" })
	require.Len(t, f.rec.ofType(events.TrayIconUpdated), 1)
	assert.Equal(t, "Muted", f.manager.Snapshot().TrayIcons[id].Tooltip)

	f.tray.Click(id)
	f.tray.ClickMenuItem(id, "open")
	assert.Len(t, f.rec.ofType(events.TrayIconClicked), 1)
	assert.Len(t, f.rec.ofType(events.TrayMenuItemClicked), 1)

	f.tray.RemoveIcon(id)
	assert.Len(t, f.rec.ofType(events.TrayIconRemoved), 1)
	assert.Empty(t, f.manager.Snapshot().TrayIcons)
}

func TestTrayUpdateForUnknownIconIsNoOp(t *testing.T) {
	f := newFixture(t)

	// An update must never silently create an icon.
	f.manager.TrayIconUpdated(&types.TrayIcon{ID: "ghost", Tooltip: "boo"})
	f.manager.TrayIconRemoved("ghost")

	assert.Empty(t, f.manager.Snapshot().TrayIcons)
	assert.Equal(t, 0, f.rec.count())
}

func TestHotkeyRegistrationAndPress(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.RegisterHotkey("", types.ModAlt, 0x20)
	assert.ErrorIs(t, err, ErrEmptyHotkeyID)
	_, err = f.manager.UnregisterHotkey("")
	assert.ErrorIs(t, err, ErrEmptyHotkeyID)

	ok, err := f.manager.RegisterHotkey("launcher", types.ModAlt|types.ModSuper, 0x20)
	require.NoError(t, err)
	assert.True(t, ok)

	// The adapter's refusal is passed through unchanged.
	ok, err = f.manager.RegisterHotkey("other", types.ModAlt|types.ModSuper, 0x20)
	require.NoError(t, err)
	assert.False(t, ok)

	f.hotkeys.Press("launcher")
	pressed := f.rec.ofType(events.HotkeyPressed)
	require.Len(t, pressed, 1)
	payload := pressed[0].Payload.(events.HotkeyPressedPayload)
	assert.Equal(t, "launcher", payload.Hotkey.ID)
	assert.Equal(t, types.ModAlt|types.ModSuper, payload.Hotkey.Modifiers)
	assert.Equal(t, uint32(0x20), payload.Hotkey.Key)

	ok, err = f.manager.UnregisterHotkey("launcher")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSystemEventsAreForwardedVerbatim(t *testing.T) {
	f := newFixture(t)

	// Stopped source drops events.
	f.system.Emit(types.SystemEvent{Kind: types.SystemSuspend})
	assert.Equal(t, 0, f.rec.count())

	require.NoError(t, f.system.Start())
	f.system.Emit(types.SystemEvent{Kind: types.SystemQueryEndSession, Cancellable: true})

	forwarded := f.rec.ofType(events.System)
	require.Len(t, forwarded, 1)
	payload := forwarded[0].Payload.(events.SystemPayload)
	assert.Equal(t, types.SystemQueryEndSession, payload.Event.Kind)
	assert.True(t, payload.Event.Cancellable)
}

func TestSnapshotIsIndependent(t *testing.T) {
	f := newFixture(t)

	f.windows.AddWindow(&types.Window{Handle: 1, Title: "Editor", Visible: true})

	snap := f.manager.Snapshot()
	snap.Windows[1].Title = "tampered"
	snap.Workspaces[types.DefaultWorkspaceID].Windows = nil
	snap.ActiveWorkspace = "tampered"

	fresh := f.manager.Snapshot()
	assert.Equal(t, "Editor", fresh.Windows[1].Title)
	assert.True(t, fresh.Workspaces[types.DefaultWorkspaceID].Contains(1))
	assert.Equal(t, types.DefaultWorkspaceID, fresh.ActiveWorkspace)
}

func TestSyncPrimesFromAdapters(t *testing.T) {
	bus := events.NewBus(nil)
	windows := sim.NewWindowSystem()
	tray := sim.NewTrayHost()
	hotkeys := sim.NewHotkeyRegistry()

	// Windows and icons exist before the manager is wired, as they would
	// on a real desktop.
	windows.AddWindow(&types.Window{Handle: 1, Title: "Editor", Visible: true})
	tray.AddIcon(&types.TrayIcon{ID: "net", Tooltip: "Network", Visible: true})

	m := NewManager(bus, windows, hotkeys, nil)
	require.NoError(t, m.Sync(tray))

	st := m.Snapshot()
	assert.Contains(t, st.Windows, types.WindowHandle(1))
	assert.Contains(t, st.TrayIcons, "net")
	checkInvariants(t, st)
}

func TestConcurrentFactsKeepInvariants(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.manager.CreateWorkspace("w1", "Work"))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			base := types.WindowHandle(i*100 + 1)
			for j := 0; j < 25; j++ {
				h := base + types.WindowHandle(j)
				f.windows.AddWindow(&types.Window{Handle: h, Title: "win", Visible: true})
				f.manager.MoveWindowToWorkspace(h, "w1")
				if j%3 == 0 {
					f.windows.RemoveWindow(h)
				}
			}
		}()
	}
	wg.Wait()

	checkInvariants(t, f.manager.Snapshot())
}

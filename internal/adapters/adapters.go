package adapters

import (
	"github.com/haloshell/haloshell/internal/shared/types"
)

// WindowObserver receives window-system notifications.
type WindowObserver interface {
	WindowCreated(handle types.WindowHandle)
	WindowDestroyed(handle types.WindowHandle)
	WindowActivated(handle types.WindowHandle)
	WindowUpdated(handle types.WindowHandle)
}

// WindowSystem is the boundary to the platform window manager.
type WindowSystem interface {
	// Enumerate returns snapshots of all current top-level windows.
	Enumerate() ([]*types.Window, error)
	// Lookup fetches a window's current snapshot by handle. The second
	// return is false when the handle is gone, which is not an error:
	// window facts are inherently racy.
	Lookup(handle types.WindowHandle) (*types.Window, bool)
	// Show makes the window visible at the given display state.
	Show(handle types.WindowHandle, state types.DisplayState) error
	// Hide removes the window from view without destroying it.
	Hide(handle types.WindowHandle) error
	// Raise brings the window to the foreground.
	Raise(handle types.WindowHandle) error
	// Watch registers the observer that receives window notifications.
	Watch(observer WindowObserver)
}

// Launcher is the boundary to process creation and observation.
type Launcher interface {
	// Start launches a process from an identifier or path. When dangerous
	// operations are disabled it returns a stand-in process id without
	// touching the OS.
	Start(command string, args ...string) (uint32, error)
	// Processes enumerates running processes.
	Processes() ([]types.ProcessInfo, error)
	// Alive reports whether the process is still running.
	Alive(pid uint32) bool
	// Terminate requests process exit: graceful first, forced when the
	// graceful flag is false.
	Terminate(pid uint32, graceful bool) error
	// TerminateByName terminates every running process with the given
	// image name.
	TerminateByName(name string) error
}

// TrayObserver receives tray host notifications.
type TrayObserver interface {
	TrayIconAdded(icon *types.TrayIcon)
	TrayIconUpdated(icon *types.TrayIcon)
	TrayIconRemoved(id string)
	TrayIconClicked(id string)
	TrayBalloonShown(id string)
	TrayMenuItemClicked(id, itemID string)
}

// TrayHost is the boundary to the notification-area host.
type TrayHost interface {
	// Icons enumerates the current tray icon set.
	Icons() ([]*types.TrayIcon, error)
	// ShowBalloon displays a balloon notification on an icon.
	ShowBalloon(id string, balloon types.Balloon) error
	// UpdateMenu replaces an icon's context menu.
	UpdateMenu(id string, menu []types.TrayMenuItem) error
	// Watch registers the observer that receives tray notifications.
	Watch(observer TrayObserver)
}

// HotkeyObserver receives hotkey notifications carrying the originally
// registered modifiers and key.
type HotkeyObserver interface {
	HotkeyPressed(hotkey types.Hotkey)
}

// HotkeyRegistry is the boundary to global shortcut registration.
type HotkeyRegistry interface {
	// Register binds a hotkey. The boolean result is the platform's
	// answer and is passed through to callers unchanged.
	Register(id string, modifiers, key uint32) bool
	// Unregister releases a hotkey by id.
	Unregister(id string) bool
	// Watch registers the observer that receives pressed notifications.
	Watch(observer HotkeyObserver)
}

// SystemObserver receives session/power/display notifications.
type SystemObserver interface {
	SystemEvent(event types.SystemEvent)
}

// SystemEventSource is the boundary to session lifecycle notifications.
type SystemEventSource interface {
	Start() error
	Stop() error
	Watch(observer SystemObserver)
}

// Set bundles one implementation of each capability boundary.
type Set struct {
	Windows WindowSystem
	Launch  Launcher
	Tray    TrayHost
	Hotkeys HotkeyRegistry
	System  SystemEventSource
}

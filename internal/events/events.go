package events

import (
	"time"

	"github.com/haloshell/haloshell/internal/shared/types"
)

// Type identifies an event kind
type Type string

const (
	WindowCreated      Type = "window_created"
	WindowDestroyed    Type = "window_destroyed"
	WindowUpdated      Type = "window_updated"
	WindowStateChanged Type = "window_state_changed"
	WindowMoved        Type = "window_moved"
	FocusChanged       Type = "focus_changed"

	WorkspaceCreated  Type = "workspace_created"
	WorkspaceSwitched Type = "workspace_switched"

	TrayIconAdded       Type = "tray_icon_added"
	TrayIconUpdated     Type = "tray_icon_updated"
	TrayIconRemoved     Type = "tray_icon_removed"
	TrayIconClicked     Type = "tray_icon_clicked"
	TrayBalloonShown    Type = "tray_balloon_shown"
	TrayMenuItemClicked Type = "tray_menu_item_clicked"

	HotkeyPressed Type = "hotkey_pressed"
	System        Type = "system"
)

// Event is a single tagged domain event.
type Event struct {
	Type      Type        `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// WindowCreatedPayload carries the new window's handle and snapshot.
type WindowCreatedPayload struct {
	Handle types.WindowHandle `json:"handle"`
	Title  string             `json:"title"`
	Window *types.Window      `json:"window"`
}

// WindowDestroyedPayload carries the destroyed handle and the workspace it
// belonged to before destruction.
type WindowDestroyedPayload struct {
	Handle      types.WindowHandle `json:"handle"`
	WorkspaceID string             `json:"workspace_id"`
}

// WindowUpdatedPayload carries the refreshed window snapshot.
type WindowUpdatedPayload struct {
	Handle types.WindowHandle `json:"handle"`
	Window *types.Window      `json:"window"`
}

// WindowStateChangedPayload is emitted in addition to WindowUpdated when an
// update changed the display state.
type WindowStateChangedPayload struct {
	Handle   types.WindowHandle `json:"handle"`
	Previous types.DisplayState `json:"previous"`
	State    types.DisplayState `json:"state"`
}

// WindowMovedPayload carries a window's previous and new workspace.
type WindowMovedPayload struct {
	Handle      types.WindowHandle `json:"handle"`
	FromID      string             `json:"from_id"`
	WorkspaceID string             `json:"workspace_id"`
}

// FocusChangedPayload carries the previous and new focused handle.
type FocusChangedPayload struct {
	Previous types.WindowHandle `json:"previous"`
	Handle   types.WindowHandle `json:"handle"`
}

// WorkspaceCreatedPayload carries the new workspace's id and name.
type WorkspaceCreatedPayload struct {
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
}

// WorkspaceSwitchedPayload carries the previous and new active workspace.
type WorkspaceSwitchedPayload struct {
	Previous    string `json:"previous"`
	WorkspaceID string `json:"workspace_id"`
}

// TrayIconPayload carries a tray icon snapshot for added/updated events.
type TrayIconPayload struct {
	ID   string          `json:"id"`
	Icon *types.TrayIcon `json:"icon,omitempty"`
}

// TrayClickPayload carries a pass-through tray interaction.
type TrayClickPayload struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id,omitempty"`
}

// HotkeyPressedPayload carries the pressed hotkey with the originally
// registered modifiers and key.
type HotkeyPressedPayload struct {
	Hotkey types.Hotkey `json:"hotkey"`
}

// SystemPayload forwards a session/power/display notification verbatim.
type SystemPayload struct {
	Event types.SystemEvent `json:"event"`
}

func newEvent(t Type, payload interface{}) Event {
	return Event{Type: t, Timestamp: time.Now(), Payload: payload}
}

// NewWindowCreated creates a window-created event.
func NewWindowCreated(w *types.Window) Event {
	return newEvent(WindowCreated, WindowCreatedPayload{Handle: w.Handle, Title: w.Title, Window: w})
}

// NewWindowDestroyed creates a window-destroyed event.
func NewWindowDestroyed(handle types.WindowHandle, workspaceID string) Event {
	return newEvent(WindowDestroyed, WindowDestroyedPayload{Handle: handle, WorkspaceID: workspaceID})
}

// NewWindowUpdated creates a window-updated event.
func NewWindowUpdated(w *types.Window) Event {
	return newEvent(WindowUpdated, WindowUpdatedPayload{Handle: w.Handle, Window: w})
}

// NewWindowStateChanged creates a window-state-changed event.
func NewWindowStateChanged(handle types.WindowHandle, previous, state types.DisplayState) Event {
	return newEvent(WindowStateChanged, WindowStateChangedPayload{Handle: handle, Previous: previous, State: state})
}

// NewWindowMoved creates a window-moved event.
func NewWindowMoved(handle types.WindowHandle, fromID, toID string) Event {
	return newEvent(WindowMoved, WindowMovedPayload{Handle: handle, FromID: fromID, WorkspaceID: toID})
}

// NewFocusChanged creates a focus-changed event.
func NewFocusChanged(previous, handle types.WindowHandle) Event {
	return newEvent(FocusChanged, FocusChangedPayload{Previous: previous, Handle: handle})
}

// NewWorkspaceCreated creates a workspace-created event.
func NewWorkspaceCreated(id, name string) Event {
	return newEvent(WorkspaceCreated, WorkspaceCreatedPayload{WorkspaceID: id, Name: name})
}

// NewWorkspaceSwitched creates a workspace-switched event.
func NewWorkspaceSwitched(previous, id string) Event {
	return newEvent(WorkspaceSwitched, WorkspaceSwitchedPayload{Previous: previous, WorkspaceID: id})
}

// NewTrayIconAdded creates a tray-icon-added event.
func NewTrayIconAdded(icon *types.TrayIcon) Event {
	return newEvent(TrayIconAdded, TrayIconPayload{ID: icon.ID, Icon: icon})
}

// NewTrayIconUpdated creates a tray-icon-updated event.
func NewTrayIconUpdated(icon *types.TrayIcon) Event {
	return newEvent(TrayIconUpdated, TrayIconPayload{ID: icon.ID, Icon: icon})
}

// NewTrayIconRemoved creates a tray-icon-removed event.
func NewTrayIconRemoved(id string) Event {
	return newEvent(TrayIconRemoved, TrayIconPayload{ID: id})
}

// NewTrayIconClicked creates a pass-through tray click event.
func NewTrayIconClicked(id string) Event {
	return newEvent(TrayIconClicked, TrayClickPayload{ID: id})
}

// NewTrayBalloonShown creates a pass-through balloon-shown event.
func NewTrayBalloonShown(id string) Event {
	return newEvent(TrayBalloonShown, TrayClickPayload{ID: id})
}

// NewTrayMenuItemClicked creates a pass-through menu-item click event.
func NewTrayMenuItemClicked(id, itemID string) Event {
	return newEvent(TrayMenuItemClicked, TrayClickPayload{ID: id, ItemID: itemID})
}

// NewHotkeyPressed creates a hotkey-pressed event carrying the registered
// modifiers and key.
func NewHotkeyPressed(hk types.Hotkey) Event {
	return newEvent(HotkeyPressed, HotkeyPressedPayload{Hotkey: hk})
}

// NewSystem creates a forwarded system event.
func NewSystem(ev types.SystemEvent) Event {
	return newEvent(System, SystemPayload{Event: ev})
}

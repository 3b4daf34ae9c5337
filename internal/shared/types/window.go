package types

import "time"

// WindowHandle is the opaque OS-assigned identifier of a top-level window.
// Handles are stable for a window's lifetime but reused after destruction,
// so a handle is never a permanent identity beyond a single window's life.
type WindowHandle uint64

// NoWindow is the zero handle, used when nothing is focused.
const NoWindow WindowHandle = 0

// DisplayState represents window display states
type DisplayState string

const (
	DisplayNormal    DisplayState = "normal"
	DisplayMinimized DisplayState = "minimized"
	DisplayMaximized DisplayState = "maximized"
	DisplayHidden    DisplayState = "hidden"
)

// Window represents a tracked top-level window
type Window struct {
	Handle      WindowHandle `json:"handle"`
	Title       string       `json:"title"`
	ProcessID   uint32       `json:"process_id"`
	WorkspaceID string       `json:"workspace_id"`
	State       DisplayState `json:"state"`
	Visible     bool         `json:"visible"`
	ClassName   string       `json:"class_name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Clone returns an independent copy of the window.
func (w *Window) Clone() *Window {
	if w == nil {
		return nil
	}
	c := *w
	return &c
}

package types

import "time"

// DefaultWorkspaceID is the workspace every shell starts with.
const DefaultWorkspaceID = "default"

// Workspace represents a named, switchable grouping of windows
type Workspace struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Windows   []WindowHandle `json:"windows"` // ordered membership
	Active    bool           `json:"active"`
	CreatedAt time.Time      `json:"created_at"`
}

// Clone returns an independent copy of the workspace, including membership.
func (w *Workspace) Clone() *Workspace {
	if w == nil {
		return nil
	}
	c := *w
	c.Windows = make([]WindowHandle, len(w.Windows))
	copy(c.Windows, w.Windows)
	return &c
}

// Contains reports whether the workspace membership includes handle.
func (w *Workspace) Contains(handle WindowHandle) bool {
	for _, h := range w.Windows {
		if h == handle {
			return true
		}
	}
	return false
}

// Remove deletes handle from the membership list, preserving order.
func (w *Workspace) Remove(handle WindowHandle) {
	for i, h := range w.Windows {
		if h == handle {
			w.Windows = append(w.Windows[:i], w.Windows[i+1:]...)
			return
		}
	}
}

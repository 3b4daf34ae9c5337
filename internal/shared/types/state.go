package types

import "time"

// ShellState is the aggregate state of the shell core.
//
// Invariants:
//  1. Every workspace's member handles are a subset of the window map's keys.
//  2. Every window's WorkspaceID resolves to an existing workspace.
//  3. A window is visible iff its workspace is the active one, unless
//     explicitly hidden by its own display state.
//  4. FocusedWindow, if non-zero, references a window present in the map.
//  5. Exactly one workspace has Active set.
type ShellState struct {
	Windows         map[WindowHandle]*Window `json:"windows"`
	Workspaces      map[string]*Workspace    `json:"workspaces"`
	TrayIcons       map[string]*TrayIcon     `json:"tray_icons"`
	ActiveWorkspace string                   `json:"active_workspace"`
	FocusedWindow   WindowHandle             `json:"focused_window"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// NewShellState returns the initial aggregate: one default workspace,
// active, empty.
func NewShellState() *ShellState {
	now := time.Now()
	return &ShellState{
		Windows: make(map[WindowHandle]*Window),
		Workspaces: map[string]*Workspace{
			DefaultWorkspaceID: {
				ID:        DefaultWorkspaceID,
				Name:      "Default",
				Windows:   []WindowHandle{},
				Active:    true,
				CreatedAt: now,
			},
		},
		TrayIcons:       make(map[string]*TrayIcon),
		ActiveWorkspace: DefaultWorkspaceID,
		FocusedWindow:   NoWindow,
		UpdatedAt:       now,
	}
}

// Clone returns a deep copy of the aggregate. Callers can never mutate
// internal state through a returned snapshot.
func (s *ShellState) Clone() *ShellState {
	if s == nil {
		return nil
	}
	c := &ShellState{
		Windows:         make(map[WindowHandle]*Window, len(s.Windows)),
		Workspaces:      make(map[string]*Workspace, len(s.Workspaces)),
		TrayIcons:       make(map[string]*TrayIcon, len(s.TrayIcons)),
		ActiveWorkspace: s.ActiveWorkspace,
		FocusedWindow:   s.FocusedWindow,
		UpdatedAt:       s.UpdatedAt,
	}
	for h, w := range s.Windows {
		c.Windows[h] = w.Clone()
	}
	for id, ws := range s.Workspaces {
		c.Workspaces[id] = ws.Clone()
	}
	for id, t := range s.TrayIcons {
		c.TrayIcons[id] = t.Clone()
	}
	return c
}

// Stats contains aggregate counters for diagnostics
type Stats struct {
	Windows         int          `json:"windows"`
	Workspaces      int          `json:"workspaces"`
	TrayIcons       int          `json:"tray_icons"`
	ActiveWorkspace string       `json:"active_workspace"`
	FocusedWindow   WindowHandle `json:"focused_window"`
}

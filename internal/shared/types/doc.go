// Package types provides shared data structures for the shell core.
//
// This package defines the domain model used across all shell components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Window: A tracked top-level window
//   - Workspace: A named, switchable grouping of windows
//   - TrayIcon: A mirrored notification-area icon
//   - Hotkey: A registered global keyboard shortcut
//   - ShellState: The aggregate state of the shell
//
// System Types:
//   - SystemEvent: Session/power/display notification
//   - ProcessInfo: A running process observed by the launcher
//
// State Management:
//   - DisplayState: Window display state enum (normal, minimized, ...)
//   - Stats: Aggregate counters for diagnostics
//
// Example Usage:
//
//	win := &types.Window{
//	    Handle:      types.WindowHandle(0x2004a),
//	    Title:       "Editor",
//	    WorkspaceID: "default",
//	    State:       types.DisplayNormal,
//	}
package types

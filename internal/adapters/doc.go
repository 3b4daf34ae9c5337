// Package adapters defines the five capability boundaries the shell core
// depends on. Implementations are external; only the operation/event
// surface is part of the core.
//
// Boundaries:
//   - WindowSystem: enumerate, inspect, show/hide, and raise windows
//   - Launcher: start, enumerate, and terminate processes
//   - TrayHost: mirror the notification-area icon set
//   - HotkeyRegistry: register global shortcuts
//   - SystemEventSource: session/power/display notifications
//
// Facts flow from adapters into the core through the per-boundary Observer
// interfaces, potentially each on its own goroutine. The core serializes
// all resulting state mutation itself; adapters need no ordering
// guarantees beyond per-source delivery order.
package adapters

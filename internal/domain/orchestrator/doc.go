// Package orchestrator owns the lifecycle of the shell core: the event
// bus, the five adapters, the state machine, and the rendering-surface
// host process.
//
// Lifecycle: Stopped → Starting → Running, Running → Stopping → Stopped.
// Any failure during a transition lands in Failed after tearing down
// whatever was already constructed. RestartUIHost is only valid while
// Running and relaunches the rendering host without touching the state
// machine or adapters.
package orchestrator

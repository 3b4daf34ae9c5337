// Package sim provides in-process implementations of the adapter
// boundaries, used in dev/test mode and when the platform adapters are
// unavailable.
//
// The simulated adapters keep their own small state and expose driver
// methods (AddWindow, Press, Emit, ...) so tests and development sessions
// can inject facts without an operating system behind them. The Launcher
// starts real processes only when dangerous operations are enabled;
// otherwise it hands out stand-in process ids, which keeps the domain
// logic exercisable everywhere.
package sim

// Package shell implements the core state machine of the shell.
//
// The Manager owns the aggregate state (windows, workspaces, tray icons,
// focus) and is its single writer. Facts arrive from adapter callbacks,
// potentially each on its own goroutine; commands arrive from the bridge
// or embedding code. Every mutation is serialized behind the manager's
// lock, and every externally visible change is emitted as a domain event
// on the bus after the lock is released.
//
// Failure semantics: operations referencing an unknown handle or id are
// silent no-ops. Adapter facts are inherently racy (a window can be
// destroyed between an enumeration and an operation) and must never
// crash the shell. Caller-invoked hotkey registration instead validates
// its arguments and reports failure.
//
// Snapshots returned by Snapshot are deep copies; callers can never
// mutate internal state through one.
package shell

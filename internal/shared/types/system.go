package types

// SystemEventKind tags session, power, and display notifications.
type SystemEventKind string

const (
	SystemQueryEndSession SystemEventKind = "query_end_session"
	SystemEndSession      SystemEventKind = "end_session"
	SystemSuspend         SystemEventKind = "suspend"
	SystemResume          SystemEventKind = "resume"
	SystemDisplayChange   SystemEventKind = "display_change"
	SystemSessionLock     SystemEventKind = "session_lock"
	SystemSessionUnlock   SystemEventKind = "session_unlock"
)

// SystemEvent is a session/power/display notification forwarded verbatim
// through the shell. Cancellable is set only for the pre-shutdown query.
type SystemEvent struct {
	Kind        SystemEventKind `json:"kind"`
	Cancellable bool            `json:"cancellable,omitempty"`
}

// ProcessInfo describes a running process observed by the launcher adapter.
type ProcessInfo struct {
	PID  uint32 `json:"pid"`
	Name string `json:"name"`
}

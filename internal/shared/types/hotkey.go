package types

// Hotkey modifier bitmask values, matching the platform convention.
const (
	ModAlt     uint32 = 0x1
	ModControl uint32 = 0x2
	ModShift   uint32 = 0x4
	ModSuper   uint32 = 0x8
)

// Hotkey is a global keyboard shortcut registered with the hotkey adapter.
// The shell does not persist hotkey definitions beyond the adapter's own
// bookkeeping.
type Hotkey struct {
	ID        string `json:"id"`
	Modifiers uint32 `json:"modifiers"`
	Key       uint32 `json:"key"`
}

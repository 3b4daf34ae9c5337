package sim

import (
	"sync"

	"github.com/haloshell/haloshell/internal/adapters"
	"github.com/haloshell/haloshell/internal/shared/types"
)

// HotkeyRegistry is a simulated global-shortcut registry. It keeps the
// registered modifiers and key per id so pressed notifications carry the
// original values.
type HotkeyRegistry struct {
	mu       sync.RWMutex
	hotkeys  map[string]types.Hotkey
	observer adapters.HotkeyObserver
}

// NewHotkeyRegistry creates an empty simulated registry.
func NewHotkeyRegistry() *HotkeyRegistry {
	return &HotkeyRegistry{
		hotkeys: make(map[string]types.Hotkey),
	}
}

// Register binds a hotkey. It fails when another id already owns the same
// modifiers/key combination, mirroring platform behavior.
func (h *HotkeyRegistry) Register(id string, modifiers, key uint32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for other, hk := range h.hotkeys {
		if other != id && hk.Modifiers == modifiers && hk.Key == key {
			return false
		}
	}
	h.hotkeys[id] = types.Hotkey{ID: id, Modifiers: modifiers, Key: key}
	return true
}

// Unregister releases a hotkey. It reports whether the id was registered.
func (h *HotkeyRegistry) Unregister(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.hotkeys[id]; !ok {
		return false
	}
	delete(h.hotkeys, id)
	return true
}

// Watch registers the observer receiving pressed notifications.
func (h *HotkeyRegistry) Watch(observer adapters.HotkeyObserver) {
	h.mu.Lock()
	h.observer = observer
	h.mu.Unlock()
}

// Press fires a pressed notification for a registered id. Unknown ids are
// ignored.
func (h *HotkeyRegistry) Press(id string) {
	h.mu.RLock()
	hk, ok := h.hotkeys[id]
	observer := h.observer
	h.mu.RUnlock()
	if ok && observer != nil {
		observer.HotkeyPressed(hk)
	}
}

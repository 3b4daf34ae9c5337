package sim

import (
	"sync"
	"time"

	"github.com/haloshell/haloshell/internal/adapters"
	"github.com/haloshell/haloshell/internal/shared/types"
)

// WindowSystem is a simulated window-system adapter. Facts are injected
// through the driver methods and delivered to the registered observer the
// same way a platform hook would deliver them.
type WindowSystem struct {
	mu       sync.RWMutex
	windows  map[types.WindowHandle]*types.Window
	observer adapters.WindowObserver
}

// NewWindowSystem creates an empty simulated window system.
func NewWindowSystem() *WindowSystem {
	return &WindowSystem{
		windows: make(map[types.WindowHandle]*types.Window),
	}
}

// Enumerate returns snapshots of all current windows.
func (w *WindowSystem) Enumerate() ([]*types.Window, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*types.Window, 0, len(w.windows))
	for _, win := range w.windows {
		out = append(out, win.Clone())
	}
	return out, nil
}

// Lookup fetches a window snapshot by handle.
func (w *WindowSystem) Lookup(handle types.WindowHandle) (*types.Window, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	win, ok := w.windows[handle]
	if !ok {
		return nil, false
	}
	return win.Clone(), true
}

// Show makes a window visible at the given display state.
func (w *WindowSystem) Show(handle types.WindowHandle, state types.DisplayState) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if win, ok := w.windows[handle]; ok {
		win.State = state
		win.Visible = true
		win.UpdatedAt = time.Now()
	}
	return nil
}

// Hide removes a window from view.
func (w *WindowSystem) Hide(handle types.WindowHandle) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if win, ok := w.windows[handle]; ok {
		win.State = types.DisplayHidden
		win.Visible = false
		win.UpdatedAt = time.Now()
	}
	return nil
}

// Raise brings a window to the foreground and reports it activated.
func (w *WindowSystem) Raise(handle types.WindowHandle) error {
	w.mu.RLock()
	_, ok := w.windows[handle]
	observer := w.observer
	w.mu.RUnlock()
	if ok && observer != nil {
		observer.WindowActivated(handle)
	}
	return nil
}

// Watch registers the observer receiving window notifications.
func (w *WindowSystem) Watch(observer adapters.WindowObserver) {
	w.mu.Lock()
	w.observer = observer
	w.mu.Unlock()
}

// AddWindow injects a new top-level window and fires a created
// notification. Missing timestamps are filled in.
func (w *WindowSystem) AddWindow(win *types.Window) {
	now := time.Now()
	if win.CreatedAt.IsZero() {
		win.CreatedAt = now
	}
	win.UpdatedAt = now

	w.mu.Lock()
	w.windows[win.Handle] = win.Clone()
	observer := w.observer
	w.mu.Unlock()

	if observer != nil {
		observer.WindowCreated(win.Handle)
	}
}

// RemoveWindow destroys a window and fires a destroyed notification.
func (w *WindowSystem) RemoveWindow(handle types.WindowHandle) {
	w.mu.Lock()
	_, ok := w.windows[handle]
	delete(w.windows, handle)
	observer := w.observer
	w.mu.Unlock()

	if ok && observer != nil {
		observer.WindowDestroyed(handle)
	}
}

// Activate fires an activated notification without any other change.
func (w *WindowSystem) Activate(handle types.WindowHandle) {
	w.mu.RLock()
	observer := w.observer
	w.mu.RUnlock()
	if observer != nil {
		observer.WindowActivated(handle)
	}
}

// Update applies a mutation to a window and fires an updated notification.
func (w *WindowSystem) Update(handle types.WindowHandle, mutate func(*types.Window)) {
	w.mu.Lock()
	win, ok := w.windows[handle]
	if ok {
		mutate(win)
		win.UpdatedAt = time.Now()
	}
	observer := w.observer
	w.mu.Unlock()

	if ok && observer != nil {
		observer.WindowUpdated(handle)
	}
}

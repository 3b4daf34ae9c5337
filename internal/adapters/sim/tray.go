package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haloshell/haloshell/internal/adapters"
	"github.com/haloshell/haloshell/internal/shared/types"
)

// TrayHost is a simulated notification-area host.
type TrayHost struct {
	mu       sync.RWMutex
	icons    map[string]*types.TrayIcon
	observer adapters.TrayObserver
}

// NewTrayHost creates an empty simulated tray host.
func NewTrayHost() *TrayHost {
	return &TrayHost{
		icons: make(map[string]*types.TrayIcon),
	}
}

// Icons enumerates the current tray icon set.
func (t *TrayHost) Icons() ([]*types.TrayIcon, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*types.TrayIcon, 0, len(t.icons))
	for _, icon := range t.icons {
		out = append(out, icon.Clone())
	}
	return out, nil
}

// ShowBalloon attaches a balloon to an icon and reports it shown.
func (t *TrayHost) ShowBalloon(id string, balloon types.Balloon) error {
	t.mu.Lock()
	icon, ok := t.icons[id]
	if ok {
		icon.Balloon = &balloon
		icon.UpdatedAt = time.Now()
	}
	observer := t.observer
	t.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown tray icon: %s", id)
	}
	if observer != nil {
		observer.TrayBalloonShown(id)
	}
	return nil
}

// UpdateMenu replaces an icon's context menu and reports it updated.
func (t *TrayHost) UpdateMenu(id string, menu []types.TrayMenuItem) error {
	t.mu.Lock()
	icon, ok := t.icons[id]
	if ok {
		icon.Menu = menu
		icon.UpdatedAt = time.Now()
		icon = icon.Clone()
	}
	observer := t.observer
	t.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown tray icon: %s", id)
	}
	if observer != nil {
		observer.TrayIconUpdated(icon)
	}
	return nil
}

// Watch registers the observer receiving tray notifications.
func (t *TrayHost) Watch(observer adapters.TrayObserver) {
	t.mu.Lock()
	t.observer = observer
	t.mu.Unlock()
}

// AddIcon injects a tray icon and fires an added notification. A missing
// id gets an adapter-assigned one.
func (t *TrayHost) AddIcon(icon *types.TrayIcon) string {
	if icon.ID == "" {
		icon.ID = uuid.New().String()
	}
	now := time.Now()
	if icon.CreatedAt.IsZero() {
		icon.CreatedAt = now
	}
	icon.UpdatedAt = now

	t.mu.Lock()
	t.icons[icon.ID] = icon.Clone()
	observer := t.observer
	t.mu.Unlock()

	if observer != nil {
		observer.TrayIconAdded(icon.Clone())
	}
	return icon.ID
}

// UpdateIcon applies a mutation to an icon and fires an updated
// notification.
func (t *TrayHost) UpdateIcon(id string, mutate func(*types.TrayIcon)) {
	t.mu.Lock()
	icon, ok := t.icons[id]
	var snapshot *types.TrayIcon
	if ok {
		mutate(icon)
		icon.UpdatedAt = time.Now()
		snapshot = icon.Clone()
	}
	observer := t.observer
	t.mu.Unlock()

	if ok && observer != nil {
		observer.TrayIconUpdated(snapshot)
	}
}

// RemoveIcon deletes an icon and fires a removed notification.
func (t *TrayHost) RemoveIcon(id string) {
	t.mu.Lock()
	_, ok := t.icons[id]
	delete(t.icons, id)
	observer := t.observer
	t.mu.Unlock()

	if ok && observer != nil {
		observer.TrayIconRemoved(id)
	}
}

// Click fires a clicked notification.
func (t *TrayHost) Click(id string) {
	t.mu.RLock()
	observer := t.observer
	t.mu.RUnlock()
	if observer != nil {
		observer.TrayIconClicked(id)
	}
}

// ClickMenuItem fires a menu-item-clicked notification.
func (t *TrayHost) ClickMenuItem(id, itemID string) {
	t.mu.RLock()
	observer := t.observer
	t.mu.RUnlock()
	if observer != nil {
		observer.TrayMenuItemClicked(id, itemID)
	}
}

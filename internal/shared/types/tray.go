package types

import "time"

// TrayMenuItem is a single entry of a tray icon's context menu.
type TrayMenuItem struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Enabled   bool   `json:"enabled"`
	Separator bool   `json:"separator,omitempty"`
}

// Balloon is a notification balloon attached to a tray icon.
type Balloon struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// TrayIcon represents a notification-area icon mirrored from the tray host.
// Icons are created, updated, and removed strictly by adapter notifications,
// never by direct user command.
type TrayIcon struct {
	ID        string         `json:"id"`
	ProcessID uint32         `json:"process_id"`
	Tooltip   string         `json:"tooltip"`
	Icon      []byte         `json:"icon,omitempty"`
	Visible   bool           `json:"visible"`
	Menu      []TrayMenuItem `json:"menu,omitempty"`
	Balloon   *Balloon       `json:"balloon,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Clone returns an independent copy of the tray icon.
func (t *TrayIcon) Clone() *TrayIcon {
	if t == nil {
		return nil
	}
	c := *t
	if t.Icon != nil {
		c.Icon = make([]byte, len(t.Icon))
		copy(c.Icon, t.Icon)
	}
	if t.Menu != nil {
		c.Menu = make([]TrayMenuItem, len(t.Menu))
		copy(c.Menu, t.Menu)
	}
	if t.Balloon != nil {
		b := *t.Balloon
		c.Balloon = &b
	}
	return &c
}

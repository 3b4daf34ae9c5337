package bridge

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haloshell/haloshell/internal/adapters/sim"
	"github.com/haloshell/haloshell/internal/domain/shell"
	"github.com/haloshell/haloshell/internal/events"
	"github.com/haloshell/haloshell/internal/infrastructure/config"
	"github.com/haloshell/haloshell/internal/shared/types"
)

type harness struct {
	server  *Server
	ts      *httptest.Server
	manager *shell.Manager
	windows *sim.WindowSystem
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	bus := events.NewBus(nil)
	windows := sim.NewWindowSystem()
	hotkeys := sim.NewHotkeyRegistry()
	manager := shell.NewManager(bus, windows, hotkeys, nil)
	windows.Watch(manager)

	srv := NewServer(config.Default(), manager, bus, nil, nil)
	ts := httptest.NewServer(srv.router)
	t.Cleanup(ts.Close)

	return &harness{server: srv, ts: ts, manager: manager, windows: windows}
}

func (h *harness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.ts.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

// readUntil reads frames until one of the wanted type arrives, returning
// every frame seen on the way.
func readUntil(t *testing.T, conn *websocket.Conn, wanted string) []Message {
	t.Helper()
	var seen []Message
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		seen = append(seen, msg)
		if msg.Type == wanted {
			return seen
		}
	}
}

func TestHealthAndState(t *testing.T) {
	h := newHarness(t)

	resp, err := http.Get(h.ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(h.ts.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCommandsAndEventStream(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t)

	require.NoError(t, conn.WriteJSON(Message{Type: "create_workspace", WorkspaceID: "w1", Name: "Work"}))
	seen := readUntil(t, conn, "ack")

	var sawCreated bool
	for _, msg := range seen {
		if msg.Type == "event" && msg.Event != nil && msg.Event.Type == events.WorkspaceCreated {
			sawCreated = true
		}
	}
	assert.True(t, sawCreated, "the workspace-created event is forwarded before the ack")
	assert.True(t, seen[len(seen)-1].Applied)

	// Adapter-originated facts reach connected clients too.
	h.windows.AddWindow(&types.Window{Handle: 5, Title: "Editor", Visible: true})
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == "event" && msg.Event != nil && msg.Event.Type == events.WindowCreated {
			return
		}
	}
	t.Fatal("window-created event never arrived")
}

func TestUnknownCommandAndPing(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t)

	require.NoError(t, conn.WriteJSON(Message{Type: "ping"}))
	seen := readUntil(t, conn, "pong")
	assert.Equal(t, "pong", seen[len(seen)-1].Type)

	require.NoError(t, conn.WriteJSON(Message{Type: "levitate"}))
	seen = readUntil(t, conn, "error")
	assert.Equal(t, "unknown message type", seen[len(seen)-1].Error)
}

func TestHotkeyCommandValidation(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t)

	require.NoError(t, conn.WriteJSON(Message{Type: "register_hotkey", HotkeyID: "", Modifiers: 1, Key: 32}))
	seen := readUntil(t, conn, "error")
	assert.Contains(t, seen[len(seen)-1].Error, "hotkey id")

	require.NoError(t, conn.WriteJSON(Message{Type: "register_hotkey", HotkeyID: "launcher", Modifiers: 1, Key: 32}))
	seen = readUntil(t, conn, "ack")
	assert.True(t, seen[len(seen)-1].Applied)
}

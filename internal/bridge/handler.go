package bridge

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/haloshell/haloshell/internal/domain/shell"
	"github.com/haloshell/haloshell/internal/events"
	"github.com/haloshell/haloshell/internal/infrastructure/logging"
	"github.com/haloshell/haloshell/internal/infrastructure/monitoring"
	"github.com/haloshell/haloshell/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The bridge binds to loopback; the rendering host is local.
		return true
	},
}

// Message is a single bridge frame in either direction.
type Message struct {
	Type string `json:"type"`

	// Command fields
	Handle      types.WindowHandle `json:"handle,omitempty"`
	WorkspaceID string             `json:"workspace_id,omitempty"`
	Name        string             `json:"name,omitempty"`
	HotkeyID    string             `json:"hotkey_id,omitempty"`
	Modifiers   uint32             `json:"modifiers,omitempty"`
	Key         uint32             `json:"key,omitempty"`

	// Server fields
	Event   *events.Event `json:"event,omitempty"`
	Applied bool          `json:"applied,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Handler manages WebSocket connections to rendering hosts.
type Handler struct {
	manager *shell.Manager
	bus     *events.Bus
	logger  *logging.Logger
	metrics *monitoring.Metrics

	mu    sync.Mutex
	conns map[string]*connection
}

type connection struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes
}

func (c *connection) write(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// NewHandler creates a WebSocket handler bound to the state machine and
// bus.
func NewHandler(manager *shell.Manager, bus *events.Bus, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	h := &Handler{
		manager: manager,
		bus:     bus,
		logger:  logger,
		metrics: metrics,
		conns:   make(map[string]*connection),
	}
	bus.SubscribeAll(h.broadcast)
	return h
}

// broadcast forwards a domain event to every connected client.
func (h *Handler) broadcast(event events.Event) {
	h.mu.Lock()
	snapshot := make([]*connection, 0, len(h.conns))
	for _, c := range h.conns {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()

	for _, c := range snapshot {
		if err := c.write(Message{Type: "event", Event: &event}); err != nil {
			h.logger.Debug("bridge write failed", zap.String("conn", c.id), zap.Error(err))
		}
	}
	if h.metrics != nil && len(snapshot) > 0 {
		h.metrics.BridgeMessages.WithLabelValues("out", string(event.Type)).Add(float64(len(snapshot)))
	}
}

// HandleConnection upgrades the request and serves command frames until
// the client disconnects.
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := &connection{id: uuid.New().String(), conn: ws}
	h.mu.Lock()
	h.conns[conn.id] = conn
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.BridgeConnections.Inc()
	}
	h.logger.Info("rendering host connected", zap.String("conn", conn.id))

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn.id)
		h.mu.Unlock()
		if h.metrics != nil {
			h.metrics.BridgeConnections.Dec()
		}
		_ = ws.Close()
		h.logger.Info("rendering host disconnected", zap.String("conn", conn.id))
	}()

	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			return
		}
		if h.metrics != nil {
			h.metrics.BridgeMessages.WithLabelValues("in", msg.Type).Inc()
		}
		h.handleCommand(conn, msg)
	}
}

// handleCommand applies one command frame to the state machine.
func (h *Handler) handleCommand(conn *connection, msg Message) {
	switch msg.Type {
	case "focus_window":
		h.ack(conn, h.manager.FocusWindow(msg.Handle), "")
	case "switch_workspace":
		h.ack(conn, h.manager.SwitchWorkspace(msg.WorkspaceID), "")
	case "create_workspace":
		h.ack(conn, h.manager.CreateWorkspace(msg.WorkspaceID, msg.Name), "")
	case "move_window":
		h.ack(conn, h.manager.MoveWindowToWorkspace(msg.Handle, msg.WorkspaceID), "")
	case "register_hotkey":
		ok, err := h.manager.RegisterHotkey(msg.HotkeyID, msg.Modifiers, msg.Key)
		h.ack(conn, ok, errString(err))
	case "unregister_hotkey":
		ok, err := h.manager.UnregisterHotkey(msg.HotkeyID)
		h.ack(conn, ok, errString(err))
	case "ping":
		_ = conn.write(Message{Type: "pong"})
	default:
		_ = conn.write(Message{Type: "error", Error: "unknown message type"})
	}
}

func (h *Handler) ack(conn *connection, applied bool, errMsg string) {
	if errMsg != "" {
		_ = conn.write(Message{Type: "error", Error: errMsg})
		return
	}
	_ = conn.write(Message{Type: "ack", Applied: applied})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

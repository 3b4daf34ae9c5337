// Package bridge exposes the shell core to the rendering-surface host.
//
// The bridge is an HTTP server with a WebSocket endpoint. Every domain
// event published on the bus is forwarded to connected clients as a JSON
// frame; clients send command frames that are applied to the state
// machine. Serialization here is incidental; the contract is the
// event/command set, not the wire format.
//
// Message Types (Client → Server):
//   - focus_window: focus a window by handle
//   - switch_workspace: activate a workspace
//   - create_workspace: create a workspace
//   - move_window: move a window to a workspace
//   - register_hotkey / unregister_hotkey: hotkey management
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - event: a forwarded domain event
//   - ack / error: command outcome
//   - pong: keep-alive reply
//
// HTTP Endpoints:
//   - GET /health: liveness probe with aggregate stats
//   - GET /state: deep-copy snapshot of the aggregate state
//   - GET /metrics: Prometheus metrics
//   - GET /stream: WebSocket upgrade
package bridge

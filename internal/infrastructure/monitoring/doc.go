// Package monitoring provides Prometheus metrics for the shell core.
//
// Metrics cover the event bus (published events, subscriber panics), the
// aggregate state (windows, workspaces, tray icons), the rendering bridge
// (connections, messages), and the supervisor (UI host restarts).
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	bus := events.NewBus(logger).WithMetrics(metrics)
//	router.GET("/metrics", gin.WrapH(metrics.Handler()))
package monitoring

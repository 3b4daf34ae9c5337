package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Event bus metrics
	EventsPublished  *prometheus.CounterVec
	SubscriberPanics prometheus.Counter

	// Aggregate state metrics
	WindowsTracked   prometheus.Gauge
	Workspaces       prometheus.Gauge
	TrayIconsTracked prometheus.Gauge

	// Supervisor metrics
	UIHostRestarts prometheus.Counter
	UIHostCrashes  prometheus.Counter

	// Bridge metrics
	BridgeConnections prometheus.Gauge
	BridgeMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		startTime: time.Now(),
		registry:  registry,

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_events_published_total",
				Help: "Total number of domain events published",
			},
			[]string{"type"},
		),
		SubscriberPanics: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_subscriber_panics_total",
				Help: "Total number of panics recovered in event subscribers",
			},
		),
		WindowsTracked: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shell_windows_tracked",
				Help: "Number of top-level windows currently tracked",
			},
		),
		Workspaces: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shell_workspaces",
				Help: "Number of workspaces",
			},
		),
		TrayIconsTracked: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shell_tray_icons_tracked",
				Help: "Number of tray icons currently mirrored",
			},
		),
		UIHostRestarts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_ui_host_restarts_total",
				Help: "Total number of UI host restart attempts",
			},
		),
		UIHostCrashes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_ui_host_crashes_total",
				Help: "Total number of detected UI host exits",
			},
		),
		BridgeConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shell_bridge_connections",
				Help: "Number of active rendering bridge connections",
			},
		),
		BridgeMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_bridge_messages_total",
				Help: "Total number of bridge messages by direction and type",
			},
			[]string{"direction", "type"},
		),
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shell_uptime_seconds",
				Help: "Shell core uptime in seconds",
			},
		),
	}
}

// Handler returns an HTTP handler exposing the metrics registry.
func (m *Metrics) Handler() http.Handler {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// UpdateStateGauges refreshes the aggregate-state gauges.
func (m *Metrics) UpdateStateGauges(windows, workspaces, trayIcons int) {
	m.WindowsTracked.Set(float64(windows))
	m.Workspaces.Set(float64(workspaces))
	m.TrayIconsTracked.Set(float64(trayIcons))
}

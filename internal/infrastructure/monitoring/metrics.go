package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// Chat metrics
	ChatTurns  *prometheus.CounterVec
	ChatTokens prometheus.Counter
	ToolCalls  *prometheus.CounterVec

	// Fan-out metrics
	Broadcasts *prometheus.CounterVec
	Dropped    prometheus.Counter
}

// NewMetrics creates a metrics collector on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics collector on the given registry.
// Tests pass a fresh registry so counters can be asserted in isolation.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "patientcall_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "patientcall_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "patientcall_ws_connections",
				Help: "Number of live WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "patientcall_ws_messages_total",
				Help: "Inbound WebSocket events by name",
			},
			[]string{"event"},
		),
		ChatTurns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "patientcall_chat_turns_total",
				Help: "Completed chat turns by outcome",
			},
			[]string{"status"},
		),
		ChatTokens: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "patientcall_chat_tokens_total",
				Help: "Model tokens received across all chat turns",
			},
		),
		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "patientcall_tool_calls_total",
				Help: "Tool invocations by tool and outcome",
			},
			[]string{"tool", "status"},
		),
		Broadcasts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "patientcall_broadcasts_total",
				Help: "Department room broadcasts by event type",
			},
			[]string{"type"},
		),
		Dropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "patientcall_broadcasts_dropped_total",
				Help: "Broadcast deliveries skipped because a member was unreachable",
			},
		),
	}
}

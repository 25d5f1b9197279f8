package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements payments.Observer and connector.Observer.
type Metrics struct {
	registry          *prometheus.Registry
	operations        *prometheus.CounterVec
	connectorCalls    *prometheus.CounterVec
	connectorDuration *prometheus.HistogramVec
}

// NewMetrics registers the router's collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "payrouter",
			Name:      "operations_total",
			Help:      "Payment operations by outcome.",
		}, []string{"operation", "outcome"}),
		connectorCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "payrouter",
			Name:      "connector_calls_total",
			Help:      "Connector calls by connector, flow and outcome.",
		}, []string{"connector", "flow", "outcome"}),
		connectorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "payrouter",
			Name:      "connector_call_duration_seconds",
			Help:      "Connector call latency.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"connector", "flow"}),
	}
	m.registry.MustRegister(
		m.operations,
		m.connectorCalls,
		m.connectorDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveOperation(operation, outcome string) {
	m.operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveConnectorCall(connector, flow, outcome string, elapsed time.Duration) {
	m.connectorCalls.WithLabelValues(connector, flow, outcome).Inc()
	m.connectorDuration.WithLabelValues(connector, flow).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gridview"

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the viewer's Prometheus collectors on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	reloads        *prometheus.CounterVec
	tableSize      *prometheus.GaugeVec
}

// NewMetrics registers the gridview collectors, plus the Go runtime and
// process collectors, on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Table renders by result.",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent estimating and drawing a table.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_reloads_total",
			Help:      "Table document reloads by result.",
		}, []string{"result"}),
		tableSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_size",
			Help:      "Rows and columns of the table on display.",
		}, []string{"axis"}),
	}
	m.registry.MustRegister(
		m.renders,
		m.renderDuration,
		m.reloads,
		m.tableSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRender records one render.
func (m *Metrics) ObserveRender(d time.Duration, err error) {
	m.renders.WithLabelValues(result(err)).Inc()
	m.renderDuration.Observe(d.Seconds())
}

// ObserveReload records one document reload.
func (m *Metrics) ObserveReload(err error) {
	m.reloads.WithLabelValues(result(err)).Inc()
}

// SetTableSize records the shape of the table on display.
func (m *Metrics) SetTableSize(rows, cols int) {
	m.tableSize.WithLabelValues("rows").Set(float64(rows))
	m.tableSize.WithLabelValues("columns").Set(float64(cols))
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

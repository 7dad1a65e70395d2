// Package metrics exposes prometheus counters for account and resume activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the service counters on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	AccountOps      *prometheus.CounterVec
	ResumesRendered prometheus.Counter
	RenderSeconds   prometheus.Histogram
}

// New creates and registers the counters.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AccountOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Name:      "account_operations_total",
			Help:      "Register, verify and login attempts by outcome.",
		}, []string{"op", "outcome"}),
		ResumesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resume",
			Name:      "pdf_rendered_total",
			Help:      "Resumes rendered to PDF.",
		}),
		RenderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "resume",
			Name:      "pdf_render_seconds",
			Help:      "Time spent laying out and rendering a resume.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.AccountOps,
		m.ResumesRendered,
		m.RenderSeconds,
		prometheus.NewGoCollector(),
	)
	return m
}

// Account records the outcome of an account operation.
func (m *Metrics) Account(op, outcome string) {
	if m == nil {
		return
	}
	m.AccountOps.WithLabelValues(op, outcome).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

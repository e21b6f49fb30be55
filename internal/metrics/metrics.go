// Package metrics exposes radvisor's own operational health as Prometheus
// gauges/counters — not the container/pod resource data the cgroup reader
// collects, which Non-goals explicitly keep out of scope for aggregation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of gauges/counters the engine updates as it runs,
// modeled on ENSIAS-3A-Projects-Projet-Federateur/pkg/agent/metrics.go's
// promauto.NewGaugeVec usage, but built against an injected registry
// (rather than package-level vars registered against the global default
// registry) so a test process can construct more than one Engine.
type Metrics struct {
	ActiveCollectors  prometheus.Gauge
	PollSeconds       prometheus.Gauge
	SampleLoopSeconds prometheus.Gauge
	FlushCount        prometheus.Counter
	FlushFailures     prometheus.Counter
	FetchErrors       prometheus.Counter
}

// New registers radvisor's metrics against reg and returns the handle the
// engine updates on every poll/collect tick.
func New(reg prometheus.Registerer) *Metrics {
	factory := func(opts prometheus.GaugeOpts) prometheus.Gauge {
		g := prometheus.NewGauge(opts)
		reg.MustRegister(g)
		return g
	}
	counter := func(opts prometheus.CounterOpts) prometheus.Counter {
		c := prometheus.NewCounter(opts)
		reg.MustRegister(c)
		return c
	}

	const ns = "radvisor"
	return &Metrics{
		ActiveCollectors: factory(prometheus.GaugeOpts{
			Namespace: ns, Name: "active_collectors", Help: "Number of currently active per-target collectors.",
		}),
		PollSeconds: factory(prometheus.GaugeOpts{
			Namespace: ns, Name: "last_poll_seconds", Help: "Duration of the most recent poll-thread reconciliation.",
		}),
		SampleLoopSeconds: factory(prometheus.GaugeOpts{
			Namespace: ns, Name: "last_sample_loop_seconds", Help: "Duration of the most recent collection-thread pass over the active set.",
		}),
		FlushCount: counter(prometheus.CounterOpts{
			Namespace: ns, Name: "flush_total", Help: "Total number of buffer flushes across all collectors.",
		}),
		FlushFailures: counter(prometheus.CounterOpts{
			Namespace: ns, Name: "flush_failures_total", Help: "Total number of buffer flushes that failed to write.",
		}),
		FetchErrors: counter(prometheus.CounterOpts{
			Namespace: ns, Name: "provider_fetch_errors_total", Help: "Total number of failed provider Fetch calls.",
		}),
	}
}

// IncFlushCount implements csvy.FlushCounter.
func (m *Metrics) IncFlushCount() { m.FlushCount.Inc() }

// IncFlushFailures implements csvy.FlushCounter.
func (m *Metrics) IncFlushFailures() { m.FlushFailures.Inc() }

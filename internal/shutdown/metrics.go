package shutdown

import (
	"os"
	"time"

	"github.com/yanet-platform/termwatch/internal/monitoring/metrics"
)

const metricsNamespace = "termwatch"

var drainBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300}

type coordinatorMetrics struct {
	signals   metrics.CounterVec // signals acted on, by name
	requested metrics.Gauge      // 1 once shutdown is requested
	polls     metrics.Counter    // unsuccessful checks of the finished flag
	drain     metrics.Histogram  // time from request to observed completion
}

func newCoordinatorMetrics(provider metrics.Provider) *coordinatorMetrics {
	return &coordinatorMetrics{
		signals: provider.GetCounterVec(
			"signals_received_total",
			[]string{"signal"},
			metrics.WithNamespace(metricsNamespace),
			metrics.WithDescription("Termination signals acted on by the shutdown coordinator."),
		),
		requested: provider.GetGauge(
			"shutdown_requested",
			metrics.WithNamespace(metricsNamespace),
			metrics.WithDescription("Whether a graceful shutdown has been requested."),
		),
		polls: provider.GetCounter(
			"drain_polls_total",
			metrics.WithNamespace(metricsNamespace),
			metrics.WithDescription("Checks of the completion flag that found the application still draining."),
		),
		drain: provider.GetHistogram(
			"drain_duration_seconds",
			drainBuckets,
			metrics.WithNamespace(metricsNamespace),
			metrics.WithDescription("Time between the shutdown request and the observed completion."),
		),
	}
}

func (m *coordinatorMetrics) signalReceived(sig os.Signal) {
	m.signals.GetMetricWith(metrics.Labels{"signal": sig.String()}).Inc()
}

func (m *coordinatorMetrics) shutdownRequested() {
	m.requested.Set(1)
}

func (m *coordinatorMetrics) polled() {
	m.polls.Inc()
}

func (m *coordinatorMetrics) drained(d time.Duration) {
	m.drain.Observe(d.Seconds())
}

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	log "go.uber.org/zap"

	"github.com/yanet-platform/termwatch/internal/monitoring/metrics"
)

// counterVec is an alias for [prometheus.CounterVec], existing to make an
// embedded field private
type counterVec = prometheus.CounterVec

// CounterVec adapts [prometheus.CounterVec] to [metrics.CounterVec], logging
// label mismatches instead of returning them.
type CounterVec struct {
	*counterVec
	log *log.Logger
}

func newCounterVec(opts prometheus.CounterOpts, labelNames []string, logger *log.Logger) *CounterVec {
	return &CounterVec{
		counterVec: prometheus.NewCounterVec(opts, labelNames),
		log:        logger.With(log.String("type", "counter_vec"), log.String("name", opts.Name)),
	}
}

func (m *CounterVec) GetMetricWith(labels metrics.Labels) metrics.Counter {
	counter, err := m.counterVec.GetMetricWith(prometheus.Labels(labels))
	if err != nil {
		m.log.Error("failed to create metric", log.Error(err))
		return &metrics.NopCounter{}
	}

	return counter
}

func (m *CounterVec) Delete(labels metrics.Labels) {
	m.counterVec.Delete(prometheus.Labels(labels))
}

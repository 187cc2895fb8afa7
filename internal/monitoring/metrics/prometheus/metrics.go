// Package prometheus implements the metrics provider on top of a dedicated
// Prometheus registry.
package prometheus

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "go.uber.org/zap"

	"github.com/yanet-platform/termwatch/internal/monitoring/metrics"
)

type Provider struct {
	registry *prometheus.Registry

	counters    *Registry[prometheus.Counter]
	gauges      *Registry[prometheus.Gauge]
	histograms  *Registry[prometheus.Histogram]
	countersVec *Registry[*CounterVec]

	log *log.Logger
}

var _ metrics.Metrics = (*Provider)(nil)

func NewProvider(logger *log.Logger) *Provider {
	registry := prometheus.NewRegistry()
	return &Provider{
		registry:    registry,
		counters:    newRegistry[prometheus.Counter](registry),
		gauges:      newRegistry[prometheus.Gauge](registry),
		histograms:  newRegistry[prometheus.Histogram](registry),
		countersVec: newRegistry[*CounterVec](registry),
		log:         logger.With(log.String("metrics_provider", "prometheus")),
	}
}

func (m *Provider) GetCounter(name string, opts ...metrics.MetricOption) metrics.Counter {
	options := metrics.Apply(opts)

	counter, err := m.counters.GetOrCreateMetric(name, func() prometheus.Counter {
		return prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace:   options.Namespace,
				Name:        name,
				Help:        options.Description,
				ConstLabels: prometheus.Labels(options.ConstLabels),
			},
		)
	})
	if err != nil {
		m.log.Error("failed to create counter", log.String("name", name), log.Error(err))
		return &metrics.NopCounter{}
	}

	return counter
}

func (m *Provider) GetGauge(name string, opts ...metrics.MetricOption) metrics.Gauge {
	options := metrics.Apply(opts)

	gauge, err := m.gauges.GetOrCreateMetric(name, func() prometheus.Gauge {
		return prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   options.Namespace,
				Name:        name,
				Help:        options.Description,
				ConstLabels: prometheus.Labels(options.ConstLabels),
			},
		)
	})
	if err != nil {
		m.log.Error("failed to create gauge", log.String("name", name), log.Error(err))
		return &metrics.NopGauge{}
	}

	return gauge
}

func (m *Provider) GetHistogram(name string, buckets []float64, opts ...metrics.MetricOption) metrics.Histogram {
	options := metrics.Apply(opts)

	histogram, err := m.histograms.GetOrCreateMetric(name, func() prometheus.Histogram {
		return prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace:   options.Namespace,
				Name:        name,
				Help:        options.Description,
				Buckets:     buckets,
				ConstLabels: prometheus.Labels(options.ConstLabels),
			},
		)
	})
	if err != nil {
		m.log.Error("failed to create histogram", log.String("name", name), log.Error(err))
		return &metrics.NopHistogram{}
	}

	return histogram
}

func (m *Provider) GetCounterVec(name string, labelNames []string, opts ...metrics.MetricOption) metrics.CounterVec {
	options := metrics.Apply(opts)

	counterVec, err := m.countersVec.GetOrCreateMetric(name, func() *CounterVec {
		return newCounterVec(
			prometheus.CounterOpts{
				Namespace:   options.Namespace,
				Name:        name,
				Help:        options.Description,
				ConstLabels: prometheus.Labels(options.ConstLabels),
			},
			labelNames,
			m.log,
		)
	})
	if err != nil {
		m.log.Error("failed to create counter vector", log.String("name", name), log.Error(err))
		return &metrics.NopCounterVec{}
	}

	return counterVec
}

// GetHTTPHandler serves the registry in the Prometheus exposition format.
func (m *Provider) GetHTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Shutdown unregisters every metric created by the provider.
func (m *Provider) Shutdown(_ context.Context) error {
	m.counters.Shutdown()
	m.gauges.Shutdown()
	m.histograms.Shutdown()
	m.countersVec.Shutdown()

	return nil
}

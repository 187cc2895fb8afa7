package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry tracks the collectors of one kind registered by a Provider, keyed
// by name.
type Registry[T prometheus.Collector] struct {
	registry *prometheus.Registry
	metrics  map[string]T
	mu       sync.Mutex
}

type MetricConstructorFunc[T prometheus.Collector] func() T

func newRegistry[T prometheus.Collector](registry *prometheus.Registry) *Registry[T] {
	return &Registry[T]{
		registry: registry,
		metrics:  make(map[string]T),
	}
}

// GetOrCreateMetric returns the collector registered under name, creating and
// registering it with constructor on first use.
func (m *Registry[T]) GetOrCreateMetric(name string, constructor MetricConstructorFunc[T]) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if metric, exists := m.metrics[name]; exists {
		return metric, nil
	}

	metric := constructor()
	if err := m.registry.Register(metric); err != nil {
		return metric, err
	}

	m.metrics[name] = metric

	return metric, nil
}

// Shutdown unregisters every tracked collector.
func (m *Registry[T]) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, metric := range m.metrics {
		m.registry.Unregister(metric)
	}
	m.metrics = make(map[string]T)
}

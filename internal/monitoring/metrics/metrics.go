// Package metrics declares the metric primitives used across termwatch so
// that components do not depend on a particular metrics backend.
package metrics

import (
	"context"
	"net/http"
)

// Metrics is a metrics backend that can also expose what it collects.
type Metrics interface {
	Provider
	Gatherer
}

// Provider hands out metrics by name. Asking twice for the same name returns
// the same metric.
type Provider interface {
	GetCounter(name string, opts ...MetricOption) Counter
	GetGauge(name string, opts ...MetricOption) Gauge
	GetHistogram(name string, buckets []float64, opts ...MetricOption) Histogram
	GetCounterVec(name string, labelNames []string, opts ...MetricOption) CounterVec

	Shutdown(ctx context.Context) error
}

// Gatherer exposes collected metrics over HTTP.
type Gatherer interface {
	GetHTTPHandler() http.Handler
}

type Counter interface {
	Inc()
	Add(float64)
}

type Gauge interface {
	Inc()
	Dec()
	Set(float64)
}

type Histogram interface {
	Observe(float64)
}

type Labels map[string]string

type CounterVec interface {
	GetMetricWith(Labels) Counter
	Delete(Labels)
}

// Package app is the application side of a coordinated shutdown: a worker
// service that stops taking work once shutdown is requested, drains what is in
// flight and then reports completion to the coordinator.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	log "go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanet-platform/termwatch/internal/monitoring/metrics"
	"github.com/yanet-platform/termwatch/internal/scheduler"
	"github.com/yanet-platform/termwatch/internal/server"
	"github.com/yanet-platform/termwatch/internal/utils/workerpool"
)

const metricsNamespace = "termwatch"

// State is the view of the shutdown coordinator the application drains
// against.
type State interface {
	ShouldShutdown() bool
	Requested() <-chan struct{}
	MarkFinished()
}

type Termwatch struct {
	config Config
	state  State // nil when the listener only observes signals

	scheduler *scheduler.Scheduler
	pool      *workerpool.Pool
	server    *server.Server

	seq         atomic.Uint64
	scheduled   metrics.Counter
	completed   metrics.Counter
	interrupted metrics.Counter

	logger *log.Logger
}

// New creates the application. state may be nil, in which case the
// application runs until ctx passed to Run is canceled.
func New(config Config, state State, provider metrics.Metrics, logger *log.Logger) *Termwatch {
	inFlight := provider.GetGauge(
		"jobs_in_flight",
		metrics.WithNamespace(metricsNamespace),
		metrics.WithDescription("Jobs being executed by the worker pool."),
	)

	m := &Termwatch{
		config:    config,
		state:     state,
		scheduler: scheduler.New(config.Worker.Scheduler),
		pool:      workerpool.New(config.Worker.Workers, inFlight),
		scheduled: provider.GetCounter(
			"jobs_scheduled_total",
			metrics.WithNamespace(metricsNamespace),
			metrics.WithDescription("Jobs handed to the worker pool."),
		),
		completed: provider.GetCounter(
			"jobs_completed_total",
			metrics.WithNamespace(metricsNamespace),
			metrics.WithDescription("Jobs that ran to completion."),
		),
		interrupted: provider.GetCounter(
			"jobs_interrupted_total",
			metrics.WithNamespace(metricsNamespace),
			metrics.WithDescription("Jobs cut short by a hard stop."),
		),
		logger: logger,
	}

	var readiness server.Readiness
	if state != nil {
		readiness = state
	}
	m.server = server.New(config.Server, readiness, provider, logger)

	return m
}

// Run serves until shutdown is requested, then drains and reports
// completion. It returns early with an error if ctx is canceled or the HTTP
// server fails.
func (m *Termwatch) Run(ctx context.Context) error {
	wg, ctx := errgroup.WithContext(ctx)

	m.pool.Start(ctx)

	wg.Go(func() error {
		return m.server.Run(ctx)
	})

	wg.Go(func() error {
		err := m.scheduler.Run(ctx, m.shouldShutdown, m.requested(), m.schedule)
		m.drain()
		return err
	})

	return wg.Wait()
}

// Handler returns the HTTP handler of the application.
func (m *Termwatch) Handler() http.Handler {
	return m.server.Handler()
}

func (m *Termwatch) shouldShutdown() bool {
	return m.state != nil && m.state.ShouldShutdown()
}

func (m *Termwatch) requested() <-chan struct{} {
	if m.state == nil {
		return nil
	}
	return m.state.Requested()
}

func (m *Termwatch) schedule(ctx context.Context) error {
	task := &job{
		id:          m.seq.Add(1),
		duration:    m.config.Worker.GetJobDuration(),
		completed:   m.completed,
		interrupted: m.interrupted,
		log:         m.logger,
	}
	if err := m.pool.Add(ctx, task); err != nil {
		return fmt.Errorf("failed to schedule job %d: %w", task.id, err)
	}
	m.scheduled.Inc()
	return nil
}

// drain stops the intake, waits for in-flight jobs, stops the HTTP server and
// reports completion.
func (m *Termwatch) drain() {
	m.logger.Info("draining", log.Uint64("scheduled", m.seq.Load()))

	m.pool.Close()
	m.server.Stop()

	if m.state != nil {
		m.state.MarkFinished()
	}
	m.logger.Info("drained")
}

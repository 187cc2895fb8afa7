package app

import (
	"context"
	"time"

	log "go.uber.org/zap"

	"github.com/yanet-platform/termwatch/internal/monitoring/metrics"
)

// job is a unit of the reference workload: it holds a worker for a fixed
// duration.
type job struct {
	id       uint64
	duration time.Duration

	completed   metrics.Counter
	interrupted metrics.Counter
	log         *log.Logger
}

// Run implements workerpool.Task.
func (m *job) Run(ctx context.Context) {
	timer := time.NewTimer(m.duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		m.interrupted.Inc()
		m.log.Warn("job interrupted", log.Uint64("job", m.id), log.Error(ctx.Err()))
	case <-timer.C:
		m.completed.Inc()
		m.log.Debug("job completed", log.Uint64("job", m.id))
	}
}

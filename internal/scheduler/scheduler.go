// Package scheduler runs a job at a fixed cadence, with retries, until it is
// told to stop.
package scheduler

import (
	"context"
	"time"
)

// Scheduler runs jobs according to its Config.
type Scheduler struct {
	config Config
}

// New creates a new Scheduler instance.
func New(config Config) *Scheduler {
	return &Scheduler{
		config: config,
	}
}

// Run calls job once per interval until stop returns true, in which case it
// returns nil, or ctx is canceled, in which case it returns ctx.Err(). stop is
// checked before every job. A failed job is retried after the retry delay.
//
// When wake is closed every pending delay ends early so that stop is checked
// again without waiting for the interval. A nil wake never fires.
func (m *Scheduler) Run(ctx context.Context, stop func() bool, wake <-chan struct{}, job func(ctx context.Context) error) error {
	// NOTE: a single timer serves both retries and the main loop, since the
	// scheduler never waits for both at once.
	timer := time.NewTimer(m.config.GetInterval())
	defer timer.Stop()

	retries := m.config.GetRetries()
	retryDelay := m.config.GetRetryDelay()
	interval := m.config.GetInterval()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if stop() {
			return nil
		}

		// Attempt to run the job and retry upon failure.
		for i := 0; i <= retries; i++ {
			if err := job(ctx); err == nil || i == retries {
				break
			}

			if err := m.wait(ctx, timer, retryDelay, wake); err != nil {
				return err
			}
		}

		if err := m.wait(ctx, timer, interval, wake); err != nil {
			return err
		}
	}
}

func (m *Scheduler) wait(ctx context.Context, timer *time.Timer, d time.Duration, wake <-chan struct{}) error {
	timer.Reset(d)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wake:
		return nil
	case <-timer.C:
		return nil
	}
}

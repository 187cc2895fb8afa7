package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	log "go.uber.org/zap"

	"github.com/yanet-platform/termwatch/internal/monitoring/metrics"
	"github.com/yanet-platform/termwatch/internal/utils/throttler"
)

// DefaultPollInterval is the delay between checks of the finished flag.
const DefaultPollInterval = 100 * time.Millisecond

// Coordinator starts signal listeners under one scheduling model.
type Coordinator struct {
	model        Model
	source       Source
	signals      []os.Signal
	pollInterval time.Duration

	metrics   *coordinatorMetrics
	throttler *throttler.Throttler // limits "still draining" logs
	log       *log.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithPollInterval sets the delay between checks of the finished flag.
// Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithSignals replaces the subscribed signal set, which defaults to
// TerminationSignals.
func WithSignals(signals ...os.Signal) Option {
	return func(c *Coordinator) {
		c.signals = signals
	}
}

// WithMetrics reports coordinator metrics to provider.
func WithMetrics(provider metrics.Provider) Option {
	return func(c *Coordinator) {
		c.metrics = newCoordinatorMetrics(provider)
	}
}

// New creates a Coordinator that listens on source under model.
func New(model Model, source Source, logger *log.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		model:        model,
		source:       source,
		signals:      TerminationSignals(),
		pollInterval: DefaultPollInterval,
		throttler:    throttler.New(1),
		log:          logger.With(log.Stringer("model", model)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = newCoordinatorMetrics(&metrics.NopProvider{})
	}
	return c
}

// Start subscribes to the termination signals and starts a coordinated
// listener. It returns immediately with the listener handle and the State the
// listener drives. If the subscription is refused nothing is started.
func (m *Coordinator) Start() (*Listener, *State, error) {
	subscription, err := m.subscribe()
	if err != nil {
		return nil, nil, err
	}

	state := newState(m.model.newLock())
	listener := m.model.spawn(func(ctx context.Context) error {
		defer subscription.Stop()
		return m.coordinate(ctx, subscription, state)
	})

	return listener, state, nil
}

// StartImmediate subscribes to the termination signals and starts a listener
// that only logs the first signal. It then restores the default disposition
// and delivers the signal again, so the process terminates as it would
// without a listener.
func (m *Coordinator) StartImmediate() (*Listener, error) {
	subscription, err := m.subscribe()
	if err != nil {
		return nil, err
	}

	listener := m.model.spawn(func(ctx context.Context) error {
		sig, err := m.await(ctx, subscription)
		subscription.Stop()
		if err != nil {
			return err
		}

		if err := m.source.Raise(sig); err != nil {
			m.log.Error("failed to redeliver signal", log.Stringer("signal", sig), log.Error(err))
			return fmt.Errorf("failed to redeliver %s: %w", sig, err)
		}
		return nil
	})

	return listener, nil
}

func (m *Coordinator) subscribe() (Subscription, error) {
	subscription, err := m.source.Subscribe(m.signals...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize os signal stream: %w", err)
	}
	return subscription, nil
}

// coordinate runs WAITING, then SHUTTING_DOWN.
func (m *Coordinator) coordinate(ctx context.Context, subscription Subscription, state *State) error {
	if _, err := m.await(ctx, subscription); err != nil {
		return err
	}

	if err := state.request(ctx); err != nil {
		return err
	}
	m.metrics.shutdownRequested()
	requestedAt := time.Now()

	for polls := uint64(1); ; polls++ {
		finished, err := state.isFinished(ctx)
		if err != nil {
			return err
		}
		if finished {
			drain := time.Since(requestedAt)
			m.metrics.drained(drain)
			m.log.Info("app finished, shutting down...", log.Duration("drain", drain))
			return nil
		}

		m.metrics.polled()
		if !m.throttler.Throttle(polls) {
			m.log.Debug("waiting for app to finish", log.Uint64("polls", polls))
		}

		if err := m.model.sleep(ctx, m.pollInterval); err != nil {
			return err
		}
	}
}

// await suspends until the first signal arrives and logs it.
func (m *Coordinator) await(ctx context.Context, subscription Subscription) (os.Signal, error) {
	sig, err := m.model.receive(ctx, subscription.C())
	if err != nil {
		if errors.Is(err, ErrSourceClosed) {
			m.log.Error("signal stream closed before any signal was delivered")
		}
		return nil, err
	}

	m.log.Info("received terminate signal, shutting down...", log.Stringer("signal", sig))
	m.metrics.signalReceived(sig)
	return sig, nil
}

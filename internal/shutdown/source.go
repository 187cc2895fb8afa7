package shutdown

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
)

var (
	// ErrNoSignals is returned when a subscription names no signals.
	ErrNoSignals = errors.New("no signals to subscribe to")
	// ErrUnsupportedSignal is returned for signals the host cannot deliver to
	// a subscriber.
	ErrUnsupportedSignal = errors.New("unsupported signal")
	// ErrSignalInUse is returned when a signal already has an active
	// subscriber.
	ErrSignalInUse = errors.New("signal is already subscribed")
	// ErrSourceClosed is reported by a listener whose signal stream ended
	// before any signal was delivered.
	ErrSourceClosed = errors.New("signal stream closed")
)

// Source delivers termination signals to a subscriber.
type Source interface {
	// Subscribe starts delivery of the given signals. It fails when the
	// signals cannot be registered.
	Subscribe(signals ...os.Signal) (Subscription, error)
	// Raise delivers sig to the current process again.
	Raise(sig os.Signal) error
}

// Subscription is an active registration with a Source.
type Subscription interface {
	// C returns the channel on which signals arrive, one at a time and in
	// arrival order.
	C() <-chan os.Signal
	// Stop ends delivery and restores the default handling of the
	// subscribed signals. It is safe to call more than once.
	Stop()
}

// osSource is backed by the os/signal handlers. Signal dispositions are
// process-wide, so there is exactly one.
type osSource struct {
	active map[os.Signal]struct{} // signals with a live subscription
	mu     sync.Mutex
}

var processSource = &osSource{
	active: make(map[os.Signal]struct{}),
}

// OSSource returns the Source backed by the process signal handlers. A signal
// may have at most one live subscription at a time.
func OSSource() Source {
	return processSource
}

// Subscribe implements Source.
func (m *osSource) Subscribe(signals ...os.Signal) (Subscription, error) {
	if len(signals) == 0 {
		return nil, ErrNoSignals
	}
	for _, sig := range signals {
		if err := validateSignal(sig); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sig := range signals {
		if _, exists := m.active[sig]; exists {
			return nil, fmt.Errorf("%w: %s", ErrSignalInUse, sig)
		}
	}
	for _, sig := range signals {
		m.active[sig] = struct{}{}
	}

	// A single slot is enough: only the first delivery is consumed and
	// os/signal drops deliveries to a full channel.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)

	return &osSubscription{
		source:  m,
		signals: signals,
		ch:      ch,
	}, nil
}

// Raise implements Source.
func (m *osSource) Raise(sig os.Signal) error {
	return raise(sig)
}

func (m *osSource) release(signals []os.Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sig := range signals {
		delete(m.active, sig)
	}
}

type osSubscription struct {
	source  *osSource
	signals []os.Signal
	ch      chan os.Signal
	once    sync.Once
}

func (m *osSubscription) C() <-chan os.Signal {
	return m.ch
}

func (m *osSubscription) Stop() {
	m.once.Do(func() {
		signal.Stop(m.ch)
		m.source.release(m.signals)
	})
}

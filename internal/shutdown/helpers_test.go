package shutdown

import (
	"context"
	"os"
	"sync"
	"testing"
)

// fakeSource is a Source whose deliveries are driven by the test.
type fakeSource struct {
	err error          // returned by Subscribe when set
	ch  chan os.Signal // delivery channel shared by all subscriptions

	mu         sync.Mutex
	subscribed [][]os.Signal
	stopped    int
	raised     []os.Signal
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		ch: make(chan os.Signal, 4),
	}
}

func (m *fakeSource) Subscribe(signals ...os.Signal) (Subscription, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribed = append(m.subscribed, signals)
	return &fakeSubscription{source: m}, nil
}

func (m *fakeSource) Raise(sig os.Signal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raised = append(m.raised, sig)
	return nil
}

func (m *fakeSource) deliver(sig os.Signal) {
	m.ch <- sig
}

func (m *fakeSource) Stopped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

func (m *fakeSource) Raised() []os.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]os.Signal(nil), m.raised...)
}

type fakeSubscription struct {
	source *fakeSource
	once   sync.Once
}

func (m *fakeSubscription) C() <-chan os.Signal {
	return m.source.ch
}

func (m *fakeSubscription) Stop() {
	m.once.Do(func() {
		m.source.mu.Lock()
		defer m.source.mu.Unlock()
		m.source.stopped++
	})
}

// countingModel counts listeners spawned by the wrapped model.
type countingModel struct {
	Model

	mu      sync.Mutex
	spawned int
}

func (m *countingModel) spawn(run func(ctx context.Context) error) *Listener {
	m.mu.Lock()
	m.spawned++
	m.mu.Unlock()
	return m.Model.spawn(run)
}

func (m *countingModel) Spawned() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.spawned
}

// modelCase builds a fresh Model for a test.
type modelCase struct {
	name  string
	model func(t *testing.T) Model
}

func modelCases() []modelCase {
	return []modelCase{
		{
			name: "threads",
			model: func(*testing.T) Model {
				return Threads()
			},
		},
		{
			name: "tasks",
			model: func(t *testing.T) Model {
				ctx, cancel := context.WithCancel(context.Background())
				t.Cleanup(cancel)
				return Tasks(ctx, nil)
			},
		},
	}
}

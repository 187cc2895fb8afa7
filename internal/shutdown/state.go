package shutdown

import (
	"context"
)

// State is the shared record of a coordinated shutdown. Both flags only ever
// move from false to true.
//
// The listener sets "requested" when the first termination signal arrives.
// Application code reads it with ShouldShutdown and, once it has drained,
// reports completion with MarkFinished. Only the listener reads "finished".
type State struct {
	lock rwLocker

	requested bool
	finished  bool

	notify *latch // released together with requested
}

func newState(lock rwLocker) *State {
	return &State{
		lock:   lock,
		notify: newLatch(),
	}
}

// ShouldShutdown reports whether shutdown has been requested. Once it returns
// true it never returns false again.
func (m *State) ShouldShutdown() bool {
	requested, _ := m.read(context.Background(), &m.requested)
	return requested
}

// MarkFinished reports that the application has completed its shutdown work.
// Calling it more than once is harmless.
func (m *State) MarkFinished() {
	_ = m.write(context.Background(), &m.finished)
}

// Requested returns a channel that is closed when shutdown is requested. It
// observes the same transition as ShouldShutdown.
func (m *State) Requested() <-chan struct{} {
	return m.notify.Done()
}

func (m *State) request(ctx context.Context) error {
	if err := m.lock.lock(ctx); err != nil {
		return err
	}
	defer m.lock.unlock()

	// Released under the lock, so no reader sees the flag set before the
	// channel is closed.
	m.requested = true
	m.notify.Release()
	return nil
}

func (m *State) isFinished(ctx context.Context) (bool, error) {
	return m.read(ctx, &m.finished)
}

// read returns the flag under the read lock. It fails only when ctx is done.
func (m *State) read(ctx context.Context, flag *bool) (bool, error) {
	if err := m.lock.rlock(ctx); err != nil {
		return false, err
	}
	defer m.lock.runlock()
	return *flag, nil
}

// write sets the flag under the write lock. It fails only when ctx is done.
func (m *State) write(ctx context.Context, flag *bool) error {
	if err := m.lock.lock(ctx); err != nil {
		return err
	}
	defer m.lock.unlock()
	*flag = true
	return nil
}

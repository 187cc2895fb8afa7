package shutdown

// Listener is a handle to a running signal listener.
type Listener struct {
	done chan struct{}
	err  error
}

func newListener() *Listener {
	return &Listener{
		done: make(chan struct{}),
	}
}

// finish records the terminal error and releases waiters. It must be called
// exactly once.
func (m *Listener) finish(err error) {
	m.err = err
	close(m.done)
}

// Done returns a channel that is closed when the listener terminates.
func (m *Listener) Done() <-chan struct{} {
	return m.done
}

// Wait blocks until the listener terminates and returns the error it ended
// with, or nil if it completed normally.
func (m *Listener) Wait() error {
	<-m.done
	return m.err
}

// Err returns the error the listener ended with. It returns nil while the
// listener is still running.
func (m *Listener) Err() error {
	select {
	case <-m.done:
		return m.err
	default:
		return nil
	}
}

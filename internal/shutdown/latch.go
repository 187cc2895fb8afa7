package shutdown

import (
	"sync"
)

// latch is a one-time broadcast.
type latch struct {
	once sync.Once     // ensures the channel is closed only once
	ch   chan struct{} // closed when the latch is released
}

func newLatch() *latch {
	return &latch{
		ch: make(chan struct{}),
	}
}

// Release closes the channel returned by Done. Subsequent calls do nothing.
func (m *latch) Release() {
	m.once.Do(func() { close(m.ch) })
}

// Done returns a channel that is closed once the latch is released.
func (m *latch) Done() <-chan struct{} {
	return m.ch
}

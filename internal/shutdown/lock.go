package shutdown

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// rwLocker is the readers-writer lock a Model guards State with. Acquisition
// may only fail when ctx is done.
type rwLocker interface {
	rlock(ctx context.Context) error
	runlock()
	lock(ctx context.Context) error
	unlock()
}

// blockingLock blocks the calling thread until the lock is available.
type blockingLock struct {
	mu sync.RWMutex
}

func (m *blockingLock) rlock(context.Context) error {
	m.mu.RLock()
	return nil
}

func (m *blockingLock) runlock() {
	m.mu.RUnlock()
}

func (m *blockingLock) lock(context.Context) error {
	m.mu.Lock()
	return nil
}

func (m *blockingLock) unlock() {
	m.mu.Unlock()
}

// maxReaders is the number of concurrent readers a suspendingLock admits. A
// writer takes all of them.
const maxReaders = 1 << 30

// suspendingLock parks the calling task while the lock is unavailable. It is
// a weighted semaphore where a reader holds one unit and a writer holds all
// of them. Waiters are served in FIFO order, so a queued writer holds back
// readers that arrive after it. An uncontended acquisition returns without
// parking.
type suspendingLock struct {
	sem *semaphore.Weighted
}

func newSuspendingLock() *suspendingLock {
	return &suspendingLock{
		sem: semaphore.NewWeighted(maxReaders),
	}
}

func (m *suspendingLock) rlock(ctx context.Context) error {
	return m.sem.Acquire(ctx, 1)
}

func (m *suspendingLock) runlock() {
	m.sem.Release(1)
}

func (m *suspendingLock) lock(ctx context.Context) error {
	return m.sem.Acquire(ctx, maxReaders)
}

func (m *suspendingLock) unlock() {
	m.sem.Release(maxReaders)
}

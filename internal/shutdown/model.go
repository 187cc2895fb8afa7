package shutdown

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Model is the scheduling model a listener runs under. It supplies the
// primitives the shutdown sequence suspends on; the sequence itself is the
// same for every model.
type Model interface {
	fmt.Stringer

	// spawn starts run and returns a handle that is finished with its result.
	spawn(run func(ctx context.Context) error) *Listener
	// receive waits for the next signal on ch.
	receive(ctx context.Context, ch <-chan os.Signal) (os.Signal, error)
	// sleep waits for d.
	sleep(ctx context.Context, d time.Duration) error
	// newLock returns the lock State is guarded with.
	newLock() rwLocker
}

type threads struct{}

// Threads returns the model in which the listener occupies a dedicated OS
// thread for its whole lifetime, blocks on the signal channel, sleeps between
// drain polls and guards state with a blocking readers-writer lock. Once
// started such a listener can not be cancelled.
func Threads() Model {
	return threads{}
}

func (threads) String() string {
	return "threads"
}

func (threads) spawn(run func(ctx context.Context) error) *Listener {
	listener := newListener()
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		listener.finish(run(context.Background()))
	}()
	return listener
}

func (threads) receive(_ context.Context, ch <-chan os.Signal) (os.Signal, error) {
	sig, ok := <-ch
	if !ok {
		return nil, ErrSourceClosed
	}
	return sig, nil
}

func (threads) sleep(_ context.Context, d time.Duration) error {
	time.Sleep(d)
	return nil
}

func (threads) newLock() rwLocker {
	return &blockingLock{}
}

type tasks struct {
	ctx   context.Context
	group *errgroup.Group
}

// Tasks returns the model in which the listener is a task of group. Waiting
// for a signal, sleeping between drain polls and acquiring the state lock all
// park the task and give its thread back to the scheduler.
//
// ctx is the lifetime of the scheduler: once it is done the listener ends
// with ctx.Err(). A nil group runs the listener in a private one.
//
// The listener never returns an error to group, so its failure does not
// cancel sibling tasks; the error is reported through the Listener instead.
func Tasks(ctx context.Context, group *errgroup.Group) Model {
	if group == nil {
		group = new(errgroup.Group)
	}
	return &tasks{
		ctx:   ctx,
		group: group,
	}
}

func (m *tasks) String() string {
	return "tasks"
}

func (m *tasks) spawn(run func(ctx context.Context) error) *Listener {
	listener := newListener()
	m.group.Go(func() error {
		listener.finish(run(m.ctx))
		return nil
	})
	return listener
}

func (m *tasks) receive(ctx context.Context, ch <-chan os.Signal) (os.Signal, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case sig, ok := <-ch:
		if !ok {
			return nil, ErrSourceClosed
		}
		return sig, nil
	}
}

func (m *tasks) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *tasks) newLock() rwLocker {
	return newSuspendingLock()
}

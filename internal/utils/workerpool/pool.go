// Package workerpool runs tasks on a fixed number of workers and lets the
// caller wait for in-flight tasks on close.
package workerpool

import (
	"context"
	"errors"
	"sync"

	"github.com/yanet-platform/termwatch/internal/monitoring/metrics"
)

// ErrClosed is returned when a task is added to a closed pool.
var ErrClosed = errors.New("worker pool is closed")

// Task is a unit of work executed by a worker of the pool.
type Task interface {
	Run(ctx context.Context)
}

// TaskFunc adapts a function to Task.
type TaskFunc func(ctx context.Context)

// Run implements Task.
func (f TaskFunc) Run(ctx context.Context) {
	f(ctx)
}

// Pool represents a fixed set of workers executing tasks concurrently.
type Pool struct {
	size     int
	tasks    chan Task      // channel through which tasks are handed to workers
	tasksMu  sync.RWMutex   // used to protect the tasks channel
	wg       sync.WaitGroup // used to wait for all workers to exit
	inFlight metrics.Gauge  // number of tasks being executed
}

// New creates a new instance of Pool with size workers. Sizes below one are
// treated as one.
func New(size int, inFlight metrics.Gauge) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		size:     size,
		tasks:    make(chan Task),
		inFlight: inFlight,
	}
}

// Start launches the workers. It must be called once, before Add. Starting a
// closed pool launches nothing.
func (m *Pool) Start(ctx context.Context) {
	// Workers hold their own reference: Close may nil the field before they
	// are scheduled.
	m.tasksMu.RLock()
	tasks := m.tasks
	m.tasksMu.RUnlock()

	if tasks == nil {
		return
	}

	m.wg.Add(m.size)
	for i := 0; i < m.size; i++ {
		go func() {
			defer m.wg.Done()
			// The loop ends when Close closes the channel.
			for task := range tasks {
				m.inFlight.Inc()
				task.Run(ctx)
				m.inFlight.Dec()
			}
		}()
	}
}

// Add hands the task to a free worker, waiting for one if all are busy.
func (m *Pool) Add(ctx context.Context, task Task) error {
	// Acquire a read lock to safely check if the tasks channel is open.
	m.tasksMu.RLock()
	defer m.tasksMu.RUnlock()

	if m.tasks == nil {
		return ErrClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case m.tasks <- task:
		return nil
	}
}

// Close stops accepting tasks and waits for the workers to finish the tasks
// they are executing. It is safe to call more than once.
func (m *Pool) Close() {
	// Acquire a write lock to safely close the channel.
	m.tasksMu.Lock()
	if m.tasks != nil {
		close(m.tasks)
		// Set it to nil to indicate that the channel is closed.
		m.tasks = nil
	}
	m.tasksMu.Unlock()

	// Wait for all workers to finish their execution.
	m.wg.Wait()
}

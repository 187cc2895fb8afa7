package shutdown

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestState_Transitions verifies that both flags start false and only move to
// true.
func TestState_Transitions(t *testing.T) {
	for _, tc := range modelCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			state := newState(tc.model(t).newLock())

			assert.False(t, state.ShouldShutdown())
			finished, err := state.isFinished(ctx)
			require.NoError(t, err)
			assert.False(t, finished)

			select {
			case <-state.Requested():
				t.Fatal("requested channel closed before the request")
			default:
			}

			require.NoError(t, state.request(ctx))
			for i := 0; i < 10; i++ {
				assert.True(t, state.ShouldShutdown())
			}
			<-state.Requested()

			// Requesting again changes nothing.
			require.NoError(t, state.request(ctx))
			assert.True(t, state.ShouldShutdown())

			state.MarkFinished()
			state.MarkFinished()
			finished, err = state.isFinished(ctx)
			require.NoError(t, err)
			assert.True(t, finished)
			assert.True(t, state.ShouldShutdown())
		})
	}
}

// TestState_ConcurrentReaders verifies that readers racing the request see
// either value, and never false after true.
func TestState_ConcurrentReaders(t *testing.T) {
	const readers = 16
	const reads = 2000

	for _, tc := range modelCases() {
		t.Run(tc.name, func(t *testing.T) {
			state := newState(tc.model(t).newLock())

			var wg sync.WaitGroup
			reverted := make(chan int, readers)
			start := make(chan struct{})

			for i := 0; i < readers; i++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					<-start
					seen := false
					for j := 0; j < reads; j++ {
						value := state.ShouldShutdown()
						if seen && !value {
							reverted <- id
							return
						}
						seen = seen || value
					}
				}(i)
			}

			close(start)
			require.NoError(t, state.request(context.Background()))
			wg.Wait()
			close(reverted)

			for id := range reverted {
				t.Errorf("reader %d observed the request revert", id)
			}
			assert.True(t, state.ShouldShutdown())
		})
	}
}

// TestState_ConcurrentMarkFinished verifies that concurrent completion
// reports are harmless.
func TestState_ConcurrentMarkFinished(t *testing.T) {
	for _, tc := range modelCases() {
		t.Run(tc.name, func(t *testing.T) {
			state := newState(tc.model(t).newLock())

			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					state.MarkFinished()
				}()
			}
			wg.Wait()

			finished, err := state.isFinished(context.Background())
			require.NoError(t, err)
			assert.True(t, finished)
			assert.False(t, state.ShouldShutdown())
		})
	}
}

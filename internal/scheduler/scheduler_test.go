package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func never() bool { return false }

// TestScheduler_Stop verifies that Run returns nil once stop reports true.
func TestScheduler_Stop(t *testing.T) {
	scheduler := New(Config{Interval: time.Millisecond})

	var calls atomic.Int32
	err := scheduler.Run(context.Background(),
		func() bool { return calls.Load() >= 3 },
		nil,
		func(context.Context) error {
			calls.Add(1)
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

// TestScheduler_Retries verifies that a failing job is attempted once plus
// the configured number of retries per interval.
func TestScheduler_Retries(t *testing.T) {
	scheduler := New(Config{
		Interval:   time.Hour,
		Retries:    retries(2),
		RetryDelay: time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	errCh := make(chan error, 1)
	go func() {
		errCh <- scheduler.Run(ctx, never, nil, func(context.Context) error {
			calls.Add(1)
			return errors.New("failed")
		})
	}()

	require.Eventually(t, func() bool { return calls.Load() == 3 }, time.Second, time.Millisecond)
	// The next attempt only comes after the hour-long interval.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

// TestScheduler_Wake verifies that closing wake cuts the interval short.
func TestScheduler_Wake(t *testing.T) {
	scheduler := New(Config{Interval: time.Hour})

	var stopped atomic.Bool
	wake := make(chan struct{})
	ran := make(chan struct{}, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- scheduler.Run(context.Background(), stopped.Load, wake, func(context.Context) error {
			ran <- struct{}{}
			return nil
		})
	}()

	<-ran
	stopped.Store(true)
	close(wake)

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not wake up")
	}
}

// TestConfig_Defaults verifies the fallbacks for unset fields.
func TestConfig_Defaults(t *testing.T) {
	var config Config
	assert.Equal(t, defaultInterval, config.GetInterval())
	assert.Equal(t, defaultRetries, config.GetRetries())
	assert.Equal(t, defaultRetryDelay, config.GetRetryDelay())

	config.Default()
	assert.Equal(t, Config{
		Interval:   defaultInterval,
		Retries:    retries(defaultRetries),
		RetryDelay: defaultRetryDelay,
	}, config)
}

// TestScheduler_NoRetries verifies that zero retries runs a failing job once
// per interval.
func TestScheduler_NoRetries(t *testing.T) {
	config := Config{
		Interval:   time.Hour,
		Retries:    retries(0),
		RetryDelay: time.Millisecond,
	}
	assert.Equal(t, 0, config.GetRetries())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	errCh := make(chan error, 1)
	go func() {
		errCh <- New(config).Run(ctx, never, nil, func(context.Context) error {
			calls.Add(1)
			return errors.New("failed")
		})
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func retries(n int) *int {
	return &n
}

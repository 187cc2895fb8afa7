//go:build !unix

package shutdown

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	log "go.uber.org/zap"
)

// stubExit replaces the process exit for the duration of the test and
// reports the status it was called with.
func stubExit(t *testing.T) <-chan int {
	t.Helper()
	codes := make(chan int, 1)
	exit = func(code int) { codes <- code }
	t.Cleanup(func() { exit = os.Exit })
	return codes
}

// TestRaise verifies that redelivering an interrupt ends the process with the
// interrupt exit status.
func TestRaise(t *testing.T) {
	codes := stubExit(t)

	require.NoError(t, raise(os.Interrupt))
	assert.Equal(t, interruptExitCode, <-codes)
}

// TestRaise_Unsupported verifies that unknown signals are not acted on.
func TestRaise_Unsupported(t *testing.T) {
	codes := stubExit(t)

	err := raise(os.Kill)
	require.ErrorIs(t, err, ErrUnsupportedSignal)
	assert.Empty(t, codes)
}

// TestStartImmediate_EndsProcess verifies that an immediate listener ends the
// process after the first interrupt.
func TestStartImmediate_EndsProcess(t *testing.T) {
	codes := stubExit(t)

	source := newFakeSource()
	coordinator := New(Threads(), &exitingSource{fakeSource: source}, log.NewNop())

	listener, err := coordinator.StartImmediate()
	require.NoError(t, err)

	source.deliver(os.Interrupt)

	select {
	case code := <-codes:
		assert.Equal(t, interruptExitCode, code)
	case <-time.After(time.Second):
		t.Fatal("process was not ended")
	}
	require.NoError(t, listener.Wait())
}

// exitingSource delivers through fakeSource and redelivers like OSSource.
type exitingSource struct {
	*fakeSource
}

func (m *exitingSource) Raise(sig os.Signal) error {
	return raise(sig)
}

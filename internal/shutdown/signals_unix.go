//go:build unix

package shutdown

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// TerminationSignals returns the signals that request a graceful shutdown.
func TerminationSignals() []os.Signal {
	return []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGQUIT, unix.SIGHUP}
}

// ParseSignal maps a signal name such as "SIGTERM", "TERM" or "term" to the
// signal it names. Signals that cannot be caught are rejected.
func ParseSignal(name string) (os.Signal, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	num := unix.SignalNum(name)
	if num == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSignal, name)
	}
	if err := validateSignal(num); err != nil {
		return nil, err
	}
	return num, nil
}

func validateSignal(sig os.Signal) error {
	num, ok := sig.(syscall.Signal)
	if !ok || unix.SignalName(num) == "" {
		return fmt.Errorf("%w: %v", ErrUnsupportedSignal, sig)
	}
	// Neither can be caught.
	if num == unix.SIGKILL || num == unix.SIGSTOP {
		return fmt.Errorf("%w: %s cannot be caught", ErrUnsupportedSignal, unix.SignalName(num))
	}
	return nil
}

func raise(sig os.Signal) error {
	num, ok := sig.(syscall.Signal)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnsupportedSignal, sig)
	}
	return unix.Kill(unix.Getpid(), num)
}

//go:build !unix

package shutdown

import (
	"fmt"
	"os"
	"strings"
)

// TerminationSignals returns the signals that request a graceful shutdown.
// Only os.Interrupt is portable outside unix.
func TerminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// ParseSignal maps a signal name to the signal it names. Only the interrupt
// signal is known outside unix.
func ParseSignal(name string) (os.Signal, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SIGINT", "INT", "INTERRUPT":
		return os.Interrupt, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSignal, name)
	}
}

func validateSignal(sig os.Signal) error {
	if sig != os.Interrupt {
		return fmt.Errorf("%w: %v", ErrUnsupportedSignal, sig)
	}
	return nil
}

// interruptExitCode is the status a shell reports for a process ended by an
// interrupt.
const interruptExitCode = 130

// exit is replaced in tests.
var exit = os.Exit

// raise ends the process. Sending a signal to the own process is not
// supported here, so the default termination is reproduced with the exit
// status of an interrupted process.
func raise(sig os.Signal) error {
	if err := validateSignal(sig); err != nil {
		return err
	}
	exit(interruptExitCode)
	return nil
}

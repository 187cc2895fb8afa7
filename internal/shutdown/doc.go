// Package shutdown coordinates graceful process termination.
//
// A Coordinator subscribes to the process termination signals and drives a
// two-flag State through a fixed sequence:
//
//	WAITING ──signal──▶ SHUTTING_DOWN ──MarkFinished──▶ done
//
// While WAITING the listener is suspended on the signal Source. The first
// signal delivered flips the "requested" flag, which application code observes
// through State.ShouldShutdown (or State.Requested). The listener then polls
// the "finished" flag at a fixed interval until the application reports
// completion with State.MarkFinished, and terminates. Only one signal is ever
// acted on per listener; later deliveries are swallowed until the listener
// terminates and the default dispositions are restored.
//
// There is no deadline on the drain. Callers that need one race
// Listener.Done against their own timer.
//
// The sequence is written once and runs under one of two scheduling models:
//
//   - Threads: the listener owns a dedicated OS thread, state is guarded by a
//     blocking readers-writer lock and the drain wait sleeps between polls.
//   - Tasks: the listener is a task in the application's errgroup; every wait
//     is a suspension point bound to the group's context and state is guarded
//     by a lock whose acquisition parks the caller.
//
// Both models expose identical observable behavior.
//
// Usage:
//
//	coordinator := shutdown.New(shutdown.Threads(), shutdown.OSSource(), logger)
//	listener, state, err := coordinator.Start()
//	if err != nil {
//		return err
//	}
//	for !state.ShouldShutdown() {
//		// serve
//	}
//	// drain
//	state.MarkFinished()
//	return listener.Wait()
//
// StartImmediate provides a listener that only logs the first signal and then
// lets the default disposition terminate the process.
package shutdown

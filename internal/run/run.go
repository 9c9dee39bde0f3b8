// Package run executes external commands one at a time and reports their
// lifecycle as typed events on a single bounded channel. The consumer drains
// the channel from one dispatcher goroutine; per command, the started event
// precedes every output event, and the finished event is always last.
package run

import (
	"errors"
	"time"
)

// Handle identifies one submitted command for the duration of its run.
// Handles are assigned from a monotonic sequence and never reused.
type Handle int

// ErrEmptyArgs is returned by Submit when the spec carries no argv.
var ErrEmptyArgs = errors.New("run: command spec has no arguments")

// CommandSpec describes one external command invocation. It is immutable
// once built.
type CommandSpec struct {
	Args []string // argv; Args[0] is the executable
	Dir  string   // working directory, empty inherits the process cwd
	// Env holds overrides layered on top of the parent environment.
	Env map[string]string
}

// CommandResult is the terminal outcome of one command, produced exactly
// once per run.
type CommandResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	// Duration is measured on the monotonic clock, so wall-clock
	// adjustments mid-run cannot make it negative.
	Duration time.Duration
}

// OK reports whether the command exited zero.
func (r CommandResult) OK() bool { return r.ExitCode == 0 }

// Stream tags an output chunk with its origin.
type Stream int

// Output streams.
const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Event is one lifecycle notification. Concrete types are StartedEvent,
// OutputEvent and FinishedEvent.
type Event interface {
	// EventHandle returns the handle of the command the event belongs to.
	EventHandle() Handle
}

// StartedEvent reports that a command has been spawned. Spec is carried so
// consumers can trace what is running without keeping their own argv table.
type StartedEvent struct {
	Handle Handle
	Spec   CommandSpec
}

// OutputEvent carries one chunk of stdout or stderr as it arrives.
type OutputEvent struct {
	Handle Handle
	Stream Stream
	Chunk  []byte
}

// FinishedEvent carries the final result. It is emitted exactly once for
// every submitted command, including cancelled, killed and failed-to-start
// ones.
type FinishedEvent struct {
	Handle Handle
	Spec   CommandSpec
	Result CommandResult
}

// EventHandle implements Event.
func (e StartedEvent) EventHandle() Handle { return e.Handle }

// EventHandle implements Event.
func (e OutputEvent) EventHandle() Handle { return e.Handle }

// EventHandle implements Event.
func (e FinishedEvent) EventHandle() Handle { return e.Handle }

// Runner starts external commands and streams their lifecycle. ExecRunner is
// the real implementation; FakeRunner serves tests.
type Runner interface {
	// Submit spawns the command described by spec and returns its handle.
	// The only submission-time error is ErrEmptyArgs; a spawn failure is
	// reported asynchronously as a FinishedEvent with a negative exit code.
	Submit(spec CommandSpec) (Handle, error)

	// Cancel requests cooperative termination. It reports false when the
	// handle is unknown or the command already finished.
	Cancel(h Handle) bool

	// Kill forces immediate termination. Same no-op semantics as Cancel.
	Kill(h Handle) bool

	// Events exposes the lifecycle channel. It is never closed.
	Events() <-chan Event
}

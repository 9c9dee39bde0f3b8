package run

import "sync"

// FakeRunner is a Runner test double. Submit records the spec and hands out a
// deterministic handle without spawning anything; tests drive the lifecycle
// explicitly through Finish and EmitOutput, which feed the same event channel
// a real runner would.
type FakeRunner struct {
	mu        sync.Mutex
	nextID    Handle
	specs     []CommandSpec
	handles   []Handle
	byHandle  map[Handle]CommandSpec
	finished  map[Handle]bool
	cancelled []Handle
	killed    []Handle
	events    chan Event
}

// NewFakeRunner returns an empty fake.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		nextID:   1,
		byHandle: make(map[Handle]CommandSpec),
		finished: make(map[Handle]bool),
		events:   make(chan Event, eventBufferSize),
	}
}

// Submit implements Runner. No events are emitted until the test calls
// Finish or EmitOutput.
func (f *FakeRunner) Submit(spec CommandSpec) (Handle, error) {
	if len(spec.Args) == 0 {
		return 0, ErrEmptyArgs
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.nextID
	f.nextID++
	f.specs = append(f.specs, spec)
	f.handles = append(f.handles, h)
	f.byHandle[h] = spec
	return h, nil
}

// Cancel implements Runner.
func (f *FakeRunner) Cancel(h Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.submitted(h) || f.finished[h] {
		return false
	}
	f.cancelled = append(f.cancelled, h)
	return true
}

// Kill implements Runner.
func (f *FakeRunner) Kill(h Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.submitted(h) || f.finished[h] {
		return false
	}
	f.killed = append(f.killed, h)
	return true
}

// Events implements Runner.
func (f *FakeRunner) Events() <-chan Event { return f.events }

// EmitOutput delivers one output chunk for h.
func (f *FakeRunner) EmitOutput(h Handle, stream Stream, chunk []byte) {
	f.events <- OutputEvent{Handle: h, Stream: stream, Chunk: chunk}
}

// Finish delivers the terminal result for h.
func (f *FakeRunner) Finish(h Handle, exitCode int, stdout, stderr string) {
	f.mu.Lock()
	f.finished[h] = true
	spec := f.byHandle[h]
	f.mu.Unlock()
	f.events <- FinishedEvent{
		Handle: h,
		Spec:   spec,
		Result: CommandResult{
			ExitCode: exitCode,
			Stdout:   []byte(stdout),
			Stderr:   []byte(stderr),
		},
	}
}

// Specs returns a copy of every submitted spec, in submission order.
func (f *FakeRunner) Specs() []CommandSpec {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]CommandSpec, len(f.specs))
	copy(out, f.specs)
	return out
}

// Handles returns a copy of every handle handed out, in submission order.
func (f *FakeRunner) Handles() []Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Handle, len(f.handles))
	copy(out, f.handles)
	return out
}

// LastHandle returns the most recently handed-out handle, or zero.
func (f *FakeRunner) LastHandle() Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.handles) == 0 {
		return 0
	}
	return f.handles[len(f.handles)-1]
}

// Cancelled returns the handles Cancel was accepted for.
func (f *FakeRunner) Cancelled() []Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Handle, len(f.cancelled))
	copy(out, f.cancelled)
	return out
}

// Killed returns the handles Kill was accepted for.
func (f *FakeRunner) Killed() []Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Handle, len(f.killed))
	copy(out, f.killed)
	return out
}

func (f *FakeRunner) submitted(h Handle) bool {
	for _, known := range f.handles {
		if known == h {
			return true
		}
	}
	return false
}

package run

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// eventBufferSize bounds the lifecycle channel. Producers block rather than
// drop when the dispatcher falls behind, preserving event order.
const eventBufferSize = 256

// readChunkSize is the read granularity for streamed output.
const readChunkSize = 32 * 1024

// ExecRunner runs commands via os/exec. One runner serves the whole process;
// the scheduling queue upstream guarantees at most one command is active.
type ExecRunner struct {
	mu     sync.Mutex
	nextID Handle
	live   map[Handle]*exec.Cmd
	events chan Event
}

// NewExecRunner returns a runner with an empty live table.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		nextID: 1,
		live:   make(map[Handle]*exec.Cmd),
		events: make(chan Event, eventBufferSize),
	}
}

// Events implements Runner.
func (r *ExecRunner) Events() <-chan Event { return r.events }

// Submit implements Runner. The started event is emitted before Submit
// returns; output and finished events follow from reader goroutines.
func (r *ExecRunner) Submit(spec CommandSpec) (Handle, error) {
	if len(spec.Args) == 0 {
		return 0, ErrEmptyArgs
	}

	r.mu.Lock()
	h := r.nextID
	r.nextID++
	r.mu.Unlock()

	cmd := exec.Command(spec.Args[0], spec.Args[1:]...) // #nosec G204 -- argv is built by the intent layer, never from raw user text
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if len(spec.Env) > 0 {
		env := os.Environ()
		for key, value := range spec.Env {
			env = append(env, key+"="+value)
		}
		cmd.Env = env
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return h, r.failSpawn(h, spec, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return h, r.failSpawn(h, spec, err)
	}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		return h, r.failSpawn(h, spec, err)
	}

	r.mu.Lock()
	r.live[h] = cmd
	r.mu.Unlock()

	r.events <- StartedEvent{Handle: h, Spec: spec}

	var outBuf, errBuf bytes.Buffer
	var readers sync.WaitGroup
	readers.Add(2)
	go r.drain(h, Stdout, stdout, &outBuf, &readers)
	go r.drain(h, Stderr, stderr, &errBuf, &readers)

	go func() {
		// Both pipes must hit EOF before Wait, otherwise Wait can close
		// them under the readers.
		readers.Wait()
		waitErr := cmd.Wait()

		exitCode := 0
		if waitErr != nil {
			exitCode = -1
			var exitErr *exec.ExitError
			if errors.As(waitErr, &exitErr) {
				exitCode = exitErr.ExitCode()
			}
		}

		r.mu.Lock()
		delete(r.live, h)
		r.mu.Unlock()

		r.events <- FinishedEvent{
			Handle: h,
			Spec:   spec,
			Result: CommandResult{
				ExitCode: exitCode,
				Stdout:   outBuf.Bytes(),
				Stderr:   errBuf.Bytes(),
				Duration: time.Since(started),
			},
		}
	}()

	return h, nil
}

// failSpawn reports a command that never started as a normal lifecycle:
// started, then finished with exit code -1 and the error text on stderr.
func (r *ExecRunner) failSpawn(h Handle, spec CommandSpec, err error) error {
	r.events <- StartedEvent{Handle: h, Spec: spec}
	r.events <- FinishedEvent{
		Handle: h,
		Spec:   spec,
		Result: CommandResult{
			ExitCode: -1,
			Stderr:   []byte(err.Error()),
		},
	}
	return nil
}

func (r *ExecRunner) drain(h Handle, stream Stream, src io.Reader, buf *bytes.Buffer, readers *sync.WaitGroup) {
	defer readers.Done()
	chunk := make([]byte, readChunkSize)
	for {
		n, err := src.Read(chunk)
		if n > 0 {
			data := make([]byte, n)
			copy(data, chunk[:n])
			buf.Write(data)
			r.events <- OutputEvent{Handle: h, Stream: stream, Chunk: data}
		}
		if err != nil {
			return
		}
	}
}

// Cancel implements Runner: SIGTERM, so the command may clean up.
func (r *ExecRunner) Cancel(h Handle) bool {
	return r.signal(h, syscall.SIGTERM)
}

// Kill implements Runner: SIGKILL, immediate.
func (r *ExecRunner) Kill(h Handle) bool {
	return r.signal(h, syscall.SIGKILL)
}

func (r *ExecRunner) signal(h Handle, sig syscall.Signal) bool {
	r.mu.Lock()
	cmd, ok := r.live[h]
	r.mu.Unlock()
	if !ok || cmd.Process == nil {
		return false
	}
	return cmd.Process.Signal(sig) == nil
}

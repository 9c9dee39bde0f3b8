// Package log provides an opt-in debug log that stays silent until a
// file path is configured. Messages emitted before SetFile are held in
// memory and flushed once the destination is known, so early startup
// lines are not lost. Nothing is ever written to the terminal, which
// the TUI owns.
package log

import (
	"log"
	"os"
	"sync"
)

type writer struct {
	mu      sync.Mutex
	file    *os.File
	held    []byte
	discard bool
}

var (
	out = &writer{}
	std = log.New(out, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer for the standard logger. Output goes to
// the configured file, or into the holding buffer while no file is set.
func (w *writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.discard {
		return len(p), nil
	}
	if w.file != nil {
		n, err := w.file.Write(p)
		_ = w.file.Sync()
		return n, err
	}
	// The logger reuses p between calls.
	w.held = append(w.held, p...)
	return len(p), nil
}

// SetFile points the debug log at path, creating the file if needed and
// appending if it exists. Held messages are flushed to it. An empty
// path disables logging and drops anything held. On open failure
// logging is disabled and the error returned.
func SetFile(path string) error {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.file != nil {
		_ = out.file.Close()
		out.file = nil
	}

	if path == "" {
		out.discard = true
		out.held = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		out.discard = true
		out.held = nil
		return err
	}

	out.file = f
	out.discard = false
	if len(out.held) > 0 {
		_, _ = f.Write(out.held)
		_ = f.Sync()
		out.held = nil
	}
	return nil
}

// Printf formats a message through the shared debug logger.
func Printf(format string, args ...any) {
	std.Printf(format, args...)
}

// Close releases the log file, if one was opened.
func Close() error {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.file == nil {
		return nil
	}
	err := out.file.Close()
	out.file = nil
	return err
}

package repo

import (
	"fmt"
	"strings"
)

// CommandError reports an external command that exited non-zero. Exit code -1
// marks a command that was killed or never started.
type CommandError struct {
	Args     []string
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed (%d): %s", e.ExitCode, strings.Join(e.Args, " "))
}

// NotARepoError reports a path that is not inside a git work tree.
type NotARepoError struct {
	Path string
}

func (e *NotARepoError) Error() string {
	return "not a git repository: " + e.Path
}

// AuthError reports a remote operation rejected over credentials. Args and
// Stderr keep the command context for display and for retry affordances.
type AuthError struct {
	Args   []string
	Stderr []byte
}

func (e *AuthError) Error() string {
	return "authentication failed"
}

// ParseError reports command output that could not be interpreted. Raw keeps
// the payload for inspection.
type ParseError struct {
	Kind string
	Raw  []byte
}

func (e *ParseError) Error() string {
	return "failed to parse " + e.Kind + " output"
}

// authMarkers are stderr fragments that identify a credential rejection.
// Git and the common credential helpers emit these regardless of transport.
var authMarkers = []string{
	"authentication failed",
	"could not read username",
	"could not read password",
	"permission denied (publickey)",
}

func isAuthFailure(stderr []byte) bool {
	text := strings.ToLower(string(stderr))
	for _, marker := range authMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

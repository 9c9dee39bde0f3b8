// Package git wraps git command execution and output parsing for gitdeck.
//
// The Runner adds the environment defaults that keep git output stable and
// non-interactive; the Service exposes one builder method per repository
// operation; the parse functions turn raw output bytes into the domain
// objects in internal/models. Parsing is total: malformed-but-decodable
// input degrades to zero values instead of failing.
package git

import (
	"github.com/gitdeck/gitdeck/internal/run"
)

// Machine-readable output formats. The non-printable ASCII separators
// (\x1f unit, \x1e record) cannot appear in commit subjects or ref names,
// which makes splitting reliable.
const (
	// logFormat: oid, parents, author name, author email, author date, subject.
	logFormat = "%H%x1f%P%x1f%an%x1f%ae%x1f%ad%x1f%s%x1e"
	// stashFormat: oid, reflog selector (stash@{n}), subject, date.
	stashFormat = "%H%x1f%gd%x1f%gs%x1f%ad%x1e"
	// branchFormat: name, current marker, upstream, tracking annotation.
	branchFormat = "%(refname:short)|%(HEAD)|%(upstream:short)|%(upstream:track)"

	recordSep = "\x1e"
	fieldSep  = "\x1f"
)

// Runner runs git commands with safe defaults: no pager, no interactive
// credential prompts, and a stable UTF-8 locale so parsers see predictable
// text.
type Runner struct {
	runner     run.Runner
	executable string
	defaultEnv map[string]string
}

// NewRunner wraps runner. executable defaults to "git" when empty.
func NewRunner(runner run.Runner, executable string) *Runner {
	if executable == "" {
		executable = "git"
	}
	return &Runner{
		runner:     runner,
		executable: executable,
		defaultEnv: map[string]string{
			"GIT_PAGER":           "cat",
			"GIT_TERMINAL_PROMPT": "0",
			"LANG":                "C.UTF-8",
		},
	}
}

// Runner exposes the underlying process runner so the controller can consume
// its event channel.
func (r *Runner) Runner() run.Runner { return r.runner }

// Run submits a git command. env entries override the defaults; the defaults
// override nothing the parent environment needs.
func (r *Runner) Run(args []string, cwd string, env map[string]string) (run.Handle, error) {
	if len(args) == 0 {
		return 0, run.ErrEmptyArgs
	}

	merged := make(map[string]string, len(r.defaultEnv)+len(env))
	for key, value := range r.defaultEnv {
		merged[key] = value
	}
	for key, value := range env {
		merged[key] = value
	}

	argv := make([]string, 0, len(args)+1)
	argv = append(argv, r.executable)
	argv = append(argv, args...)

	return r.runner.Submit(run.CommandSpec{Args: argv, Dir: cwd, Env: merged})
}

// Package repo coordinates everything that happens to an open repository:
// it turns UI intents into scheduled git commands, folds their results back
// into a state snapshot, and tells observers when the snapshot changed.
//
// All result handling runs on a single dispatcher goroutine that consumes
// the runner's event channel, so state updates never race each other. The
// scheduling queue guarantees at most one external command at a time; the
// dispatcher calls MarkIdle only after its bookkeeping for a result is done,
// which keeps cascaded refreshes ordered behind the command that caused them.
package repo

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/gitdeck/gitdeck/internal/git"
	"github.com/gitdeck/gitdeck/internal/queue"
	"github.com/gitdeck/gitdeck/internal/run"
)

// Parse kinds route a finished command to its payload handler. Mutations use
// free-form kinds; they carry no payload and only trigger refreshes.
const (
	kindValidateRepo   = "validate-repo"
	kindStatus         = "status"
	kindLog            = "log"
	kindBranches       = "branches"
	kindRemoteBranches = "remote-branches"
	kindConflicts      = "conflicts"
	kindStashes        = "stashes"
	kindTags           = "tags"
	kindRemotes        = "remotes"
	kindDiff           = "diff"
	kindVersion        = "version"
)

// Queue keys. Background refreshes share a key per pane so redundant ones
// coalesce; user actions use their kind as key.
const (
	keyOpenRepo              = "open-repo"
	keyRefreshStatus         = "refresh:status"
	keyRefreshLog            = "refresh:log"
	keyRefreshBranches       = "refresh:branches"
	keyRefreshRemoteBranches = "refresh:remote-branches"
	keyRefreshConflicts      = "refresh:conflicts"
	keyRefreshStashes        = "refresh:stashes"
	keyRefreshTags           = "refresh:tags"
	keyRefreshRemotes        = "refresh:remotes"
	keyDiff                  = "diff"
	keyVersion               = "version"
)

// refreshSet says which panes to reload after a successful command.
type refreshSet struct {
	Status         bool
	Log            bool
	Branches       bool
	RemoteBranches bool
	Stashes        bool
	Tags           bool
	Remotes        bool
}

// pendingAction remembers why a command was started so its result can be
// routed when the finished event arrives.
type pendingAction struct {
	Kind     string
	RepoPath string

	// Diff target, set for kindDiff only.
	Path   string
	Staged bool

	Refresh refreshSet
}

// Options tune a Controller. The zero value is usable.
type Options struct {
	// LogLimit bounds history refreshes; zero means the service default.
	LogLimit int
	// Logf, when non-nil, receives debug traces of command lifecycles.
	Logf func(string, ...any)
}

// Controller owns the execution pipeline for one open repository.
type Controller struct {
	service *git.Service
	queue   *queue.Queue
	state   *state

	// mu guards pending and orphans. A result can race its own registration
	// when a command finishes faster than the submitting goroutine records
	// it; such results are parked in orphans and completed by the submitter.
	mu      sync.Mutex
	pending map[run.Handle]pendingAction
	orphans map[run.Handle]run.FinishedEvent

	notify    chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	logLimit int
	logf     func(string, ...any)
}

// NewController wires service into a new controller and starts its dispatcher
// goroutine. Call Close when done with it.
func NewController(service *git.Service, opts Options) *Controller {
	c := &Controller{
		service:  service,
		state:    &state{},
		pending:  make(map[run.Handle]pendingAction),
		orphans:  make(map[run.Handle]run.FinishedEvent),
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		logLimit: opts.LogLimit,
		logf:     opts.Logf,
	}
	c.queue = queue.New(c.notifyStateChanged)
	go c.run()
	return c
}

// Close stops the dispatcher. A command already running is left to finish;
// its result is dropped.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Snapshot returns the current repository view.
func (c *Controller) Snapshot() Snapshot {
	return c.state.snapshot()
}

// Subscribe returns the state-change channel. It has capacity one and
// coalesces: after reading it, call Snapshot for the latest view.
func (c *Controller) Subscribe() <-chan struct{} {
	return c.notify
}

// QueueDepth reports how many commands are waiting behind the active one.
func (c *Controller) QueueDepth() int {
	return c.queue.Len()
}

// Idle reports that no command is running and nothing is queued. The queue
// stays marked running from admission until the result has been fully
// applied, so true here means every submitted command has landed in the
// snapshot.
func (c *Controller) Idle() bool {
	return !c.queue.Running() && c.queue.Len() == 0
}

// OpenRepo validates path as a git work tree and, on success, makes it the
// active repository and schedules a full refresh of every pane.
func (c *Controller) OpenRepo(path string) {
	c.enqueue(keyOpenRepo, queue.User,
		pendingAction{Kind: kindValidateRepo, RepoPath: path},
		func() (run.Handle, error) { return c.service.IsInsideWorkTreeRaw(path) })
}

// CheckGitVersion asks the configured git executable for its version. It
// needs no open repository.
func (c *Controller) CheckGitVersion() {
	c.enqueue(keyVersion, queue.User,
		pendingAction{Kind: kindVersion},
		func() (run.Handle, error) { return c.service.VersionRaw() })
}

// RefreshStatus reloads the working-tree status.
func (c *Controller) RefreshStatus() {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.refreshStatus(repoPath)
}

// RefreshLog reloads the commit history.
func (c *Controller) RefreshLog() {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.refreshLog(repoPath)
}

// RefreshBranches reloads the local branch list.
func (c *Controller) RefreshBranches() {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.refreshBranches(repoPath)
}

// RefreshRemoteBranches reloads the remote-tracking branch list.
func (c *Controller) RefreshRemoteBranches() {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.refreshRemoteBranches(repoPath)
}

// RefreshConflicts reloads the conflicted-path list.
func (c *Controller) RefreshConflicts() {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.enqueueRefresh(keyRefreshConflicts, kindConflicts, repoPath,
		func() (run.Handle, error) { return c.service.ConflictsRaw(repoPath) })
}

// RefreshStashes reloads the stash list.
func (c *Controller) RefreshStashes() {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.refreshStashes(repoPath)
}

// RefreshTags reloads the tag list.
func (c *Controller) RefreshTags() {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.refreshTags(repoPath)
}

// RefreshRemotes reloads the remote list.
func (c *Controller) RefreshRemotes() {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.refreshRemotes(repoPath)
}

// RefreshAll schedules a background reload of every pane.
func (c *Controller) RefreshAll() {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.refreshAll(repoPath)
}

// RequestDiff loads the diff for one path, staged (index vs HEAD) or
// unstaged (worktree vs index).
func (c *Controller) RequestDiff(path string, staged bool) {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.enqueue(keyDiff, queue.User,
		pendingAction{Kind: kindDiff, RepoPath: repoPath, Path: path, Staged: staged},
		func() (run.Handle, error) { return c.service.DiffFileRaw(repoPath, path, staged) })
}

// Stage adds paths to the index.
func (c *Controller) Stage(paths []string) {
	c.userAction("stage", refreshSet{Status: true},
		func(repoPath string) (run.Handle, error) { return c.service.Stage(repoPath, paths) })
}

// Unstage removes paths from the index, keeping worktree changes.
func (c *Controller) Unstage(paths []string) {
	c.userAction("unstage", refreshSet{Status: true},
		func(repoPath string) (run.Handle, error) { return c.service.Unstage(repoPath, paths) })
}

// Discard throws away worktree changes for paths.
func (c *Controller) Discard(paths []string) {
	c.userAction("discard", refreshSet{Status: true},
		func(repoPath string) (run.Handle, error) { return c.service.Discard(repoPath, paths) })
}

// Commit records staged changes; amend rewrites the previous commit.
func (c *Controller) Commit(message string, amend bool) {
	c.userAction("commit", refreshSet{Status: true, Log: true},
		func(repoPath string) (run.Handle, error) { return c.service.Commit(repoPath, message, amend) })
}

// Fetch updates remote-tracking refs.
func (c *Controller) Fetch() {
	c.userAction("fetch", refreshSet{Branches: true},
		func(repoPath string) (run.Handle, error) { return c.service.Fetch(repoPath) })
}

// Pull fast-forwards the current branch.
func (c *Controller) Pull() {
	c.userAction("pull", refreshSet{Status: true, Log: true},
		func(repoPath string) (run.Handle, error) { return c.service.PullFFOnly(repoPath) })
}

// Push pushes the current branch. With setUpstream, remote and branch are
// required and tracking is configured.
func (c *Controller) Push(setUpstream bool, remote, branch string) {
	c.userAction("push", refreshSet{Branches: true},
		func(repoPath string) (run.Handle, error) {
			return c.service.Push(repoPath, setUpstream, remote, branch)
		})
}

// SwitchBranch checks out an existing branch.
func (c *Controller) SwitchBranch(name string) {
	c.userAction("switch-branch", refreshSet{Status: true, Branches: true},
		func(repoPath string) (run.Handle, error) { return c.service.SwitchBranch(repoPath, name) })
}

// CreateBranch creates and switches to a new branch from fromRef (HEAD when
// empty).
func (c *Controller) CreateBranch(name, fromRef string) {
	c.userAction("create-branch", refreshSet{Status: true, Branches: true},
		func(repoPath string) (run.Handle, error) { return c.service.CreateBranch(repoPath, name, fromRef) })
}

// DeleteBranch deletes a local branch; force discards unmerged commits.
func (c *Controller) DeleteBranch(name string, force bool) {
	c.userAction("delete-branch", refreshSet{Branches: true},
		func(repoPath string) (run.Handle, error) { return c.service.DeleteBranch(repoPath, name, force) })
}

// DeleteRemoteBranch deletes a branch on a remote.
func (c *Controller) DeleteRemoteBranch(remote, name string) {
	c.userAction("delete-remote-branch", refreshSet{Branches: true, RemoteBranches: true},
		func(repoPath string) (run.Handle, error) {
			return c.service.DeleteRemoteBranch(repoPath, remote, name)
		})
}

// SetUpstream points a branch (current when empty) at an upstream ref.
func (c *Controller) SetUpstream(upstream, branch string) {
	c.userAction("set-upstream", refreshSet{Branches: true},
		func(repoPath string) (run.Handle, error) { return c.service.SetUpstream(repoPath, upstream, branch) })
}

// StashSave stashes local changes.
func (c *Controller) StashSave(message string, includeUntracked bool) {
	c.userAction("stash-save", refreshSet{Status: true, Stashes: true},
		func(repoPath string) (run.Handle, error) {
			return c.service.StashSave(repoPath, message, includeUntracked)
		})
}

// StashApply applies a stash without dropping it.
func (c *Controller) StashApply(ref string) {
	c.userAction("stash-apply", refreshSet{Status: true},
		func(repoPath string) (run.Handle, error) { return c.service.StashApply(repoPath, ref) })
}

// StashPop applies a stash and drops it on success.
func (c *Controller) StashPop(ref string) {
	c.userAction("stash-pop", refreshSet{Status: true, Stashes: true},
		func(repoPath string) (run.Handle, error) { return c.service.StashPop(repoPath, ref) })
}

// StashDrop deletes a stash entry.
func (c *Controller) StashDrop(ref string) {
	c.userAction("stash-drop", refreshSet{Stashes: true},
		func(repoPath string) (run.Handle, error) { return c.service.StashDrop(repoPath, ref) })
}

// CreateTag creates a lightweight tag at ref (HEAD when empty).
func (c *Controller) CreateTag(name, ref string) {
	c.userAction("create-tag", refreshSet{Tags: true},
		func(repoPath string) (run.Handle, error) { return c.service.CreateTag(repoPath, name, ref) })
}

// DeleteTag deletes a local tag.
func (c *Controller) DeleteTag(name string) {
	c.userAction("delete-tag", refreshSet{Tags: true},
		func(repoPath string) (run.Handle, error) { return c.service.DeleteTag(repoPath, name) })
}

// PushTag pushes one tag to remote (origin when empty).
func (c *Controller) PushTag(name, remote string) {
	c.userAction("push-tag", refreshSet{},
		func(repoPath string) (run.Handle, error) { return c.service.PushTag(repoPath, name, remote) })
}

// PushTags pushes every tag to remote (origin when empty).
func (c *Controller) PushTags(remote string) {
	c.userAction("push-tags", refreshSet{},
		func(repoPath string) (run.Handle, error) { return c.service.PushTags(repoPath, remote) })
}

// AddRemote registers a new remote.
func (c *Controller) AddRemote(name, url string) {
	c.userAction("add-remote", refreshSet{Remotes: true},
		func(repoPath string) (run.Handle, error) { return c.service.AddRemote(repoPath, name, url) })
}

// RemoveRemote deletes a remote.
func (c *Controller) RemoveRemote(name string) {
	c.userAction("remove-remote", refreshSet{Remotes: true},
		func(repoPath string) (run.Handle, error) { return c.service.RemoveRemote(repoPath, name) })
}

// SetRemoteURL updates a remote's URL.
func (c *Controller) SetRemoteURL(name, url string) {
	c.userAction("set-remote-url", refreshSet{Remotes: true},
		func(repoPath string) (run.Handle, error) { return c.service.SetRemoteURL(repoPath, name, url) })
}

// CancelRunning asks the in-flight command to terminate. It reports whether
// a signal was delivered.
func (c *Controller) CancelRunning() bool {
	return c.signalRunning(c.service.Runner().Cancel)
}

// KillRunning force-kills the in-flight command.
func (c *Controller) KillRunning() bool {
	return c.signalRunning(c.service.Runner().Kill)
}

func (c *Controller) signalRunning(signal func(run.Handle) bool) bool {
	c.mu.Lock()
	handles := make([]run.Handle, 0, len(c.pending))
	for h := range c.pending {
		handles = append(handles, h)
	}
	c.mu.Unlock()

	delivered := false
	for _, h := range handles {
		if signal(h) {
			delivered = true
		}
	}
	return delivered
}

// PushFailedNeedsUpstream reports whether err is a push that was rejected
// for lacking an upstream, the failure RetryPushSetUpstream can fix.
func PushFailedNeedsUpstream(err error) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	if !slices.Contains(cmdErr.Args, "push") {
		return false
	}
	return strings.Contains(strings.ToLower(string(cmdErr.Stderr)), "no upstream branch")
}

// RetryPushSetUpstream re-runs a failed push with an upstream argument,
// using the current branch and the first configured remote. It reports false
// when the last error is not that failure or the branch is unknown.
func (c *Controller) RetryPushSetUpstream() bool {
	snap := c.Snapshot()
	if !PushFailedNeedsUpstream(snap.LastError) {
		return false
	}
	branch := snap.CurrentBranch()
	if branch == "" {
		return false
	}
	c.Push(true, snap.DefaultRemote(), branch)
	return true
}

// requireRepo reports whether a repository is open, recording NotARepoError
// when none is.
func (c *Controller) requireRepo() (string, bool) {
	snap := c.state.snapshot()
	if snap.RepoPath == "" {
		c.state.update(func(v *Snapshot) { v.LastError = &NotARepoError{Path: "(none)"} })
		c.notifyStateChanged()
		return "", false
	}
	return snap.RepoPath, true
}

// userAction schedules a user-priority command whose success triggers the
// given refreshes.
func (c *Controller) userAction(kind string, refresh refreshSet, submit func(string) (run.Handle, error)) {
	repoPath, ok := c.requireRepo()
	if !ok {
		return
	}
	c.enqueue(kind, queue.User,
		pendingAction{Kind: kind, RepoPath: repoPath, Refresh: refresh},
		func() (run.Handle, error) { return submit(repoPath) })
}

// enqueue schedules work through the queue. The start closure runs when the
// queue grants the slot: it submits the command, registers the pending
// action and flips the busy flag. A submission error (an intent rejected by
// its builder) surfaces through LastError and releases the slot.
func (c *Controller) enqueue(key string, priority queue.Priority, action pendingAction, submit func() (run.Handle, error)) {
	c.queue.Enqueue(queue.Item{
		Key:      key,
		Priority: priority,
		Start: func() {
			h, err := submit()
			if err != nil {
				c.state.update(func(v *Snapshot) { v.LastError = err })
				c.notifyStateChanged()
				c.queue.MarkIdle()
				return
			}

			c.mu.Lock()
			early, finished := c.orphans[h]
			if finished {
				delete(c.orphans, h)
			} else {
				c.pending[h] = action
			}
			c.mu.Unlock()

			c.state.update(func(v *Snapshot) { v.Busy = true })
			c.notifyStateChanged()

			if finished {
				// The command outran its own registration; complete it here
				// on the submitting goroutine.
				c.finish(action, early)
			}
		},
	})
}

func (c *Controller) enqueueRefresh(key, kind, repoPath string, submit func() (run.Handle, error)) {
	c.enqueue(key, queue.Background, pendingAction{Kind: kind, RepoPath: repoPath}, submit)
}

func (c *Controller) refreshStatus(repoPath string) {
	c.enqueueRefresh(keyRefreshStatus, kindStatus, repoPath,
		func() (run.Handle, error) { return c.service.StatusRaw(repoPath) })
}

func (c *Controller) refreshLog(repoPath string) {
	c.enqueueRefresh(keyRefreshLog, kindLog, repoPath,
		func() (run.Handle, error) { return c.service.LogRaw(repoPath, c.logLimit) })
}

func (c *Controller) refreshBranches(repoPath string) {
	c.enqueueRefresh(keyRefreshBranches, kindBranches, repoPath,
		func() (run.Handle, error) { return c.service.BranchesRaw(repoPath) })
}

func (c *Controller) refreshRemoteBranches(repoPath string) {
	c.enqueueRefresh(keyRefreshRemoteBranches, kindRemoteBranches, repoPath,
		func() (run.Handle, error) { return c.service.RemoteBranchesRaw(repoPath) })
}

func (c *Controller) refreshStashes(repoPath string) {
	c.enqueueRefresh(keyRefreshStashes, kindStashes, repoPath,
		func() (run.Handle, error) { return c.service.StashListRaw(repoPath) })
}

func (c *Controller) refreshTags(repoPath string) {
	c.enqueueRefresh(keyRefreshTags, kindTags, repoPath,
		func() (run.Handle, error) { return c.service.TagsRaw(repoPath) })
}

func (c *Controller) refreshRemotes(repoPath string) {
	c.enqueueRefresh(keyRefreshRemotes, kindRemotes, repoPath,
		func() (run.Handle, error) { return c.service.RemotesRaw(repoPath) })
}

func (c *Controller) refreshAll(repoPath string) {
	c.refreshStatus(repoPath)
	c.refreshLog(repoPath)
	c.refreshBranches(repoPath)
	c.refreshRemoteBranches(repoPath)
	c.refreshStashes(repoPath)
	c.refreshTags(repoPath)
	c.refreshRemotes(repoPath)
	c.enqueueRefresh(keyRefreshConflicts, kindConflicts, repoPath,
		func() (run.Handle, error) { return c.service.ConflictsRaw(repoPath) })
}

// run is the dispatcher loop. It owns every state mutation that follows from
// a command result.
func (c *Controller) run() {
	events := c.service.Runner().Events()
	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handleEvent(ev)
		}
	}
}

func (c *Controller) handleEvent(ev run.Event) {
	switch ev := ev.(type) {
	case run.StartedEvent:
		c.debugf("run %d start: %s", ev.Handle, strings.Join(ev.Spec.Args, " "))
	case run.OutputEvent:
		// Chunks are trace-only; the full output arrives with the result.
	case run.FinishedEvent:
		c.handleFinished(ev)
	}
}

func (c *Controller) handleFinished(ev run.FinishedEvent) {
	c.mu.Lock()
	action, known := c.pending[ev.Handle]
	if !known {
		// The submitter has not registered this handle yet; park the result
		// for the registration path to complete.
		c.orphans[ev.Handle] = ev
		c.mu.Unlock()
		return
	}
	delete(c.pending, ev.Handle)
	c.mu.Unlock()

	c.finish(action, ev)
}

// finish is the single point where a result becomes state. Whatever
// happened, it ends by recomputing busy, notifying observers, and releasing
// the queue slot.
func (c *Controller) finish(action pendingAction, ev run.FinishedEvent) {
	c.debugf("run %d finish: exit %d in %s", ev.Handle, ev.Result.ExitCode, ev.Result.Duration)

	c.applyResult(action, ev)

	c.mu.Lock()
	remaining := len(c.pending)
	c.mu.Unlock()

	c.state.update(func(v *Snapshot) { v.Busy = remaining > 0 })
	c.notifyStateChanged()
	c.queue.MarkIdle()
}

func (c *Controller) applyResult(action pendingAction, ev run.FinishedEvent) {
	if action.Kind == kindValidateRepo {
		c.applyValidation(action, ev)
		return
	}

	if !ev.Result.OK() {
		c.state.update(func(v *Snapshot) { v.LastError = classifyFailure(ev) })
		return
	}

	if err := c.applyPayload(action, ev.Result.Stdout); err != nil {
		c.state.update(func(v *Snapshot) { v.LastError = err })
		return
	}

	c.state.update(func(v *Snapshot) { v.LastError = nil })
	c.scheduleRefreshes(action.RepoPath, action.Refresh)
}

// applyValidation gates repository opening on the literal verdict "true".
// A non-zero exit or any other stdout both mean the path is not a work tree.
func (c *Controller) applyValidation(action pendingAction, ev run.FinishedEvent) {
	verdict := strings.TrimSpace(git.DecodeText(ev.Result.Stdout))
	if !ev.Result.OK() || verdict != "true" {
		c.state.update(func(v *Snapshot) { v.LastError = &NotARepoError{Path: action.RepoPath} })
		return
	}

	// Opening a repository resets every pane; data from a previously open
	// repository must not linger.
	c.state.update(func(v *Snapshot) {
		*v = Snapshot{RepoPath: action.RepoPath, GitVersion: v.GitVersion}
	})
	c.refreshAll(action.RepoPath)
}

// applyPayload parses stdout for the action kind and stores the result. A
// panic inside a parser surfaces as a ParseError instead of taking down the
// dispatcher.
func (c *Controller) applyPayload(action pendingAction, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ParseError{Kind: action.Kind, Raw: payload}
		}
	}()

	switch action.Kind {
	case kindStatus:
		status := git.ParseStatus(payload)
		c.state.update(func(v *Snapshot) { v.Status = &status })
	case kindLog:
		commits := git.ParseLog(payload)
		c.state.update(func(v *Snapshot) { v.Log = commits })
	case kindBranches:
		branches := git.ParseBranches(payload)
		c.state.update(func(v *Snapshot) { v.Branches = branches })
	case kindRemoteBranches:
		branches := git.ParseRemoteBranches(payload)
		c.state.update(func(v *Snapshot) { v.RemoteBranches = branches })
	case kindConflicts:
		paths := git.ParseConflicts(payload)
		c.state.update(func(v *Snapshot) { v.Conflicts = paths })
	case kindStashes:
		stashes := git.ParseStash(payload)
		c.state.update(func(v *Snapshot) { v.Stashes = stashes })
	case kindTags:
		tags := git.ParseTags(payload)
		c.state.update(func(v *Snapshot) { v.Tags = tags })
	case kindRemotes:
		remotes := git.ParseRemotes(payload)
		c.state.update(func(v *Snapshot) { v.Remotes = remotes })
	case kindDiff:
		text := git.DecodeText(payload)
		c.state.update(func(v *Snapshot) {
			v.DiffText = text
			v.DiffPath = action.Path
			v.DiffStaged = action.Staged
		})
	case kindVersion:
		version := strings.TrimSpace(git.DecodeText(payload))
		c.state.update(func(v *Snapshot) { v.GitVersion = version })
	}
	return nil
}

func (c *Controller) scheduleRefreshes(repoPath string, refresh refreshSet) {
	if repoPath == "" {
		return
	}
	if refresh.Status {
		c.refreshStatus(repoPath)
	}
	if refresh.Log {
		c.refreshLog(repoPath)
	}
	if refresh.Branches {
		c.refreshBranches(repoPath)
	}
	if refresh.RemoteBranches {
		c.refreshRemoteBranches(repoPath)
	}
	if refresh.Stashes {
		c.refreshStashes(repoPath)
	}
	if refresh.Tags {
		c.refreshTags(repoPath)
	}
	if refresh.Remotes {
		c.refreshRemotes(repoPath)
	}
}

// classifyFailure maps a non-zero result onto the error taxonomy: credential
// rejections become AuthError, everything else CommandError.
func classifyFailure(ev run.FinishedEvent) error {
	if isAuthFailure(ev.Result.Stderr) {
		return &AuthError{Args: ev.Spec.Args, Stderr: ev.Result.Stderr}
	}
	return &CommandError{
		Args:     ev.Spec.Args,
		ExitCode: ev.Result.ExitCode,
		Stdout:   ev.Result.Stdout,
		Stderr:   ev.Result.Stderr,
	}
}

func (c *Controller) notifyStateChanged() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

func (c *Controller) debugf(format string, args ...any) {
	if c.logf == nil {
		return
	}
	c.logf(format, args...)
}

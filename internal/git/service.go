package git

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gitdeck/gitdeck/internal/run"
)

// defaultLogLimit bounds LogRaw when the caller passes no limit.
const defaultLogLimit = 300

// Service is the intent layer between the controller and the git runner.
// Every method is a pure builder: it validates its inputs, submits the
// command and returns the handle. No parsing and no state mutation happen
// at submission time; results come back on the runner's event channel and
// are parsed by the controller through the package-level parse functions.
type Service struct {
	runner *Runner
}

// NewService wraps runner.
func NewService(runner *Runner) *Service {
	return &Service{runner: runner}
}

// Runner exposes the process runner for event-channel wiring.
func (s *Service) Runner() run.Runner { return s.runner.Runner() }

// StatusRaw requests machine-readable status. --porcelain=v2 is the stable
// format, -b adds the branch headers, -z separates records with NUL so paths
// with spaces or newlines survive.
func (s *Service) StatusRaw(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{"status", "--porcelain=v2", "-b", "-z"}, repoPath, nil)
}

// DiffFileRaw requests the diff for one path, staged (index vs HEAD) or
// unstaged (worktree vs index).
func (s *Service) DiffFileRaw(repoPath, path string, staged bool) (run.Handle, error) {
	if path == "" {
		return 0, errors.New("diff requires a path")
	}
	args := []string{"diff", "--no-color"}
	if staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)
	return s.runner.Run(args, repoPath, nil)
}

// Stage adds paths to the index.
func (s *Service) Stage(repoPath string, paths []string) (run.Handle, error) {
	if len(paths) == 0 {
		return 0, errors.New("stage requires at least one path")
	}
	return s.runner.Run(append([]string{"add", "--"}, paths...), repoPath, nil)
}

// Unstage removes paths from the index, keeping worktree changes.
func (s *Service) Unstage(repoPath string, paths []string) (run.Handle, error) {
	if len(paths) == 0 {
		return 0, errors.New("unstage requires at least one path")
	}
	return s.runner.Run(append([]string{"restore", "--staged", "--"}, paths...), repoPath, nil)
}

// Discard throws away worktree changes for paths.
func (s *Service) Discard(repoPath string, paths []string) (run.Handle, error) {
	if len(paths) == 0 {
		return 0, errors.New("discard requires at least one path")
	}
	return s.runner.Run(append([]string{"restore", "--"}, paths...), repoPath, nil)
}

// Commit records staged changes. amend rewrites the previous commit instead.
func (s *Service) Commit(repoPath, message string, amend bool) (run.Handle, error) {
	if strings.TrimSpace(message) == "" {
		return 0, errors.New("commit requires a message")
	}
	args := []string{"commit"}
	if amend {
		args = append(args, "--amend")
	}
	args = append(args, "-m", message)
	return s.runner.Run(args, repoPath, nil)
}

// Fetch updates remote-tracking refs.
func (s *Service) Fetch(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{"fetch"}, repoPath, nil)
}

// PullFFOnly pulls, refusing anything that is not a fast-forward.
func (s *Service) PullFFOnly(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{"pull", "--ff-only"}, repoPath, nil)
}

// Push pushes the current branch. With setUpstream the remote and branch are
// required and tracking is configured via -u.
func (s *Service) Push(repoPath string, setUpstream bool, remote, branch string) (run.Handle, error) {
	args := []string{"push"}
	if setUpstream {
		if remote == "" || branch == "" {
			return 0, errors.New("push with upstream requires a remote and a branch")
		}
		args = append(args, "-u", remote, branch)
	}
	return s.runner.Run(args, repoPath, nil)
}

// LogRaw requests structured log records for the most recent commits.
func (s *Service) LogRaw(repoPath string, limit int) (run.Handle, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return s.runner.Run([]string{
		"log",
		"--date=iso-strict",
		"--pretty=format:" + logFormat,
		"-n",
		strconv.Itoa(limit),
	}, repoPath, nil)
}

// BranchesRaw lists local branches with upstream tracking info.
func (s *Service) BranchesRaw(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{"branch", "--format=" + branchFormat}, repoPath, nil)
}

// RemoteBranchesRaw lists remote-tracking branches.
func (s *Service) RemoteBranchesRaw(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{"branch", "-r", "--format=%(refname:short)"}, repoPath, nil)
}

// ConflictsRaw lists conflicted paths.
func (s *Service) ConflictsRaw(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{"diff", "--name-only", "--diff-filter=U"}, repoPath, nil)
}

// StashListRaw requests structured stash records.
func (s *Service) StashListRaw(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{
		"stash", "list", "--date=iso-strict", "--pretty=format:" + stashFormat,
	}, repoPath, nil)
}

// StashSave stashes local changes, optionally with untracked files and a
// message.
func (s *Service) StashSave(repoPath, message string, includeUntracked bool) (run.Handle, error) {
	args := []string{"stash", "push"}
	if includeUntracked {
		args = append(args, "-u")
	}
	if message != "" {
		args = append(args, "-m", message)
	}
	return s.runner.Run(args, repoPath, nil)
}

// StashApply applies a stash without dropping it. An empty ref targets the
// most recent stash.
func (s *Service) StashApply(repoPath, ref string) (run.Handle, error) {
	args := []string{"stash", "apply"}
	if ref != "" {
		args = append(args, ref)
	}
	return s.runner.Run(args, repoPath, nil)
}

// StashPop applies a stash and drops it on success.
func (s *Service) StashPop(repoPath, ref string) (run.Handle, error) {
	args := []string{"stash", "pop"}
	if ref != "" {
		args = append(args, ref)
	}
	return s.runner.Run(args, repoPath, nil)
}

// StashDrop deletes a stash entry without applying it.
func (s *Service) StashDrop(repoPath, ref string) (run.Handle, error) {
	args := []string{"stash", "drop"}
	if ref != "" {
		args = append(args, ref)
	}
	return s.runner.Run(args, repoPath, nil)
}

// TagsRaw lists tag names.
func (s *Service) TagsRaw(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{"tag", "--list"}, repoPath, nil)
}

// CreateTag creates a lightweight tag at ref, defaulting to HEAD.
func (s *Service) CreateTag(repoPath, name, ref string) (run.Handle, error) {
	if name == "" {
		return 0, errors.New("create tag requires a name")
	}
	args := []string{"tag", name}
	if ref != "" {
		args = append(args, ref)
	}
	return s.runner.Run(args, repoPath, nil)
}

// DeleteTag deletes a local tag.
func (s *Service) DeleteTag(repoPath, name string) (run.Handle, error) {
	if name == "" {
		return 0, errors.New("delete tag requires a name")
	}
	return s.runner.Run([]string{"tag", "-d", name}, repoPath, nil)
}

// PushTag pushes one tag to a remote, defaulting to origin.
func (s *Service) PushTag(repoPath, name, remote string) (run.Handle, error) {
	if name == "" {
		return 0, errors.New("push tag requires a name")
	}
	if remote == "" {
		remote = "origin"
	}
	return s.runner.Run([]string{"push", remote, name}, repoPath, nil)
}

// PushTags pushes every tag to a remote, defaulting to origin.
func (s *Service) PushTags(repoPath, remote string) (run.Handle, error) {
	if remote == "" {
		remote = "origin"
	}
	return s.runner.Run([]string{"push", remote, "--tags"}, repoPath, nil)
}

// RemotesRaw lists remotes with their fetch and push URLs.
func (s *Service) RemotesRaw(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{"remote", "-v"}, repoPath, nil)
}

// AddRemote registers a new remote.
func (s *Service) AddRemote(repoPath, name, url string) (run.Handle, error) {
	if name == "" || url == "" {
		return 0, errors.New("add remote requires a name and a url")
	}
	return s.runner.Run([]string{"remote", "add", name, url}, repoPath, nil)
}

// RemoveRemote deletes a remote.
func (s *Service) RemoveRemote(repoPath, name string) (run.Handle, error) {
	if name == "" {
		return 0, errors.New("remove remote requires a name")
	}
	return s.runner.Run([]string{"remote", "remove", name}, repoPath, nil)
}

// SetRemoteURL updates a remote's URL.
func (s *Service) SetRemoteURL(repoPath, name, url string) (run.Handle, error) {
	if name == "" || url == "" {
		return 0, errors.New("set remote url requires a name and a url")
	}
	return s.runner.Run([]string{"remote", "set-url", name, url}, repoPath, nil)
}

// SetUpstream points a branch at an upstream. An empty branch targets the
// current one.
func (s *Service) SetUpstream(repoPath, upstream, branch string) (run.Handle, error) {
	if upstream == "" {
		return 0, errors.New("set upstream requires an upstream ref")
	}
	args := []string{"branch", "--set-upstream-to", upstream}
	if branch != "" {
		args = append(args, branch)
	}
	return s.runner.Run(args, repoPath, nil)
}

// SwitchBranch checks out an existing branch.
func (s *Service) SwitchBranch(repoPath, name string) (run.Handle, error) {
	if name == "" {
		return 0, errors.New("switch requires a branch name")
	}
	return s.runner.Run([]string{"switch", name}, repoPath, nil)
}

// CreateBranch creates and switches to a new branch. fromRef defaults to
// HEAD.
func (s *Service) CreateBranch(repoPath, name, fromRef string) (run.Handle, error) {
	if name == "" {
		return 0, errors.New("create branch requires a name")
	}
	if fromRef == "" {
		fromRef = "HEAD"
	}
	return s.runner.Run([]string{"switch", "-c", name, fromRef}, repoPath, nil)
}

// DeleteBranch deletes a local branch; force uses -D.
func (s *Service) DeleteBranch(repoPath, name string, force bool) (run.Handle, error) {
	if name == "" {
		return 0, errors.New("delete branch requires a name")
	}
	flag := "-d"
	if force {
		flag = "-D"
	}
	return s.runner.Run([]string{"branch", flag, name}, repoPath, nil)
}

// DeleteRemoteBranch deletes a branch on a remote via push --delete.
func (s *Service) DeleteRemoteBranch(repoPath, remote, name string) (run.Handle, error) {
	if remote == "" || name == "" {
		return 0, errors.New("delete remote branch requires a remote and a name")
	}
	return s.runner.Run([]string{"push", remote, "--delete", name}, repoPath, nil)
}

// IsInsideWorkTreeRaw asks git whether repoPath is inside a work tree.
// Success is gated on stdout being the literal "true", not just exit zero.
func (s *Service) IsInsideWorkTreeRaw(repoPath string) (run.Handle, error) {
	return s.runner.Run([]string{"rev-parse", "--is-inside-work-tree"}, repoPath, nil)
}

// VersionRaw reports the installed git version. Runs without a working
// directory so it works before any repo is open.
func (s *Service) VersionRaw() (run.Handle, error) {
	return s.runner.Run([]string{"--version"}, "", nil)
}

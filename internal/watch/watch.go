// Package watch notifies the UI when a repository changes on disk, so
// panes refresh after commits, fetches, or branch switches made outside
// the application.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RepoWatcher watches a repository's git directory and coalesces change
// bursts into single events.
type RepoWatcher struct {
	Started     bool
	Waiting     bool
	GitDir      string
	Roots       []string
	Events      chan struct{}
	Done        chan struct{}
	Paths       map[string]struct{}
	Mu          sync.Mutex
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time

	repoPath string
	debounce time.Duration
	logf     func(string, ...any)
}

// NewRepoWatcher creates a watcher for the repository at repoPath.
// Events closer together than debounce are reported as one.
func NewRepoWatcher(repoPath string, debounce time.Duration, logf func(string, ...any)) *RepoWatcher {
	return &RepoWatcher{
		repoPath: repoPath,
		debounce: debounce,
		logf:     logf,
	}
}

// Start resolves the git directory and begins watching it. It reports
// false without error when the watcher is already running or repoPath
// has no git directory.
func (w *RepoWatcher) Start() (bool, error) {
	if w.Started {
		return false, nil
	}
	gitDir := ResolveGitDir(w.repoPath)
	if gitDir == "" {
		w.debugf("watch: no git directory under %s", w.repoPath)
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.Started = true
	w.Watcher = watcher
	w.GitDir = gitDir
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})
	w.Paths = make(map[string]struct{})
	w.Roots = []string{
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "logs"),
		filepath.Join(gitDir, "worktrees"),
	}
	// The top level catches HEAD, index and MERGE_HEAD updates.
	w.addWatchDir(gitDir)
	for _, root := range w.Roots {
		w.addWatchTree(root)
	}

	go w.run()
	return true, nil
}

// Stop shuts the watcher down. Safe to call when never started.
func (w *RepoWatcher) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent hands out the event channel once until ResetWaiting is
// called, so only one listener at a time blocks on it.
func (w *RepoWatcher) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting re-arms NextEvent after an event has been consumed.
func (w *RepoWatcher) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh reports whether enough quiet time has passed since the
// last accepted refresh, and records now when it has.
func (w *RepoWatcher) ShouldRefresh(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < w.debounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// Signal delivers a change notification without blocking. A signal
// already pending stands for any number of further ones.
func (w *RepoWatcher) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

func (w *RepoWatcher) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.maybeWatchNewDir(event.Name)
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("watch: %v", err)
		}
	}
}

// maybeWatchNewDir registers directories created under a watch root,
// such as refs/heads subtrees for namespaced branches.
func (w *RepoWatcher) maybeWatchNewDir(path string) {
	if !w.isUnderRoot(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addWatchDir(path)
}

func (w *RepoWatcher) isUnderRoot(path string) bool {
	if path == "" {
		return false
	}
	for _, root := range w.Roots {
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *RepoWatcher) addWatchDir(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.Mu.Lock()
	defer w.Mu.Unlock()

	if _, ok := w.Paths[path]; ok {
		return
	}
	if err := w.Watcher.Add(path); err != nil {
		w.debugf("watch add failed for %s: %v", path, err)
		return
	}
	w.Paths[path] = struct{}{}
}

func (w *RepoWatcher) addWatchTree(root string) {
	if root == "" {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		w.addWatchDir(path)
		return nil
	})
}

func (w *RepoWatcher) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}

// ResolveGitDir locates the git directory for repoPath without running
// git. A plain repository keeps it at .git; linked worktrees and
// submodules leave a pointer file there instead, and a worktree's
// private directory names the shared one in its commondir file.
func ResolveGitDir(repoPath string) string {
	if repoPath == "" {
		return ""
	}
	dotGit := filepath.Join(repoPath, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		return dotGit
	}

	// #nosec G304 -- the path is derived from the repository being watched
	data, err := os.ReadFile(dotGit)
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(data))
	const prefix = "gitdir:"
	if !strings.HasPrefix(line, prefix) {
		return ""
	}
	gitDir := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if gitDir == "" {
		return ""
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(repoPath, gitDir)
	}

	// #nosec G304 -- same constraint as above
	if common, err := os.ReadFile(filepath.Join(gitDir, "commondir")); err == nil {
		commonDir := strings.TrimSpace(string(common))
		if commonDir != "" {
			if !filepath.IsAbs(commonDir) {
				commonDir = filepath.Join(gitDir, commonDir)
			}
			return filepath.Clean(commonDir)
		}
	}
	return filepath.Clean(gitDir)
}

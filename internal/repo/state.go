package repo

import (
	"sync"

	"github.com/gitdeck/gitdeck/internal/models"
)

// Snapshot is a point-in-time copy of everything the engine knows about the
// open repository. A nil Status or nil slice means not loaded yet, as opposed
// to loaded and empty.
//
// Slice fields are replaced wholesale on refresh and never mutated in place,
// so a snapshot stays stable after it is taken.
type Snapshot struct {
	RepoPath   string
	GitVersion string

	Status         *models.RepoStatus
	Log            []models.Commit
	Branches       []models.Branch
	RemoteBranches []models.RemoteBranch
	Stashes        []models.StashEntry
	Tags           []models.Tag
	Remotes        []models.Remote
	Conflicts      []string

	// DiffText is the most recently requested diff; DiffPath and DiffStaged
	// say which file and side it describes.
	DiffText   string
	DiffPath   string
	DiffStaged bool

	LastError error
	Busy      bool
}

// CurrentBranch returns the checked-out branch name, preferring the status
// headers and falling back to the branch list. Empty when detached or when
// nothing is loaded.
func (s Snapshot) CurrentBranch() string {
	if s.Status != nil && s.Status.Branch != nil && s.Status.Branch.Name != "" {
		return s.Status.Branch.Name
	}
	for _, branch := range s.Branches {
		if branch.IsCurrent {
			return branch.Name
		}
	}
	return ""
}

// DefaultRemote returns the first configured remote, or "origin" when none
// are loaded.
func (s Snapshot) DefaultRemote() string {
	if len(s.Remotes) > 0 {
		return s.Remotes[0].Name
	}
	return "origin"
}

// state holds the mutable repository view. The controller is the only writer;
// snapshots are read from other goroutines, so access is guarded.
type state struct {
	mu   sync.RWMutex
	snap Snapshot
}

func (s *state) snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// update applies one mutation under the write lock.
func (s *state) update(mutate func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.snap)
}

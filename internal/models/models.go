// Package models defines the data objects shared across gitdeck packages.
package models

// FileChange is a single file entry from git status porcelain v2.
type FileChange struct {
	Path string
	// Staged and Unstaged hold the two porcelain status letters ("." means
	// no change in that area). Untracked entries use "?" for both.
	Staged   string
	Unstaged string
	// OrigPath is set for renames and copies: the path before the move.
	OrigPath string
}

// BranchInfo carries the branch headers from a porcelain v2 status payload.
type BranchInfo struct {
	Name     string // empty when HEAD is detached or unknown
	HeadOID  string // empty for an unborn branch
	Upstream string
	Ahead    int
	Behind   int
}

// RepoStatus groups the working-tree state the way the panes consume it.
type RepoStatus struct {
	Branch     *BranchInfo
	Staged     []FileChange
	Unstaged   []FileChange
	Untracked  []FileChange
	Conflicted []FileChange
}

// Branch is a single row from `git branch --format=...` output.
type Branch struct {
	Name      string
	IsCurrent bool
	Upstream  string
	Ahead     int
	Behind    int
	// Gone reports that the upstream branch no longer exists.
	Gone bool
}

// RemoteBranch is one entry from `git branch -r`.
type RemoteBranch struct {
	Remote string
	Name   string
	// FullName keeps the original remote/name form for re-selection.
	FullName string
}

// Commit is one record from structured `git log` output.
type Commit struct {
	OID         string
	Parents     []string // empty for a root commit
	AuthorName  string
	AuthorEmail string
	// AuthorDate keeps the raw ISO-8601 string; formatting happens in the UI.
	AuthorDate string
	Subject    string
}

// StashEntry is a single row from structured `git stash list` output.
type StashEntry struct {
	OID      string
	Selector string // stash@{N}, used to re-address the entry
	Summary  string
	Date     string
}

// Tag is a single tag name.
type Tag struct {
	Name string
}

// Remote is a named remote with its fetch and push URLs merged from
// `git remote -v` output.
type Remote struct {
	Name     string
	FetchURL string
	PushURL  string
}

package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitdeck/gitdeck/internal/models"
)

func TestSnapshotCurrentBranch(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{
			name: "status headers win",
			snap: Snapshot{
				Status:   &models.RepoStatus{Branch: &models.BranchInfo{Name: "main"}},
				Branches: []models.Branch{{Name: "feature", IsCurrent: true}},
			},
			want: "main",
		},
		{
			name: "falls back to branch list when detached",
			snap: Snapshot{
				Status:   &models.RepoStatus{Branch: &models.BranchInfo{Name: ""}},
				Branches: []models.Branch{{Name: "main"}, {Name: "feature", IsCurrent: true}},
			},
			want: "feature",
		},
		{
			name: "nothing loaded",
			snap: Snapshot{},
			want: "",
		},
		{
			name: "no current branch anywhere",
			snap: Snapshot{Branches: []models.Branch{{Name: "main"}}},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.snap.CurrentBranch())
		})
	}
}

func TestSnapshotDefaultRemote(t *testing.T) {
	assert.Equal(t, "origin", Snapshot{}.DefaultRemote())

	snap := Snapshot{Remotes: []models.Remote{
		{Name: "upstream"},
		{Name: "origin"},
	}}
	assert.Equal(t, "upstream", snap.DefaultRemote())
}

func TestStateSnapshotIsolation(t *testing.T) {
	s := &state{}
	s.update(func(v *Snapshot) {
		v.RepoPath = "/tmp/repo"
		v.Tags = []models.Tag{{Name: "v1.0.0"}}
	})

	before := s.snapshot()
	s.update(func(v *Snapshot) {
		v.RepoPath = "/tmp/other"
		v.Tags = []models.Tag{{Name: "v2.0.0"}}
	})

	// The earlier snapshot must not observe later updates.
	assert.Equal(t, "/tmp/repo", before.RepoPath)
	assert.Equal(t, "v1.0.0", before.Tags[0].Name)
	assert.Equal(t, "/tmp/other", s.snapshot().RepoPath)
}

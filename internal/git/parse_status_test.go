package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitdeck/gitdeck/internal/models"
)

func changePaths(changes []models.FileChange) []string {
	paths := make([]string, 0, len(changes))
	for _, change := range changes {
		paths = append(paths, change.Path)
	}
	return paths
}

func TestParseStatusBasicLists(t *testing.T) {
	payload := []byte(
		"# branch.oid 1111111\x00" +
			"# branch.head main\x00" +
			"# branch.upstream origin/main\x00" +
			"# branch.ab +1 -2\x00" +
			"1 M. N... 100644 100644 100644 abcdef1 abcdef2 src/app.go\x00" +
			"1 .M N... 100644 100644 100644 abcdef1 abcdef2 README.md\x00" +
			"? untracked.txt\x00")

	status := ParseStatus(payload)

	require.NotNil(t, status.Branch)
	assert.Equal(t, "main", status.Branch.Name)
	assert.Equal(t, "1111111", status.Branch.HeadOID)
	assert.Equal(t, "origin/main", status.Branch.Upstream)
	assert.Equal(t, 1, status.Branch.Ahead)
	assert.Equal(t, 2, status.Branch.Behind)

	assert.Equal(t, []string{"src/app.go"}, changePaths(status.Staged))
	assert.Equal(t, []string{"README.md"}, changePaths(status.Unstaged))
	assert.Equal(t, []string{"untracked.txt"}, changePaths(status.Untracked))
	assert.Empty(t, status.Conflicted)
}

func TestParseStatusBothSidesChanged(t *testing.T) {
	payload := []byte("1 MM N... 100644 100644 100644 abcdef1 abcdef2 both.txt\x00")

	status := ParseStatus(payload)

	assert.Equal(t, []string{"both.txt"}, changePaths(status.Staged))
	assert.Equal(t, []string{"both.txt"}, changePaths(status.Unstaged))
}

func TestParseStatusRenameAndConflict(t *testing.T) {
	payload := []byte(
		"2 R. N... 100644 100644 100644 abcdef1 abcdef2 R100 new.txt\x00" +
			"old.txt\x00" +
			"u UU N... 100644 100644 100644 100644 abcdef1 abcdef2 abcdef3 conflict.txt\x00")

	status := ParseStatus(payload)

	require.Len(t, status.Staged, 1)
	assert.Equal(t, "new.txt", status.Staged[0].Path)
	assert.Equal(t, "old.txt", status.Staged[0].OrigPath)
	assert.Equal(t, []string{"conflict.txt"}, changePaths(status.Conflicted))
}

func TestParseStatusPathsWithSpacesAndNewlines(t *testing.T) {
	payload := []byte(
		"# branch.head main\x00" +
			"1 M. N... 100644 100644 100644 abcdef1 abcdef2 spaced name.txt\x00" +
			"? weird\nname.txt\x00")

	status := ParseStatus(payload)

	assert.Equal(t, []string{"spaced name.txt"}, changePaths(status.Staged))
	assert.Equal(t, []string{"weird\nname.txt"}, changePaths(status.Untracked))
}

func TestParseStatusMalformedBranchHeaderSkipped(t *testing.T) {
	payload := []byte(
		"# branch.oid\x00" +
			"# branch.head main\x00" +
			"1 M. N... 100644 100644 100644 abcdef1 abcdef2 file.txt\x00")

	status := ParseStatus(payload)

	require.NotNil(t, status.Branch)
	assert.Equal(t, "main", status.Branch.Name)
	assert.Empty(t, status.Branch.HeadOID)
}

func TestParseStatusNonNumericCountsDefaultToZero(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ahead   int
		behind  int
	}{
		{name: "bad ahead", payload: "# branch.ab +abc -2\x00", ahead: 0, behind: 2},
		{name: "bad behind", payload: "# branch.ab +1 -xyz\x00", ahead: 1, behind: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ParseStatus([]byte(tt.payload))
			require.NotNil(t, status.Branch)
			assert.Equal(t, tt.ahead, status.Branch.Ahead)
			assert.Equal(t, tt.behind, status.Branch.Behind)
		})
	}
}

func TestParseStatusSkipsDetachedAndInitialMarkers(t *testing.T) {
	payload := []byte(
		"# branch.oid (initial)\x00" +
			"# branch.head (detached)\x00")

	status := ParseStatus(payload)

	require.NotNil(t, status.Branch)
	assert.Empty(t, status.Branch.Name)
	assert.Empty(t, status.Branch.HeadOID)
}

func TestParseStatusNoBranchHeaders(t *testing.T) {
	status := ParseStatus([]byte("? stray.txt\x00"))

	assert.Nil(t, status.Branch)
	assert.Equal(t, []string{"stray.txt"}, changePaths(status.Untracked))
}

func TestParseStatusIgnoredEntriesSkipped(t *testing.T) {
	payload := []byte("! build/\x00? kept.txt\x00")

	status := ParseStatus(payload)

	assert.Equal(t, []string{"kept.txt"}, changePaths(status.Untracked))
	assert.Empty(t, status.Staged)
	assert.Empty(t, status.Unstaged)
}

func TestParseStatusIdempotent(t *testing.T) {
	payload := []byte(
		"# branch.head main\x00" +
			"# branch.upstream origin/main\x00" +
			"# branch.ab +0 -0\x00" +
			"1 .M N... 100644 100644 100644 abcdef1 abcdef2 .gitignore\x00" +
			"? CHANGELOG.md\x00")

	first := ParseStatus(payload)
	second := ParseStatus(payload)

	assert.Equal(t, first, second)

	require.NotNil(t, first.Branch)
	assert.Equal(t, "main", first.Branch.Name)
	assert.Equal(t, "origin/main", first.Branch.Upstream)
	assert.Zero(t, first.Branch.Ahead)
	assert.Zero(t, first.Branch.Behind)
	assert.Equal(t, []string{".gitignore"}, changePaths(first.Unstaged))
	assert.Equal(t, []string{"CHANGELOG.md"}, changePaths(first.Untracked))
}

func TestParseStatusEmptyPayload(t *testing.T) {
	status := ParseStatus(nil)

	assert.Nil(t, status.Branch)
	assert.Empty(t, status.Staged)
	assert.Empty(t, status.Unstaged)
	assert.Empty(t, status.Untracked)
	assert.Empty(t, status.Conflicted)
}

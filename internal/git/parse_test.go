package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitdeck/gitdeck/internal/models"
)

func TestParseLogBasic(t *testing.T) {
	// git writes a newline between formatted records.
	payload := []byte(
		"aaaaaaaa\x1f\x1fAlice\x1falice@example.com\x1f" +
			"2024-01-01T00:00:00+00:00\x1fInitial commit\x1e" +
			"\nbbbbbbbb\x1f1111111 2222222\x1fBob\x1fbob@example.com\x1f" +
			"2024-01-02T00:00:00+00:00\x1fMerge branch\x1e")

	commits := ParseLog(payload)
	require.Len(t, commits, 2)

	first := commits[0]
	assert.Equal(t, "aaaaaaaa", first.OID)
	assert.Empty(t, first.Parents)
	assert.Equal(t, "Alice", first.AuthorName)
	assert.Equal(t, "alice@example.com", first.AuthorEmail)
	assert.Equal(t, "2024-01-01T00:00:00+00:00", first.AuthorDate)
	assert.Equal(t, "Initial commit", first.Subject)

	second := commits[1]
	assert.Equal(t, "bbbbbbbb", second.OID)
	assert.Equal(t, []string{"1111111", "2222222"}, second.Parents)
	assert.Equal(t, "Merge branch", second.Subject)
}

func TestParseLogPadsShortRecords(t *testing.T) {
	payload := []byte("cccccccc\x1f\x1fCarol\x1e")

	commits := ParseLog(payload)
	require.Len(t, commits, 1)
	assert.Equal(t, "cccccccc", commits[0].OID)
	assert.Equal(t, "Carol", commits[0].AuthorName)
	assert.Empty(t, commits[0].Subject)
}

func TestParseLogSubjectWithSeparatorLikeText(t *testing.T) {
	// Spaces and pipes in subjects must survive; only \x1f splits fields.
	payload := []byte("dddddddd\x1f\x1fDan\x1fdan@example.com\x1f2024-02-01\x1ffix: a | b  c\x1e")

	commits := ParseLog(payload)
	require.Len(t, commits, 1)
	assert.Equal(t, "fix: a | b  c", commits[0].Subject)
}

func TestParseLogEmptyPayload(t *testing.T) {
	assert.Empty(t, ParseLog(nil))
	assert.Empty(t, ParseLog([]byte("\x1e")))
}

func TestParseBranchesBasic(t *testing.T) {
	payload := []byte(
		"main|*|origin/main|[ahead 1, behind 2]\n" +
			"feature||origin/feature|[behind 3]\n" +
			"topic|||\n")

	branches := ParseBranches(payload)
	require.Len(t, branches, 3)

	main := branches[0]
	assert.Equal(t, "main", main.Name)
	assert.True(t, main.IsCurrent)
	assert.Equal(t, "origin/main", main.Upstream)
	assert.Equal(t, 1, main.Ahead)
	assert.Equal(t, 2, main.Behind)
	assert.False(t, main.Gone)

	feature := branches[1]
	assert.False(t, feature.IsCurrent)
	assert.Equal(t, 0, feature.Ahead)
	assert.Equal(t, 3, feature.Behind)

	topic := branches[2]
	assert.Equal(t, "topic", topic.Name)
	assert.Empty(t, topic.Upstream)
	assert.Zero(t, topic.Ahead)
	assert.Zero(t, topic.Behind)
	assert.False(t, topic.Gone)
}

func TestParseBranchesGone(t *testing.T) {
	branches := ParseBranches([]byte("old| |origin/old|[gone]\n"))
	require.Len(t, branches, 1)
	assert.True(t, branches[0].Gone)
	assert.Zero(t, branches[0].Ahead)
	assert.Zero(t, branches[0].Behind)
}

func TestParseBranchesIgnoresEmptyLinesAndBadCounts(t *testing.T) {
	branches := ParseBranches([]byte("\ninvalid| |origin/invalid|[ahead nope, behind ???]\n"))
	require.Len(t, branches, 1)
	assert.Zero(t, branches[0].Ahead)
	assert.Zero(t, branches[0].Behind)
}

func TestParseBranchesUnbracketedTrack(t *testing.T) {
	branches := ParseBranches([]byte("dev||origin/dev|ahead 2, behind 1\n"))
	require.Len(t, branches, 1)
	assert.Equal(t, 2, branches[0].Ahead)
	assert.Equal(t, 1, branches[0].Behind)
}

func TestParseStashBasic(t *testing.T) {
	payload := []byte(
		"abc123\x1fstash@{0}\x1fWIP on main: msg\x1f2024-01-01T00:00:00Z\x1e" +
			"def456\x1fstash@{1}\x1fOn dev: more\x1f2024-01-02T00:00:00Z\x1e")

	stashes := ParseStash(payload)
	require.Len(t, stashes, 2)
	assert.Equal(t, "stash@{0}", stashes[0].Selector)
	assert.Equal(t, "WIP on main: msg", stashes[0].Summary)
	assert.Equal(t, "def456", stashes[1].OID)
}

func TestParseStashPadsMissingFields(t *testing.T) {
	stashes := ParseStash([]byte("abc123\x1fstash@{0}\x1e"))
	require.Len(t, stashes, 1)
	assert.Equal(t, "abc123", stashes[0].OID)
	assert.Equal(t, "stash@{0}", stashes[0].Selector)
	assert.Empty(t, stashes[0].Summary)
	assert.Empty(t, stashes[0].Date)
}

func TestParseTagsBasic(t *testing.T) {
	tags := ParseTags([]byte("v1.0.0\n\nrelease-2024\n"))
	assert.Equal(t, []models.Tag{{Name: "v1.0.0"}, {Name: "release-2024"}}, tags)
}

func TestParseRemotesFetchAndPush(t *testing.T) {
	payload := []byte(
		"origin\thttps://example.com/repo.git (fetch)\n" +
			"origin\thttps://example.com/repo.git (push)\n" +
			"upstream\tgit@github.com:org/repo.git (fetch)\n")

	remotes := ParseRemotes(payload)
	require.Len(t, remotes, 2)
	assert.Equal(t, "origin", remotes[0].Name)
	assert.Equal(t, "https://example.com/repo.git", remotes[0].FetchURL)
	assert.Equal(t, "https://example.com/repo.git", remotes[0].PushURL)
	assert.Equal(t, "upstream", remotes[1].Name)
	assert.Equal(t, "git@github.com:org/repo.git", remotes[1].FetchURL)
	assert.Empty(t, remotes[1].PushURL)
}

func TestParseRemotesSkipsUnknownAndShortLines(t *testing.T) {
	payload := []byte(
		"origin\n" +
			"origin\thttps://example.com/repo.git (mirror)\n" +
			"origin\thttps://example.com/repo.git (fetch)\n")

	remotes := ParseRemotes(payload)
	require.Len(t, remotes, 1)
	assert.Equal(t, "https://example.com/repo.git", remotes[0].FetchURL)
	assert.Empty(t, remotes[0].PushURL)
}

func TestParseRemotesMergesDifferentURLs(t *testing.T) {
	payload := []byte(
		"origin\thttps://example.com/repo.git (fetch)\n" +
			"origin\tgit@github.com:org/repo.git (push)\n")

	remotes := ParseRemotes(payload)
	require.Len(t, remotes, 1)
	assert.Equal(t, "https://example.com/repo.git", remotes[0].FetchURL)
	assert.Equal(t, "git@github.com:org/repo.git", remotes[0].PushURL)
}

func TestParseRemotesSkipsBlankLines(t *testing.T) {
	payload := []byte(
		"origin\thttps://example.com/repo.git (fetch)\n" +
			"\n" +
			"   \n" +
			"origin\thttps://example.com/repo.git (push)\n")

	remotes := ParseRemotes(payload)
	require.Len(t, remotes, 1)
	assert.Equal(t, "https://example.com/repo.git", remotes[0].PushURL)
}

func TestParseRemoteBranchesFiltersAndSplits(t *testing.T) {
	payload := []byte(
		"origin/main\n" +
			"origin/feature/one\n" +
			"upstream/dev\n" +
			"origin/HEAD\n" +
			"origin/HEAD -> origin/main\n" +
			"malformed\n" +
			"\n")

	branches := ParseRemoteBranches(payload)

	fullNames := make([]string, 0, len(branches))
	for _, branch := range branches {
		fullNames = append(fullNames, branch.FullName)
	}
	assert.Equal(t, []string{"origin/main", "origin/feature/one", "upstream/dev"}, fullNames)
	assert.Equal(t, "origin", branches[0].Remote)
	assert.Equal(t, "main", branches[0].Name)
	assert.Equal(t, "feature/one", branches[1].Name)
}

func TestParseConflictsBasic(t *testing.T) {
	paths := ParseConflicts([]byte("file1.txt\npath/with space.txt\n\n"))
	assert.Equal(t, []string{"file1.txt", "path/with space.txt"}, paths)
}

func TestDecodeText(t *testing.T) {
	assert.Equal(t, "", DecodeText(nil))
	assert.Equal(t, "line1\nline2", DecodeText([]byte("line1\nline2")))
	assert.Contains(t, DecodeText([]byte("diff\n+emoji: 🔥")), "🔥")

	decoded := DecodeText([]byte("diff\n\xff\xfe invalid bytes"))
	assert.Contains(t, decoded, "diff")
	assert.Contains(t, decoded, "invalid bytes")
}

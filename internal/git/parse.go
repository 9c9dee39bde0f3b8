package git

import (
	"strings"
	"unicode/utf8"

	"github.com/gitdeck/gitdeck/internal/models"
)

// DecodeText converts raw command output to a string for display or line
// splitting. Invalid UTF-8 is replaced with U+FFFD rather than reported as
// an error; payloads are never rejected here.
func DecodeText(payload []byte) string {
	return strings.ToValidUTF8(string(payload), string(utf8.RuneError))
}

// ParseLog parses structured log records produced with logFormat:
// oid, parents, author name, author email, author date, subject.
// git writes a newline between formatted records, which is stripped. A
// trailing empty record after the final separator is discarded, and
// records with missing fields are padded instead of rejected.
func ParseLog(payload []byte) []models.Commit {
	text := DecodeText(payload)
	var commits []models.Commit

	for _, record := range strings.Split(text, recordSep) {
		record = strings.TrimPrefix(record, "\n")
		if record == "" {
			continue
		}
		fields := padFields(strings.Split(record, fieldSep), 6)

		var parents []string
		if fields[1] != "" {
			parents = strings.Fields(fields[1])
		}

		commits = append(commits, models.Commit{
			OID:         fields[0],
			Parents:     parents,
			AuthorName:  fields[2],
			AuthorEmail: fields[3],
			AuthorDate:  fields[4],
			Subject:     fields[5],
		})
	}
	return commits
}

// ParseBranches parses `git branch --format=...` output produced with
// branchFormat. The tracking annotation is read for ahead/behind counts and
// a gone marker; malformed counts degrade to zero.
func ParseBranches(payload []byte) []models.Branch {
	text := DecodeText(payload)
	var branches []models.Branch

	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}

		parts := strings.Split(line, "|")
		name := fieldOr(parts, 0, "")
		headFlag := fieldOr(parts, 1, "")
		upstream := fieldOr(parts, 2, "")
		track := strings.TrimSpace(fieldOr(parts, 3, ""))

		if strings.HasPrefix(track, "[") && strings.HasSuffix(track, "]") {
			track = track[1 : len(track)-1]
		}

		ahead, behind := 0, 0
		gone := false
		if track != "" {
			if strings.Contains(track, "gone") {
				gone = true
			}
			for _, token := range strings.Split(track, ",") {
				token = strings.TrimSpace(token)
				switch {
				case strings.HasPrefix(token, "ahead "):
					ahead = atoiOrZero(strings.TrimPrefix(token, "ahead "))
				case strings.HasPrefix(token, "behind "):
					behind = atoiOrZero(strings.TrimPrefix(token, "behind "))
				}
			}
		}

		branches = append(branches, models.Branch{
			Name:      name,
			IsCurrent: strings.TrimSpace(headFlag) == "*",
			Upstream:  upstream,
			Ahead:     ahead,
			Behind:    behind,
			Gone:      gone,
		})
	}
	return branches
}

// ParseStash parses structured stash records produced with stashFormat:
// oid, selector, summary, date. The newline git writes between records
// is stripped and missing fields are padded.
func ParseStash(payload []byte) []models.StashEntry {
	text := DecodeText(payload)
	var stashes []models.StashEntry

	for _, record := range strings.Split(text, recordSep) {
		record = strings.TrimPrefix(record, "\n")
		if record == "" {
			continue
		}
		fields := padFields(strings.Split(record, fieldSep), 4)
		stashes = append(stashes, models.StashEntry{
			OID:      fields[0],
			Selector: fields[1],
			Summary:  fields[2],
			Date:     fields[3],
		})
	}
	return stashes
}

// ParseTags parses `git tag --list` output, one name per line.
func ParseTags(payload []byte) []models.Tag {
	text := DecodeText(payload)
	var tags []models.Tag

	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		tags = append(tags, models.Tag{Name: name})
	}
	return tags
}

// ParseRemotes parses `git remote -v` output. Fetch and push URLs for the
// same name merge into one record; lines with an unknown kind token are
// skipped without failing. First-seen name order is preserved.
func ParseRemotes(payload []byte) []models.Remote {
	text := DecodeText(payload)
	var order []string
	byName := make(map[string]*models.Remote)

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}

		name := parts[0]
		kind := strings.ToLower(strings.Trim(parts[len(parts)-1], "()"))
		url := strings.Join(parts[1:len(parts)-1], " ")

		remote, known := byName[name]
		if !known {
			remote = &models.Remote{Name: name}
		}

		switch kind {
		case "fetch":
			remote.FetchURL = url
		case "push":
			remote.PushURL = url
		default:
			continue
		}

		if !known {
			byName[name] = remote
			order = append(order, name)
		}
	}

	remotes := make([]models.Remote, 0, len(order))
	for _, name := range order {
		remotes = append(remotes, *byName[name])
	}
	return remotes
}

// ParseRemoteBranches parses `git branch -r --format=%(refname:short)`
// output, dropping blanks, the symbolic HEAD pointer line and entries
// without a remote/name shape.
func ParseRemoteBranches(payload []byte) []models.RemoteBranch {
	text := DecodeText(payload)
	var branches []models.RemoteBranch

	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.Contains(name, "->") {
			continue
		}

		remote, branch, found := strings.Cut(name, "/")
		if !found || remote == "" || branch == "" || branch == "HEAD" {
			continue
		}

		branches = append(branches, models.RemoteBranch{
			Remote:   remote,
			Name:     branch,
			FullName: name,
		})
	}
	return branches
}

// ParseConflicts parses `git diff --name-only --diff-filter=U` output, one
// conflicted path per line.
func ParseConflicts(payload []byte) []string {
	text := DecodeText(payload)
	var paths []string

	for _, line := range strings.Split(text, "\n") {
		path := strings.TrimSpace(line)
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// padFields extends fields with empty strings up to n entries.
func padFields(fields []string, n int) []string {
	for len(fields) < n {
		fields = append(fields, "")
	}
	return fields
}

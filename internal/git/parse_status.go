package git

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/gitdeck/gitdeck/internal/models"
)

// ParseStatus parses `git status --porcelain=v2 -b -z` output.
//
// The -z flag separates records with NUL instead of newline, so paths with
// spaces or embedded newlines arrive intact. Record types:
//
//	# branch.*  branch header lines (oid, head, upstream, ahead/behind)
//	1           ordinary changed entry
//	2           rename or copy; the next NUL record is the original path
//	u           unmerged (conflicted) entry
//	?           untracked file
//	!           ignored file, skipped
//
// The first status letter is the index side, the second the worktree side;
// "." means no change in that area. An entry lands in the staged list, the
// unstaged list, or both, depending on which side changed.
func ParseStatus(payload []byte) models.RepoStatus {
	var staged, unstaged, untracked, conflicted []models.FileChange

	var branchName, branchOID, branchUpstream string
	ahead, behind := 0, 0
	branchSeen := false

	addByXY := func(change models.FileChange, xy string) {
		stagedCode, unstagedCode := splitXY(xy)
		if stagedCode != "." {
			staged = append(staged, change)
		}
		if unstagedCode != "." {
			unstaged = append(unstaged, change)
		}
	}

	records := bytes.Split(payload, []byte{0})
	for i := 0; i < len(records); i++ {
		if len(records[i]) == 0 {
			continue
		}
		line := DecodeText(records[i])

		if strings.HasPrefix(line, "# ") {
			branchSeen = true
			parts := strings.SplitN(line, " ", 3)
			if len(parts) < 3 {
				continue
			}
			key, value := parts[1], parts[2]
			switch key {
			case "branch.oid":
				if value != "(initial)" && value != "(unknown)" {
					branchOID = value
				}
			case "branch.head":
				if value != "(detached)" && value != "(unknown)" {
					branchName = value
				}
			case "branch.ab":
				// Format: "+<ahead> -<behind>".
				for _, token := range strings.Fields(value) {
					switch {
					case strings.HasPrefix(token, "+"):
						ahead = atoiOrZero(token[1:])
					case strings.HasPrefix(token, "-"):
						behind = atoiOrZero(token[1:])
					}
				}
			case "branch.upstream":
				branchUpstream = value
			}
			continue
		}

		switch line[0] {
		case '1':
			// 1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
			parts := strings.SplitN(line, " ", 9)
			xy := fieldOr(parts, 1, "..")
			path := fieldOr(parts, 8, "")
			stagedCode, unstagedCode := splitXY(xy)
			addByXY(models.FileChange{
				Path:     path,
				Staged:   stagedCode,
				Unstaged: unstagedCode,
			}, xy)

		case '2':
			// 2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path>
			// followed by the original path in the next NUL record.
			parts := strings.SplitN(line, " ", 10)
			xy := fieldOr(parts, 1, "..")
			path := fieldOr(parts, 9, "")
			origPath := ""
			if i+1 < len(records) && len(records[i+1]) > 0 {
				origPath = DecodeText(records[i+1])
				i++
			}
			stagedCode, unstagedCode := splitXY(xy)
			addByXY(models.FileChange{
				Path:     path,
				Staged:   stagedCode,
				Unstaged: unstagedCode,
				OrigPath: origPath,
			}, xy)

		case 'u':
			// u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
			parts := strings.SplitN(line, " ", 11)
			xy := fieldOr(parts, 1, "UU")
			path := fieldOr(parts, 10, "")
			stagedCode, unstagedCode := splitXY(xy)
			conflicted = append(conflicted, models.FileChange{
				Path:     path,
				Staged:   stagedCode,
				Unstaged: unstagedCode,
			})

		case '?':
			path := ""
			if len(line) > 2 {
				path = line[2:]
			}
			untracked = append(untracked, models.FileChange{
				Path:     path,
				Staged:   "?",
				Unstaged: "?",
			})
		}
		// Ignored entries ('!') and unknown record types fall through.
	}

	var branch *models.BranchInfo
	if branchSeen || branchName != "" || branchOID != "" || branchUpstream != "" || ahead != 0 || behind != 0 {
		branch = &models.BranchInfo{
			Name:     branchName,
			HeadOID:  branchOID,
			Upstream: branchUpstream,
			Ahead:    ahead,
			Behind:   behind,
		}
	}

	return models.RepoStatus{
		Branch:     branch,
		Staged:     staged,
		Unstaged:   unstaged,
		Untracked:  untracked,
		Conflicted: conflicted,
	}
}

// splitXY returns the index and worktree status letters from an XY pair.
func splitXY(xy string) (string, string) {
	if len(xy) >= 2 {
		return xy[:1], xy[1:2]
	}
	return ".", "."
}

// fieldOr returns parts[i] or fallback when the field is missing.
func fieldOr(parts []string, i int, fallback string) string {
	if i < len(parts) {
		return parts[i]
	}
	return fallback
}

// atoiOrZero parses a count, treating anything malformed as zero.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	devicons "github.com/epilande/go-devicons"

	"github.com/gitdeck/gitdeck/internal/models"
)

// fileRow is one line of the files pane, flattened from the four
// status sections in display order.
type fileRow struct {
	path       string
	display    string
	badge      string
	staged     bool
	conflicted bool
	untracked  bool
}

// buildFileRows flattens a status into display order: conflicts first,
// then staged, unstaged and untracked entries.
func buildFileRows(status *models.RepoStatus) []fileRow {
	if status == nil {
		return nil
	}

	rows := make([]fileRow, 0,
		len(status.Conflicted)+len(status.Staged)+len(status.Unstaged)+len(status.Untracked))

	for _, e := range status.Conflicted {
		rows = append(rows, fileRow{
			path:       e.Path,
			display:    displayPath(e),
			badge:      e.Staged + e.Unstaged,
			conflicted: true,
		})
	}
	for _, e := range status.Staged {
		rows = append(rows, fileRow{
			path:    e.Path,
			display: displayPath(e),
			badge:   e.Staged + e.Unstaged,
			staged:  true,
		})
	}
	for _, e := range status.Unstaged {
		rows = append(rows, fileRow{
			path:    e.Path,
			display: displayPath(e),
			badge:   e.Staged + e.Unstaged,
		})
	}
	for _, e := range status.Untracked {
		rows = append(rows, fileRow{
			path:      e.Path,
			display:   displayPath(e),
			badge:     "??",
			untracked: true,
		})
	}
	return rows
}

// displayPath shows "old -> new" for renames and copies.
func displayPath(e models.FileChange) string {
	if e.OrigPath != "" {
		return e.OrigPath + " -> " + e.Path
	}
	return e.Path
}

// rebuildRows refreshes the table contents from the current snapshot,
// keeping cursors in bounds.
func (m *Model) rebuildRows() {
	m.fileRows = buildFileRows(m.snap.Status)

	fileTableRows := make([]table.Row, 0, len(m.fileRows))
	for _, r := range m.fileRows {
		display := r.display
		if m.cfg.ShowIcons {
			if icon := deviconForName(r.path); icon != "" {
				display = icon + " " + display
			}
		}
		fileTableRows = append(fileTableRows, table.Row{r.badge, display})
	}
	m.filesTable.SetRows(fileTableRows)
	if cursor := m.filesTable.Cursor(); cursor >= len(fileTableRows) {
		m.filesTable.SetCursor(max(0, len(fileTableRows)-1))
	}

	logRows := make([]table.Row, 0, len(m.snap.Log))
	for _, c := range m.snap.Log {
		logRows = append(logRows, table.Row{shortOID(c.OID), authorInitials(c.AuthorName), c.Subject})
	}
	m.logTable.SetRows(logRows)
	if cursor := m.logTable.Cursor(); cursor >= len(logRows) {
		m.logTable.SetCursor(max(0, len(logRows)-1))
	}

	for tab := range m.refsCursors {
		if n := m.refsTabLen(tab); m.refsCursors[tab] >= n {
			m.refsCursors[tab] = max(0, n-1)
		}
	}
}

// selectedFile returns the file row under the cursor.
func (m *Model) selectedFile() (fileRow, bool) {
	cursor := m.filesTable.Cursor()
	if cursor < 0 || cursor >= len(m.fileRows) {
		return fileRow{}, false
	}
	return m.fileRows[cursor], true
}

func (m *Model) refsTabLen(tab int) int {
	switch tab {
	case tabBranches:
		return len(m.snap.Branches) + len(m.snap.RemoteBranches)
	case tabStashes:
		return len(m.snap.Stashes)
	case tabTags:
		return len(m.snap.Tags)
	case tabRemotes:
		return len(m.snap.Remotes)
	}
	return 0
}

// branchItem is one row of the branches tab: a local branch or, after
// the locals, a remote-tracking branch.
type branchItem struct {
	local  *models.Branch
	remote *models.RemoteBranch
}

func (m *Model) selectedBranchItem() (branchItem, bool) {
	i := m.refsCursors[tabBranches]
	if i < 0 {
		return branchItem{}, false
	}
	if i < len(m.snap.Branches) {
		return branchItem{local: &m.snap.Branches[i]}, true
	}
	i -= len(m.snap.Branches)
	if i < len(m.snap.RemoteBranches) {
		return branchItem{remote: &m.snap.RemoteBranches[i]}, true
	}
	return branchItem{}, false
}

func (m *Model) selectedStash() (models.StashEntry, bool) {
	i := m.refsCursors[tabStashes]
	if i < 0 || i >= len(m.snap.Stashes) {
		return models.StashEntry{}, false
	}
	return m.snap.Stashes[i], true
}

func (m *Model) selectedTag() (models.Tag, bool) {
	i := m.refsCursors[tabTags]
	if i < 0 || i >= len(m.snap.Tags) {
		return models.Tag{}, false
	}
	return m.snap.Tags[i], true
}

func (m *Model) selectedRemote() (models.Remote, bool) {
	i := m.refsCursors[tabRemotes]
	if i < 0 || i >= len(m.snap.Remotes) {
		return models.Remote{}, false
	}
	return m.snap.Remotes[i], true
}

// refLine is one refs pane row in both plain and colored form. The
// plain form is used under the cursor highlight, where nested color
// codes would break the selection background.
type refLine struct {
	plain  string
	styled string
}

// refsTabLines renders the rows of the active refs tab.
func (m *Model) refsTabLines() []refLine {
	switch m.refsTab {
	case tabBranches:
		lines := make([]refLine, 0, len(m.snap.Branches))
		for _, b := range m.snap.Branches {
			marker := "  "
			if b.IsCurrent {
				marker = "* "
			}
			details := ""
			if b.Ahead > 0 {
				details += fmt.Sprintf(" ↑%d", b.Ahead)
			}
			if b.Behind > 0 {
				details += fmt.Sprintf(" ↓%d", b.Behind)
			}
			if b.Gone {
				details += " [gone]"
			} else if b.Upstream != "" {
				details += " " + b.Upstream
			}

			plain := marker + b.Name + details
			styled := marker + m.branchStyle().Render(b.Name)
			if details != "" {
				styled += m.mutedStyle().Render(details)
			}
			if b.IsCurrent {
				styled = m.successStyle().Render(marker) + m.branchStyle().Bold(true).Render(b.Name) + m.mutedStyle().Render(details)
			}
			lines = append(lines, refLine{plain: plain, styled: styled})
		}
		for _, rb := range m.snap.RemoteBranches {
			lines = append(lines, refLine{
				plain:  "  " + rb.FullName,
				styled: "  " + m.mutedStyle().Render(rb.FullName),
			})
		}
		return lines

	case tabStashes:
		lines := make([]refLine, 0, len(m.snap.Stashes))
		for _, s := range m.snap.Stashes {
			plain := s.Selector + " " + s.Summary
			styled := m.hashStyle().Render(s.Selector) + " " + s.Summary
			lines = append(lines, refLine{plain: plain, styled: styled})
		}
		return lines

	case tabTags:
		lines := make([]refLine, 0, len(m.snap.Tags))
		for _, t := range m.snap.Tags {
			lines = append(lines, refLine{plain: t.Name, styled: m.branchStyle().Render(t.Name)})
		}
		return lines

	case tabRemotes:
		lines := make([]refLine, 0, len(m.snap.Remotes))
		for _, r := range m.snap.Remotes {
			plain := r.Name + " " + r.FetchURL
			styled := m.branchStyle().Render(r.Name) + " " + m.mutedStyle().Render(r.FetchURL)
			if r.PushURL != "" && r.PushURL != r.FetchURL {
				plain += " (push: " + r.PushURL + ")"
				styled += " " + m.mutedStyle().Render("(push: "+r.PushURL+")")
			}
			lines = append(lines, refLine{plain: plain, styled: styled})
		}
		return lines
	}
	return nil
}

// shortOID abbreviates a commit id for display.
func shortOID(oid string) string {
	if len(oid) > 8 {
		return oid[:8]
	}
	return oid
}

// authorInitials compresses an author name into at most two letters.
func authorInitials(name string) string {
	fields := strings.Fields(name)
	switch {
	case len(fields) >= 2:
		return firstRune(fields[0]) + firstRune(fields[1])
	case len(fields) == 1:
		return firstRune(fields[0])
	}
	return ""
}

func firstRune(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return ""
}

// commitDate formats the ISO author date for the log pane title.
func commitDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("2006-01-02 15:04")
}

// colorizeDiff applies add/remove colors line by line and cuts the text
// off at limit characters.
func (m *Model) colorizeDiff(text string, limit int) string {
	if limit > 0 && len(text) > limit {
		text = text[:limit] + "\n... (truncated)"
	}

	addStyle := m.styleFor(m.th.AddedFg)
	delStyle := m.styleFor(m.th.RemovedFg)
	hunkStyle := m.styleFor(m.th.Accent)
	headStyle := m.mutedStyle()

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = headStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = delStyle.Render(line)
		case strings.HasPrefix(line, "diff --git"), strings.HasPrefix(line, "index "):
			lines[i] = headStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// iconFileInfo satisfies os.FileInfo for devicons lookups by name.
type iconFileInfo struct {
	name string
}

func (i iconFileInfo) Name() string       { return i.name }
func (i iconFileInfo) Size() int64        { return 0 }
func (i iconFileInfo) Mode() os.FileMode  { return 0 }
func (i iconFileInfo) ModTime() time.Time { return time.Time{} }
func (i iconFileInfo) IsDir() bool        { return false }
func (i iconFileInfo) Sys() any           { return nil }

func deviconForName(name string) string {
	if name == "" {
		return ""
	}
	style := devicons.IconForInfo(iconFileInfo{name: name})
	return style.Icon
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitdeck/gitdeck/internal/tui/screen"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case stateChangedMsg:
		return m.handleStateChanged()

	case repoChangedOnDiskMsg:
		return m.handleRepoChangedOnDisk()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleStateChanged pulls the new snapshot and refreshes everything
// derived from it.
func (m *Model) handleStateChanged() (tea.Model, tea.Cmd) {
	m.snap = m.ctrl.Snapshot()
	m.rebuildRows()

	cmds := []tea.Cmd{m.waitForStateChange()}
	if cmd := m.ensureWatcher(); cmd != nil {
		cmds = append(cmds, cmd)
	}

	// Feed a freshly loaded diff into the open viewer.
	if ds, ok := m.screens.Current().(*screen.DiffScreen); ok {
		if m.snap.DiffPath == ds.Path && m.snap.DiffStaged == ds.Staged {
			if m.snap.DiffText == "" {
				ds.SetContent(m.mutedStyle().Render("No changes."))
			} else {
				ds.SetContent(m.colorizeDiff(m.snap.DiffText, m.cfg.MaxDiffChars))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// handleRepoChangedOnDisk debounces watcher wakeups into a full refresh.
func (m *Model) handleRepoChangedOnDisk() (tea.Model, tea.Cmd) {
	if m.watcher == nil {
		return m, nil
	}
	if m.watcher.ShouldRefresh(time.Now()) {
		m.ctrl.RefreshAll()
	}
	m.watcher.ResetWaiting()
	return m, m.waitForRepoChange()
}

// handleKey routes key presses to the active screen or the panes.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screens.IsActive() {
		next, cmd := m.screens.Current().Update(msg)
		if next == nil {
			m.screens.Pop()
		}
		return m, cmd
	}

	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.screens.Push(screen.NewHelpScreen(m.th))
		return m, nil

	case "1":
		m.focusPane(paneFiles)
		return m, nil

	case "2":
		m.focusPane(paneRefs)
		return m, nil

	case "3":
		m.focusPane(paneLog)
		return m, nil

	case "tab":
		m.focusPane((m.focusedPane + 1) % 3)
		return m, nil

	case "j", "down":
		switch m.focusedPane {
		case paneFiles:
			m.filesTable, cmd = m.filesTable.Update(msg)
			return m, cmd
		case paneRefs:
			m.moveRefsCursor(1)
			return m, nil
		default:
			m.logTable, cmd = m.logTable.Update(msg)
			return m, cmd
		}

	case "k", "up":
		switch m.focusedPane {
		case paneFiles:
			m.filesTable, cmd = m.filesTable.Update(msg)
			return m, cmd
		case paneRefs:
			m.moveRefsCursor(-1)
			return m, nil
		default:
			m.logTable, cmd = m.logTable.Update(msg)
			return m, cmd
		}

	case "h", "left":
		if m.focusedPane == paneRefs {
			m.refsTab = (m.refsTab + refsTabCount - 1) % refsTabCount
		}
		return m, nil

	case "l", "right":
		if m.focusedPane == paneRefs {
			m.refsTab = (m.refsTab + 1) % refsTabCount
		}
		return m, nil

	case "r":
		m.ctrl.RefreshAll()
		return m, nil

	case "f":
		m.ctrl.Fetch()
		return m, nil

	case "p":
		if m.focusedPane == paneRefs && m.refsTab == tabStashes {
			if stash, ok := m.selectedStash(); ok {
				m.ctrl.StashPop(stash.Selector)
			}
			return m, nil
		}
		m.ctrl.Pull()
		return m, nil

	case "P":
		if m.focusedPane == paneRefs && m.refsTab == tabTags {
			if tag, ok := m.selectedTag(); ok {
				m.ctrl.PushTag(tag.Name, m.snap.DefaultRemote())
			}
			return m, nil
		}
		m.ctrl.Push(false, "", "")
		return m, nil

	case "U":
		m.ctrl.RetryPushSetUpstream()
		return m, nil

	case "esc":
		if m.snap.Busy {
			m.ctrl.CancelRunning()
		}
		return m, nil

	case "ctrl+k":
		m.ctrl.KillRunning()
		return m, nil

	case "s":
		if m.focusedPane == paneFiles {
			if row, ok := m.selectedFile(); ok {
				m.ctrl.Stage([]string{row.path})
			}
		}
		return m, nil

	case "u":
		if m.focusedPane == paneFiles {
			if row, ok := m.selectedFile(); ok {
				m.ctrl.Unstage([]string{row.path})
			}
		}
		return m, nil

	case "x":
		if m.focusedPane == paneFiles {
			// git restore cannot discard files it does not track yet.
			if row, ok := m.selectedFile(); ok && !row.untracked {
				m.confirmDiscard(row)
			}
		}
		return m, nil

	case "d":
		if m.focusedPane == paneFiles {
			if row, ok := m.selectedFile(); ok {
				m.openDiff(row)
			}
		}
		return m, nil

	case "enter":
		switch m.focusedPane {
		case paneFiles:
			if row, ok := m.selectedFile(); ok {
				m.openDiff(row)
			}
		case paneRefs:
			m.refsPrimaryAction()
		}
		return m, nil

	case "c":
		if m.focusedPane == paneFiles {
			m.openCommitScreen(false)
		}
		return m, nil

	case "C":
		if m.focusedPane == paneFiles {
			m.openCommitScreen(true)
		}
		return m, nil

	case "S":
		m.openStashSave()
		return m, nil

	case "n":
		if m.focusedPane == paneRefs {
			m.openCreateForTab()
		}
		return m, nil

	case "D":
		if m.focusedPane == paneRefs {
			m.confirmDeleteForTab()
		}
		return m, nil

	case "F":
		if m.focusedPane == paneRefs && m.refsTab == tabBranches {
			if item, ok := m.selectedBranchItem(); ok && item.local != nil && !item.local.IsCurrent {
				name := item.local.Name
				m.pushConfirm(fmt.Sprintf("Force delete branch %s?", name), func() {
					m.ctrl.DeleteBranch(name, true)
				})
			}
		}
		return m, nil

	case "t":
		if m.focusedPane == paneRefs && m.refsTab == tabBranches {
			m.openSetUpstream()
		}
		return m, nil

	case "a":
		if m.focusedPane == paneRefs && m.refsTab == tabStashes {
			if stash, ok := m.selectedStash(); ok {
				m.ctrl.StashApply(stash.Selector)
			}
		}
		return m, nil

	case "A":
		if m.focusedPane == paneRefs && m.refsTab == tabTags {
			remote := m.snap.DefaultRemote()
			m.pushConfirm(fmt.Sprintf("Push all tags to %s?", remote), func() {
				m.ctrl.PushTags(remote)
			})
		}
		return m, nil

	case "e":
		if m.focusedPane == paneRefs && m.refsTab == tabRemotes {
			m.openEditRemoteURL()
		}
		return m, nil
	}

	return m, nil
}

// focusPane moves keyboard focus between the three panes.
func (m *Model) focusPane(pane int) {
	m.focusedPane = pane
	if pane == paneFiles {
		m.filesTable.Focus()
	} else {
		m.filesTable.Blur()
	}
	if pane == paneLog {
		m.logTable.Focus()
	} else {
		m.logTable.Blur()
	}
}

// moveRefsCursor moves the cursor of the active refs tab, clamped.
func (m *Model) moveRefsCursor(delta int) {
	n := m.refsTabLen(m.refsTab)
	if n == 0 {
		m.refsCursors[m.refsTab] = 0
		return
	}
	cursor := m.refsCursors[m.refsTab] + delta
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= n {
		cursor = n - 1
	}
	m.refsCursors[m.refsTab] = cursor
}

// refsPrimaryAction is what enter does on the active refs tab.
func (m *Model) refsPrimaryAction() {
	switch m.refsTab {
	case tabBranches:
		item, ok := m.selectedBranchItem()
		if !ok {
			return
		}
		switch {
		case item.local != nil && !item.local.IsCurrent:
			m.ctrl.SwitchBranch(item.local.Name)
		case item.remote != nil:
			// switch resolves the short name to a new tracking branch.
			m.ctrl.SwitchBranch(item.remote.Name)
		}
	case tabStashes:
		if stash, ok := m.selectedStash(); ok {
			m.ctrl.StashPop(stash.Selector)
		}
	}
}

// pushConfirm opens a confirmation dialog running action on confirm.
func (m *Model) pushConfirm(message string, action func()) {
	cs := screen.NewConfirmScreen(message, m.th)
	cs.OnConfirm = func() tea.Cmd {
		action()
		return nil
	}
	m.screens.Push(cs)
}

// confirmDiscard asks before throwing away changes to one file.
func (m *Model) confirmDiscard(row fileRow) {
	path := row.path
	m.pushConfirm(fmt.Sprintf("Discard changes to %s?", path), func() {
		m.ctrl.Discard([]string{path})
	})
}

// openDiff shows the diff viewer for a file row and requests its
// content.
func (m *Model) openDiff(row fileRow) {
	ds := screen.NewDiffScreen(row.path, row.staged, m.windowWidth, m.windowHeight, m.th)
	ds.SetContent(m.mutedStyle().Render("Loading diff..."))
	m.screens.Push(ds)
	m.ctrl.RequestDiff(row.path, row.staged)
}

// openCommitScreen shows the commit editor. Amending prefills the
// previous subject so submitting unchanged keeps it.
func (m *Model) openCommitScreen(amend bool) {
	initial := ""
	if amend && len(m.snap.Log) > 0 {
		initial = m.snap.Log[0].Subject
	}
	cs := screen.NewCommitScreen(initial, amend, m.th)
	cs.OnSubmit = func(message string) tea.Cmd {
		m.ctrl.Commit(message, amend)
		return nil
	}
	m.screens.Push(cs)
}

// openStashSave shows the stash prompt with the untracked toggle.
func (m *Model) openStashSave() {
	in := screen.NewInputScreen("Stash changes", "optional message", "", m.th)
	in.SetCheckbox("Include untracked files", false)
	in.OnSubmit = func(value string, checked bool) tea.Cmd {
		m.ctrl.StashSave(strings.TrimSpace(value), checked)
		return nil
	}
	m.screens.Push(in)
}

// openCreateForTab opens the creation prompt matching the active tab.
func (m *Model) openCreateForTab() {
	switch m.refsTab {
	case tabBranches:
		fromRef := ""
		if item, ok := m.selectedBranchItem(); ok {
			switch {
			case item.local != nil:
				fromRef = item.local.Name
			case item.remote != nil:
				fromRef = item.remote.FullName
			}
		}
		prompt := "New branch"
		if fromRef != "" {
			prompt = "New branch from " + fromRef
		}
		in := screen.NewInputScreen(prompt, "branch name", "", m.th)
		in.SetValidation(validateRefName)
		in.OnSubmit = func(value string, _ bool) tea.Cmd {
			m.ctrl.CreateBranch(strings.TrimSpace(value), fromRef)
			return nil
		}
		m.screens.Push(in)

	case tabTags:
		in := screen.NewInputScreen("New tag at HEAD", "tag name", "", m.th)
		in.SetValidation(validateRefName)
		in.OnSubmit = func(value string, _ bool) tea.Cmd {
			m.ctrl.CreateTag(strings.TrimSpace(value), "")
			return nil
		}
		m.screens.Push(in)

	case tabRemotes:
		in := screen.NewInputScreen("Add remote", "name url", "", m.th)
		in.SetValidation(func(value string) string {
			if len(strings.Fields(value)) != 2 {
				return "expected: name url"
			}
			return ""
		})
		in.OnSubmit = func(value string, _ bool) tea.Cmd {
			fields := strings.Fields(value)
			m.ctrl.AddRemote(fields[0], fields[1])
			return nil
		}
		m.screens.Push(in)
	}
}

// confirmDeleteForTab opens the deletion dialog matching the active tab.
func (m *Model) confirmDeleteForTab() {
	switch m.refsTab {
	case tabBranches:
		item, ok := m.selectedBranchItem()
		if !ok {
			return
		}
		switch {
		case item.local != nil && !item.local.IsCurrent:
			name := item.local.Name
			m.pushConfirm(fmt.Sprintf("Delete branch %s?", name), func() {
				m.ctrl.DeleteBranch(name, false)
			})
		case item.remote != nil:
			remote, name := item.remote.Remote, item.remote.Name
			m.pushConfirm(fmt.Sprintf("Delete %s on remote %s?", name, remote), func() {
				m.ctrl.DeleteRemoteBranch(remote, name)
			})
		}

	case tabStashes:
		if stash, ok := m.selectedStash(); ok {
			selector := stash.Selector
			m.pushConfirm(fmt.Sprintf("Drop %s?", selector), func() {
				m.ctrl.StashDrop(selector)
			})
		}

	case tabTags:
		if tag, ok := m.selectedTag(); ok {
			name := tag.Name
			m.pushConfirm(fmt.Sprintf("Delete tag %s?", name), func() {
				m.ctrl.DeleteTag(name)
			})
		}

	case tabRemotes:
		if remote, ok := m.selectedRemote(); ok {
			name := remote.Name
			m.pushConfirm(fmt.Sprintf("Remove remote %s?", name), func() {
				m.ctrl.RemoveRemote(name)
			})
		}
	}
}

// openSetUpstream prompts for the upstream of the selected local branch.
func (m *Model) openSetUpstream() {
	item, ok := m.selectedBranchItem()
	if !ok || item.local == nil {
		return
	}
	branch := item.local.Name
	initial := item.local.Upstream
	if initial == "" {
		initial = m.snap.DefaultRemote() + "/" + branch
	}
	in := screen.NewInputScreen("Set upstream for "+branch, "remote/branch", initial, m.th)
	in.SetValidation(func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "upstream required"
		}
		return ""
	})
	in.OnSubmit = func(value string, _ bool) tea.Cmd {
		m.ctrl.SetUpstream(strings.TrimSpace(value), branch)
		return nil
	}
	m.screens.Push(in)
}

// openEditRemoteURL prompts for a new URL for the selected remote.
func (m *Model) openEditRemoteURL() {
	remote, ok := m.selectedRemote()
	if !ok {
		return
	}
	name := remote.Name
	in := screen.NewInputScreen("URL for "+name, "url", remote.FetchURL, m.th)
	in.SetValidation(func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "url required"
		}
		return ""
	})
	in.OnSubmit = func(value string, _ bool) tea.Cmd {
		m.ctrl.SetRemoteURL(name, strings.TrimSpace(value))
		return nil
	}
	m.screens.Push(in)
}

// validateRefName rejects names git would refuse outright.
func validateRefName(value string) string {
	name := strings.TrimSpace(value)
	switch {
	case name == "":
		return "name required"
	case strings.ContainsAny(name, " ~^:?*[\\"):
		return "invalid character in name"
	case strings.HasPrefix(name, "-") || strings.HasSuffix(name, "."):
		return "invalid name"
	case strings.Contains(name, ".."):
		return "invalid name"
	}
	return ""
}

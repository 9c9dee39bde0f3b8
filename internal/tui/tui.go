// Package tui is the Bubble Tea front end. It renders the repository
// snapshot kept by the controller and translates key presses into
// controller calls; it never talks to git directly.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitdeck/gitdeck/internal/config"
	"github.com/gitdeck/gitdeck/internal/log"
	"github.com/gitdeck/gitdeck/internal/repo"
	"github.com/gitdeck/gitdeck/internal/theme"
	"github.com/gitdeck/gitdeck/internal/tui/screen"
	"github.com/gitdeck/gitdeck/internal/watch"
)

// Pane indexes, in tab order.
const (
	paneFiles = iota
	paneRefs
	paneLog
)

// Refs pane tabs.
const (
	tabBranches = iota
	tabStashes
	tabTags
	tabRemotes
)

const refsTabCount = 4

// stateChangedMsg arrives when the controller publishes a new snapshot.
type stateChangedMsg struct{}

// repoChangedOnDiskMsg arrives when the filesystem watcher sees git
// metadata change underneath us.
type repoChangedOnDiskMsg struct{}

// Model is the top-level Bubble Tea model.
type Model struct {
	cfg     *config.AppConfig
	th      *theme.Theme
	ctrl    *repo.Controller
	watcher *watch.RepoWatcher

	filesTable table.Model
	logTable   table.Model
	spin       spinner.Model
	screens    *screen.Manager

	snap     repo.Snapshot
	fileRows []fileRow

	refsTab     int
	refsCursors [refsTabCount]int

	focusedPane  int
	windowWidth  int
	windowHeight int

	openPath string
	quitting bool
}

// New creates the model for the repository at path. The controller is
// owned by the caller; the model only drives it.
func New(cfg *config.AppConfig, ctrl *repo.Controller, path string) *Model {
	thm := theme.GetTheme(cfg.Theme)

	filesTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "St", Width: 4},
			{Title: "Path", Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(5),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(thm.MutedFg).
		Bold(true)
	styles.Cell = styles.Cell.Foreground(thm.TextFg)
	styles.Selected = styles.Selected.
		Foreground(thm.AccentFg).
		Background(thm.Accent).
		Bold(true)
	filesTable.SetStyles(styles)

	logTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "SHA", Width: 8},
			{Title: "Au", Width: 2},
			{Title: "Subject", Width: 50},
		}),
		table.WithHeight(5),
	)
	logStyles := styles
	logStyles.Selected = logStyles.Selected.
		Foreground(thm.Accent).
		Background(thm.BorderDim).
		Bold(true)
	logTable.SetStyles(logStyles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(thm.Accent)

	return &Model{
		cfg:        cfg,
		th:         thm,
		ctrl:       ctrl,
		filesTable: filesTable,
		logTable:   logTable,
		spin:       sp,
		screens:    screen.NewManager(),
		openPath:   path,
	}
}

// Init opens the repository and starts listening for snapshots.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		m.waitForStateChange(),
		func() tea.Msg {
			m.ctrl.CheckGitVersion()
			m.ctrl.OpenRepo(m.openPath)
			return nil
		},
	)
}

// Close stops the filesystem watcher. The controller is closed by the
// caller that created it.
func (m *Model) Close() {
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
}

// waitForStateChange blocks on the controller's notification channel
// and converts the wakeup into a message. Re-armed after every receive.
func (m *Model) waitForStateChange() tea.Cmd {
	ch := m.ctrl.Subscribe()
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

// waitForRepoChange blocks on the watcher's event channel. Returns nil
// when no watcher is running or a listener is already parked.
func (m *Model) waitForRepoChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.NextEvent()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		<-ch
		return repoChangedOnDiskMsg{}
	}
}

// ensureWatcher starts or restarts the filesystem watcher to track the
// currently open repository. Returns the listen command for a newly
// started watcher.
func (m *Model) ensureWatcher() tea.Cmd {
	if !m.cfg.AutoRefresh || m.snap.RepoPath == "" {
		return nil
	}
	if m.watcher != nil {
		return nil
	}

	debounce := time.Duration(m.cfg.WatchDebounceMS) * time.Millisecond
	w := watch.NewRepoWatcher(m.snap.RepoPath, debounce, log.Printf)
	started, err := w.Start()
	if err != nil || !started {
		if err != nil {
			log.Printf("tui: git watcher not started: %v", err)
		}
		return nil
	}
	m.watcher = w
	return m.waitForRepoChange()
}

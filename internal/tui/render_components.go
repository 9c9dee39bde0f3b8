package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/gitdeck/gitdeck/internal/repo"
)

// renderHeader renders the application header bar.
func (m *Model) renderHeader(layout layoutDims) string {
	headerStyle := lipgloss.NewStyle().
		Background(m.th.AccentDim).
		Foreground(m.th.TextFg).
		Bold(true).
		Width(layout.width).
		Padding(0, 2).Align(lipgloss.Center)

	content := "gitdeck"
	if m.snap.RepoPath != "" {
		content = fmt.Sprintf("%s  •  %s", content, filepath.Base(m.snap.RepoPath))
	}
	if branch := m.snap.CurrentBranch(); branch != "" {
		content = fmt.Sprintf("%s  •  %s", content, branch)
		if m.snap.Status != nil && m.snap.Status.Branch != nil {
			b := m.snap.Status.Branch
			if b.Ahead > 0 {
				content += fmt.Sprintf(" ↑%d", b.Ahead)
			}
			if b.Behind > 0 {
				content += fmt.Sprintf(" ↓%d", b.Behind)
			}
		}
	}

	return headerStyle.Render(content)
}

// renderErrorBar renders the one-line error banner under the header.
func (m *Model) renderErrorBar(layout layoutDims) string {
	err := m.snap.LastError
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().
		Foreground(m.th.AccentFg).
		Background(m.th.ErrorFg).
		Bold(true).
		Padding(0, 1).
		Width(layout.width)

	// Keep the banner to one line; shell errors can be long.
	text := strings.ReplaceAll(err.Error(), "\n", " ")
	if repo.PushFailedNeedsUpstream(err) {
		text += "  (press U to push with upstream)"
	}
	text = truncate.StringWithTail(text, uint(max(layout.width-2, 10)), "…")

	return errStyle.Render(text)
}

// renderFooter renders context hints for the focused pane, with the
// spinner appended while a command is running.
func (m *Model) renderFooter(layout layoutDims) string {
	footerStyle := lipgloss.NewStyle().
		Foreground(m.th.TextFg).
		Background(m.th.BorderDim).
		Padding(0, 1)

	var hints []string

	switch m.focusedPane {
	case paneRefs:
		switch m.refsTab {
		case tabBranches:
			hints = []string{
				m.renderKeyHint("Enter", "Switch"),
				m.renderKeyHint("n", "New"),
				m.renderKeyHint("D", "Delete"),
				m.renderKeyHint("t", "Upstream"),
			}
		case tabStashes:
			hints = []string{
				m.renderKeyHint("a", "Apply"),
				m.renderKeyHint("p", "Pop"),
				m.renderKeyHint("D", "Drop"),
			}
		case tabTags:
			hints = []string{
				m.renderKeyHint("n", "New"),
				m.renderKeyHint("D", "Delete"),
				m.renderKeyHint("P", "Push"),
			}
		case tabRemotes:
			hints = []string{
				m.renderKeyHint("n", "Add"),
				m.renderKeyHint("e", "Edit URL"),
				m.renderKeyHint("D", "Remove"),
			}
		}
		hints = append(hints,
			m.renderKeyHint("h/l", "Tab"),
			m.renderKeyHint("q", "Quit"),
			m.renderKeyHint("?", "Help"),
		)

	case paneLog:
		hints = []string{
			m.renderKeyHint("j/k", "Navigate"),
			m.renderKeyHint("r", "Refresh"),
			m.renderKeyHint("Tab", "Switch Pane"),
			m.renderKeyHint("q", "Quit"),
			m.renderKeyHint("?", "Help"),
		}

	default:
		hints = []string{
			m.renderKeyHint("s/u", "Stage"),
			m.renderKeyHint("d", "Diff"),
			m.renderKeyHint("c", "Commit"),
			m.renderKeyHint("S", "Stash"),
			m.renderKeyHint("f/p/P", "Sync"),
			m.renderKeyHint("q", "Quit"),
			m.renderKeyHint("?", "Help"),
		}
	}

	footerContent := strings.Join(hints, "  ")
	if !m.snap.Busy {
		return footerStyle.Width(layout.width).Render(footerContent)
	}
	spinnerView := m.spin.View()
	if depth := m.ctrl.QueueDepth(); depth > 0 {
		spinnerView += m.mutedStyle().Render(fmt.Sprintf(" %d queued", depth))
	}
	gap := "  "
	available := max(layout.width-lipgloss.Width(spinnerView)-lipgloss.Width(gap), 0)
	footer := footerStyle.Width(available).Render(footerContent)
	return lipgloss.JoinHorizontal(lipgloss.Left, footer, gap, spinnerView)
}

// renderKeyHint renders a single key hint with pill styling.
func (m *Model) renderKeyHint(key, label string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(m.th.AccentFg).
		Background(m.th.Accent).
		Bold(true).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(m.th.Accent)
	return fmt.Sprintf("%s %s", keyStyle.Render(key), labelStyle.Render(label))
}

// renderPaneTitle renders a pane title with focus indication.
func (m *Model) renderPaneTitle(index int, title string, focused bool, width int) string {
	numStyle := lipgloss.NewStyle().Foreground(m.th.MutedFg)
	titleStyle := lipgloss.NewStyle().Foreground(m.th.MutedFg)
	if focused {
		numStyle = numStyle.Foreground(m.th.Accent).Bold(true)
		titleStyle = titleStyle.Foreground(m.th.TextFg).Bold(true)
	}
	num := numStyle.Render(fmt.Sprintf("[%d]", index))
	name := titleStyle.Render(title)

	return lipgloss.NewStyle().Width(width).Render(fmt.Sprintf("%s %s", num, name))
}

// basePaneStyle returns the base style for panes.
func (m *Model) basePaneStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.th.BorderDim).
		Padding(0, 1)
}

// paneStyle returns a pane style with focus indication.
func (m *Model) paneStyle(focused bool) lipgloss.Style {
	borderColor := m.th.BorderDim
	borderStyle := lipgloss.NormalBorder()
	if focused {
		borderColor = m.th.Accent
		borderStyle = lipgloss.RoundedBorder()
	}
	return lipgloss.NewStyle().
		Border(borderStyle).
		BorderForeground(borderColor).
		Padding(0, 1)
}

func (m *Model) styleFor(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color)
}

func (m *Model) branchStyle() lipgloss.Style {
	return m.styleFor(m.th.BranchFg)
}

func (m *Model) hashStyle() lipgloss.Style {
	return m.styleFor(m.th.HashFg)
}

func (m *Model) mutedStyle() lipgloss.Style {
	return m.styleFor(m.th.MutedFg)
}

func (m *Model) successStyle() lipgloss.Style {
	return m.styleFor(m.th.SuccessFg)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/gitdeck/gitdeck/internal/tui/screen"
)

// View renders the full frame for the Bubble Tea program.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Wait for window size before rendering full UI
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return "Loading..."
	}

	layout := m.computeLayout()
	m.applyLayout(layout)

	header := m.renderHeader(layout)
	footer := m.renderFooter(layout)
	body := m.renderBody(layout)

	// Truncate body to fit, leaving room for header and footer
	maxBodyLines := m.windowHeight - 2
	if layout.errorHeight > 0 {
		maxBodyLines--
	}
	body = truncateToHeight(body, maxBodyLines)

	sections := []string{header}
	if layout.errorHeight > 0 {
		sections = append(sections, m.renderErrorBar(layout))
	}
	sections = append(sections, body, footer)

	baseView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.screens.IsActive() {
		scr := m.screens.Current()
		switch scr.Type() {
		case screen.TypeDiff:
			if ds, ok := scr.(*screen.DiffScreen); ok {
				ds.Resize(m.windowWidth, m.windowHeight)
			}
			return m.overlayPopup(baseView, scr.View(), 2)
		default:
			return m.overlayPopup(baseView, scr.View(), 3)
		}
	}

	return baseView
}

// renderBody renders the three panes.
func (m *Model) renderBody(layout layoutDims) string {
	left := m.renderFilesPane(layout)
	right := m.renderRightColumn(layout)
	gap := lipgloss.NewStyle().
		Width(layout.gapX).
		Render(strings.Repeat(" ", layout.gapX))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

// renderFilesPane renders the left pane with the working tree status.
func (m *Model) renderFilesPane(layout layoutDims) string {
	focused := m.focusedPane == paneFiles
	title := m.renderPaneTitle(1, "Files", focused, layout.leftInnerWidth)

	var inner string
	switch {
	case m.snap.RepoPath == "":
		inner = m.mutedStyle().Render("No repository open.")
	case m.snap.Status == nil:
		inner = m.mutedStyle().Render("Loading status...")
	case len(m.fileRows) == 0:
		inner = m.successStyle().Render("Clean working tree")
	default:
		inner = m.filesTable.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, inner)
	return m.paneStyle(focused).
		Width(layout.leftWidth).
		Height(layout.bodyHeight).
		MaxHeight(layout.bodyHeight).
		Render(content)
}

// renderRightColumn stacks the refs pane over the log pane.
func (m *Model) renderRightColumn(layout layoutDims) string {
	top := m.renderRefsPane(layout)
	bottom := m.renderLogPane(layout)
	gap := strings.Repeat("\n", layout.gapY)
	return lipgloss.JoinVertical(lipgloss.Left, top, gap, bottom)
}

var refsTabTitles = [refsTabCount]string{"Branches", "Stashes", "Tags", "Remotes"}

// renderRefsPane renders the tabbed refs pane.
func (m *Model) renderRefsPane(layout layoutDims) string {
	focused := m.focusedPane == paneRefs
	title := m.renderPaneTitle(2, "Refs", focused, layout.rightInnerWidth)
	tabs := m.renderRefsTabs(layout.rightInnerWidth)

	listHeight := max(1, layout.rightTopInnerHeight-2)
	list := m.renderRefsList(layout.rightInnerWidth, listHeight, focused)

	content := lipgloss.JoinVertical(lipgloss.Left, title, tabs, list)
	return m.paneStyle(focused).
		Width(layout.rightWidth).
		Height(layout.rightTopHeight).
		MaxHeight(layout.rightTopHeight).
		Render(content)
}

// renderRefsTabs renders the tab strip with the active tab highlighted.
func (m *Model) renderRefsTabs(width int) string {
	activeStyle := lipgloss.NewStyle().
		Foreground(m.th.AccentFg).
		Background(m.th.Accent).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(m.th.MutedFg).
		Padding(0, 1)

	parts := make([]string, 0, refsTabCount)
	for tab, name := range refsTabTitles {
		if tab == m.refsTab {
			parts = append(parts, activeStyle.Render(name))
		} else {
			parts = append(parts, inactiveStyle.Render(name))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, " "))
}

// renderRefsList renders the rows of the active tab, windowed around
// the cursor.
func (m *Model) renderRefsList(width, height int, focused bool) string {
	lines := m.refsTabLines()
	if len(lines) == 0 {
		empty := "No " + strings.ToLower(refsTabTitles[m.refsTab])
		if m.snap.RepoPath == "" {
			empty = "No repository open."
		}
		return m.mutedStyle().Render(empty)
	}

	cursor := m.refsCursors[m.refsTab]
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(len(lines), start+height)

	selectedStyle := lipgloss.NewStyle().
		Foreground(m.th.AccentFg).
		Background(m.th.Accent).
		Bold(true)
	if !focused {
		selectedStyle = lipgloss.NewStyle().
			Foreground(m.th.Accent).
			Background(m.th.BorderDim).
			Bold(true)
	}

	rendered := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == cursor {
			text := lines[i].plain
			if len(text) < width {
				text += strings.Repeat(" ", width-len(text))
			}
			rendered = append(rendered, selectedStyle.Render(truncate.String(text, uint(width))))
			continue
		}
		rendered = append(rendered, truncate.String(lines[i].styled, uint(width)))
	}
	return strings.Join(rendered, "\n")
}

// renderLogPane renders the commit log pane.
func (m *Model) renderLogPane(layout layoutDims) string {
	focused := m.focusedPane == paneLog

	title := "Log"
	if cursor := m.logTable.Cursor(); cursor >= 0 && cursor < len(m.snap.Log) {
		title = "Log  " + commitDate(m.snap.Log[cursor].AuthorDate)
	}
	titleView := m.renderPaneTitle(3, title, focused, layout.rightInnerWidth)

	var inner string
	switch {
	case m.snap.RepoPath == "":
		inner = m.mutedStyle().Render("No repository open.")
	case len(m.snap.Log) == 0:
		inner = m.mutedStyle().Render("No commits.")
	default:
		inner = m.logTable.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, titleView, inner)
	return m.paneStyle(focused).
		Width(layout.rightWidth).
		Height(layout.rightBottomHeight).
		MaxHeight(layout.rightBottomHeight).
		Render(content)
}

// overlayPopup draws popup over base at marginTop, horizontally
// centered, keeping the parts of base outside the popup bounds.
func (m *Model) overlayPopup(base, popup string, marginTop int) string {
	if base == "" || popup == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	if len(baseLines) == 0 {
		return popup
	}

	baseWidth := lipgloss.Width(baseLines[0])
	popupWidth := lipgloss.Width(popupLines[0])

	leftPad := max((baseWidth-popupWidth)/2, 0)

	for i, line := range popupLines {
		row := marginTop + i
		if row >= len(baseLines) {
			break
		}

		// Truncate by display width, not bytes; the base lines carry
		// ANSI sequences.
		leftPart := ansi.Truncate(baseLines[row], leftPad, "")
		if w := lipgloss.Width(leftPart); w < leftPad {
			leftPart += strings.Repeat(" ", leftPad-w)
		}
		rightPart := ansi.TruncateLeft(baseLines[row], leftPad+popupWidth, "")

		newLine := leftPart + line + rightPart
		if w := lipgloss.Width(newLine); w < baseWidth {
			newLine += strings.Repeat(" ", baseWidth-w)
		}
		baseLines[row] = newLine
	}

	return strings.Join(baseLines, "\n")
}

// truncateToHeight clips s to at most maxLines lines.
func truncateToHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}

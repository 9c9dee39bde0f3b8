package screen

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitdeck/gitdeck/internal/theme"
)

type helpEntry struct {
	key  string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

// HelpScreen lists the key bindings.
type HelpScreen struct {
	Thm      *theme.Theme
	sections []helpSection
}

// NewHelpScreen creates the key binding overview.
func NewHelpScreen(thm *theme.Theme) *HelpScreen {
	return &HelpScreen{
		Thm: thm,
		sections: []helpSection{
			{title: "Global", entries: []helpEntry{
				{"1/2/3, tab", "focus files / refs / log"},
				{"r", "refresh everything"},
				{"f / p / P", "fetch / pull / push"},
				{"U", "push with upstream after a rejected push"},
				{"ctrl+k", "kill running command"},
				{"?", "toggle this help"},
				{"q", "quit"},
			}},
			{title: "Files", entries: []helpEntry{
				{"j/k", "move"},
				{"s / u", "stage / unstage"},
				{"x", "discard changes"},
				{"enter, d", "show diff"},
				{"c / C", "commit / amend"},
				{"S", "stash save"},
			}},
			{title: "Branches", entries: []helpEntry{
				{"enter", "switch (remote rows check out a tracking branch)"},
				{"n", "create from selection"},
				{"D / F", "delete / force delete"},
				{"t", "set upstream"},
			}},
			{title: "Stashes", entries: []helpEntry{
				{"a", "apply"},
				{"enter, p", "pop"},
				{"D", "drop"},
			}},
			{title: "Tags", entries: []helpEntry{
				{"n", "create"},
				{"D", "delete"},
				{"P / A", "push tag / push all tags"},
			}},
			{title: "Remotes", entries: []helpEntry{
				{"n", "add (name url)"},
				{"e", "edit URL"},
				{"D", "remove"},
			}},
		},
	}
}

// Type returns the screen type.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// Update closes the help on any key.
func (s *HelpScreen) Update(tea.KeyMsg) (Screen, tea.Cmd) {
	return nil, nil
}

// View renders the key binding table.
func (s *HelpScreen) View() string {
	width := 48

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(width)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(width - 6).
		Align(lipgloss.Center)

	sectionStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(s.Thm.WarnFg).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(s.Thm.TextFg)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	for _, sec := range s.sections {
		b.WriteString("\n\n")
		b.WriteString(sectionStyle.Render(sec.title))
		for _, e := range sec.entries {
			b.WriteString(fmt.Sprintf("\n  %s %s", keyStyle.Render(e.key), descStyle.Render(e.desc)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(width - 6).
		Align(lipgloss.Center).
		Render("press any key to close"))

	return boxStyle.Render(b.String())
}

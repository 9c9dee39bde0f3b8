package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitdeck/gitdeck/internal/theme"
)

// CommitScreen is a multi-line editor for commit messages.
type CommitScreen struct {
	Textarea textarea.Model
	Thm      *theme.Theme
	Amend    bool

	OnSubmit func(message string) tea.Cmd
	OnCancel func() tea.Cmd

	boxWidth int
}

// NewCommitScreen creates the commit editor. When amend is set the
// initial value carries the previous message and the submit reuses it.
func NewCommitScreen(initial string, amend bool, thm *theme.Theme) *CommitScreen {
	ta := textarea.New()
	ta.Placeholder = "Summary of the change..."
	ta.SetValue(initial)
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(64)
	ta.SetHeight(8)

	focused, blurred := textarea.DefaultStyles()
	focused.CursorLine = lipgloss.NewStyle().Background(thm.BorderDim)
	focused.Placeholder = lipgloss.NewStyle().Foreground(thm.MutedFg)
	focused.Text = lipgloss.NewStyle().Foreground(thm.TextFg)
	blurred.Placeholder = lipgloss.NewStyle().Foreground(thm.MutedFg)
	blurred.Text = lipgloss.NewStyle().Foreground(thm.MutedFg)
	ta.FocusedStyle = focused
	ta.BlurredStyle = blurred

	ta.Focus()

	return &CommitScreen{
		Textarea: ta,
		Thm:      thm,
		Amend:    amend,
		boxWidth: 70,
	}
}

// Type returns the screen type.
func (s *CommitScreen) Type() Type {
	return TypeCommit
}

// Update handles keyboard input for the commit editor.
func (s *CommitScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		message := strings.TrimSpace(s.Textarea.Value())
		if message == "" {
			return s, nil
		}
		var cmd tea.Cmd
		if s.OnSubmit != nil {
			cmd = s.OnSubmit(message)
		}
		return nil, cmd

	case keyEsc, keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.Textarea, cmd = s.Textarea.Update(msg)
	return s, cmd
}

// View renders the commit editor box.
func (s *CommitScreen) View() string {
	width := s.boxWidth

	title := "Commit"
	if s.Amend {
		title = "Amend commit"
	}

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

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(width - 6).
		Align(lipgloss.Center).
		Render("Ctrl+S commit • Esc cancel")

	return boxStyle.Render(strings.Join([]string{
		titleStyle.Render(title),
		s.Textarea.View(),
		footer,
	}, "\n\n"))
}

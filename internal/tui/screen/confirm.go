package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitdeck/gitdeck/internal/theme"
)

// ConfirmScreen asks before a destructive action.
type ConfirmScreen struct {
	Message  string
	Selected int // 0 confirm, 1 cancel
	Thm      *theme.Theme

	OnConfirm func() tea.Cmd
	OnCancel  func() tea.Cmd
}

// NewConfirmScreen creates a confirmation dialog. The cancel button
// starts focused; Enter confirms only after an explicit move.
func NewConfirmScreen(message string, thm *theme.Theme) *ConfirmScreen {
	return &ConfirmScreen{
		Message:  message,
		Selected: 1,
		Thm:      thm,
	}
}

// Type returns the screen type.
func (s *ConfirmScreen) Type() Type {
	return TypeConfirm
}

// Update processes keyboard events for the dialog.
func (s *ConfirmScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyTab, "right", "l", "left", "h":
		s.Selected = 1 - s.Selected
	case "y", "Y":
		return nil, s.confirm()
	case "n", "N", keyEsc, "q", keyCtrlC:
		return nil, s.cancel()
	case keyEnter:
		if s.Selected == 0 {
			return nil, s.confirm()
		}
		return nil, s.cancel()
	}
	return s, nil
}

func (s *ConfirmScreen) confirm() tea.Cmd {
	if s.OnConfirm != nil {
		return s.OnConfirm()
	}
	return nil
}

func (s *ConfirmScreen) cancel() tea.Cmd {
	if s.OnCancel != nil {
		return s.OnCancel()
	}
	return nil
}

// View renders the dialog box with the focused button highlighted.
func (s *ConfirmScreen) View() string {
	width := 56

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(width)

	messageStyle := lipgloss.NewStyle().
		Width(width - 6).
		Align(lipgloss.Center).
		Foreground(s.Thm.TextFg)

	buttonWidth := (width - 8) / 2
	focusedConfirm := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(s.Thm.AccentFg).
		Background(s.Thm.ErrorFg).
		Bold(true)
	focusedCancel := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(s.Thm.AccentFg).
		Background(s.Thm.Accent).
		Bold(true)
	unfocused := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(s.Thm.MutedFg).
		Background(s.Thm.BorderDim)

	confirmBtn := unfocused.Render("[Confirm]")
	cancelBtn := unfocused.Render("[Cancel]")
	if s.Selected == 0 {
		confirmBtn = focusedConfirm.Render("[Confirm]")
	} else {
		cancelBtn = focusedCancel.Render("[Cancel]")
	}

	hint := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(width - 6).
		Align(lipgloss.Center).
		Render("y confirm • n cancel")

	content := fmt.Sprintf("%s\n\n%s  %s\n\n%s",
		messageStyle.Render(s.Message), confirmBtn, cancelBtn, hint)

	return boxStyle.Render(content)
}

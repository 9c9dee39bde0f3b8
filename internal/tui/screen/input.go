package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitdeck/gitdeck/internal/theme"
)

// InputScreen is a one-line prompt with optional validation and an
// optional checkbox (used for flags like "include untracked").
type InputScreen struct {
	Prompt   string
	Input    textinput.Model
	ErrorMsg string
	Thm      *theme.Theme

	Validate func(string) string

	// OnSubmit receives the entered value and the checkbox state.
	OnSubmit func(value string, checked bool) tea.Cmd
	OnCancel func() tea.Cmd

	CheckboxEnabled bool
	CheckboxChecked bool
	CheckboxFocused bool
	CheckboxLabel   string

	boxWidth int
}

// NewInputScreen creates an input prompt pre-filled with value.
func NewInputScreen(prompt, placeholder, value string, thm *theme.Theme) *InputScreen {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Focus()
	ti.CharLimit = 200
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(thm.TextFg)
	ti.Width = 52

	return &InputScreen{
		Prompt:   prompt,
		Input:    ti,
		Thm:      thm,
		boxWidth: 60,
	}
}

// SetValidation installs a validator returning an error text, or empty
// when the value is acceptable.
func (s *InputScreen) SetValidation(fn func(string) string) {
	s.Validate = fn
}

// SetCheckbox adds a toggle below the input.
func (s *InputScreen) SetCheckbox(label string, checked bool) {
	s.CheckboxEnabled = true
	s.CheckboxLabel = label
	s.CheckboxChecked = checked
}

// Type returns the screen type.
func (s *InputScreen) Type() Type {
	return TypeInput
}

// Update handles keyboard input for the prompt.
func (s *InputScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case keyTab, "shift+tab":
		if s.CheckboxEnabled {
			s.CheckboxFocused = !s.CheckboxFocused
			return s, nil
		}

	case " ":
		if s.CheckboxEnabled && s.CheckboxFocused {
			s.CheckboxChecked = !s.CheckboxChecked
			return s, nil
		}
		// Let the input take the space.

	case keyEnter:
		value := s.Input.Value()
		if s.Validate != nil {
			if errMsg := strings.TrimSpace(s.Validate(value)); errMsg != "" {
				s.ErrorMsg = errMsg
				return s, nil
			}
			s.ErrorMsg = ""
		}
		if s.OnSubmit != nil {
			cmd = s.OnSubmit(value, s.CheckboxChecked)
			if s.ErrorMsg != "" {
				return s, cmd
			}
		}
		return nil, cmd

	case keyEsc, keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	}

	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// View renders the prompt box.
func (s *InputScreen) View() string {
	width := s.boxWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(width)

	promptStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(width - 6).
		Align(lipgloss.Center)

	inputWrapper := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(width - 6)
	if s.CheckboxEnabled && s.CheckboxFocused {
		inputWrapper = inputWrapper.BorderForeground(s.Thm.BorderDim)
	} else {
		inputWrapper = inputWrapper.BorderForeground(s.Thm.Border)
	}

	lines := []string{promptStyle.Render(s.Prompt)}

	if s.CheckboxEnabled {
		box := "[ ] "
		if s.CheckboxChecked {
			box = "[x] "
		}
		checkboxStyle := lipgloss.NewStyle().Width(width - 6)
		if s.CheckboxFocused {
			checkboxStyle = checkboxStyle.
				Background(s.Thm.Accent).
				Foreground(s.Thm.AccentFg).
				Padding(0, 1).
				Bold(true)
		} else {
			checkboxStyle = checkboxStyle.Foreground(s.Thm.Accent)
		}
		lines = append(lines, checkboxStyle.Render(box+s.CheckboxLabel))
	}

	lines = append(lines, inputWrapper.Render(s.Input.View()))

	if s.ErrorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(s.Thm.ErrorFg).
			Width(width - 6).
			Align(lipgloss.Center)
		lines = append(lines, errorStyle.Render(s.ErrorMsg))
	}

	footerText := "Enter confirm • Esc cancel"
	if s.CheckboxEnabled {
		footerText = "Tab switch focus • Space toggle • Enter confirm • Esc cancel"
	}
	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(width - 6).
		Align(lipgloss.Center).
		Render(footerText)
	lines = append(lines, footer)

	return boxStyle.Render(strings.Join(lines, "\n\n"))
}

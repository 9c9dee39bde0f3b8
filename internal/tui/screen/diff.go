package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitdeck/gitdeck/internal/theme"
)

// DiffScreen shows a scrollable diff for a single path.
type DiffScreen struct {
	Path     string
	Staged   bool
	Viewport viewport.Model
	Thm      *theme.Theme

	width  int
	height int
}

// NewDiffScreen creates a diff viewer sized for the given window.
func NewDiffScreen(path string, staged bool, width, height int, thm *theme.Theme) *DiffScreen {
	s := &DiffScreen{
		Path:   path,
		Staged: staged,
		Thm:    thm,
	}
	s.Resize(width, height)
	return s
}

// Resize fits the viewer to a new window size.
func (s *DiffScreen) Resize(width, height int) {
	s.width = width
	s.height = height

	vpWidth := width - 8
	if vpWidth < 20 {
		vpWidth = 20
	}
	vpHeight := height - 8
	if vpHeight < 4 {
		vpHeight = 4
	}

	if s.Viewport.Width == 0 && s.Viewport.Height == 0 {
		s.Viewport = viewport.New(vpWidth, vpHeight)
	} else {
		s.Viewport.Width = vpWidth
		s.Viewport.Height = vpHeight
	}
}

// SetContent replaces the diff text, keeping the scroll at the top.
func (s *DiffScreen) SetContent(content string) {
	s.Viewport.SetContent(content)
	s.Viewport.GotoTop()
}

// Type returns the screen type.
func (s *DiffScreen) Type() Type {
	return TypeDiff
}

// Update handles keyboard input for the viewer.
func (s *DiffScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc, keyCtrlC, keyEnter:
		return nil, nil
	case "ctrl+d":
		s.Viewport.HalfPageDown()
		return s, nil
	case "ctrl+u":
		s.Viewport.HalfPageUp()
		return s, nil
	case "g":
		s.Viewport.GotoTop()
		return s, nil
	case "G":
		s.Viewport.GotoBottom()
		return s, nil
	}

	var cmd tea.Cmd
	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// View renders the diff box.
func (s *DiffScreen) View() string {
	boxWidth := s.Viewport.Width + 6

	title := s.Path
	if s.Staged {
		title += " (staged)"
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(0, 2).
		Width(boxWidth)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(s.Viewport.Width).
		Align(lipgloss.Center)

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Viewport.Width).
		Align(lipgloss.Center).
		Render("j/k scroll • Ctrl+D/Ctrl+U half page • q close")

	return boxStyle.Render(strings.Join([]string{
		titleStyle.Render(title),
		s.Viewport.View(),
		footer,
	}, "\n"))
}

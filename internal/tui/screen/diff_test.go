package screen

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitdeck/gitdeck/internal/theme"
)

func TestDiffScreenType(t *testing.T) {
	s := NewDiffScreen("main.go", false, 120, 40, theme.Dracula())
	if s.Type() != TypeDiff {
		t.Fatalf("expected TypeDiff, got %v", s.Type())
	}
}

func TestDiffScreenClosesOnQ(t *testing.T) {
	s := NewDiffScreen("main.go", false, 120, 40, theme.Dracula())
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if next != nil {
		t.Fatal("expected screen to close on q")
	}
}

func TestDiffScreenScrollKeysStayOpen(t *testing.T) {
	s := NewDiffScreen("main.go", false, 120, 40, theme.Dracula())
	s.SetContent(strings.Repeat("line\n", 200))

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if next == nil {
		t.Fatal("expected screen to stay open while scrolling")
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if next == nil {
		t.Fatal("expected screen to stay open on half page down")
	}
}

func TestDiffScreenTitleShowsStaged(t *testing.T) {
	s := NewDiffScreen("main.go", true, 120, 40, theme.Dracula())
	if !strings.Contains(s.View(), "(staged)") {
		t.Fatal("expected the staged marker in the title")
	}
}

func TestDiffScreenResizeClampsToMinimum(t *testing.T) {
	s := NewDiffScreen("main.go", false, 10, 5, theme.Dracula())
	if s.Viewport.Width < 20 {
		t.Fatalf("expected viewport width clamped to 20, got %d", s.Viewport.Width)
	}
	if s.Viewport.Height < 4 {
		t.Fatalf("expected viewport height clamped to 4, got %d", s.Viewport.Height)
	}

	s.Resize(120, 40)
	if s.Viewport.Width != 112 {
		t.Fatalf("expected viewport width 112, got %d", s.Viewport.Width)
	}
	if s.Viewport.Height != 32 {
		t.Fatalf("expected viewport height 32, got %d", s.Viewport.Height)
	}
}

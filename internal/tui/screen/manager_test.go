package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitdeck/gitdeck/internal/theme"
)

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m == nil {
		t.Fatal("expected non-nil manager")
	}
	if m.IsActive() {
		t.Error("expected new manager to have no active screen")
	}
	if m.Type() != TypeNone {
		t.Errorf("expected TypeNone, got %v", m.Type())
	}
}

func TestManagerPushPop(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	confirm := NewConfirmScreen("delete branch topic?", thm)
	m.Push(confirm)

	if !m.IsActive() {
		t.Error("expected manager to be active after push")
	}
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm, got %v", m.Type())
	}
	if m.Current() != confirm {
		t.Error("expected current to be the pushed screen")
	}

	help := NewHelpScreen(thm)
	m.Push(help)

	if m.Type() != TypeHelp {
		t.Errorf("expected TypeHelp, got %v", m.Type())
	}

	popped := m.Pop()
	if popped != help {
		t.Error("expected to pop the help screen")
	}
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm after pop, got %v", m.Type())
	}

	popped = m.Pop()
	if popped != confirm {
		t.Error("expected to pop the confirm screen")
	}
	if m.IsActive() {
		t.Error("expected manager to be inactive after popping all screens")
	}
	if m.Pop() != nil {
		t.Error("expected pop on empty manager to return nil")
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	m.Push(NewConfirmScreen("discard?", thm))
	m.Push(NewHelpScreen(thm))

	m.Clear()

	if m.IsActive() {
		t.Error("expected manager to be inactive after clear")
	}
	if m.Type() != TypeNone {
		t.Errorf("expected TypeNone after clear, got %v", m.Type())
	}
}

func TestConfirmScreenDefaultsToCancel(t *testing.T) {
	thm := theme.Dracula()
	s := NewConfirmScreen("discard changes?", thm)

	if s.Selected != 1 {
		t.Fatalf("expected cancel button focused by default, got %d", s.Selected)
	}

	cancelCalled := false
	s.OnCancel = func() tea.Cmd {
		cancelCalled = true
		return nil
	}
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil {
		t.Error("expected screen to close on enter")
	}
	if !cancelCalled {
		t.Error("expected enter on the default selection to cancel")
	}
}

func TestConfirmScreenUpdate(t *testing.T) {
	thm := theme.Dracula()

	s := NewConfirmScreen("discard?", thm)
	updated, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	if updated.(*ConfirmScreen).Selected != 0 {
		t.Error("expected tab to move focus to the confirm button")
	}

	s = NewConfirmScreen("discard?", thm)
	confirmCalled := false
	s.OnConfirm = func() tea.Cmd {
		confirmCalled = true
		return nil
	}
	updated, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if updated != nil {
		t.Error("expected nil screen after confirm")
	}
	if !confirmCalled {
		t.Error("expected OnConfirm to be called for 'y' key")
	}

	s = NewConfirmScreen("discard?", thm)
	cancelCalled := false
	s.OnCancel = func() tea.Cmd {
		cancelCalled = true
		return nil
	}
	updated, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if updated != nil {
		t.Error("expected nil screen after cancel")
	}
	if !cancelCalled {
		t.Error("expected OnCancel to be called for 'n' key")
	}
}

func TestConfirmScreenEnterOnConfirmButton(t *testing.T) {
	thm := theme.Dracula()
	s := NewConfirmScreen("discard?", thm)
	confirmCalled := false
	s.OnConfirm = func() tea.Cmd {
		confirmCalled = true
		return nil
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	if next == nil {
		t.Fatal("expected screen to stay open while moving focus")
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil {
		t.Error("expected screen to close on enter")
	}
	if !confirmCalled {
		t.Error("expected enter on the confirm button to confirm")
	}
}

func TestHelpScreenClosesOnAnyKey(t *testing.T) {
	thm := theme.Dracula()
	s := NewHelpScreen(thm)

	if s.Type() != TypeHelp {
		t.Fatalf("expected TypeHelp, got %v", s.Type())
	}
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if next != nil {
		t.Error("expected help screen to close on any key")
	}
	if s.View() == "" {
		t.Error("expected help screen to render content")
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t        Type
		expected string
	}{
		{TypeNone, "none"},
		{TypeConfirm, "confirm"},
		{TypeInput, "input"},
		{TypeCommit, "commit"},
		{TypeDiff, "diff"},
		{TypeHelp, "help"},
		{Type(999), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.t.String(); got != tc.expected {
			t.Errorf("Type(%d).String() = %q, want %q", tc.t, got, tc.expected)
		}
	}
}

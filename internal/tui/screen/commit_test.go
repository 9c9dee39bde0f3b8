package screen

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitdeck/gitdeck/internal/theme"
)

func TestCommitScreenType(t *testing.T) {
	s := NewCommitScreen("", false, theme.Dracula())
	if s.Type() != TypeCommit {
		t.Fatalf("expected TypeCommit, got %v", s.Type())
	}
}

func TestCommitScreenCtrlSSubmit(t *testing.T) {
	s := NewCommitScreen("fix parser", false, theme.Dracula())
	called := false
	var gotMessage string
	s.OnSubmit = func(message string) tea.Cmd {
		called = true
		gotMessage = message
		return nil
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if next != nil {
		t.Fatal("expected screen to close on Ctrl+S")
	}
	if !called {
		t.Fatal("expected submit callback to be called")
	}
	if gotMessage != "fix parser" {
		t.Fatalf("expected message %q, got %q", "fix parser", gotMessage)
	}
}

func TestCommitScreenEmptyMessageStaysOpen(t *testing.T) {
	s := NewCommitScreen("", false, theme.Dracula())
	s.OnSubmit = func(string) tea.Cmd {
		t.Fatal("expected submit not to run for an empty message")
		return nil
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if next == nil {
		t.Fatal("expected screen to stay open for an empty message")
	}
}

func TestCommitScreenAmendKeepsInitialMessage(t *testing.T) {
	s := NewCommitScreen("old message", true, theme.Dracula())
	if s.Textarea.Value() != "old message" {
		t.Fatalf("expected prefilled message, got %q", s.Textarea.Value())
	}

	var gotMessage string
	s.OnSubmit = func(message string) tea.Cmd {
		gotMessage = message
		return nil
	}
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if next != nil {
		t.Fatal("expected screen to close on Ctrl+S")
	}
	if gotMessage != "old message" {
		t.Fatalf("expected the prefilled message to be submitted, got %q", gotMessage)
	}
}

func TestCommitScreenEnterAddsNewLine(t *testing.T) {
	s := NewCommitScreen("summary", false, theme.Dracula())

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next == nil {
		t.Fatal("expected screen to stay open on Enter")
	}
	updated := next.(*CommitScreen)
	if updated.Textarea.Value() != "summary\n" {
		t.Fatalf("expected newline to be inserted, got %q", updated.Textarea.Value())
	}
}

func TestCommitScreenAmendTitle(t *testing.T) {
	s := NewCommitScreen("old message", true, theme.Dracula())
	if !strings.Contains(s.View(), "Amend commit") {
		t.Fatal("expected amend title in the view")
	}
}

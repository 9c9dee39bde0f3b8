// Package screen implements the modal overlays the TUI stacks on top of
// its panes: confirmations, line inputs, the commit editor, the diff
// viewer and the help page.
package screen

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is a modal overlay. Update returning a nil Screen closes it.
type Screen interface {
	Update(msg tea.KeyMsg) (Screen, tea.Cmd)
	View() string
	Type() Type
}

// Type identifies the kind of screen being displayed.
type Type int

// Screen type constants.
const (
	TypeNone Type = iota
	TypeConfirm
	TypeInput
	TypeCommit
	TypeDiff
	TypeHelp
)

// String returns a human-readable name for the screen type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeConfirm:
		return "confirm"
	case TypeInput:
		return "input"
	case TypeCommit:
		return "commit"
	case TypeDiff:
		return "diff"
	case TypeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Shared key strings.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyTab   = "tab"
	keyCtrlC = "ctrl+c"
)

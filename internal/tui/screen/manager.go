package screen

// Manager keeps the stack of active overlays. The top of the stack
// receives input; closing it reveals the one beneath.
type Manager struct {
	current Screen
	stack   []Screen
}

// NewManager creates an empty screen manager.
func NewManager() *Manager {
	return &Manager{}
}

// Push makes s the active screen, keeping the previous one underneath.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	if m.current != nil {
		m.stack = append(m.stack, m.current)
	}
	m.current = s
}

// Pop closes the active screen and restores the previous one. It
// returns the screen that was closed, or nil when none was active.
func (m *Manager) Pop() Screen {
	closed := m.current
	if n := len(m.stack); n > 0 {
		m.current = m.stack[n-1]
		m.stack = m.stack[:n-1]
	} else {
		m.current = nil
	}
	return closed
}

// Current returns the active screen, or nil.
func (m *Manager) Current() Screen {
	return m.current
}

// IsActive reports whether any screen is displayed.
func (m *Manager) IsActive() bool {
	return m.current != nil
}

// Type returns the active screen's type, or TypeNone.
func (m *Manager) Type() Type {
	if m.current == nil {
		return TypeNone
	}
	return m.current.Type()
}

// Clear drops every screen.
func (m *Manager) Clear() {
	m.current = nil
	m.stack = m.stack[:0]
}

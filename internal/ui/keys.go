package ui

import (
	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// cursorKeys move the highlight on the current level. Printable keys never
// reach this table: they feed the filter first.
var cursorKeys = map[string]func(m *Model, l *level) bool{
	"up":     func(_ *Model, l *level) bool { return l.MoveCursorUp() },
	"ctrl+p": func(_ *Model, l *level) bool { return l.MoveCursorUp() },
	"down":   func(_ *Model, l *level) bool { return l.MoveCursorDown() },
	"ctrl+n": func(_ *Model, l *level) bool { return l.MoveCursorDown() },
	"home":   func(_ *Model, l *level) bool { return l.MoveCursorHome() },
	"end":    func(_ *Model, l *level) bool { return l.MoveCursorEnd() },
	"pgup":   func(m *Model, l *level) bool { return l.MoveCursorPageUp(m.maxVisibleItems()) },
	"pgdown": func(m *Model, l *level) bool { return l.MoveCursorPageDown(m.maxVisibleItems()) },
}

var actionKeys = map[string]func(m *Model) tea.Cmd{
	"ctrl+c": func(*Model) tea.Cmd { return tea.Quit },
	"esc":    (*Model).handleEscapeKey,
	"enter":  (*Model).handleEnterKey,
	"ctrl+o": (*Model).handleOpenKey,
	"ctrl+y": (*Model).handleCopyKey,
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if handled, cmd := m.handleTextInput(key); handled {
		return cmd
	}
	name := key.String()
	if action, ok := actionKeys[name]; ok {
		return action(m)
	}
	if move, ok := cursorKeys[name]; ok {
		if current := m.currentLevel(); current != nil {
			if move(m, current) {
				events.UI.MenuCursor(current.ID, current.Cursor)
			}
			m.syncViewport(current)
		}
	}
	return nil
}

func (m *Model) syncViewport(l *level) {
	if l != nil {
		l.EnsureCursorVisible(m.maxVisibleItems())
	}
}

func (m *Model) currentLevel() *level {
	if n := len(m.stack); n > 0 {
		return m.stack[n-1]
	}
	return nil
}

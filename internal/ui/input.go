package ui

import (
	"unicode"

	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	filterPromptText  = "» "
	filterPlaceholder = "(type to search)"
)

// filterEdit is one key's effect on the current level's filter. Edits that
// change the query also clear the status line and re-sync the viewport;
// caret moves only trace.
type filterEdit struct {
	apply     func(*level) bool
	editsText bool
	trace     func(*level)
}

var filterKeys = map[string]filterEdit{
	"ctrl+u": {
		apply:     clearFilter,
		editsText: true,
		trace:     func(l *level) { events.Filter.Cleared(l.ID) },
	},
	"ctrl+w": {
		apply:     (*level).DeleteFilterWordBackward,
		editsText: true,
		trace:     func(l *level) { events.Filter.WordBackspace(l.ID, l.Filter) },
	},
	"backspace": backspaceEdit,
	"ctrl+h":    backspaceEdit,
	"ctrl+a":    caretEdit((*level).MoveFilterCursorStart, false),
	"ctrl+e":    caretEdit((*level).MoveFilterCursorEnd, false),
	"left":      caretEdit((*level).MoveFilterCursorRuneBackward, false),
	"right":     caretEdit((*level).MoveFilterCursorRuneForward, false),
	"alt+b":     caretEdit((*level).MoveFilterCursorWordBackward, true),
	"alt+f":     caretEdit((*level).MoveFilterCursorWordForward, true),
}

var backspaceEdit = filterEdit{
	apply:     (*level).DeleteFilterRuneBackward,
	editsText: true,
	trace:     func(l *level) { events.Filter.Backspace(l.ID, l.Filter) },
}

func caretEdit(move func(*level) bool, byWord bool) filterEdit {
	return filterEdit{
		apply: move,
		trace: func(l *level) {
			if byWord {
				events.Filter.CursorWord(l.ID, l.FilterCursor)
				return
			}
			events.Filter.Cursor(l.ID, l.FilterCursor)
		},
	}
}

func clearFilter(l *level) bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("", 0)
	return true
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *level, before int) {
	if l != nil && before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput routes filter keys. It reports false for keys the filter
// did not consume so navigation can have them.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.loading {
		return false, nil
	}
	current := m.currentLevel()
	if current == nil {
		return false, nil
	}
	if edit, ok := filterKeys[msg.String()]; ok {
		return m.editFilter(current, edit), nil
	}
	switch msg.Type {
	case tea.KeySpace:
		return m.appendToFilter(" "), nil
	case tea.KeyRunes:
		if msg.Alt || !printable(msg.Runes) {
			return false, nil
		}
		return m.appendToFilter(string(msg.Runes)), nil
	}
	return false, nil
}

func printable(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func (m *Model) editFilter(l *level, edit filterEdit) bool {
	before := l.FilterCursorPos()
	if !edit.apply(l) {
		return false
	}
	m.noteFilterCursorChange(l, before)
	if edit.editsText {
		m.forceClearInfo()
		m.errMsg = ""
		m.syncViewport(l)
	}
	if edit.trace != nil {
		edit.trace(l)
	}
	return true
}

func (m *Model) appendToFilter(text string) bool {
	current := m.currentLevel()
	if text == "" || current == nil {
		return false
	}
	return m.editFilter(current, filterEdit{
		apply:     func(l *level) bool { return l.InsertFilterText(text) },
		editsText: true,
		trace:     func(l *level) { events.Filter.Append(l.ID, l.Filter) },
	})
}

// filterPrompt renders the bottom prompt with the caret at the filter
// cursor, or the placeholder when the filter is empty.
func (m *Model) filterPrompt() (string, *lipgloss.Style) {
	prompt := renderWith(styles.FilterPrompt, filterPromptText)
	current := m.currentLevel()
	if current == nil {
		return prompt, styles.Filter
	}
	m.filterCursor.Style = lipgloss.Style{}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if current.Filter == "" {
		runes := []rune(filterPlaceholder)
		m.filterCursor.TextStyle = copyStyle(styles.FilterPlaceholder)
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + renderWith(styles.FilterPlaceholder, string(runes[1:])), styles.FilterPlaceholder
	}
	m.filterCursor.TextStyle = copyStyle(styles.Filter)
	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	caret, after := " ", ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	line := prompt +
		renderWith(styles.Filter, string(runes[:pos])) +
		m.renderFilterCursor(caret) +
		renderWith(styles.Filter, after)
	return line, styles.Filter
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	switch {
	case m.filterCursor.Blink:
		return base.Render(char)
	case styles.Cursor != nil:
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	default:
		return base.Reverse(true).Render(char)
	}
}

func renderWith(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func copyStyle(style *lipgloss.Style) lipgloss.Style {
	if style == nil {
		return lipgloss.Style{}
	}
	return style.Copy()
}

package state

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SetFilter replaces the query and places the caret at cursor. The row
// highlighted before a query starts is remembered in LastCursor and
// restored once the query is cleared again.
func (l *Level) SetFilter(query string, cursor int) {
	wasActive := strings.TrimSpace(l.Filter) != ""
	needle := strings.TrimSpace(query)
	l.Filter = query
	l.FilterCursor = clampInt(cursor, 0, utf8.RuneCountInString(query))

	switch {
	case needle != "":
		if !wasActive {
			l.LastCursor = l.Cursor
		}
		l.Cursor = 0
		l.applyFilter()
		if len(l.Items) > 0 {
			if idx := BestMatchIndex(l.Items, needle); idx >= 0 {
				l.Cursor = idx
			}
		}
	case wasActive:
		restore := l.LastCursor
		l.applyFilter()
		l.LastCursor = -1
		switch {
		case restore >= 0 && restore < len(l.Items):
			l.Cursor = restore
		case len(l.Items) > 0:
			l.Cursor = l.firstEnabled()
		}
	default:
		l.applyFilter()
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	n := len(l.Items)
	switch {
	case n == 0:
		l.Cursor, l.ViewportOffset = 0, 0
		return
	case l.Cursor < 0:
		l.Cursor = l.firstEnabled()
		return
	case l.Cursor >= n:
		l.Cursor = l.lastEnabled()
	}
	if l.ViewportOffset >= n {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the caret as a rune offset clamped to the query.
func (l *Level) FilterCursorPos() int {
	return clampInt(l.FilterCursor, 0, utf8.RuneCountInString(l.Filter))
}

// InsertFilterText inserts text at the caret.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := l.FilterCursorPos()
	l.splice(pos, pos, insert)
	return true
}

// DeleteFilterRuneBackward removes the rune left of the caret.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.splice(pos-1, pos, nil)
	return true
}

// DeleteFilterWordBackward removes the word left of the caret along with
// any spaces between it and the caret.
func (l *Level) DeleteFilterWordBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.splice(wordStart([]rune(l.Filter), pos), pos, nil)
	return true
}

func (l *Level) MoveFilterCursorStart() bool { return l.moveCaret(0) }

func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveCaret(utf8.RuneCountInString(l.Filter))
}

func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.moveCaret(wordStart([]rune(l.Filter), l.FilterCursorPos()))
}

func (l *Level) MoveFilterCursorWordForward() bool {
	return l.moveCaret(wordEnd([]rune(l.Filter), l.FilterCursorPos()))
}

func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveCaret(l.FilterCursorPos() - 1)
}

func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveCaret(l.FilterCursorPos() + 1)
}

// moveCaret clamps pos into the query and reports whether the caret moved.
func (l *Level) moveCaret(pos int) bool {
	pos = clampInt(pos, 0, utf8.RuneCountInString(l.Filter))
	if pos == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = pos
	return true
}

// splice replaces runes [from, to) of the query with insert and leaves the
// caret after the inserted text.
func (l *Level) splice(from, to int, insert []rune) {
	runes := []rune(l.Filter)
	out := make([]rune, 0, len(runes)-(to-from)+len(insert))
	out = append(out, runes[:from]...)
	out = append(out, insert...)
	out = append(out, runes[to:]...)
	l.SetFilter(string(out), from+len(insert))
}

func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package state

import "testing"

func TestQueryRemembersHighlightedRow(t *testing.T) {
	l := newTestLevel("one", "two", "three")
	l.Cursor = 2

	l.SetFilter("two", 3)
	if l.Filter != "two" || l.FilterCursor != 3 {
		t.Fatalf("query state %q/%d", l.Filter, l.FilterCursor)
	}
	if len(l.Items) != 1 || l.Items[0].ID != "two" || l.Cursor != 0 {
		t.Fatalf("expected only 'two' highlighted, got %#v cursor=%d", l.Items, l.Cursor)
	}
	if l.LastCursor != 2 {
		t.Fatalf("expected remembered row 2, got %d", l.LastCursor)
	}

	// refining the query keeps the first remembered row
	l.SetFilter("tw", 2)
	if l.LastCursor != 2 {
		t.Fatalf("refinement overwrote remembered row: %d", l.LastCursor)
	}

	l.SetFilter("", 0)
	if l.Cursor != 2 || l.LastCursor != -1 {
		t.Fatalf("expected row 2 restored and memory reset, got %d/%d", l.Cursor, l.LastCursor)
	}
	if len(l.Items) != 3 {
		t.Fatalf("expected all rows back, got %d", len(l.Items))
	}
}

func TestSetFilterClampsCaret(t *testing.T) {
	l := newTestLevel("alpha")
	l.SetFilter("al", 10)
	if l.FilterCursor != 2 {
		t.Fatalf("expected caret clamped to 2, got %d", l.FilterCursor)
	}
	l.SetFilter("al", -3)
	if l.FilterCursor != 0 {
		t.Fatalf("expected caret clamped to 0, got %d", l.FilterCursor)
	}
}

func TestQueryEdits(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		caret     int
		edit      func(*Level) bool
		want      string
		wantCaret int
		changed   bool
	}{
		{"insert at end", "ab", 2, func(l *Level) bool { return l.InsertFilterText("c") }, "abc", 3, true},
		{"insert in middle", "ab", 1, func(l *Level) bool { return l.InsertFilterText("z") }, "azb", 2, true},
		{"insert multibyte", "ab", 1, func(l *Level) bool { return l.InsertFilterText("é") }, "aéb", 2, true},
		{"insert nothing", "ab", 1, func(l *Level) bool { return l.InsertFilterText("") }, "ab", 1, false},
		{"backspace", "azb", 2, (*Level).DeleteFilterRuneBackward, "ab", 1, true},
		{"backspace at start", "abc", 0, (*Level).DeleteFilterRuneBackward, "abc", 0, false},
		{"word backspace", "abc def", 7, (*Level).DeleteFilterWordBackward, "abc ", 4, true},
		{"word backspace eats spaces", "abc def  ", 9, (*Level).DeleteFilterWordBackward, "abc ", 4, true},
		{"word backspace mid query", "abc def", 3, (*Level).DeleteFilterWordBackward, " def", 0, true},
		{"word backspace at start", "abc", 0, (*Level).DeleteFilterWordBackward, "abc", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLevel("alpha")
			l.SetFilter(tc.query, tc.caret)
			if got := tc.edit(l); got != tc.changed {
				t.Fatalf("changed=%v, want %v", got, tc.changed)
			}
			if l.Filter != tc.want || l.FilterCursor != tc.wantCaret {
				t.Fatalf("got %q/%d, want %q/%d", l.Filter, l.FilterCursor, tc.want, tc.wantCaret)
			}
		})
	}
}

func TestCaretMoves(t *testing.T) {
	const query = "one two"
	cases := []struct {
		name  string
		from  int
		move  func(*Level) bool
		want  int
		moved bool
	}{
		{"word back", 7, (*Level).MoveFilterCursorWordBackward, 4, true},
		{"word back from space", 4, (*Level).MoveFilterCursorWordBackward, 0, true},
		{"word back at start", 0, (*Level).MoveFilterCursorWordBackward, 0, false},
		{"word forward", 0, (*Level).MoveFilterCursorWordForward, 4, true},
		{"word forward to end", 4, (*Level).MoveFilterCursorWordForward, 7, true},
		{"word forward at end", 7, (*Level).MoveFilterCursorWordForward, 7, false},
		{"rune back", 7, (*Level).MoveFilterCursorRuneBackward, 6, true},
		{"rune back at start", 0, (*Level).MoveFilterCursorRuneBackward, 0, false},
		{"rune forward", 6, (*Level).MoveFilterCursorRuneForward, 7, true},
		{"rune forward at end", 7, (*Level).MoveFilterCursorRuneForward, 7, false},
		{"home", 5, (*Level).MoveFilterCursorStart, 0, true},
		{"home at start", 0, (*Level).MoveFilterCursorStart, 0, false},
		{"end", 2, (*Level).MoveFilterCursorEnd, 7, true},
		{"end at end", 7, (*Level).MoveFilterCursorEnd, 7, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLevel("one", "two")
			l.SetFilter(query, tc.from)
			if got := tc.move(l); got != tc.moved {
				t.Fatalf("moved=%v, want %v", got, tc.moved)
			}
			if l.FilterCursor != tc.want {
				t.Fatalf("caret %d, want %d", l.FilterCursor, tc.want)
			}
			if l.Filter != query {
				t.Fatalf("caret move changed the query to %q", l.Filter)
			}
		})
	}
}

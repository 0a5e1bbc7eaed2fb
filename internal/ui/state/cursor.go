package state

// Cursor moves never rest on a disabled row (separator, header, placeholder)
// unless the level has no enabled row at all. Each move reports whether the
// cursor changed.

func (l *Level) MoveCursorUp() bool   { return l.step(-1) }
func (l *Level) MoveCursorDown() bool { return l.step(1) }

// step walks to the next enabled row in dir, wrapping around.
func (l *Level) step(dir int) bool {
	n := len(l.Items)
	if n == 0 {
		return l.reset()
	}
	pos := l.Cursor
	if pos < 0 || pos >= n {
		pos = 0
	}
	for range n {
		pos = (pos + dir + n) % n
		if l.Items[pos].Enabled() {
			return l.place(pos)
		}
	}
	return false
}

func (l *Level) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		return l.reset()
	}
	return l.place(l.firstEnabled())
}

func (l *Level) MoveCursorEnd() bool {
	if len(l.Items) == 0 {
		return l.reset()
	}
	return l.place(l.lastEnabled())
}

// MoveCursorPageUp moves up one page of maxVisible rows.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.jump(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves down one page of maxVisible rows.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.jump(l.pageSize(maxVisible))
}

// jump moves by delta without wrapping, then steps off a disabled landing
// row, preferring the direction of travel.
func (l *Level) jump(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		return l.reset()
	}
	target := clampInt(max(l.Cursor, 0)+delta, 0, n-1)
	if !l.Items[target].Enabled() {
		target = l.nearestEnabled(target, delta < 0)
	}
	return l.place(target)
}

func (l *Level) nearestEnabled(from int, backwardFirst bool) int {
	dirs := [2]int{1, -1}
	if backwardFirst {
		dirs = [2]int{-1, 1}
	}
	for _, dir := range dirs {
		for i := from + dir; i >= 0 && i < len(l.Items); i += dir {
			if l.Items[i].Enabled() {
				return i
			}
		}
	}
	return from
}

// reset parks the cursor on an empty level; it never counts as a move.
func (l *Level) reset() bool {
	l.Cursor = 0
	return false
}

func (l *Level) place(pos int) bool {
	moved := l.Cursor != pos
	l.Cursor = pos
	return moved
}

func (l *Level) firstEnabled() int {
	for i, item := range l.Items {
		if item.Enabled() {
			return i
		}
	}
	return 0
}

func (l *Level) lastEnabled() int {
	for i := len(l.Items) - 1; i >= 0; i-- {
		if l.Items[i].Enabled() {
			return i
		}
	}
	return max(len(l.Items)-1, 0)
}

func (l *Level) pageSize(maxVisible int) int {
	if maxVisible <= 0 || maxVisible > len(l.Items) {
		return len(l.Items)
	}
	return maxVisible
}

// EnsureCursorVisible clamps the cursor into the rows and scrolls the
// viewport the least amount that keeps it on screen.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clampInt(l.Cursor, 0, n-1)
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(n-maxVisible, 0)
	offset := clampInt(l.ViewportOffset, 0, maxOffset)
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor >= offset+maxVisible:
		offset = clampInt(l.Cursor-maxVisible+1, 0, maxOffset)
	}
	l.ViewportOffset = offset
}

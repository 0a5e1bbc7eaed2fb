package state

import (
	"strings"

	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
)

// Level encapsulates menu level state such as cursor position, filter, and viewport.
type Level struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	Node           *menu.Node
	ViewportOffset int
}

// NewLevel constructs a Level using the provided items and menu node.
func NewLevel(id, title string, items []Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
		Node:       node,
	}
	l.UpdateItems(items)
	return l
}

// ForNode builds a level listing the children of node.
func ForNode(id, title string, node *menu.Node) *Level {
	return NewLevel(id, title, ItemsFor(node), node)
}

// IndexOf returns the index for a given item identifier. Child level IDs
// are accepted too: the segment after the last ':' names the item.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	if idx := strings.LastIndex(id, ":"); idx >= 0 {
		suffix := id[idx+1:]
		for i, item := range l.Items {
			if item.ID == suffix {
				return i
			}
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// ChildID is the level ID used when item is entered from l.
func (l *Level) ChildID(item Item) string {
	return l.ID + ":" + item.ID
}

// Refresh reloads the items from the level's node, keeping the cursor on
// the same row when it survives.
func (l *Level) Refresh() {
	if l.Node == nil {
		return
	}
	var keep string
	if item, ok := l.Current(); ok && item.Enabled() {
		keep = item.ID
	}
	l.UpdateItems(ItemsFor(l.Node))
	if keep != "" {
		if idx := l.IndexOf(keep); idx >= 0 {
			l.Cursor = idx
			return
		}
	}
	if item, ok := l.Current(); !ok || !item.Enabled() {
		l.Cursor = l.firstEnabled()
	}
}

// UpdateItems refreshes the level items while preserving the viewport if possible.
func (l *Level) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

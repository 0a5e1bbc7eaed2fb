package state

import (
	"strconv"

	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
)

// Item is one row of a level. ID is stable within the level: leaves use
// their command ID, other rows their position.
type Item struct {
	ID     string
	Label  string
	Detail string
	Glyph  string
	Node   *menu.Node
}

// Enabled reports whether the cursor may rest on the item.
func (i Item) Enabled() bool {
	return i.Node != nil && !i.Node.Disabled()
}

// ItemsFor converts the children of n into level items.
func ItemsFor(n *menu.Node) []Item {
	if n == nil {
		return nil
	}
	items := make([]Item, 0, len(n.Children))
	for idx, child := range n.Children {
		item := Item{
			ID:     "row-" + strconv.Itoa(idx),
			Label:  child.Label,
			Detail: child.Detail,
			Node:   child,
		}
		if child.Selectable() && child.ID > 0 {
			item.ID = strconv.Itoa(child.ID)
		}
		if child.Icon != nil {
			item.Glyph = child.Icon.Glyph
		}
		items = append(items, item)
	}
	return items
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

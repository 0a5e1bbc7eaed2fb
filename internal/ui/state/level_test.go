package state

import (
	"testing"

	"github.com/atomicstack/tmux-popup-launcher/internal/icon"
	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
)

func TestItemsForUsesCommandIDs(t *testing.T) {
	root := &menu.Node{Kind: menu.NodeContainer, Children: []*menu.Node{
		{Kind: menu.NodeStatic, ID: 1000, Label: "Home", Icon: &icon.Handle{Glyph: "~"}},
		{Kind: menu.NodeSeparator},
		{Kind: menu.NodeContainer, Label: "Projects"},
		{Kind: menu.NodeDiscovered, ID: 3004, Label: "notes", Detail: "1 kB"},
	}}
	items := ItemsFor(root)
	want := []string{"1000", "row-1", "row-2", "3004"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("item %d: expected ID %q, got %q", i, id, items[i].ID)
		}
	}
	if items[0].Glyph != "~" || items[3].Detail != "1 kB" {
		t.Fatalf("expected glyph and detail carried over: %#v", items)
	}
	if items[1].Enabled() || !items[2].Enabled() {
		t.Fatalf("unexpected enabled state")
	}
	if ItemsFor(nil) != nil {
		t.Fatalf("expected nil items for a nil node")
	}
}

func TestIndexOfChildLevel(t *testing.T) {
	root := &menu.Node{Kind: menu.NodeContainer, Children: []*menu.Node{
		{Kind: menu.NodeStatic, ID: 1000, Label: "Home"},
		{Kind: menu.NodeContainer, Label: "Projects"},
	}}
	l := ForNode("root", "start", root)
	item := l.Items[1]
	if got := l.IndexOf(l.ChildID(item)); got != 1 {
		t.Fatalf("expected child level to map back to row 1, got %d", got)
	}
	if l.IndexOf("") != -1 || l.IndexOf("root:nope") != -1 {
		t.Fatalf("expected misses to return -1")
	}
}

func TestRefreshKeepsCursorRow(t *testing.T) {
	folder := &menu.Node{Kind: menu.NodeContainer, Children: []*menu.Node{
		{Kind: menu.NodePlaceholder, Label: menu.LoadingLabel},
	}}
	l := ForNode("root:row-0", "Projects", folder)
	if item, _ := l.Current(); item.Enabled() {
		t.Fatalf("loading placeholder should not be enabled")
	}
	folder.Children = []*menu.Node{
		{Kind: menu.NodeDiscovered, ID: 3000, Label: "a"},
		{Kind: menu.NodeDiscovered, ID: 3001, Label: "b"},
	}
	l.Refresh()
	if len(l.Items) != 2 || l.Cursor != 0 {
		t.Fatalf("expected cursor on first new row, got %d of %d", l.Cursor, len(l.Items))
	}
	l.Cursor = 1
	folder.Children = append([]*menu.Node{{Kind: menu.NodeHeader, Label: "Projects"}}, folder.Children...)
	l.Refresh()
	if item, _ := l.Current(); item.ID != "3001" {
		t.Fatalf("expected cursor to follow row 3001, got %q", item.ID)
	}
}

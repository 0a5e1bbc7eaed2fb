package menu

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/tmux-popup-launcher/internal/folder"
	"github.com/atomicstack/tmux-popup-launcher/internal/icon"
	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
)

// countingLister wraps the real lister and counts calls per path.
type countingLister struct {
	mu    sync.Mutex
	inner *folder.Lister
	calls map[string]int
}

func newCountingLister() *countingLister {
	return &countingLister{inner: folder.NewLister(), calls: map[string]int{}}
}

func (l *countingLister) ListAndSort(path string, filter folder.FilterPolicy, order folder.SortPolicy) ([]folder.Entry, error) {
	l.mu.Lock()
	l.calls[path]++
	l.mu.Unlock()
	return l.inner.ListAndSort(path, filter, order)
}

func (l *countingLister) count(path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[path]
}

type fakeShell struct {
	opened   []string
	uris     []string
	commands [][]string
	power    []string
	err      error
}

func (s *fakeShell) OpenPath(_ context.Context, path string) error {
	s.opened = append(s.opened, path)
	return s.err
}

func (s *fakeShell) OpenURI(_ context.Context, uri string) error {
	s.uris = append(s.uris, uri)
	return s.err
}

func (s *fakeShell) RunCommand(_ context.Context, exe string, args []string) error {
	s.commands = append(s.commands, append([]string{exe}, args...))
	return s.err
}

func (s *fakeShell) record(op string) error {
	s.power = append(s.power, op)
	return s.err
}

func (s *fakeShell) Sleep(context.Context) error     { return s.record("sleep") }
func (s *fakeShell) Hibernate(context.Context) error { return s.record("hibernate") }
func (s *fakeShell) Lock(context.Context) error      { return s.record("lock") }
func (s *fakeShell) Logoff(context.Context) error    { return s.record("logoff") }

func (s *fakeShell) Shutdown(_ context.Context, restart bool) error {
	if restart {
		return s.record("restart")
	}
	return s.record("shutdown")
}

type fakeRecent struct {
	items   []string
	added   []string
	cleared int
}

func (r *fakeRecent) TopItems(max int) ([]string, error) {
	if max < len(r.items) {
		return r.items[:max], nil
	}
	return r.items, nil
}

func (r *fakeRecent) Add(path string) error {
	r.added = append(r.added, path)
	return nil
}

func (r *fakeRecent) Clear() error {
	r.cleared++
	r.items = nil
	return nil
}

type countingIcons struct {
	loaded   int
	released map[*icon.Handle]int
}

func (c *countingIcons) Load(spec string) (*icon.Handle, error) {
	c.loaded++
	return &icon.Handle{Ref: icon.Ref{Raw: spec}, Glyph: "*"}, nil
}

func (c *countingIcons) Release(h *icon.Handle) {
	if c.released == nil {
		c.released = map[*icon.Handle]int{}
	}
	c.released[h]++
}

// mkTree creates files under a temp dir. Names ending in "/" are
// directories.
func mkTree(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		full := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(name, "/")))
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", full, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", full, err)
		}
		if err := os.WriteFile(full, []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
	return root
}

func snapshotOf(opts settings.Options, lines ...string) settings.Snapshot {
	snap := settings.Snapshot{Options: opts}
	for _, line := range lines {
		snap.Entries = append(snap.Entries, settings.ParseEntry(line))
	}
	return snap
}

func labels(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case NodeSeparator:
			out = append(out, "---")
		default:
			out = append(out, n.Label)
		}
	}
	return out
}

func findChild(t *testing.T, parent *Node, label string) *Node {
	t.Helper()
	for _, child := range parent.Children {
		if child.Label == label {
			return child
		}
	}
	t.Fatalf("no child %q in %v", label, labels(parent.Children))
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package folder

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
)

// ErrInaccessible is returned when a directory cannot be read. The entry
// slice returned alongside it is always empty.
var ErrInaccessible = errors.New("folder inaccessible")

// hiddenListName is the per-directory file listing names that file managers
// treat as hidden.
const hiddenListName = ".hidden"

const (
	parallelStatThreshold = 64
	statWorkers           = 8
)

// Lister enumerates directories. Concurrent requests for the same directory
// and policy share a single read.
type Lister struct {
	group singleflight.Group
}

// NewLister returns a ready Lister.
func NewLister() *Lister {
	return &Lister{}
}

// ListAndSort reads path, drops entries rejected by filter and orders the
// rest by order.
func (l *Lister) ListAndSort(path string, filter FilterPolicy, order SortPolicy) ([]Entry, error) {
	key := fmt.Sprintf("%s\x00%v\x00%v", path, filter, order)
	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		return listAndSort(path, filter, order)
	})
	if err != nil {
		events.Folder.Inaccessible(path, err)
		return nil, err
	}
	shared := v.([]Entry)
	out := make([]Entry, len(shared))
	copy(out, shared)
	return out, nil
}

func listAndSort(path string, filter FilterPolicy, order SortPolicy) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInaccessible, path, err)
	}
	hidden := readHiddenList(path)
	entries := make([]Entry, len(dirents))
	ok := make([]bool, len(dirents))
	stat := func(i int) {
		d := dirents[i]
		info, err := d.Info()
		if err != nil {
			// vanished between readdir and stat
			return
		}
		full := filepath.Join(path, d.Name())
		isDir := info.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := os.Stat(full); err == nil {
				isDir = target.IsDir()
			}
		}
		_, isHidden := hidden[d.Name()]
		entries[i] = Entry{
			Name:     d.Name(),
			FullPath: full,
			IsDir:    isDir,
			Hidden:   isHidden,
			Modified: info.ModTime(),
			Created:  createdTime(full, info),
			Size:     info.Size(),
		}
		ok[i] = true
	}
	if len(dirents) < parallelStatThreshold {
		for i := range dirents {
			stat(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(statWorkers)
		for i := range dirents {
			g.Go(func() error {
				stat(i)
				return nil
			})
		}
		_ = g.Wait()
	}
	filtered := make([]Entry, 0, len(entries))
	for i, e := range entries {
		if ok[i] && filter.Allow(e) {
			filtered = append(filtered, e)
		}
	}
	order.Sort(filtered)
	events.Folder.List(path, len(dirents), len(filtered))
	return filtered, nil
}

func readHiddenList(dir string) map[string]struct{} {
	f, err := os.Open(filepath.Join(dir, hiddenListName))
	if err != nil {
		return nil
	}
	defer f.Close()
	names := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		names[name] = struct{}{}
	}
	return names
}

package folder

import (
	"path/filepath"
	"strings"
	"time"
)

// Entry is one directory member captured for a single list/sort/page pass.
type Entry struct {
	Name     string
	FullPath string
	IsDir    bool
	Hidden   bool
	Modified time.Time
	Created  time.Time
	Size     int64
}

// IsDot reports whether the entry name starts with a dot.
func (e Entry) IsDot() bool {
	return strings.HasPrefix(e.Name, ".")
}

// Ext returns the extension used for type ordering. Dot-named entries
// without a further dot treat the whole name as their extension.
func (e Entry) Ext() string {
	return filepath.Ext(e.Name)
}

// DotMode controls which dot-named entries are listed.
type DotMode int

const (
	DotOff DotMode = iota
	DotFilesOnly
	DotFoldersOnly
	DotAll
)

func (m DotMode) String() string {
	switch m {
	case DotFilesOnly:
		return "files-only"
	case DotFoldersOnly:
		return "folders-only"
	case DotAll:
		return "true"
	default:
		return "false"
	}
}

// ParseDotMode accepts the configuration spellings of the dot policy.
// Unknown values disable dot entries.
func ParseDotMode(value string) DotMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "all":
		return DotAll
	case "filesonly", "files-only":
		return DotFilesOnly
	case "foldersonly", "folders-only":
		return DotFoldersOnly
	default:
		return DotOff
	}
}

// FilterPolicy decides entry visibility. The hidden flag and the dot policy
// are independent: a dot entry that is not hidden is still subject to Dots.
type FilterPolicy struct {
	ShowHidden bool
	Dots       DotMode
}

// Allow reports whether an entry survives the filter.
func (p FilterPolicy) Allow(e Entry) bool {
	if e.Name == "" || e.Name == "." || e.Name == ".." {
		return false
	}
	dot := e.IsDot()
	if e.Hidden && !p.ShowHidden && !(dot && p.Dots != DotOff) {
		return false
	}
	if !dot {
		return true
	}
	switch p.Dots {
	case DotAll:
		return true
	case DotFilesOnly:
		return !e.IsDir
	case DotFoldersOnly:
		return e.IsDir
	default:
		return false
	}
}

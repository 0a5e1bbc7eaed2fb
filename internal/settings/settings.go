// Package settings loads the launcher's menu definition and global options
// from its INI file. A Snapshot is immutable once loaded and is re-read for
// every menu build.
package settings

import (
	"strings"

	"github.com/atomicstack/tmux-popup-launcher/internal/folder"
	"github.com/atomicstack/tmux-popup-launcher/internal/icon"
)

// Kind identifies what a configured entry does.
type Kind int

const (
	KindSeparator Kind = iota
	KindURI
	KindFile
	KindCmd
	KindFolder
	KindFolderSubmenu
	KindRecentSubmenu
	KindPower
	KindPowerMenu
)

var kindNames = map[Kind]string{
	KindSeparator:     "SEPARATOR",
	KindURI:           "URI",
	KindFile:          "FILE",
	KindCmd:           "CMD",
	KindFolder:        "FOLDER",
	KindFolderSubmenu: "FOLDER_SUBMENU",
	KindRecentSubmenu: "RECENT_SUBMENU",
	KindPower:         "POWER",
	KindPowerMenu:     "POWER_MENU",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "SEPARATOR"
}

// PowerAction is one of the six session/power operations.
type PowerAction int

const (
	PowerSleep PowerAction = iota
	PowerHibernate
	PowerShutdown
	PowerRestart
	PowerLock
	PowerLogoff
)

// PowerActions lists every action in canonical menu order.
var PowerActions = []PowerAction{PowerSleep, PowerHibernate, PowerShutdown, PowerRestart, PowerLock, PowerLogoff}

var powerInfo = map[PowerAction]struct{ sentinel, label, key string }{
	PowerSleep:     {"POWER_SLEEP", "Sleep", "sleep"},
	PowerHibernate: {"POWER_HIBERNATE", "Hibernate", "hibernate"},
	PowerShutdown:  {"POWER_SHUTDOWN", "Shut down", "shutdown"},
	PowerRestart:   {"POWER_RESTART", "Restart", "restart"},
	PowerLock:      {"POWER_LOCK", "Lock", "lock"},
	PowerLogoff:    {"POWER_LOGOFF", "Log off", "logoff"},
}

// Sentinel is the marker recorded in place of a filesystem path.
func (a PowerAction) Sentinel() string { return powerInfo[a].sentinel }

// Label is the fixed display label for the action.
func (a PowerAction) Label() string { return powerInfo[a].label }

func (a PowerAction) String() string { return powerInfo[a].key }

// SessionGroup reports whether the action belongs to the lock/log off group.
func (a PowerAction) SessionGroup() bool {
	return a == PowerLock || a == PowerLogoff
}

// PowerFromSentinel maps a recorded sentinel back to its action.
func PowerFromSentinel(s string) (PowerAction, bool) {
	for _, a := range PowerActions {
		if strings.EqualFold(s, a.Sentinel()) {
			return a, true
		}
	}
	return 0, false
}

// PowerSet is a set of power actions.
type PowerSet uint8

func (s PowerSet) Has(a PowerAction) bool { return s&(1<<uint(a)) != 0 }

func (s PowerSet) With(a PowerAction) PowerSet { return s | 1<<uint(a) }

// FolderMode controls how a FOLDER entry is rendered.
type FolderMode int

const (
	// FolderLink renders a leaf that opens the folder.
	FolderLink FolderMode = iota
	FolderSubmenu
	FolderInline
)

// Entry is one configured top-level menu entry. Kind decides which of the
// remaining fields are meaningful; the rest are ignored.
type Entry struct {
	Key            string
	Kind           Kind
	Power          PowerAction
	Label          string
	Target         string
	Params         string
	Icon           icon.Candidates
	Mode           FolderMode
	SuppressHeader bool
	HeaderOpens    bool
}

// DisplayLabel returns the configured label or a kind-specific fallback.
func (e Entry) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	switch e.Kind {
	case KindRecentSubmenu:
		return "Recent Items"
	case KindPowerMenu:
		return "Power"
	case KindPower:
		return e.Power.Label()
	default:
		return e.Target
	}
}

// Options are the global policies applied during a build.
type Options struct {
	RecentMax             int
	FolderMaxDepth        int
	FolderDoubleClickOpen bool
	PageSize              int
	Filter                folder.FilterPolicy
	Sort                  folder.SortPolicy
	ShowExtensions        bool
	Icons                 icon.Policy
	RecentLabelName       bool
	RecentShowExtensions  bool
	RecentShowCleanItems  bool
	PowerExclude          PowerSet
	Theme                 string
	LogConfig             string
	LogFolder             string
}

// Snapshot is a resolved view of the configuration file.
type Snapshot struct {
	Path    string
	Options Options
	Entries []Entry
}

const (
	MaxItems         = 64
	MinFolderDepth   = 1
	MaxFolderDepth   = 4
	DefaultRecentMax = 12
)

// Defaults returns the options used when the file omits a key.
func Defaults() Options {
	return Options{
		RecentMax:            DefaultRecentMax,
		FolderMaxDepth:       1,
		Sort:                 folder.SortPolicy{Field: folder.SortName, FoldersFirst: true},
		ShowExtensions:       true,
		RecentShowExtensions: true,
		RecentShowCleanItems: true,
		Theme:                "auto",
		LogConfig:            "off",
	}
}

func clampDepth(depth int) int {
	if depth < MinFolderDepth {
		return MinFolderDepth
	}
	if depth > MaxFolderDepth {
		return MaxFolderDepth
	}
	return depth
}

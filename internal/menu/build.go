// Package menu turns a configuration snapshot into a tree of menu nodes,
// fills folder containers on demand and resolves chosen IDs into actions.
//
// Every Build owns its identifier pools, its ID map and the icon handles
// it loaded. Nothing is shared between builds, so a reload simply destroys
// the old build and starts a new one.
package menu

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/tmux-popup-launcher/internal/folder"
	"github.com/atomicstack/tmux-popup-launcher/internal/icon"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
)

var (
	// ErrUnknownID is returned by Select for IDs this build never handed out.
	ErrUnknownID = errors.New("unknown command id")
	// ErrBuildClosed is returned once Destroy has run.
	ErrBuildClosed = errors.New("menu build closed")
)

// Lister enumerates one directory.
type Lister interface {
	ListAndSort(path string, filter folder.FilterPolicy, order folder.SortPolicy) ([]folder.Entry, error)
}

// RecentSource provides the ranked recent-items list.
type RecentSource interface {
	TopItems(max int) ([]string, error)
}

// Theme reports whether the dark palette is active.
type Theme interface {
	IsDark() bool
}

// Observer receives build statistics. Every method must be cheap.
type Observer interface {
	BuildStarted()
	Enumerated(result string)
	Populated(elapsed time.Duration)
	Exhausted(pool string)
	Selected(kind string)
}

// Deps are the collaborators a build consults. Recent, Icons, Theme and
// Observer may be nil.
type Deps struct {
	Lister   Lister
	Recent   RecentSource
	Icons    icon.Loader
	Theme    Theme
	Observer Observer
	Now      func() time.Time
}

// Build is one display cycle of the menu.
type Build struct {
	ID   string
	Root *Node

	opts    settings.Options
	entries []settings.Entry
	deps    Deps
	ids     *Identifiers
	arena   arena
	dark    bool
	closed  bool
}

// NewBuild constructs the tree for snapshot. Folder containers are left
// unpopulated; inline folders are listed immediately.
func NewBuild(snapshot settings.Snapshot, deps Deps) *Build {
	if deps.Lister == nil {
		deps.Lister = folder.NewLister()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	b := &Build{
		ID:      uuid.NewString(),
		Root:    &Node{Kind: NodeContainer},
		opts:    snapshot.Options,
		entries: snapshot.Entries,
		deps:    deps,
		ids:     NewIdentifiers(),
	}
	b.dark = b.isDark()
	if deps.Observer != nil {
		deps.Observer.BuildStarted()
	}
	for _, entry := range b.entries {
		b.addEntry(b.Root, entry)
	}
	nodes := 0
	Walk(b.Root, func(*Node) { nodes++ })
	events.Menu.Build(b.ID, len(b.entries), nodes)
	return b
}

// Options returns the options the build was made with.
func (b *Build) Options() settings.Options { return b.opts }

// Identifiers exposes the build's ID map.
func (b *Build) Identifiers() *Identifiers { return b.ids }

// Closed reports whether Destroy has run.
func (b *Build) Closed() bool { return b.closed }

// Destroy releases every icon handle loaded by the build. It is safe to
// call more than once.
func (b *Build) Destroy() {
	if b.closed {
		return
	}
	b.closed = true
	released := b.arena.release(b.deps.Icons)
	events.Menu.Destroy(b.ID, released)
}

func (b *Build) isDark() bool {
	if b.deps.Theme == nil {
		return false
	}
	return b.deps.Theme.IsDark()
}

func (b *Build) addEntry(parent *Node, entry settings.Entry) {
	switch entry.Kind {
	case settings.KindSeparator:
		parent.append(separator())
	case settings.KindURI, settings.KindFile, settings.KindCmd:
		b.addStatic(parent, entry, staticAction(entry), false)
	case settings.KindFolder:
		switch entry.Mode {
		case settings.FolderSubmenu:
			b.addFolderContainer(parent, entry)
		case settings.FolderInline:
			b.addInline(parent, entry)
		default:
			b.addStatic(parent, entry, Action{Kind: ActionOpenPath, Target: entry.Target}, true)
		}
	case settings.KindFolderSubmenu:
		b.addFolderContainer(parent, entry)
	case settings.KindRecentSubmenu:
		n := lazyContainer(entry.DisplayLabel(), &FolderState{Source: SourceRecent})
		n.Icon = b.icon(entry.Icon, false)
		parent.append(n)
	case settings.KindPower:
		action := Action{Kind: ActionPower, Target: entry.Power.Sentinel(), Power: entry.Power}
		b.addStatic(parent, entry, action, false)
	case settings.KindPowerMenu:
		b.addPowerMenu(parent, entry)
	default:
		parent.append(separator())
	}
}

func staticAction(entry settings.Entry) Action {
	action := Action{Target: entry.Target, Params: entry.Params}
	switch entry.Kind {
	case settings.KindURI:
		action.Kind = ActionOpenURI
	case settings.KindFile:
		action.Kind = ActionRunFile
	case settings.KindCmd:
		action.Kind = ActionRunCommand
	}
	return action
}

func (b *Build) addStatic(parent *Node, entry settings.Entry, action Action, isDir bool) {
	id, ok := b.ids.AllocateStatic()
	if !ok {
		b.exhausted(PoolStatic)
		return
	}
	b.ids.Record(id, action)
	label := entry.DisplayLabel()
	if entry.Kind == settings.KindPower {
		label = entry.Power.Label()
		if entry.Label != "" {
			label = entry.Label
		}
	}
	parent.append(&Node{
		Kind:  NodeStatic,
		ID:    id,
		Label: label,
		Path:  action.Target,
		IsDir: isDir,
		Icon:  b.icon(entry.Icon, isDir),
	})
}

func (b *Build) addFolderContainer(parent *Node, entry settings.Entry) {
	n := lazyContainer(entry.DisplayLabel(), &FolderState{Source: SourceFolder, Path: entry.Target, Depth: 1})
	n.Icon = b.icon(entry.Icon, true)
	parent.append(n)
}

// addInline splices the first page of a folder into parent, optionally
// preceded by a header.
func (b *Build) addInline(parent *Node, entry settings.Entry) {
	if entry.Label != "" && !entry.SuppressHeader {
		if entry.HeaderOpens {
			if id, ok := b.ids.AllocateDiscovered(); ok {
				b.ids.RecordPath(id, entry.Target)
				parent.append(&Node{
					Kind:  NodeDiscovered,
					ID:    id,
					Label: entry.Label,
					Path:  entry.Target,
					IsDir: true,
					Icon:  b.icon(entry.Icon, true),
				})
			} else {
				b.exhausted(PoolDiscovered)
			}
		} else {
			parent.append(&Node{Kind: NodeHeader, Label: entry.Label, Path: entry.Target})
		}
	}
	state := FolderState{Source: SourceFolder, Path: entry.Target, Depth: 1}
	events.Menu.Expand(b.ID, state.Path, state.Depth, state.Offset)
	listing := listFolder(b.deps.Lister, b.opts, state)
	b.observeListing(listing)
	if len(listing.Entries) == 0 {
		parent.append(placeholder(EmptyLabel))
		return
	}
	b.appendListing(parent, state, listing)
}

func (b *Build) addPowerMenu(parent *Node, entry settings.Entry) {
	n := &Node{Kind: NodeContainer, Label: entry.DisplayLabel(), Icon: b.icon(entry.Icon, false)}
	var primary, session []settings.PowerAction
	for _, a := range settings.PowerActions {
		if b.opts.PowerExclude.Has(a) {
			continue
		}
		if a.SessionGroup() {
			session = append(session, a)
		} else {
			primary = append(primary, a)
		}
	}
	addGroup := func(group []settings.PowerAction) {
		for _, a := range group {
			id, ok := b.ids.AllocateDiscovered()
			if !ok {
				b.exhausted(PoolDiscovered)
				return
			}
			b.ids.RecordPath(id, a.Sentinel())
			n.append(&Node{Kind: NodeDiscovered, ID: id, Label: a.Label(), Path: a.Sentinel()})
		}
	}
	addGroup(primary)
	if len(primary) > 0 && len(session) > 0 {
		n.append(separator())
	}
	addGroup(session)
	if len(n.Children) == 0 {
		n.append(placeholder(NoneLabel))
	}
	parent.append(n)
}

// appendEntry adds one discovered entry. It returns false when the
// discovered pool is exhausted and the caller should stop.
func (b *Build) appendEntry(parent *Node, e folder.Entry, depth int) bool {
	label := displayName(e, b.opts.ShowExtensions)
	if e.IsDir && depth < b.opts.FolderMaxDepth {
		n := lazyContainer(label, &FolderState{Source: SourceFolder, Path: e.FullPath, Depth: depth + 1})
		n.Detail = detail(e, b.deps.Now())
		n.Icon = b.icon(icon.Candidates{}, true)
		parent.append(n)
		return true
	}
	id, ok := b.ids.AllocateDiscovered()
	if !ok {
		b.exhausted(PoolDiscovered)
		return false
	}
	b.ids.RecordPath(id, e.FullPath)
	parent.append(&Node{
		Kind:   NodeDiscovered,
		ID:     id,
		Label:  label,
		Detail: detail(e, b.deps.Now()),
		Path:   e.FullPath,
		IsDir:  e.IsDir,
		Icon:   b.icon(icon.Candidates{}, e.IsDir),
	})
	return true
}

func (b *Build) icon(candidates icon.Candidates, isFolder bool) *icon.Handle {
	if b.deps.Icons == nil {
		return nil
	}
	return b.arena.track(b.opts.Icons.Resolve(b.deps.Icons, candidates, b.dark, isFolder))
}

func (b *Build) exhausted(pool Pool) {
	events.Menu.Exhausted(b.ID, pool.String())
	if b.deps.Observer != nil {
		b.deps.Observer.Exhausted(pool.String())
	}
}

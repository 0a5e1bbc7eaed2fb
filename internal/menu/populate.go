package menu

import (
	"errors"
	"time"

	"github.com/atomicstack/tmux-popup-launcher/internal/folder"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
)

// Listing is the result of one enumeration for a container.
type Listing struct {
	Entries    []folder.Entry
	Recent     []string
	HasMore    bool
	NextOffset int
	Err        error
	Elapsed    time.Duration
}

// Job is a pending expansion. Run may be called from any goroutine; the
// result must be handed back to Apply on the goroutine that owns the tree.
type Job struct {
	Node  *Node
	state FolderState
	opts  settings.Options

	lister Lister
	recent RecentSource
}

// Path is the directory the job lists.
func (j *Job) Path() string { return j.state.Path }

// Run performs the enumeration. It touches no shared state.
func (j *Job) Run() Listing {
	start := time.Now()
	var listing Listing
	switch j.state.Source {
	case SourceRecent:
		listing = listRecent(j.recent, j.opts)
	default:
		listing = listFolder(j.lister, j.opts, j.state)
	}
	listing.Elapsed = time.Since(start)
	return listing
}

func listFolder(lister Lister, opts settings.Options, state FolderState) Listing {
	all, err := lister.ListAndSort(state.Path, opts.Filter, opts.Sort)
	if err != nil {
		return Listing{Err: err}
	}
	page, hasMore := folder.Page(all, state.Offset, opts.PageSize)
	return Listing{
		Entries:    page,
		HasMore:    hasMore,
		NextOffset: state.Offset + len(page),
	}
}

var errNoRecent = errors.New("recent items unavailable")

func listRecent(source RecentSource, opts settings.Options) Listing {
	if source == nil {
		return Listing{Err: errNoRecent}
	}
	limit := opts.RecentMax
	if limit <= 0 {
		limit = settings.DefaultRecentMax
	}
	if limit > RecentMax {
		limit = RecentMax
	}
	items, err := source.TopItems(limit)
	if err != nil {
		return Listing{Err: err}
	}
	return Listing{Recent: items}
}

// BeginExpand claims n for population. It returns false when n has no
// folder state, is already populated, is terminally empty or has a listing
// in flight.
func (b *Build) BeginExpand(n *Node) (*Job, bool) {
	if b.closed || n == nil || n.Folder == nil {
		return nil, false
	}
	if n.Folder.State != StateUnpopulated {
		events.Menu.ExpandSkipped(b.ID, n.Folder.Path, n.Folder.State.String())
		return nil, false
	}
	if label, ok := n.OnlyPlaceholder(); !ok || label != LoadingLabel {
		events.Menu.ExpandSkipped(b.ID, n.Folder.Path, "not a placeholder")
		return nil, false
	}
	n.Folder.State = StateLoading
	events.Menu.Expand(b.ID, n.Folder.Path, n.Folder.Depth, n.Folder.Offset)
	return &Job{
		Node:   n,
		state:  *n.Folder,
		opts:   b.opts,
		lister: b.deps.Lister,
		recent: b.deps.Recent,
	}, true
}

// Apply replaces the job's placeholder with listing. It returns false when
// the build has been destroyed or the node was not claimed by job.
func (b *Build) Apply(job *Job, listing Listing) bool {
	if job == nil || job.Node == nil {
		return false
	}
	n := job.Node
	if b.closed {
		events.Menu.Abandon(b.ID, job.state.Path)
		return false
	}
	if n.Folder == nil || n.Folder.State != StateLoading {
		return false
	}
	b.observeListing(listing)
	if b.deps.Observer != nil {
		b.deps.Observer.Populated(listing.Elapsed)
	}
	n.Children = nil
	if job.state.Source == SourceRecent {
		b.applyRecent(n, listing)
		return true
	}
	if listing.Err != nil || len(listing.Entries) == 0 {
		n.Folder.State = StateEmpty
		n.append(placeholder(EmptyLabel))
		events.Menu.Apply(b.ID, job.state.Path, 0, false)
		return true
	}
	b.appendListing(n, job.state, listing)
	n.Folder.State = StatePopulated
	return true
}

// Expand populates n synchronously.
func (b *Build) Expand(n *Node) bool {
	job, ok := b.BeginExpand(n)
	if !ok {
		return false
	}
	return b.Apply(job, job.Run())
}

func (b *Build) appendListing(parent *Node, state FolderState, listing Listing) {
	added := 0
	for _, e := range listing.Entries {
		if !b.appendEntry(parent, e, state.Depth) {
			break
		}
		added++
	}
	hasMore := listing.HasMore && added == len(listing.Entries)
	if hasMore {
		parent.append(separator())
		more := lazyContainer(ShowMoreLabel, &FolderState{
			Source: SourceFolder,
			Path:   state.Path,
			Depth:  state.Depth,
			Offset: listing.NextOffset,
		})
		more.IsDir = false
		parent.append(more)
	}
	events.Menu.Apply(b.ID, state.Path, added, hasMore)
}

func (b *Build) applyRecent(n *Node, listing Listing) {
	n.Folder.State = StatePopulated
	if listing.Err != nil {
		n.Folder.State = StateEmpty
		n.append(placeholder(EmptyLabel))
		events.Menu.Apply(b.ID, "recent", 0, false)
		return
	}
	added := 0
	for i, path := range listing.Recent {
		if path == "" {
			continue
		}
		id, ok := RecentID(i)
		if !ok {
			b.exhausted(PoolRecent)
			break
		}
		b.ids.Record(id, Action{Kind: ActionOpenRecent, Target: path, Index: i})
		n.append(&Node{Kind: NodeDiscovered, ID: id, Label: recentLabel(path, b.opts), Path: path})
		added++
	}
	if added == 0 {
		n.append(placeholder(NoneLabel))
	}
	if b.opts.RecentShowCleanItems {
		b.ids.Record(RecentClearID, Action{Kind: ActionClearRecent})
		n.append(separator(), &Node{Kind: NodeDiscovered, ID: RecentClearID, Label: ClearRecentLabel})
	}
	events.Menu.Apply(b.ID, "recent", added, false)
}

func (b *Build) observeListing(listing Listing) {
	if b.deps.Observer == nil {
		return
	}
	switch {
	case listing.Err != nil:
		b.deps.Observer.Enumerated("error")
	case len(listing.Entries) == 0 && len(listing.Recent) == 0:
		b.deps.Observer.Enumerated("empty")
	default:
		b.deps.Observer.Enumerated("ok")
	}
}

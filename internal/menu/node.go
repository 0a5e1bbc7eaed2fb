package menu

import "github.com/atomicstack/tmux-popup-launcher/internal/icon"

// NodeKind tags the variant a Node holds.
type NodeKind int

const (
	NodeSeparator NodeKind = iota
	// NodeStatic is a leaf declared in the configuration.
	NodeStatic
	// NodeDiscovered is a leaf found by enumerating a folder, the recent
	// list or the power set.
	NodeDiscovered
	NodeContainer
	// NodePlaceholder is a disabled row such as "(Loading...)".
	NodePlaceholder
	// NodeHeader is a disabled label above an inline folder.
	NodeHeader
)

func (k NodeKind) String() string {
	switch k {
	case NodeSeparator:
		return "separator"
	case NodeStatic:
		return "static"
	case NodeDiscovered:
		return "discovered"
	case NodeContainer:
		return "container"
	case NodePlaceholder:
		return "placeholder"
	case NodeHeader:
		return "header"
	default:
		return "unknown"
	}
}

const (
	LoadingLabel     = "(Loading...)"
	EmptyLabel       = "(Empty)"
	NoneLabel        = "(None)"
	ShowMoreLabel    = "Show more items..."
	ClearRecentLabel = "Clear Recent Items list"
)

// Source names where a container's children come from.
type Source int

const (
	SourceFolder Source = iota
	SourceRecent
)

// PopulateState is the lazy population state of a container.
type PopulateState int

const (
	StateUnpopulated PopulateState = iota
	// StateLoading marks a listing that has been handed out and not yet
	// applied. A second expansion in this state is ignored.
	StateLoading
	StatePopulated
	// StateEmpty is terminal: the listing failed or found nothing.
	StateEmpty
)

func (s PopulateState) String() string {
	switch s {
	case StateUnpopulated:
		return "unpopulated"
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// FolderState is attached to containers whose children are produced on
// first expansion.
type FolderState struct {
	Source Source
	Path   string
	Depth  int
	Offset int
	State  PopulateState
}

// Populated reports whether the container has been filled, successfully or
// not.
func (f *FolderState) Populated() bool {
	return f.State == StatePopulated || f.State == StateEmpty
}

// Node is one row of the menu tree. Kind decides which fields are set:
// leaves carry ID (and Path when discovered), containers carry Children
// and optionally Folder.
type Node struct {
	Kind     NodeKind
	ID       int
	Label    string
	Detail   string
	Path     string
	IsDir    bool
	Icon     *icon.Handle
	Children []*Node
	Folder   *FolderState
	Parent   *Node
}

// Selectable reports whether choosing the node produces an action.
func (n *Node) Selectable() bool {
	return n.Kind == NodeStatic || n.Kind == NodeDiscovered
}

// Expandable reports whether the node has children to show.
func (n *Node) Expandable() bool {
	return n.Kind == NodeContainer
}

// Disabled reports whether the node is shown but cannot be chosen.
func (n *Node) Disabled() bool {
	return n.Kind == NodeSeparator || n.Kind == NodePlaceholder || n.Kind == NodeHeader
}

// OnlyPlaceholder returns the label of the single placeholder child, if
// that is all the container holds.
func (n *Node) OnlyPlaceholder() (string, bool) {
	if len(n.Children) != 1 || n.Children[0].Kind != NodePlaceholder {
		return "", false
	}
	return n.Children[0].Label, true
}

func (n *Node) append(children ...*Node) {
	for _, child := range children {
		child.Parent = n
		n.Children = append(n.Children, child)
	}
}

func separator() *Node {
	return &Node{Kind: NodeSeparator}
}

func placeholder(label string) *Node {
	return &Node{Kind: NodePlaceholder, Label: label}
}

func lazyContainer(label string, state *FolderState) *Node {
	n := &Node{Kind: NodeContainer, Label: label, Path: state.Path, IsDir: state.Source == SourceFolder, Folder: state}
	n.append(placeholder(LoadingLabel))
	return n
}

// Walk visits n and every descendant depth first.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

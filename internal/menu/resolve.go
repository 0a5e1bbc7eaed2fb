package menu

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
)

// ActionKind identifies what a chosen ID does.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionOpenPath
	ActionOpenURI
	ActionRunFile
	ActionRunCommand
	ActionPower
	ActionOpenRecent
	ActionClearRecent
)

func (k ActionKind) String() string {
	switch k {
	case ActionOpenPath:
		return "open_path"
	case ActionOpenURI:
		return "open_uri"
	case ActionRunFile:
		return "run_file"
	case ActionRunCommand:
		return "run_command"
	case ActionPower:
		return "power"
	case ActionOpenRecent:
		return "open_recent"
	case ActionClearRecent:
		return "clear_recent"
	default:
		return "none"
	}
}

// Action describes the effect of choosing one ID.
type Action struct {
	ID     int
	Kind   ActionKind
	Target string
	Params string
	Power  settings.PowerAction
	Index  int
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPower:
		return a.Power.Sentinel()
	case ActionClearRecent:
		return a.Kind.String()
	default:
		return fmt.Sprintf("%s %s", a.Kind, a.Target)
	}
}

// ActionResult communicates the outcome of dispatching an action.
type ActionResult struct {
	Action Action
	Info   string
	Err    error
}

// Select resolves id to the action recorded for it during this build. The
// recent range is checked first so the clear sentinel always wins.
func (b *Build) Select(id int) (Action, error) {
	if b.closed {
		return Action{}, ErrBuildClosed
	}
	if id == RecentClearID {
		if _, ok := b.ids.Resolve(id); ok {
			return b.selected(Action{ID: id, Kind: ActionClearRecent}), nil
		}
	}
	action, ok := b.ids.Resolve(id)
	if !ok {
		events.Selection.Miss(b.ID, id)
		return Action{}, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	return b.selected(action), nil
}

func (b *Build) selected(action Action) Action {
	events.Selection.Resolve(b.ID, action.ID, action.Kind.String(), action.Target)
	if b.deps.Observer != nil {
		b.deps.Observer.Selected(action.Kind.String())
	}
	return action
}

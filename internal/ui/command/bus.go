package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an action invocation.
type Request struct {
	Label  string
	Action menu.Action
}

// Bus coordinates the execution of menu actions.
type Bus struct {
	shell  menu.Shell
	recent menu.Recent
}

// New initialises a command bus that dispatches through shell and records
// opened paths in recent.
func New(shell menu.Shell, recent menu.Recent) *Bus {
	return &Bus{shell: shell, recent: recent}
}

// Execute wraps a menu action into a Bubble Tea command while emitting trace logs.
// The command always yields a menu.ActionResult.
func (b *Bus) Execute(ctx context.Context, req Request) tea.Cmd {
	id := strconv.Itoa(req.Action.ID)
	events.Command.Queue(id, req.Label)
	return func() tea.Msg {
		if req.Action.Kind == menu.ActionNone {
			events.Command.Skip(id, req.Label)
			return menu.ActionResult{Action: req.Action, Err: fmt.Errorf("%s has no action", req.Label)}
		}
		if b.shell == nil {
			events.Command.NoOp(id, req.Label)
			return menu.ActionResult{Action: req.Action, Err: fmt.Errorf("no shell to run %s", req.Label)}
		}
		err := menu.Dispatch(ctx, req.Action, b.shell, b.recent)
		result := menu.ActionResult{Action: req.Action, Info: describe(req), Err: err}
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		events.Command.Result(id, req.Label, outcome)
		return result
	}
}

func describe(req Request) string {
	switch req.Action.Kind {
	case menu.ActionClearRecent:
		return "Cleared recent items"
	case menu.ActionPower:
		return fmt.Sprintf("Requested %s", req.Action.Power.Label())
	case menu.ActionRunCommand:
		return fmt.Sprintf("Started %s", req.Label)
	default:
		return fmt.Sprintf("Opened %s", req.Label)
	}
}

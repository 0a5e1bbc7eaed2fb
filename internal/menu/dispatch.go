package menu

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/atomicstack/tmux-popup-launcher/internal/logging"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
)

// Shell performs the side effects of a selection.
type Shell interface {
	OpenPath(ctx context.Context, path string) error
	OpenURI(ctx context.Context, uri string) error
	RunCommand(ctx context.Context, exe string, args []string) error
	Sleep(ctx context.Context) error
	Shutdown(ctx context.Context, restart bool) error
	Hibernate(ctx context.Context) error
	Lock(ctx context.Context) error
	Logoff(ctx context.Context) error
}

// Recent is the recent-items store as seen by dispatch.
type Recent interface {
	Add(path string) error
	Clear() error
}

// Dispatch performs action. Paths opened successfully are added to rec
// when it is not nil.
func Dispatch(ctx context.Context, action Action, sh Shell, rec Recent) error {
	err := dispatch(ctx, action, sh, rec)
	events.Selection.Dispatch(action.Kind.String(), action.Target, err)
	return err
}

func dispatch(ctx context.Context, action Action, sh Shell, rec Recent) error {
	switch action.Kind {
	case ActionOpenPath, ActionOpenRecent:
		return openPath(ctx, action.Target, sh, rec)
	case ActionOpenURI:
		return sh.OpenURI(ctx, action.Target)
	case ActionRunFile:
		if action.Params == "" {
			return openPath(ctx, action.Target, sh, rec)
		}
		return sh.RunCommand(ctx, action.Target, splitParams(action.Params))
	case ActionRunCommand:
		line := action.Params
		if line == "" {
			line = action.Target
		}
		return sh.RunCommand(ctx, userShell(), []string{"-c", line})
	case ActionPower:
		return power(ctx, action.Power, sh)
	case ActionClearRecent:
		if rec == nil {
			return nil
		}
		return rec.Clear()
	default:
		return nil
	}
}

func openPath(ctx context.Context, path string, sh Shell, rec Recent) error {
	if err := sh.OpenPath(ctx, path); err != nil {
		return err
	}
	if rec != nil {
		if err := rec.Add(path); err != nil {
			logging.Error(fmt.Errorf("record recent %s: %w", path, err))
		}
	}
	return nil
}

func power(ctx context.Context, a settings.PowerAction, sh Shell) error {
	switch a {
	case settings.PowerSleep:
		return sh.Sleep(ctx)
	case settings.PowerHibernate:
		return sh.Hibernate(ctx)
	case settings.PowerShutdown:
		return sh.Shutdown(ctx, false)
	case settings.PowerRestart:
		return sh.Shutdown(ctx, true)
	case settings.PowerLock:
		return sh.Lock(ctx)
	case settings.PowerLogoff:
		return sh.Logoff(ctx)
	default:
		return nil
	}
}

// splitParams splits params with shell quoting rules, falling back to
// whitespace for unbalanced quotes.
func splitParams(params string) []string {
	args, err := shellquote.Split(params)
	if err != nil {
		return strings.Fields(params)
	}
	return args
}

func userShell() string {
	if sh := strings.TrimSpace(os.Getenv("SHELL")); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// Package shell carries out launcher actions on the host: opening files
// and URIs with the desktop opener, running commands detached from the
// popup, and the session power actions.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"github.com/kballard/go-shellquote"

	"github.com/atomicstack/tmux-popup-launcher/internal/tmux"
)

// ErrUnsupported is returned when the host has no way to perform an action.
var ErrUnsupported = errors.New("action not supported on this host")

// Runner starts a process without waiting for it.
type Runner interface {
	Start(dir, name string, args ...string) error
}

// LookPath reports whether name can be executed.
type LookPath func(name string) (string, error)

type execRunner struct{}

func (execRunner) Start(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// tmuxRunner routes every command through the tmux server so it survives
// the popup.
type tmuxRunner struct {
	socketPath string
}

func (r tmuxRunner) Start(dir, name string, args ...string) error {
	return tmux.RunShell(r.socketPath, dir, shellquote.Join(append([]string{name}, args...)...))
}

// Options configure a Dispatcher.
type Options struct {
	SocketPath string
	// ViaTmux starts commands with tmux run-shell -b instead of forking.
	ViaTmux bool
	// WorkDir is the directory commands start in.
	WorkDir string
	GOOS    string
}

// Dispatcher performs actions on the local host.
type Dispatcher struct {
	runner   Runner
	lookPath LookPath
	workDir  string
	goos     string
}

// New returns a Dispatcher for opts.
func New(opts Options) *Dispatcher {
	var runner Runner = execRunner{}
	if opts.ViaTmux && tmux.Available(opts.SocketPath) {
		runner = tmuxRunner{socketPath: opts.SocketPath}
	}
	return NewWithRunner(opts, runner, exec.LookPath)
}

// NewWithRunner returns a Dispatcher using runner and lookPath.
func NewWithRunner(opts Options, runner Runner, lookPath LookPath) *Dispatcher {
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	return &Dispatcher{runner: runner, lookPath: lookPath, workDir: opts.WorkDir, goos: goos}
}

func (d *Dispatcher) OpenPath(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path required")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return d.open(ctx, path)
}

func (d *Dispatcher) OpenURI(ctx context.Context, uri string) error {
	if strings.TrimSpace(uri) == "" {
		return fmt.Errorf("uri required")
	}
	return d.open(ctx, uri)
}

func (d *Dispatcher) open(ctx context.Context, target string) error {
	opener := "xdg-open"
	if d.goos == "darwin" {
		opener = "open"
	}
	return d.start(ctx, opener, target)
}

func (d *Dispatcher) RunCommand(ctx context.Context, exe string, args []string) error {
	if strings.TrimSpace(exe) == "" {
		return fmt.Errorf("command required")
	}
	return d.start(ctx, exe, args...)
}

func (d *Dispatcher) Sleep(ctx context.Context) error {
	return d.power(ctx, "sleep")
}

func (d *Dispatcher) Shutdown(ctx context.Context, restart bool) error {
	if restart {
		return d.power(ctx, "restart")
	}
	return d.power(ctx, "shutdown")
}

func (d *Dispatcher) Hibernate(ctx context.Context) error {
	return d.power(ctx, "hibernate")
}

func (d *Dispatcher) Lock(ctx context.Context) error {
	return d.power(ctx, "lock")
}

func (d *Dispatcher) Logoff(ctx context.Context) error {
	return d.power(ctx, "logoff")
}

func (d *Dispatcher) power(ctx context.Context, action string) error {
	argv := powerCommand(d.goos, action)
	if len(argv) == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupported, action)
	}
	return d.start(ctx, argv[0], argv[1:]...)
}

// powerCommand maps a power action to the command that performs it.
func powerCommand(goos, action string) []string {
	switch goos {
	case "linux":
		switch action {
		case "sleep":
			return []string{"systemctl", "suspend"}
		case "hibernate":
			return []string{"systemctl", "hibernate"}
		case "shutdown":
			return []string{"systemctl", "poweroff"}
		case "restart":
			return []string{"systemctl", "reboot"}
		case "lock":
			return []string{"loginctl", "lock-session"}
		case "logoff":
			if id := os.Getenv("XDG_SESSION_ID"); id != "" {
				return []string{"loginctl", "terminate-session", id}
			}
			return []string{"loginctl", "terminate-user", os.Getenv("USER")}
		}
	case "darwin":
		switch action {
		case "sleep":
			return []string{"pmset", "sleepnow"}
		case "shutdown":
			return []string{"osascript", "-e", `tell app "System Events" to shut down`}
		case "restart":
			return []string{"osascript", "-e", `tell app "System Events" to restart`}
		case "lock":
			return []string{"pmset", "displaysleepnow"}
		case "logoff":
			return []string{"osascript", "-e", `tell app "System Events" to log out`}
		}
	}
	return nil
}

func (d *Dispatcher) start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.lookPath != nil {
		if _, err := d.lookPath(name); err != nil {
			return fmt.Errorf("%w: %s not found", ErrUnsupported, name)
		}
	}
	return d.runner.Start(d.workDir, name, args...)
}

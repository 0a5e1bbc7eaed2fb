package shell

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingRunner struct {
	calls [][]string
	dirs  []string
	err   error
}

func (r *recordingRunner) Start(dir, name string, args ...string) error {
	r.dirs = append(r.dirs, dir)
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.err
}

func found(name string) (string, error) { return "/usr/bin/" + name, nil }

func missing(name string) (string, error) { return "", errors.New("not found") }

func TestOpenPathUsesOpener(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.pdf")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cases := map[string]string{"linux": "xdg-open", "darwin": "open"}
	for goos, opener := range cases {
		runner := &recordingRunner{}
		d := NewWithRunner(Options{GOOS: goos, WorkDir: "/work"}, runner, found)
		if err := d.OpenPath(context.Background(), file); err != nil {
			t.Fatalf("%s: unexpected error: %v", goos, err)
		}
		if len(runner.calls) != 1 || runner.calls[0][0] != opener || runner.calls[0][1] != file {
			t.Fatalf("%s: unexpected calls %#v", goos, runner.calls)
		}
		if runner.dirs[0] != "/work" {
			t.Fatalf("%s: expected work dir, got %q", goos, runner.dirs[0])
		}
	}
}

func TestOpenPathMissingFile(t *testing.T) {
	runner := &recordingRunner{}
	d := NewWithRunner(Options{GOOS: "linux"}, runner, found)
	if err := d.OpenPath(context.Background(), filepath.Join(t.TempDir(), "gone")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if len(runner.calls) != 0 {
		t.Fatalf("nothing should be started, got %#v", runner.calls)
	}
}

func TestPowerCommands(t *testing.T) {
	t.Setenv("XDG_SESSION_ID", "7")
	runner := &recordingRunner{}
	d := NewWithRunner(Options{GOOS: "linux"}, runner, found)
	ctx := context.Background()
	steps := []func() error{
		func() error { return d.Sleep(ctx) },
		func() error { return d.Hibernate(ctx) },
		func() error { return d.Shutdown(ctx, false) },
		func() error { return d.Shutdown(ctx, true) },
		func() error { return d.Lock(ctx) },
		func() error { return d.Logoff(ctx) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	want := []string{
		"systemctl suspend",
		"systemctl hibernate",
		"systemctl poweroff",
		"systemctl reboot",
		"loginctl lock-session",
		"loginctl terminate-session 7",
	}
	for i, w := range want {
		if got := strings.Join(runner.calls[i], " "); got != w {
			t.Fatalf("call %d: got %q want %q", i, got, w)
		}
	}
}

func TestUnsupported(t *testing.T) {
	d := NewWithRunner(Options{GOOS: "darwin"}, &recordingRunner{}, found)
	if err := d.Hibernate(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	d = NewWithRunner(Options{GOOS: "plan9"}, &recordingRunner{}, found)
	if err := d.Sleep(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	d = NewWithRunner(Options{GOOS: "linux"}, &recordingRunner{}, missing)
	if err := d.OpenURI(context.Background(), "https://example.com"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for a missing opener, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	runner := &recordingRunner{}
	d := NewWithRunner(Options{GOOS: "linux"}, runner, found)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.RunCommand(ctx, "true", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("nothing should start after cancellation")
	}
}

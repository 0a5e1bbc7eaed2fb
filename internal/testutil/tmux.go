// Package testutil runs the launcher binary inside a throwaway tmux server
// so tests can drive it with send-keys and read the screen back.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
	"github.com/kballard/go-shellquote"
)

var ErrPaneUnavailable = errors.New("tmux pane unavailable")

const (
	pollInterval  = 50 * time.Millisecond
	killTimeout   = 2 * time.Second
	crashMarker   = "server exited unexpectedly"
	serverLogGlob = "tmux-server-*.log"
)

// Server is a tmux server bound to a private socket. Its verbose logs are
// written to Dir and checked for crashes when the test ends.
type Server struct {
	t      *testing.T
	Socket string
	Dir    string
}

// RequireTmux skips the calling test when tmux is not on PATH.
func RequireTmux(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("skipping: tmux binary not available")
	}
}

// StartServer boots a detached tmux server. It is killed, and its logs
// checked, during test cleanup.
func StartServer(t *testing.T) *Server {
	t.Helper()
	RequireTmux(t)
	// sockets have a short path limit, so stay out of t.TempDir
	dir, err := os.MkdirTemp("/tmp", "tmux-popup-launcher-*")
	if err != nil {
		t.Fatalf("create tmux dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	s := &Server{t: t, Socket: filepath.Join(dir, "tmux.sock"), Dir: dir}

	boot := s.Command("-f", "/dev/null", "-vv", "new-session", "-d", "-s", "idle", "sleep", "600")
	boot.Dir = dir
	if err := boot.Run(); err != nil {
		t.Skipf("skipping: start tmux server: %v", err)
	}
	t.Cleanup(s.shutdown)
	return s
}

// Command builds a tmux invocation against this server, isolated from any
// tmux the test itself runs under.
func (s *Server) Command(args ...string) *exec.Cmd {
	cmd := exec.Command("tmux", append([]string{"-S", s.Socket}, args...)...)
	env := []string{"TMUX=", "TMUX_TMPDIR=" + s.Dir}
	for _, entry := range os.Environ() {
		if !strings.HasPrefix(entry, "TMUX=") && !strings.HasPrefix(entry, "TMUX_TMPDIR=") {
			env = append(env, entry)
		}
	}
	cmd.Env = env
	return cmd
}

// Run executes a tmux command and returns its error.
func (s *Server) Run(args ...string) error {
	return s.Command(args...).Run()
}

// SendKeys types keys into target, failing the test if tmux refuses.
func (s *Server) SendKeys(target string, keys ...string) {
	s.t.Helper()
	if err := s.Run(append([]string{"send-keys", "-t", target}, keys...)...); err != nil {
		s.t.Fatalf("send-keys %v: %v", keys, err)
	}
}

// Launch starts script as the only pane of a new detached session sized
// width x height. env entries (KEY=value) are exported before the script
// runs; new sessions inherit the server environment, not the client's.
func (s *Server) Launch(session string, width, height int, script string, env ...string) {
	s.t.Helper()
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	for _, kv := range env {
		b.WriteString("export " + shellquote.Join(kv) + "\n")
	}
	b.WriteString(script)
	path := filepath.Join(s.Dir, session+".sh")
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		s.t.Fatalf("write launch script: %v", err)
	}
	err := s.Run("new-session", "-d", "-s", session,
		"-x", fmt.Sprint(width), "-y", fmt.Sprint(height), path)
	if err != nil {
		s.t.Fatalf("launch %s: %v", session, err)
	}
	if err := s.Run("has-session", "-t", session); err != nil {
		s.t.Skipf("skipping: session %s did not start: %v", session, err)
	}
	s.t.Cleanup(func() { _ = s.Run("kill-session", "-t", session) })
}

// Capture returns the rendered contents of target.
func (s *Server) Capture(target string) (string, error) {
	out, err := s.Command("capture-pane", "-e", "-p", "-t", target).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrPaneUnavailable
		}
		return "", fmt.Errorf("capture-pane: %w", err)
	}
	return string(out), nil
}

// WaitForText polls target until every want string is on screen. A non-zero
// exit code in exitPath fails the test early.
func (s *Server) WaitForText(ctx context.Context, target, exitPath string, want ...string) string {
	s.t.Helper()
	var last string
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.t.Fatalf("timeout waiting for %q: %v\nlast capture:\n%s", want, ctx.Err(), last)
		case <-ticker.C:
		}
		if code := readExitCode(exitPath); code != "" && code != "0" {
			s.t.Fatalf("launcher exited early with code %s", code)
		}
		out, err := s.Capture(target)
		if errors.Is(err, ErrPaneUnavailable) {
			continue
		}
		if err != nil {
			s.t.Fatalf("%v", err)
		}
		if last = out; containsAll(out, want) {
			return out
		}
	}
}

func (s *Server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), killTimeout)
	defer cancel()
	if err := killServer(ctx, s.Socket); err != nil {
		s.t.Logf("control-mode kill on %s failed: %v; using kill-server", s.Socket, err)
		_ = s.Run("kill-server")
	}
	s.assertNoCrash()
}

func (s *Server) assertNoCrash() {
	logs, _ := filepath.Glob(filepath.Join(s.Dir, serverLogGlob))
	for _, path := range logs {
		content, err := os.ReadFile(path)
		if err != nil {
			s.t.Errorf("read tmux log %s: %v", path, err)
			continue
		}
		if strings.Contains(string(content), crashMarker) {
			s.t.Errorf("tmux server crashed; see %s", path)
		}
	}
}

func killServer(ctx context.Context, socket string) error {
	client, err := gotmux.NewTmuxWithOptions(socket, gotmux.WithContext(ctx))
	if err != nil {
		return err
	}
	defer client.Close()
	return client.KillServer()
}

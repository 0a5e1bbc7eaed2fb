package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "launcher.ini")
	writeFile(t, path, "[Menu]\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	writeFile(t, filepath.Join(dir, "other.ini"), "x")
	select {
	case evt := <-w.Events():
		t.Fatalf("unrelated file should not trigger a reload, got %#v", evt)
	case <-time.After(200 * time.Millisecond):
	}

	writeFile(t, path, "[Menu]\nItem1=Home|FOLDER|/home\n")
	writeFile(t, path, "[Menu]\nItem1=Home|FOLDER|/home|submenu\n")
	select {
	case evt := <-w.Events():
		if evt.Err != nil {
			t.Fatalf("unexpected watch error: %v", evt.Err)
		}
		if evt.Path != w.Path() {
			t.Fatalf("expected %q, got %q", w.Path(), evt.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for reload event")
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.ini")
	writeFile(t, path, "")
	w, err := NewWatcher(path, 0)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected events channel to be closed")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "launcher.ini"), 0); err == nil {
		t.Fatalf("expected error for a missing directory")
	}
}

func TestThrottleWaitHonoursContext(t *testing.T) {
	th := newThrottle(time.Hour)
	if !th.wait(context.Background()) {
		t.Fatalf("first wait should pass immediately")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if th.wait(ctx) {
		t.Fatalf("wait should stop on a cancelled context")
	}
	var nilThrottle *throttle
	if !nilThrottle.wait(context.Background()) {
		t.Fatalf("nil throttle should not block")
	}
}

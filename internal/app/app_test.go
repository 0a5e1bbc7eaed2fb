package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
)

func withWorkDir(t *testing.T, dir string) {
	t.Helper()
	prev := workDirFor
	workDirFor = func(string) string { return dir }
	t.Cleanup(func() { workDirFor = prev })
}

func testConfig(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()
	return Config{
		ConfigPath:  filepath.Join(root, "config", "launcher.ini"),
		SocketPath:  filepath.Join(root, "tmux.sock"),
		RecentDB:    filepath.Join(root, "state", "recent.db"),
		MetricsFile: filepath.Join(root, "metrics", "launcher.prom"),
		Theme:       "dark",
	}
}

func writeINI(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write ini: %v", err)
	}
}

func TestRunWriteDefault(t *testing.T) {
	cfg := testConfig(t)
	cfg.WriteDefault = true
	if err := Run(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(cfg.ConfigPath); err != nil {
		t.Fatalf("expected default configuration to be written: %v", err)
	}
	if err := Run(cfg); !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists on second run, got %v", err)
	}
}

func TestOpenWiresSession(t *testing.T) {
	t.Setenv("TMUX", "")
	withWorkDir(t, "/work")
	cfg := testConfig(t)
	cfg.Watch = true

	s, err := open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(s.snapshot.Entries) == 0 {
		t.Fatalf("expected the default menu to be loaded")
	}
	if s.store == nil {
		t.Fatalf("expected recent store to be opened")
	}
	if s.watcher == nil {
		t.Fatalf("expected config watcher")
	}
	if s.theme.Mode() != "dark" {
		t.Fatalf("expected theme flag to win, got %q", s.theme.Mode())
	}
	opts := s.options()
	if opts.Recent == nil || opts.Deps.Recent == nil {
		t.Fatalf("expected recent store to be wired into the menu")
	}
	if opts.Reload == nil || opts.Watcher == nil {
		t.Fatalf("expected reload wiring")
	}
	s.close()

	data, err := os.ReadFile(cfg.MetricsFile)
	if err != nil {
		t.Fatalf("expected metrics textfile: %v", err)
	}
	if !strings.Contains(string(data), "launcher_") {
		t.Fatalf("unexpected metrics output:\n%s", data)
	}
}

func TestOpenWithoutRecentStore(t *testing.T) {
	t.Setenv("TMUX", "")
	withWorkDir(t, "")
	cfg := testConfig(t)
	cfg.RecentDB = ""
	s, err := open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.close()
	opts := s.options()
	if opts.Recent != nil || opts.Deps.Recent != nil {
		t.Fatalf("expected no recent collaborators")
	}
	if opts.Watcher != nil {
		t.Fatalf("watching was not requested")
	}
}

func TestOpenRejectsEmptyMenu(t *testing.T) {
	t.Setenv("TMUX", "")
	withWorkDir(t, "")
	cfg := testConfig(t)
	writeINI(t, cfg.ConfigPath, "[General]\nTheme = light\n")
	if _, err := open(context.Background(), cfg); !errors.Is(err, settings.ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
}

func TestThemeFallsBackToINI(t *testing.T) {
	t.Setenv("TMUX", "")
	withWorkDir(t, "")
	cfg := testConfig(t)
	cfg.Theme = ""
	writeINI(t, cfg.ConfigPath, "[General]\nTheme = light\n[Menu]\nItem1 = Docs|URI|https://example.com\n")
	s, err := open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.close()
	if s.theme.Mode() != "light" {
		t.Fatalf("expected INI theme, got %q", s.theme.Mode())
	}
}

func TestReloadReadsFile(t *testing.T) {
	t.Setenv("TMUX", "")
	withWorkDir(t, "")
	cfg := testConfig(t)
	writeINI(t, cfg.ConfigPath, "[Menu]\nItem1 = Docs|URI|https://example.com\n")
	s, err := open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.close()

	writeINI(t, cfg.ConfigPath, "[Menu]\nItem1 = Mail|URI|mailto:me@example.com\nItem2 = Docs|URI|https://example.com\n")
	snap, err := s.reload()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(snap.Entries) != 2 || snap.Entries[0].Label != "Mail" {
		t.Fatalf("unexpected reloaded entries %#v", snap.Entries)
	}

	writeINI(t, cfg.ConfigPath, "[Menu]\n")
	if _, err := s.reload(); !errors.Is(err, settings.ErrNoItems) {
		t.Fatalf("expected an empty menu to fail the reload, got %v", err)
	}
}

// Package app wires the launcher together: it loads the INI file, opens the
// recent-items store, builds the host collaborators and runs the UI.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atomicstack/tmux-popup-launcher/internal/backend"
	"github.com/atomicstack/tmux-popup-launcher/internal/folder"
	"github.com/atomicstack/tmux-popup-launcher/internal/icon"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
	"github.com/atomicstack/tmux-popup-launcher/internal/metrics"
	"github.com/atomicstack/tmux-popup-launcher/internal/recent"
	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
	"github.com/atomicstack/tmux-popup-launcher/internal/shell"
	"github.com/atomicstack/tmux-popup-launcher/internal/theme"
	"github.com/atomicstack/tmux-popup-launcher/internal/tmux"
	"github.com/atomicstack/tmux-popup-launcher/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrConfigExists is returned by Run in write-default mode when the file is
// already there.
var ErrConfigExists = errors.New("configuration file already exists")

const (
	logFileName  = "launcher.log"
	pruneTimeout = 2 * time.Second
)

// Config describes user-provided application options.
type Config struct {
	ConfigPath   string
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	RecentDB     string
	MetricsFile  string
	Theme        string
	WriteDefault bool
	Watch        bool
	ViaTmux      bool
	LogFile      string
}

var (
	workDirFor = func(socketPath string) string {
		if !tmux.Available(socketPath) {
			return ""
		}
		return tmux.CurrentPath(socketPath)
	}
)

// session holds everything a run owns and must release.
type session struct {
	cfg      Config
	snapshot settings.Snapshot
	theme    *theme.Provider
	store    *recent.Store
	shell    *shell.Dispatcher
	recorder *metrics.Recorder
	icons    *icon.FileLoader
	watcher  *backend.Watcher
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	if cfg.WriteDefault {
		return writeDefault(cfg.ConfigPath)
	}
	s, err := open(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer s.close()
	model := ui.NewModel(s.options())
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	model.Close()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err == nil && cfg.Verbose && model.Result() != "" {
		fmt.Println(model.Result())
	}
	return err
}

func writeDefault(path string) error {
	written, err := settings.WriteDefault(path)
	if err != nil {
		return fmt.Errorf("write default configuration: %w", err)
	}
	if !written {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	events.App.DefaultWritten(path)
	return nil
}

func open(ctx context.Context, cfg Config) (*session, error) {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("resolve socket path: %w", err)
	}
	written, err := settings.WriteDefault(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("write default configuration: %w", err)
	}
	if written {
		events.App.DefaultWritten(cfg.ConfigPath)
	}
	snap, err := loadSnapshot(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyLogging(cfg, snap.Options)

	mode := cfg.Theme
	if strings.TrimSpace(mode) == "" {
		mode = snap.Options.Theme
	}
	s := &session{
		cfg:      cfg,
		snapshot: snap,
		theme:    theme.NewProvider(mode),
		recorder: metrics.New(),
		icons:    icon.NewFileLoader(),
		shell: shell.New(shell.Options{
			SocketPath: socketPath,
			ViaTmux:    cfg.ViaTmux,
			WorkDir:    workDirFor(socketPath),
		}),
	}
	if cfg.RecentDB != "" {
		store, err := recent.Open(cfg.RecentDB)
		if err != nil {
			// the menu still works without recent items
			logging.Error(fmt.Errorf("open recent store: %w", err))
		} else {
			s.store = store
			pruneCtx, cancel := context.WithTimeout(ctx, pruneTimeout)
			if _, err := store.Prune(pruneCtx); err != nil {
				logging.Error(fmt.Errorf("prune recent store: %w", err))
			}
			cancel()
		}
	}
	if cfg.Watch {
		w, err := backend.NewWatcher(cfg.ConfigPath, backend.DefaultQuiet)
		if err != nil {
			logging.Error(fmt.Errorf("watch %s: %w", cfg.ConfigPath, err))
		} else {
			s.watcher = w
		}
	}
	return s, nil
}

// loadSnapshot reads the INI file. A menu with no items is an error at
// startup and on reload.
func loadSnapshot(path string) (settings.Snapshot, error) {
	snap, err := settings.Load(path)
	if err != nil {
		return settings.Snapshot{}, fmt.Errorf("load configuration: %w", err)
	}
	return snap, nil
}

// applyLogging lets the INI [Debug] keys adjust logging when the command
// line left them alone.
func applyLogging(cfg Config, opts settings.Options) {
	if cfg.LogFile == "" && strings.TrimSpace(opts.LogFolder) != "" {
		logging.Configure(filepath.Join(opts.LogFolder, logFileName))
	}
	if strings.EqualFold(opts.LogConfig, "verbose") {
		logging.SetTraceEnabled(true)
	}
}

func (s *session) deps() menu.Deps {
	deps := menu.Deps{
		Lister:   folder.NewLister(),
		Icons:    s.icons,
		Theme:    s.theme,
		Observer: s.recorder,
	}
	if s.store != nil {
		deps.Recent = s.store
	}
	return deps
}

func (s *session) options() ui.Options {
	opts := ui.Options{
		Snapshot:   s.snapshot,
		Deps:       s.deps(),
		Shell:      s.shell,
		Styles:     s.theme.Styles(),
		Width:      s.cfg.Width,
		Height:     s.cfg.Height,
		ShowFooter: s.cfg.ShowFooter,
		Verbose:    s.cfg.Verbose,
		Watcher:    s.watcher,
		Reload:     s.reload,
	}
	if s.store != nil {
		opts.Recent = s.store
	}
	return opts
}

func (s *session) reload() (settings.Snapshot, error) {
	snap, err := loadSnapshot(s.cfg.ConfigPath)
	s.recorder.Reloaded(err)
	return snap, err
}

func (s *session) close() {
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher.Wait()
	}
	if err := s.recorder.WriteTextfile(s.cfg.MetricsFile); err != nil {
		logging.Error(fmt.Errorf("write metrics: %w", err))
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Error(fmt.Errorf("close recent store: %w", err))
		}
	}
}

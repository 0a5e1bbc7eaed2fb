package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-launcher/internal/backend"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
	tea "github.com/charmbracelet/bubbletea"
)

// backendEventMsg is one debounced change to the configuration file.
type backendEventMsg struct {
	event backend.Event
}

// backendDoneMsg reports that the watcher's channel closed.
type backendDoneMsg struct{}

// reloadedMsg carries a freshly loaded configuration.
type reloadedMsg struct {
	snapshot settings.Snapshot
	err      error
}

// waitForBackendEvent blocks on the watcher for exactly one message; the
// handler re-arms it.
func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		if evt, ok := <-w.Events(); ok {
			return backendEventMsg{event: evt}
		}
		return backendDoneMsg{}
	}
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	evt, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	var rearm tea.Cmd
	if m.watcher != nil {
		rearm = waitForBackendEvent(m.watcher)
	}
	return tea.Batch(m.reloadCmd(evt.event), rearm)
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// reloadCmd re-reads the configuration off the UI goroutine. Watch errors
// are logged and otherwise ignored.
func (m *Model) reloadCmd(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		logging.Error(fmt.Errorf("watch %s: %w", evt.Path, evt.Err))
		return nil
	}
	reload := m.reload
	if reload == nil {
		return nil
	}
	return func() tea.Msg {
		snap, err := reload()
		return reloadedMsg{snapshot: snap, err: err}
	}
}

// handleReloadedMsg swaps in a build for the new configuration. A file that
// fails to load keeps the current menu on screen, as does a reload that
// lands while an action is running against the current build.
func (m *Model) handleReloadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(reloadedMsg)
	if !ok {
		return nil
	}
	events.App.Reload(update.snapshot.Path, update.err)
	switch {
	case update.err != nil:
		logging.Error(update.err)
		m.errMsg = fmt.Sprintf("reload failed: %v", update.err)
	case !m.loading:
		m.installBuild(menu.NewBuild(update.snapshot, m.deps))
		m.errMsg = ""
		m.setInfo("Menu reloaded.")
	}
	return nil
}

package ui

import (
	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// populatedMsg carries a finished listing back to the UI goroutine, which
// owns the tree.
type populatedMsg struct {
	build   *menu.Build
	job     *menu.Job
	listing menu.Listing
}

func populateCmd(b *menu.Build, job *menu.Job) tea.Cmd {
	return func() tea.Msg {
		return populatedMsg{build: b, job: job, listing: job.Run()}
	}
}

func (m *Model) handlePopulatedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(populatedMsg)
	if !ok {
		return nil
	}
	if !update.build.Apply(update.job, update.listing) {
		return nil
	}
	if update.build != m.build {
		return nil
	}
	for _, lvl := range m.stack {
		if lvl.Node == update.job.Node {
			lvl.Refresh()
			m.syncViewport(lvl)
		}
	}
	return nil
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingLabel = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.forceClearInfo()
	if m.verbose {
		m.result = result.Info
	}
	events.Action.Success(result.Info)
	return tea.Quit
}

// Result is the message of the action that closed the popup. It is only
// recorded in verbose mode.
func (m *Model) Result() string {
	return m.result
}

package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-launcher/internal/logging"
	"github.com/atomicstack/tmux-popup-launcher/internal/logging/events"
	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
	"github.com/atomicstack/tmux-popup-launcher/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-launcher/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// resetStatus clears the error and info lines and forgets a pending
// double enter.
func (m *Model) resetStatus() {
	m.errMsg = ""
	m.forceClearInfo()
	m.lastEnterID = ""
}

// handleEscapeKey pops one level, restoring the parent's highlight, and
// quits at the root.
func (m *Model) handleEscapeKey() tea.Cmd {
	if len(m.stack) <= 1 {
		return tea.Quit
	}
	leaving := m.currentLevel()
	m.stack = m.stack[:len(m.stack)-1]
	events.UI.MenuBack(leaving.ID, len(m.stack))

	parent := m.currentLevel()
	switch idx := parent.IndexOf(leaving.ID); {
	case parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items):
		parent.Cursor = parent.LastCursor
	case idx >= 0:
		parent.Cursor = idx
	}
	parent.LastCursor = -1
	m.syncViewport(parent)
	m.resetStatus()
	return nil
}

// highlighted returns the enabled row under the cursor.
func (m *Model) highlighted() (*level, uistate.Item, bool) {
	current := m.currentLevel()
	if current == nil {
		return nil, uistate.Item{}, false
	}
	item, ok := current.Current()
	if !ok || !item.Enabled() {
		return current, item, false
	}
	return current, item, true
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	if current := m.currentLevel(); current != nil && m.isSecondEnter(current) {
		m.lastEnterID = ""
		return m.openFolder(current.ID, current.Node)
	}
	current, item, ok := m.highlighted()
	if !ok {
		return nil
	}
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter)
	// entering clears the query but keeps the chosen row highlighted
	if current.Filter != "" {
		before := current.FilterCursorPos()
		current.SetFilter("", 0)
		m.noteFilterCursorChange(current, before)
		if idx := current.IndexOf(item.ID); idx >= 0 {
			current.Cursor = idx
		}
	}
	if item.Node.Expandable() {
		return m.enterContainer(current, item)
	}
	if item.Node.Selectable() {
		return m.selectLeaf(item)
	}
	return nil
}

// isSecondEnter reports whether enter was pressed again on a folder that
// was just opened as a submenu, within the double-enter window.
func (m *Model) isSecondEnter(current *level) bool {
	return m.lastEnterID != "" &&
		m.lastEnterID == current.ID &&
		m.build.Options().FolderDoubleClickOpen &&
		m.now().Sub(m.lastEnterAt) <= doubleEnterInterval
}

// enterContainer pushes the child level. Unpopulated containers show their
// loading row until the listing started here comes back as populatedMsg.
func (m *Model) enterContainer(current *level, item uistate.Item) tea.Cmd {
	node := item.Node
	child := uistate.ForNode(current.ChildID(item), item.Label, node)
	current.LastCursor = current.Cursor
	m.stack = append(m.stack, child)
	m.syncViewport(child)
	m.resetStatus()
	if node.IsDir && node.Path != "" {
		m.lastEnterID, m.lastEnterAt = child.ID, m.now()
	}
	job, ok := m.build.BeginExpand(node)
	if !ok {
		return nil
	}
	return populateCmd(m.build, job)
}

func (m *Model) selectLeaf(item uistate.Item) tea.Cmd {
	action, err := m.build.Select(item.Node.ID)
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return nil
	}
	return m.execute(item.Label, action)
}

// execute hands action to the bus; the result comes back as an
// actionResultMsg.
func (m *Model) execute(label string, action menu.Action) tea.Cmd {
	m.resetStatus()
	m.loading, m.pendingLabel = true, label
	return m.bus.Execute(m.ctx, command.Request{Label: label, Action: action})
}

// openFolder opens a folder-backed container with the desktop opener
// instead of browsing into it.
func (m *Model) openFolder(levelID string, node *menu.Node) tea.Cmd {
	if node == nil || !node.IsDir || node.Path == "" {
		m.setInfo("Nothing to open here.")
		return nil
	}
	events.UI.OpenFolder(levelID, node.Path)
	if len(m.stack) > 1 && m.currentLevel().Node == node {
		m.stack = m.stack[:len(m.stack)-1]
	}
	return m.execute(node.Label, menu.Action{Kind: menu.ActionOpenPath, Target: node.Path})
}

// handleOpenKey opens the highlighted folder row directly. On a leaf it
// behaves like enter.
func (m *Model) handleOpenKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current, item, ok := m.highlighted()
	switch {
	case current == nil:
		return nil
	case ok && item.Node.Selectable():
		return m.selectLeaf(item)
	case ok:
		return m.openFolder(current.ID, item.Node)
	}
	m.setInfo("Nothing to open here.")
	return nil
}

// targetPath is what ctrl+y copies: the row's path, or the target of its
// action for leaves without one.
func (m *Model) targetPath(item uistate.Item) string {
	switch {
	case item.Node == nil:
		return ""
	case item.Node.Path != "":
		return item.Node.Path
	case item.Node.Selectable():
		if action, ok := m.build.Identifiers().Resolve(item.Node.ID); ok {
			return action.Target
		}
	}
	return ""
}

func (m *Model) handleCopyKey() tea.Cmd {
	_, item, ok := m.highlighted()
	path := ""
	if ok {
		path = m.targetPath(item)
	}
	if path == "" {
		m.setInfo("Nothing to copy.")
		return nil
	}
	err := m.copy(path)
	events.UI.CopyPath(path, err)
	if err != nil {
		logging.Error(fmt.Errorf("copy %s: %w", path, err))
		m.errMsg = fmt.Sprintf("copy failed: %v", err)
		return nil
	}
	m.setInfo("Copied " + path)
	return nil
}

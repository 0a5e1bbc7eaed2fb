package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/tmux-popup-launcher/internal/backend"
	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
	"github.com/atomicstack/tmux-popup-launcher/internal/settings"
	"github.com/atomicstack/tmux-popup-launcher/internal/theme"
	"github.com/atomicstack/tmux-popup-launcher/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-launcher/internal/ui/state"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

const (
	menuHeaderSeparator = " → "
	defaultRootTitle    = "start"
	rootLevelID         = "root"

	// doubleEnterInterval is the window in which a second enter on a
	// folder opens it when FolderSubmenuOpen=double.
	doubleEnterInterval = 500 * time.Millisecond
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carry everything the model needs to build and act on the menu.
type Options struct {
	Snapshot   settings.Snapshot
	Deps       menu.Deps
	Shell      menu.Shell
	Recent     menu.Recent
	Styles     *theme.Styles
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Watcher    *backend.Watcher
	// Reload re-reads the configuration after the watcher reports a change.
	Reload func() (settings.Snapshot, error)
	// Copy writes text to the clipboard. Defaults to the system clipboard.
	Copy func(string) error
	Now  func() time.Time
}

// Model implements the Bubble Tea model for the launcher menu.
type Model struct {
	stack             []*level
	build             *menu.Build
	deps              menu.Deps
	loading           bool
	pendingLabel      string
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	watcher           *backend.Watcher
	reload            func() (settings.Snapshot, error)
	showFooter        bool
	verbose           bool
	result            string
	filterCursor      cursor.Model
	filterCursorDirty bool
	copy              func(string) error
	now               func() time.Time
	lastEnterID       string
	lastEnterAt       time.Time

	handlers map[reflect.Type]msgHandler

	bus       *command.Bus
	ctx       context.Context
	rootTitle string
}

// NewModel builds the menu for opts.Snapshot and initialises the UI state.
func NewModel(opts Options) *Model {
	if opts.Styles != nil {
		styles = opts.Styles
	}
	m := &Model{
		deps:       opts.Deps,
		bus:        command.New(opts.Shell, opts.Recent),
		ctx:        context.Background(),
		watcher:    opts.Watcher,
		reload:     opts.Reload,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		copy:       opts.Copy,
		now:        opts.Now,
		rootTitle:  defaultRootTitle,
	}
	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.installBuild(menu.NewBuild(opts.Snapshot, opts.Deps))
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// installBuild replaces the current build, destroying the previous one, and
// resets the stack to the new root.
func (m *Model) installBuild(b *menu.Build) {
	if m.build != nil && m.build != b {
		m.build.Destroy()
	}
	m.build = b
	root := uistate.ForNode(rootLevelID, m.rootTitle, b.Root)
	m.stack = []*level{root}
	m.lastEnterID = ""
	m.syncViewport(root)
}

// Build exposes the live menu build.
func (m *Model) Build() *menu.Build {
	return m.build
}

// Close destroys the live build. Pending listings are discarded.
func (m *Model) Close() {
	if m.build != nil {
		m.build.Destroy()
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.watcher != nil {
		cmds = append(cmds, waitForBackendEvent(m.watcher))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(populatedMsg{}):      m.handlePopulatedMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(reloadedMsg{}):       m.handleReloadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

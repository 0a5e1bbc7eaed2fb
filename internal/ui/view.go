package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-popup-launcher/internal/format/table"
	"github.com/atomicstack/tmux-popup-launcher/internal/menu"
	uistate "github.com/atomicstack/tmux-popup-launcher/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	itemIndicator   = "▌"
	containerMarker = " ›"
	ellipsis        = "…"
	footerHint      = "↑/↓ move  enter open  ctrl+o open folder  ctrl+y copy path  esc back  ctrl+c quit"
)

// styledLine is one output row. When marker is set the first rune is
// rendered with it and the rest with style. ansi rows are already rendered.
type styledLine struct {
	text   string
	style  *lipgloss.Style
	marker *lipgloss.Style
	ansi   bool
}

// View implements tea.Model. The body (breadcrumb, rows, info, footer) is
// clipped to the popup height; the status row and the filter prompt are
// always drawn below it.
func (m *Model) View() string {
	body := limitHeight(m.bodyLines(), m.height-bottomBarRows, m.width)
	return renderLines(fitWidth(append(body, m.bottomBar()...), m.width))
}

func (m *Model) bodyLines() []styledLine {
	lines := make([]styledLine, 0, 16)
	if header := m.menuHeader(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if current := m.currentLevel(); current != nil {
		lines = append(lines, m.rowLines(current)...)
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footerHint, style: styles.Footer})
	}
	return lines
}

func (m *Model) bottomBar() []styledLine {
	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	} else if m.loading {
		status = styledLine{text: fmt.Sprintf("Running %s…", m.pendingLabel), style: styles.Loading}
	}
	prompt, _ := m.filterPrompt()
	return []styledLine{status, {text: prompt, ansi: true}}
}

func (m *Model) rowLines(l *level) []styledLine {
	m.syncViewport(l)
	if len(l.Items) == 0 {
		notice := "(no entries)"
		if l.Filter != "" {
			notice = fmt.Sprintf("No matches for %q", l.Filter)
		}
		return []styledLine{{text: notice, style: styles.Info}}
	}
	from, to := m.visibleRange(l)
	visible := l.Items[from:to]
	texts := m.itemTexts(visible)
	out := make([]styledLine, len(visible))
	for i, item := range visible {
		out[i] = m.rowLine(item, texts[i], from+i == l.Cursor)
	}
	return out
}

// visibleRange returns the window of rows that fits the popup, pinned so
// the last page is always full.
func (m *Model) visibleRange(l *level) (int, int) {
	n := len(l.Items)
	limit := m.maxVisibleItems()
	if limit <= 0 || n <= limit {
		return 0, n
	}
	start := l.ViewportOffset
	if start > n-limit {
		start = n - limit
		l.ViewportOffset = start
	}
	if start < 0 {
		start = 0
	}
	return start, start + limit
}

// itemTexts lays out the label and detail columns for the visible rows.
func (m *Model) itemTexts(items []uistate.Item) []string {
	rows := make([]table.Row, len(items))
	for i, item := range items {
		rows[i] = table.Row{Label: itemLabel(item), Detail: item.Detail}
	}
	width := 0
	if m.width > 0 {
		width = m.width - lipgloss.Width(itemIndicator) - 1
	}
	return table.Fit(rows, width)
}

func itemLabel(item uistate.Item) string {
	label := item.Label
	if item.Node == nil {
		return label
	}
	if item.Glyph != "" {
		label = item.Glyph + " " + label
	}
	if item.Node.Expandable() {
		label += containerMarker
	}
	return label
}

func (m *Model) rowLine(item uistate.Item, text string, selected bool) styledLine {
	if item.Node != nil {
		switch item.Node.Kind {
		case menu.NodeSeparator:
			return styledLine{text: "  " + strings.Repeat("─", max(m.width-2, 3)), style: styles.Separator}
		case menu.NodePlaceholder:
			return styledLine{text: "  " + text, style: styles.Placeholder}
		case menu.NodeHeader:
			return styledLine{text: "  " + text, style: styles.Header}
		}
	}
	style, marker := styles.Item, styles.ItemIndicator
	if item.Node != nil && item.Node.Expandable() {
		style = styles.Container
	}
	if selected {
		style, marker = styles.SelectedItem, styles.SelectedItemIndicator
	}
	// pad so the selection background spans the popup
	text = itemIndicator + " " + text
	if pad := m.width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return styledLine{text: text, style: style, marker: marker}
}

func (m *Model) menuHeader() string {
	return strings.Join(m.headerSegments(), menuHeaderSeparator)
}

// headerSegments is the breadcrumb: the root title then every titled level.
func (m *Model) headerSegments() []string {
	if len(m.stack) == 0 {
		return nil
	}
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	segments := []string{root}
	for _, l := range m.stack[1:] {
		if title := strings.TrimSpace(l.Title); title != "" {
			segments = append(segments, title)
		}
	}
	return segments
}

// limitHeight keeps at most height lines, replacing the last kept line with
// an ellipsis when something was cut.
func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	kept := append([]styledLine(nil), lines[:height-1]...)
	return append(kept, styledLine{text: truncateText(ellipsis, width)})
}

func fitWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	out := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.ansi {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width), ellipsis)
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		out[i] = line
	}
	return out
}

func renderLines(lines []styledLine) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.render())
	}
	return b.String()
}

func (l styledLine) render() string {
	if l.ansi {
		return l.text
	}
	if l.marker != nil {
		if runes := []rune(l.text); len(runes) > 1 {
			return l.marker.Render(string(runes[:1])) + renderWith(l.style, string(runes[1:]))
		}
	}
	return renderWith(l.style, l.text)
}

func truncateText(text string, width int) string {
	switch {
	case width <= 0 || lipgloss.Width(text) <= width:
		return text
	case width == 1:
		return ellipsis
	}
	return truncate.StringWithTail(text, uint(width), ellipsis)
}

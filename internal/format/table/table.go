// Package table lines up menu rows into columns.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// minLabelWidth is the narrowest label column kept before details are dropped.
const minLabelWidth = 8

// Row is a label with an optional detail shown in its own column.
type Row struct {
	Label  string
	Detail string
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if width := cellWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - cellWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(row)-1 {
					writeSpaces(&b, pad)
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

// Fit lays rows out within width columns: labels on the left, details right
// aligned so they end at width. Labels are truncated first; when fewer than
// minLabelWidth columns would remain the details are dropped. A width of
// zero or less disables fitting.
func Fit(rows []Row, width int) []string {
	if len(rows) == 0 {
		return nil
	}
	detailWidth := 0
	for _, row := range rows {
		if w := cellWidth(row.Detail); w > detailWidth {
			detailWidth = w
		}
	}
	if width <= 0 {
		cells := make([][]string, len(rows))
		for i, row := range rows {
			cells[i] = []string{row.Label}
			if detailWidth > 0 {
				cells[i] = append(cells[i], row.Detail)
			}
		}
		return Format(cells, []Alignment{AlignLeft, AlignRight})
	}
	labelWidth := width
	if detailWidth > 0 {
		labelWidth = width - detailWidth - 2
		if labelWidth < minLabelWidth {
			labelWidth = width
			detailWidth = 0
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		label := clip(row.Label, labelWidth)
		if detailWidth == 0 || row.Detail == "" {
			out[i] = label
			continue
		}
		var b strings.Builder
		b.WriteString(label)
		writeSpaces(&b, labelWidth-cellWidth(label)+2+detailWidth-cellWidth(row.Detail))
		b.WriteString(row.Detail)
		out[i] = b.String()
	}
	return out
}

func clip(text string, width int) string {
	if width <= 0 || cellWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func cellWidth(text string) int {
	return lipgloss.Width(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}

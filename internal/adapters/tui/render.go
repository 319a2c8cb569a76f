package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"octofit/internal/domain/collection"
)

// MaxCellWidth bounds a rendered cell; longer text is truncated with an ellipsis.
const MaxCellWidth = 40

const ellipsis = "…"

// Truncate shortens s to at most width terminal columns.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// cellText renders a cell's plain text with its icon glyph.
func cellText(c collection.Cell) string {
	text := Truncate(c.Text, MaxCellWidth)
	if g := Glyph(c.Icon); g != "" {
		text = g + " " + text
	}
	return text
}

// styledCell renders a cell with its badge, emphasis or muted style.
func styledCell(s *Styles, c collection.Cell) string {
	text := cellText(c)
	if c.Tone != collection.ToneNone {
		if st, ok := s.Badge(c.Tone); ok {
			return st.Render(" " + text + " ")
		}
	}
	switch {
	case c.Emphasis:
		return s.Emphasis.Render(text)
	case c.Muted:
		return s.Muted.Render(text)
	}
	return text
}

// headerText renders a header label followed by its sort glyph.
func headerText(h collection.Header) string {
	return h.Label + " " + h.Indicator
}

// CountLine returns the "<label>: <n>" summary above a loaded table.
func CountLine(snap collection.Snapshot) string {
	label := snap.Schema.CountLabel
	if label == "" {
		label = "Total"
	}
	return fmt.Sprintf("%s: %d", label, snap.Total)
}

// ErrorLine returns the banner text for a failed view.
func ErrorLine(snap collection.Snapshot) string {
	return "Error: " + snap.Message
}

// tableOptions controls styled table rendering.
type tableOptions struct {
	cursor int // highlighted header column; -1 for none
}

// renderTable draws rows of t with lipgloss/table.
// PRE: rows is a window of t.Rows
// POST: returns the table with one header row and len(rows) data rows
func renderTable(s *Styles, t collection.Table, rows []collection.Row, opts tableOptions) string {
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = headerText(h)
	}
	data := make([][]string, len(rows))
	for i, r := range rows {
		cells := make([]string, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = styledCell(s, c)
		}
		data[i] = cells
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == opts.cursor {
					return s.CursorHead
				}
				return s.Header
			}
			if row >= 0 && row < len(rows) && rows[row].Tone == collection.ToneActive {
				return s.ActiveRow
			}
			return s.Cell
		})
	return tbl.Render()
}

// PlainTable renders a table without colour for pipes and logs.
// PRE: none
// POST: one header line, a rule, then one line per row; columns are space-padded
func PlainTable(t collection.Table) string {
	widths := make([]int, len(t.Headers))
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = headerText(h)
		widths[i] = runewidth.StringWidth(headers[i])
	}
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = make([]string, len(r.Cells))
		for j, c := range r.Cells {
			text := cellText(c)
			rows[i][j] = text
			widths[j] = max(widths[j], runewidth.StringWidth(text))
		}
	}

	var b strings.Builder
	writeLine := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(c)
				continue
			}
			b.WriteString(runewidth.FillRight(c, widths[i]))
		}
		b.WriteByte('\n')
	}
	writeLine(headers)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeLine(rule)
	for _, r := range rows {
		writeLine(r)
	}
	return b.String()
}

package ui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"alertscope/internal/model"
)

// Format selects how a column's values are rendered.
type Format int

const (
	// FormatText renders the raw value. Numbers keep their original JSON
	// digits, so 64-bit identifiers are never rounded.
	FormatText Format = iota
	// FormatID renders the value as a navigable identifier.
	FormatID
	// FormatNumber renders a fixed-decimal number.
	FormatNumber
	// FormatBar renders a bar proportional to the column's maximum.
	FormatBar
)

// Column declares one table column: where its value comes from, how it is
// rendered, and whether the user may range-filter on it.
type Column struct {
	Title    string
	Field    string
	Format   Format
	Decimals int
	// Derive computes the value from the whole row instead of reading
	// Field directly (e.g. a ratio of two other columns).
	Derive     func(model.Row) any
	Filterable bool
}

const barWidth = 12

// Table renders rows under declarative column definitions with optional
// numeric range filters.
type Table struct {
	Columns []Column
	rows    []model.Row
	filters map[string]RangeFilter
}

// NewTable creates a table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		Columns: columns,
		filters: make(map[string]RangeFilter),
	}
}

// SetRows replaces the table's rows.
func (t *Table) SetRows(rows []model.Row) {
	t.rows = rows
}

// Len returns the number of rows before filtering.
func (t *Table) Len() int {
	return len(t.rows)
}

// SetFilter applies a range filter expression to the named column. An empty
// expression clears the filter. Filtering a column that is not Filterable is
// an error.
func (t *Table) SetFilter(field, expr string) error {
	col := t.column(field)
	if col == nil {
		return fmt.Errorf("no column %q", field)
	}
	if !col.Filterable {
		return fmt.Errorf("column %q is not filterable", field)
	}
	if strings.TrimSpace(expr) == "" {
		delete(t.filters, field)
		return nil
	}
	f, err := ParseRangeFilter(expr)
	if err != nil {
		return err
	}
	t.filters[field] = f
	return nil
}

func (t *Table) column(field string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Field == field {
			return &t.Columns[i]
		}
	}
	return nil
}

// VisibleRows returns the rows that pass every active filter.
func (t *Table) VisibleRows() []model.Row {
	if len(t.filters) == 0 {
		return t.rows
	}
	out := make([]model.Row, 0, len(t.rows))
	for _, row := range t.rows {
		keep := true
		for field, f := range t.filters {
			v, ok := toFloat(t.cellValue(*t.column(field), row))
			if !ok || !f.Match(v) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table) cellValue(col Column, row model.Row) any {
	if col.Derive != nil {
		return col.Derive(row)
	}
	return row[col.Field]
}

// View renders the table.
func (t *Table) View(styles Styles) string {
	rows := t.VisibleRows()
	if len(rows) == 0 {
		return styles.Muted.Render("no rows")
	}

	// Bar columns scale against the visible maximum.
	maxima := make(map[string]float64)
	for _, col := range t.Columns {
		if col.Format != FormatBar {
			continue
		}
		for _, row := range rows {
			if v, ok := toFloat(t.cellValue(col, row)); ok && v > maxima[col.Field] {
				maxima[col.Field] = v
			}
		}
	}

	// Render all cells first so column widths can be computed.
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(t.Columns))
		for j, col := range t.Columns {
			cells[i][j] = t.renderCell(col, row, maxima[col.Field])
		}
	}

	widths := make([]int, len(t.Columns))
	for j, col := range t.Columns {
		widths[j] = lipgloss.Width(col.Title)
	}
	for _, row := range cells {
		for j, cell := range row {
			if w := lipgloss.Width(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var sb strings.Builder
	for j, col := range t.Columns {
		title := col.Title
		if _, ok := t.filters[col.Field]; ok {
			title += "*"
		}
		sb.WriteString(styles.Bold.Render(pad(title, widths[j])))
		if j < len(t.Columns)-1 {
			sb.WriteString(styles.Muted.Render(" │ "))
		}
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 3 * (len(t.Columns) - 1)
	sb.WriteString(styles.RenderDivider(total))
	sb.WriteString("\n")

	for i, row := range cells {
		for j, cell := range row {
			style := styles.Body
			if t.Columns[j].Format == FormatID {
				style = styles.Link
			}
			sb.WriteString(style.Render(pad(cell, widths[j])))
			if j < len(row)-1 {
				sb.WriteString(styles.Muted.Render(" │ "))
			}
		}
		if i < len(cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (t *Table) renderCell(col Column, row model.Row, max float64) string {
	v := t.cellValue(col, row)
	switch col.Format {
	case FormatNumber:
		f, ok := toFloat(v)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(f, 'f', col.Decimals, 64)
	case FormatBar:
		f, ok := toFloat(v)
		if !ok {
			return ""
		}
		return renderBar(f, max, barWidth)
	default:
		return renderText(v)
	}
}

func renderText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case json.Number:
		return t.String()
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func renderBar(v, max float64, width int) string {
	if max <= 0 || v < 0 {
		return strings.Repeat("░", width)
	}
	filled := int(v / max * float64(width))
	if filled > width {
		filled = width
	}
	if v > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// toFloat converts the value types that appear in rows to a float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

package ux

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Table is a text table with a header row.
type Table struct {
	Headers []string
	Rows    [][]string
	// Footer is printed under the table, e.g. pagination.
	Footer string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends one row. Cells are rendered with Cell.
func (t *Table) AddRow(cells ...any) *Table {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = Cell(c)
	}
	t.Rows = append(t.Rows, row)
	return t
}

// Cell renders a value for a table cell.
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return "-"
		}
		return x
	case time.Time:
		if x.IsZero() {
			return "-"
		}
		return x.Local().Format("2006-01-02 15:04")
	case *time.Time:
		if x == nil {
			return "-"
		}
		return Cell(*x)
	case float64:
		return fmt.Sprintf("%.2f", x)
	case bool:
		if x {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprint(x)
	}
}

// Render writes the table aligned with tabwriter. The header is styled after
// alignment so escape codes do not skew column widths.
func (t *Table) Render(w io.Writer, noColor bool) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	lines := strings.SplitAfterN(buf.String(), "\n", 2)
	header := strings.TrimRight(lines[0], "\n")
	if !noColor {
		header = headerStyle(w).Render(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if len(lines) > 1 {
		if _, err := io.WriteString(w, lines[1]); err != nil {
			return err
		}
	}
	if len(t.Rows) == 0 {
		if _, err := fmt.Fprintln(w, dim(w, noColor, "(no results)")); err != nil {
			return err
		}
	}
	if t.Footer != "" {
		if _, err := fmt.Fprintln(w, dim(w, noColor, t.Footer)); err != nil {
			return err
		}
	}
	return nil
}

// KeyValues renders label/value pairs as a two-column block.
func KeyValues(w io.Writer, noColor bool, pairs ...[2]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range pairs {
		label := p[0] + ":"
		if !noColor {
			label = labelStyle(w).Render(label)
		}
		fmt.Fprintf(tw, "%s\t%s\n", label, p[1])
	}
	return tw.Flush()
}

func headerStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))
}

func labelStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().
		Foreground(lipgloss.Color("12"))
}

func dim(w io.Writer, noColor bool, s string) string {
	if noColor {
		return s
	}
	return lipgloss.NewRenderer(w).NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(s)
}

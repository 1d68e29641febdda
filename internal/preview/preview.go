// Package preview renders the head of a dataset as a fixed-width text
// table on stdout, so a run can be eyeballed before (or instead of, with
// --dry-run) touching the database.
package preview

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	nullStyle   = lipgloss.NewStyle().Faint(true)
)

// StdoutIsTerminal reports whether stdout is attached to a terminal.
// Styling is skipped when it is not, keeping piped output clean.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Render writes the first limit rows of the dataset to w as an aligned
// table. With styled set, headers are bold and nulls dimmed.
func Render(w io.Writer, dataset *pdf2db.Dataset, limit int, styled bool) {
	if dataset.Empty() || limit <= 0 {
		return
	}

	n := limit
	if n > len(dataset.Rows) {
		n = len(dataset.Rows)
	}

	cells := make([][]string, 0, n)
	nulls := make([][]bool, 0, n)
	for _, row := range dataset.Rows[:n] {
		line := make([]string, len(dataset.Columns))
		isNull := make([]bool, len(dataset.Columns))
		for i := range dataset.Columns {
			line[i], isNull[i] = formatCell(row[i])
		}
		cells = append(cells, line)
		nulls = append(nulls, isNull)
	}

	widths := make([]int, len(dataset.Columns))
	for i, col := range dataset.Columns {
		widths[i] = len(col)
	}
	for _, line := range cells {
		for i, cell := range line {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Header and underline.
	var header, rule []string
	for i, col := range dataset.Columns {
		padded := pad(col, widths[i])
		if styled {
			padded = headerStyle.Render(padded)
		}
		header = append(header, padded)
		rule = append(rule, strings.Repeat("-", widths[i]))
	}
	fmt.Fprintln(w, strings.Join(header, "  "))
	fmt.Fprintln(w, strings.Join(rule, "  "))

	for r, line := range cells {
		out := make([]string, len(line))
		for i, cell := range line {
			padded := pad(cell, widths[i])
			if styled && nulls[r][i] {
				padded = nullStyle.Render(padded)
			}
			out[i] = padded
		}
		fmt.Fprintln(w, strings.Join(out, "  "))
	}

	if n < len(dataset.Rows) {
		fmt.Fprintf(w, "(showing %d of %d rows)\n", n, len(dataset.Rows))
	}
}

// formatCell renders one value and reports whether it was null.
func formatCell(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "NULL", true
	case time.Time:
		return value.Format("2006-01-02"), false
	case string:
		if value == "" {
			return "", false
		}
		return value, false
	default:
		return fmt.Sprint(value), false
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

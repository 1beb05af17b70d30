package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vibesql/pgq/internal/query"
)

// MaxColumnWidth caps every table column, in runes.
const MaxColumnWidth = 50

const columnSeparator = " | "

// Table writes the header, a dashed separator and one line per row. Each
// column is as wide as its longest header or value, up to MaxColumnWidth;
// longer values are cut to fit.
func Table(w io.Writer, result *query.Result) error {
	if result == nil || len(result.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No rows found.")
		return err
	}

	cells := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		cells[i] = make([]string, len(result.Columns))
		for j, col := range result.Columns {
			if j < len(row) {
				cells[i][j] = formatCell(row[j], col.DatabaseType)
			}
		}
	}

	widths := make([]int, len(result.Columns))
	for j, col := range result.Columns {
		widths[j] = utf8.RuneCountInString(col.Name)
		for i := range cells {
			if n := utf8.RuneCountInString(cells[i][j]); n > widths[j] {
				widths[j] = n
			}
		}
		if widths[j] > MaxColumnWidth {
			widths[j] = MaxColumnWidth
		}
	}

	headerLine := formatLine(result.ColumnNames(), widths)
	lines := make([]string, 0, len(cells)+2)
	lines = append(lines, headerLine, strings.Repeat("-", utf8.RuneCountInString(headerLine)))
	for _, row := range cells {
		lines = append(lines, formatLine(row, widths))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func formatLine(values []string, widths []int) string {
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = fitWidth(v, widths[i])
	}
	return strings.Join(fields, columnSeparator)
}

// fitWidth cuts s to width runes or pads it with spaces up to width.
func fitWidth(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

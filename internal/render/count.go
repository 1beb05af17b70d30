package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/vibesql/pgq/internal/query"
)

// Count writes the number of rows and, when there are any, the column names.
func Count(w io.Writer, result *query.Result) error {
	n := 0
	if result != nil {
		n = len(result.Rows)
	}
	if _, err := fmt.Fprintf(w, "Total: %d row(s)\n", n); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "Columns: %s\n", strings.Join(result.ColumnNames(), ", "))
	return err
}

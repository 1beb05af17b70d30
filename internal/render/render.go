// Package render writes a query.Result to an io.Writer as an aligned text
// table, as a JSON array of objects, or as a row-count summary.
package render

import (
	"fmt"
	"io"

	"github.com/vibesql/pgq/internal/query"
)

// Mode selects how a result is printed. It is fixed for an invocation.
type Mode int

const (
	ModeTable Mode = iota
	ModeJSON
	ModeCount
)

func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeJSON:
		return "json"
	case ModeCount:
		return "count"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Render writes result in the given mode.
func Render(w io.Writer, mode Mode, result *query.Result) error {
	switch mode {
	case ModeTable:
		return Table(w, result)
	case ModeJSON:
		return JSON(w, result)
	case ModeCount:
		return Count(w, result)
	default:
		return fmt.Errorf("unknown output mode %v", mode)
	}
}

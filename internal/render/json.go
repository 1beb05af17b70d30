package render

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/vibesql/pgq/internal/query"
)

// JSON writes the rows as an indented array of objects with keys in column order.
func JSON(w io.Writer, result *query.Result) error {
	rows := make([]orderedRow, 0)
	if result != nil {
		for _, row := range result.Rows {
			rows = append(rows, orderedRow{columns: result.Columns, values: row})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

type orderedRow struct {
	columns []query.Column
	values  query.Row
}

func (r orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, col.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')

		var val any
		if i < len(r.values) {
			val = jsonValue(r.values[i], col.DatabaseType)
		}
		if err := writeJSON(&buf, val); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

package query

import (
	"context"
	"time"

	"github.com/vibesql/pgq/internal/postgres"
)

type Column = postgres.Column

// Row holds one value per result column, in column order.
type Row []any

// Result is a fetched row set. Column names are unique.
type Result struct {
	Columns []Column
	Rows    []Row
}

// ColumnNames returns the column names in declaration order.
func (r *Result) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

type OutcomeKind int

const (
	// OutcomeRows means the statement returned a row set.
	OutcomeRows OutcomeKind = iota
	// OutcomeAffected means the statement mutated data and was committed.
	OutcomeAffected
)

// Outcome is the classified result of one statement.
type Outcome struct {
	Kind          OutcomeKind
	Result        *Result
	RowsAffected  int64
	ExecutionTime time.Duration
}

type Executor struct {
	session postgres.Session
}

func NewExecutor(session postgres.Session) *Executor {
	return &Executor{session: session}
}

// Execute runs sql and classifies what came back. On error the returned
// Outcome is still non-nil and carries only the ExecutionTime.
func (e *Executor) Execute(ctx context.Context, sql string) (*Outcome, error) {
	startTime := time.Now()
	rs, err := e.session.Execute(ctx, sql)
	executionTime := time.Since(startTime)

	if err != nil {
		return &Outcome{ExecutionTime: executionTime}, postgres.TranslateError(err, sql)
	}

	if !rs.Described() {
		return &Outcome{
			Kind:          OutcomeAffected,
			RowsAffected:  rs.RowsAffected,
			ExecutionTime: executionTime,
		}, nil
	}

	return &Outcome{
		Kind:          OutcomeRows,
		Result:        newResult(rs),
		ExecutionTime: executionTime,
	}, nil
}

// newResult normalizes driver values. A repeated column name keeps its first
// position and takes the value of its last occurrence.
func newResult(rs *postgres.ResultSet) *Result {
	result := &Result{}
	index := make(map[string]int, len(rs.Columns))
	positions := make([]int, len(rs.Columns))

	for i, col := range rs.Columns {
		if j, ok := index[col.Name]; ok {
			positions[i] = j
			result.Columns[j].DatabaseType = col.DatabaseType
			continue
		}
		index[col.Name] = len(result.Columns)
		positions[i] = len(result.Columns)
		result.Columns = append(result.Columns, col)
	}

	result.Rows = make([]Row, 0, len(rs.Rows))
	for _, raw := range rs.Rows {
		row := make(Row, len(result.Columns))
		for i, val := range raw {
			if i >= len(positions) {
				break
			}
			row[positions[i]] = normalizeValue(val, rs.Columns[i].DatabaseType)
		}
		result.Rows = append(result.Rows, row)
	}

	return result
}

package query

// ApplyRowLimit returns the first limit rows of result, in server order, and
// whether any rows were dropped. A limit of zero or less keeps every row.
// The input is not modified.
func ApplyRowLimit(result *Result, limit int) (*Result, bool) {
	if result == nil || limit <= 0 || len(result.Rows) <= limit {
		return result, false
	}

	return &Result{
		Columns: result.Columns,
		Rows:    result.Rows[:limit:limit],
	}, true
}

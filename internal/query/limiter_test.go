package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resultWithRows(n int) *Result {
	r := &Result{Columns: []Column{{Name: "n"}}}
	for i := 0; i < n; i++ {
		r.Rows = append(r.Rows, Row{int64(i)})
	}
	return r
}

func TestApplyRowLimit(t *testing.T) {
	tests := []struct {
		name          string
		rows          int
		limit         int
		wantRows      int
		wantTruncated bool
	}{
		{name: "no limit", rows: 5, limit: 0, wantRows: 5},
		{name: "negative limit", rows: 5, limit: -1, wantRows: 5},
		{name: "limit above row count", rows: 5, limit: 10, wantRows: 5},
		{name: "limit equal to row count", rows: 5, limit: 5, wantRows: 5},
		{name: "limit below row count", rows: 5, limit: 2, wantRows: 2, wantTruncated: true},
		{name: "empty result", rows: 0, limit: 3, wantRows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := resultWithRows(tt.rows)

			out, truncated := ApplyRowLimit(in, tt.limit)

			assert.Equal(t, tt.wantTruncated, truncated)
			assert.Len(t, out.Rows, tt.wantRows)
			assert.Len(t, in.Rows, tt.rows, "input must not be modified")
		})
	}
}

func TestApplyRowLimit_KeepsServerOrder(t *testing.T) {
	out, truncated := ApplyRowLimit(resultWithRows(4), 2)

	assert.True(t, truncated)
	assert.Equal(t, []Row{{int64(0)}, {int64(1)}}, out.Rows)
}

func TestApplyRowLimit_Nil(t *testing.T) {
	out, truncated := ApplyRowLimit(nil, 3)
	assert.Nil(t, out)
	assert.False(t, truncated)
}

package query

import (
	"context"

	"github.com/vibesql/pgq/internal/postgres"
)

// fakeSession replays a canned ResultSet or error.
type fakeSession struct {
	result  *postgres.ResultSet
	err     error
	queries []string
	closed  bool
}

func (f *fakeSession) Execute(ctx context.Context, query string) (*postgres.ResultSet, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

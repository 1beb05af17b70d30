package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgqError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PgqError
		expected string
	}{
		{
			name:     "with detail",
			err:      NewPgqError(ErrorCodeQueryExecution, "Query execution failed", "boom"),
			expected: "QUERY_EXECUTION_ERROR: Query execution failed (boom)",
		},
		{
			name:     "without detail",
			err:      NewPgqError(ErrorCodeInvalidArgument, "missing query", ""),
			expected: "INVALID_ARGUMENT: missing query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestTranslateError_Nil(t *testing.T) {
	assert.Nil(t, TranslateError(nil, "SELECT 1"))
}

func TestTranslateError_PQError(t *testing.T) {
	pqErr := &pq.Error{
		Code:     "42P01",
		Message:  `relation "missing" does not exist`,
		Position: "15",
	}

	err := TranslateError(fmt.Errorf("exec: %w", pqErr), "SELECT * FROM missing")
	require.NotNil(t, err)

	assert.Equal(t, ErrorCodeQueryExecution, err.Code)
	assert.Equal(t, "SELECT * FROM missing", err.Query)
	assert.Equal(t, `PostgreSQL error 42P01 (undefined_table): relation "missing" does not exist | Position: 15`, err.Detail)
	assert.True(t, errors.Is(err, pqErr))
}

func TestTranslateError_PgconnError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "23505",
		Message: "duplicate key value violates unique constraint",
		Detail:  "Key (id)=(1) already exists.",
		Hint:    "use another id",
	}

	err := TranslateError(pgErr, "INSERT INTO t VALUES (1)")
	require.NotNil(t, err)

	assert.Equal(t, ErrorCodeQueryExecution, err.Code)
	assert.Equal(t, "PostgreSQL error 23505 (unique_violation): duplicate key value violates unique constraint | Detail: Key (id)=(1) already exists. | Hint: use another id", err.Detail)
}

func TestTranslateError_Canceled(t *testing.T) {
	err := TranslateError(context.Canceled, "SELECT pg_sleep(10)")
	require.NotNil(t, err)
	assert.Equal(t, "Query execution canceled", err.Message)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTranslateError_AlreadyTranslated(t *testing.T) {
	original := NewUnconfirmedUnsafeQueryError("DROP TABLE t")
	assert.Same(t, original, TranslateError(original, "ignored"))
}

func TestTranslateError_Generic(t *testing.T) {
	err := TranslateError(errors.New("driver: bad connection"), "SELECT 1")
	require.NotNil(t, err)
	assert.Equal(t, ErrorCodeQueryExecution, err.Code)
	assert.Equal(t, "driver: bad connection", err.Detail)
}

func TestConditionName(t *testing.T) {
	tests := []struct {
		sqlState string
		expected string
	}{
		{"42601", "syntax_error"},
		{"42P99", "syntax error or access rule violation"},
		{"23000", "integrity constraint violation"},
		{"ZZ999", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.sqlState, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConditionName(tt.sqlState))
		})
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConnectionError("u@h:1/d", errors.New("refused")))
	assert.True(t, IsCode(err, ErrorCodeConnection))
	assert.False(t, IsCode(err, ErrorCodeUnexpected))
	assert.False(t, IsCode(errors.New("plain"), ErrorCodeConnection))
}

func TestNewUnexpectedError(t *testing.T) {
	cause := errors.New("disk on fire")
	err := NewUnexpectedError(cause)
	assert.Equal(t, ErrorCodeUnexpected, err.Code)
	assert.Equal(t, "disk on fire", err.Detail)
	assert.ErrorIs(t, err, cause)
}

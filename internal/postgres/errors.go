package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

// pgq error codes
const (
	ErrorCodeConnection             = "CONNECTION_ERROR"
	ErrorCodeQueryExecution         = "QUERY_EXECUTION_ERROR"
	ErrorCodeUnconfirmedUnsafeQuery = "UNCONFIRMED_UNSAFE_QUERY"
	ErrorCodeUnexpected             = "UNEXPECTED_ERROR"
	ErrorCodeInvalidArgument        = "INVALID_ARGUMENT"
)

// PgqError represents a terminal pgq error
type PgqError struct {
	Code    string
	Message string
	Detail  string

	// Query is the statement being run when the error happened, if any.
	Query string

	Err error
}

func (e *PgqError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PgqError) Unwrap() error {
	return e.Err
}

// NewPgqError creates a new pgq error
func NewPgqError(code, message, detail string) *PgqError {
	return &PgqError{
		Code:    code,
		Message: message,
		Detail:  detail,
	}
}

// NewConnectionError reports a failed attempt to reach the server at addr.
func NewConnectionError(addr string, err error) *PgqError {
	return &PgqError{
		Code:    ErrorCodeConnection,
		Message: fmt.Sprintf("Failed to connect to %s", addr),
		Detail:  describeError(err),
		Err:     err,
	}
}

// NewUnconfirmedUnsafeQueryError reports a non-read-only statement the operator declined to run.
func NewUnconfirmedUnsafeQueryError(query string) *PgqError {
	return &PgqError{
		Code:    ErrorCodeUnconfirmedUnsafeQuery,
		Message: "Query not confirmed",
		Detail:  "non-read-only statements must be confirmed interactively",
		Query:   query,
	}
}

// NewUnexpectedError wraps any failure outside the driver's execution path.
func NewUnexpectedError(err error) *PgqError {
	return &PgqError{
		Code:    ErrorCodeUnexpected,
		Message: "Unexpected error",
		Detail:  describeError(err),
		Err:     err,
	}
}

// NewInvalidArgumentError reports bad command-line input.
func NewInvalidArgumentError(message string) *PgqError {
	return NewPgqError(ErrorCodeInvalidArgument, message, "")
}

// IsCode reports whether err is a PgqError carrying code.
func IsCode(err error, code string) bool {
	var pgqErr *PgqError
	return errors.As(err, &pgqErr) && pgqErr.Code == code
}

// SQLSTATE condition names, see the "PostgreSQL Error Codes" appendix
var sqlStateNames = map[string]string{
	"42601": "syntax_error",
	"42703": "undefined_column",
	"42P01": "undefined_table",
	"42P02": "undefined_parameter",
	"42883": "undefined_function",
	"42804": "datatype_mismatch",
	"42501": "insufficient_privilege",
	"42P07": "duplicate_table",
	"23505": "unique_violation",
	"23503": "foreign_key_violation",
	"23502": "not_null_violation",
	"23514": "check_violation",
	"22P02": "invalid_text_representation",
	"22012": "division_by_zero",
	"25006": "read_only_sql_transaction",
	"40001": "serialization_failure",
	"40P01": "deadlock_detected",
	"57014": "query_canceled",
	"3D000": "invalid_catalog_name",
	"28P01": "invalid_password",
	"28000": "invalid_authorization_specification",
	"53300": "too_many_connections",
	"08000": "connection_exception",
	"08003": "connection_does_not_exist",
	"08006": "connection_failure",
	"08001": "sqlclient_unable_to_establish_sqlconnection",
	"08004": "sqlserver_rejected_establishment_of_sqlconnection",
}

// SQLSTATE class names, keyed by the first two characters
var sqlStateClasses = map[string]string{
	"08": "connection exception",
	"0A": "feature not supported",
	"21": "cardinality violation",
	"22": "data exception",
	"23": "integrity constraint violation",
	"25": "invalid transaction state",
	"28": "invalid authorization specification",
	"3D": "invalid catalog name",
	"40": "transaction rollback",
	"42": "syntax error or access rule violation",
	"53": "insufficient resources",
	"54": "program limit exceeded",
	"57": "operator intervention",
	"58": "system error",
	"XX": "internal error",
}

// ConditionName returns a readable name for a SQLSTATE code.
func ConditionName(sqlState string) string {
	if name, ok := sqlStateNames[sqlState]; ok {
		return name
	}
	if len(sqlState) >= 2 {
		if class, ok := sqlStateClasses[sqlState[:2]]; ok {
			return class
		}
	}
	return "unknown"
}

// TranslateError translates a driver error raised while running query
func TranslateError(err error, query string) *PgqError {
	if err == nil {
		return nil
	}

	var pgqErr *PgqError
	if errors.As(err, &pgqErr) {
		return pgqErr
	}

	message := "Query execution failed"
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		message = "Query execution canceled"
	}

	return &PgqError{
		Code:    ErrorCodeQueryExecution,
		Message: message,
		Detail:  describeError(err),
		Query:   query,
		Err:     err,
	}
}

// describeError renders server-side errors field by field and anything else verbatim.
func describeError(err error) string {
	if err == nil {
		return ""
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return buildErrorDetail(string(pqErr.Code), pqErr.Message, pqErr.Detail, pqErr.Hint, pqErr.Position)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		position := ""
		if pgErr.Position > 0 {
			position = fmt.Sprintf("%d", pgErr.Position)
		}
		return buildErrorDetail(pgErr.Code, pgErr.Message, pgErr.Detail, pgErr.Hint, position)
	}

	return err.Error()
}

func buildErrorDetail(code, message, detail, hint, position string) string {
	parts := []string{fmt.Sprintf("PostgreSQL error %s (%s): %s", code, ConditionName(code), message)}

	if detail != "" {
		parts = append(parts, "Detail: "+detail)
	}

	if hint != "" {
		parts = append(parts, "Hint: "+hint)
	}

	if position != "" {
		parts = append(parts, "Position: "+position)
	}

	return strings.Join(parts, " | ")
}

package query

import (
	"strings"

	"github.com/vibesql/pgq/internal/postgres"
)

// ValidateQuery rejects blank input. Syntax is left to the server.
func ValidateQuery(sql string) error {
	if strings.TrimSpace(sql) == "" {
		return postgres.NewPgqError(
			postgres.ErrorCodeInvalidArgument,
			"Missing SQL query",
			"pass the statement to run as the first argument",
		)
	}
	return nil
}

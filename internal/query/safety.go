package query

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Statements starting with one of these keywords run without confirmation.
var readOnlyKeywords = map[string]bool{
	"SELECT":   true,
	"SHOW":     true,
	"DESCRIBE": true,
	"EXPLAIN":  true,
	"WITH":     true,
}

var (
	whereClausePattern = regexp.MustCompile(`\bWHERE\b`)
	singleLineComment  = regexp.MustCompile(`--[^\n]*`)
	multiLineComment   = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	stringLiteral      = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// LeadingKeyword returns the first word of sql, upper-cased.
func LeadingKeyword(sql string) string {
	trimmed := strings.TrimLeftFunc(sql, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '_'
	})
	if end < 0 {
		end = len(trimmed)
	}
	return strings.ToUpper(trimmed[:end])
}

// IsReadOnly reports whether sql starts with a read-only keyword.
//
// This is an advisory keyword check to catch accidental writes, not a
// security control: "WITH d AS (DELETE ...) SELECT ..." passes it, and it
// gives no protection against injection. The database's own permissions are
// the only real boundary.
func IsReadOnly(sql string) bool {
	return readOnlyKeywords[LeadingKeyword(sql)]
}

// MissingWhereWarning returns a warning for UPDATE and DELETE statements
// that would touch every row, or "" otherwise.
func MissingWhereWarning(sql string) string {
	keyword := LeadingKeyword(sql)
	if keyword != "UPDATE" && keyword != "DELETE" {
		return ""
	}
	if hasWhereClause(sql) {
		return ""
	}
	return fmt.Sprintf("%s without WHERE clause affects every row in the table", keyword)
}

// hasWhereClause checks if a SQL query contains a WHERE clause
// It removes comments and string literals to avoid false positives
func hasWhereClause(sql string) bool {
	sql = removeComments(sql)

	// e.g., UPDATE users SET desc = 'WHERE is my data' should not match
	sql = removeStringLiterals(sql)

	// word boundary avoids matching "SOMEWHERE"
	return whereClausePattern.MatchString(strings.ToUpper(sql))
}

// removeComments removes SQL comments from the query
// Note: Nested /* */ comments are not fully supported
func removeComments(sql string) string {
	sql = singleLineComment.ReplaceAllString(sql, "")
	return multiLineComment.ReplaceAllString(sql, "")
}

// removeStringLiterals removes SQL string literals from the query
// Handles PostgreSQL string escaping: 'can''t' (doubled single quotes)
func removeStringLiterals(sql string) string {
	return stringLiteral.ReplaceAllString(sql, "''")
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vibesql/pgq/internal/config"
)

// Column describes one result column as reported by the driver
type Column struct {
	Name string

	// DatabaseType is the upper-case PostgreSQL type name, e.g. NUMERIC or DATE.
	DatabaseType string
}

// ResultSet is what the driver returned for a single statement
type ResultSet struct {
	Columns      []Column
	Rows         [][]any
	RowsAffected int64
}

// Described reports whether the driver sent a row description.
// Statements without one are mutations and have been committed.
func (r *ResultSet) Described() bool {
	return len(r.Columns) > 0
}

// Session is one open connection. Execute runs a statement inside its own
// transaction and commits only when the statement returned no rows.
type Session interface {
	Execute(ctx context.Context, query string) (*ResultSet, error)
	Close() error
}

// Connector opens a Session for the given driver name.
type Connector func(ctx context.Context, driver string, db config.Database) (Session, error)

var _ Connector = Connect

// Connect opens a single connection to the configured database
func Connect(ctx context.Context, driver string, db config.Database) (Session, error) {
	if db.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.ConnectTimeout)
		defer cancel()
	}

	dsn := buildConnectionString(db)

	var (
		session Session
		err     error
	)
	switch driver {
	case config.DriverPQ, "":
		session, err = connectPQ(ctx, dsn)
	case config.DriverPGX:
		session, err = connectPGX(ctx, dsn)
	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return nil, NewConnectionError(db.Address(), err)
	}
	return session, nil
}

// buildConnectionString constructs a keyword/value PostgreSQL connection string
// understood by both lib/pq and pgx
func buildConnectionString(db config.Database) string {
	sslMode := db.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	connStr := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		quoteValue(db.Host), db.Port, quoteValue(db.User), quoteValue(db.Name), quoteValue(sslMode))

	if db.ConnectTimeout > 0 {
		seconds := int(db.ConnectTimeout.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		connStr += fmt.Sprintf(" connect_timeout=%d", seconds)
	}

	if db.Password != "" {
		connStr += fmt.Sprintf(" password=%s", quoteValue(db.Password))
	}

	return connStr
}

// quoteValue single-quotes values that are empty or contain spaces, quotes or backslashes.
func quoteValue(value string) string {
	if value != "" && !strings.ContainsAny(value, ` '\`) {
		return value
	}
	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + replacer.Replace(value) + "'"
}

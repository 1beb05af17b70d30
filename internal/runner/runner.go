// Package runner drives a single pgq invocation: confirm, connect, execute,
// render, release. Every failure is terminal and is reported on stderr
// before Run returns it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	goerrors "github.com/go-errors/errors"
	"go.uber.org/zap"

	"github.com/vibesql/pgq/internal/config"
	"github.com/vibesql/pgq/internal/postgres"
	"github.com/vibesql/pgq/internal/prompt"
	"github.com/vibesql/pgq/internal/query"
	"github.com/vibesql/pgq/internal/render"
)

const previewLength = 50

// Request is one statement to run and how to show its result.
type Request struct {
	Query string
	Mode  render.Mode

	// RowLimit caps the displayed rows; 0 shows everything.
	RowLimit int
}

// Runner carries everything one invocation needs. Connect and Logger may be
// nil, in which case postgres.Connect and a no-op logger are used.
type Runner struct {
	Config    *config.Config
	Connect   postgres.Connector
	Confirmer prompt.Confirmer

	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// Run executes req. A nil error means the process should exit 0.
func (r *Runner) Run(ctx context.Context, req Request) (err error) {
	defer func() {
		if p := recover(); p != nil {
			wrapped := goerrors.Wrap(p, 2)
			r.logger().Debug("recovered panic", zap.String("stack", string(wrapped.Stack())))
			err = r.fail(postgres.NewUnexpectedError(wrapped))
		}
	}()

	if err := query.ValidateQuery(req.Query); err != nil {
		return r.fail(err)
	}
	if req.RowLimit < 0 {
		return r.fail(postgres.NewInvalidArgumentError(fmt.Sprintf("row limit must not be negative, got %d", req.RowLimit)))
	}

	if !query.IsReadOnly(req.Query) {
		if err := r.confirm(req.Query); err != nil {
			return r.fail(err)
		}
	}

	db := r.Config.Database
	fmt.Fprintf(r.Stderr, "Connecting to %s\n", db.Address())
	r.logger().Debug("connecting", zap.String("driver", r.Config.Driver), zap.String("address", db.Address()))

	session, err := r.connector()(ctx, r.Config.Driver, db)
	if err != nil {
		return r.fail(err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			r.logger().Warn("failed to close database session", zap.Error(closeErr))
		}
	}()

	outcome, err := query.NewExecutor(session).Execute(ctx, req.Query)
	if outcome != nil {
		fmt.Fprintf(r.Stderr, "Execution time: %.3fs\n", outcome.ExecutionTime.Seconds())
	}
	if err != nil {
		return r.fail(err)
	}

	switch outcome.Kind {
	case query.OutcomeAffected:
		r.logger().Debug("statement committed",
			zap.Int64("rowsAffected", outcome.RowsAffected),
			zap.Duration("elapsed", outcome.ExecutionTime))
		fmt.Fprintf(r.Stdout, "Query OK, %d row(s) affected\n", outcome.RowsAffected)
	case query.OutcomeRows:
		r.logger().Debug("rows fetched",
			zap.Int("rows", len(outcome.Result.Rows)),
			zap.Duration("elapsed", outcome.ExecutionTime))
		if err := r.printRows(req, outcome.Result); err != nil {
			return r.fail(err)
		}
	}

	return nil
}

func (r *Runner) printRows(req Request, result *query.Result) error {
	shown, truncated := query.ApplyRowLimit(result, req.RowLimit)
	if truncated {
		fmt.Fprintf(r.Stderr, "Warning: output limited to %d of %d rows\n", len(shown.Rows), len(result.Rows))
	}

	if err := render.Render(r.Stdout, req.Mode, shown); err != nil {
		return postgres.NewUnexpectedError(err)
	}

	// The footer counts every fetched row, including ones cut by the limit.
	// JSON output keeps stdout parseable, so its footer goes to stderr.
	footer := r.Stdout
	if req.Mode == render.ModeJSON {
		footer = r.Stderr
	}
	fmt.Fprintf(footer, "\nTotal %d row(s) returned\n", len(result.Rows))
	return nil
}

func (r *Runner) confirm(sql string) error {
	fmt.Fprintln(r.Stderr, "Warning: only SELECT, SHOW, DESCRIBE, EXPLAIN and WITH statements run without confirmation.")
	fmt.Fprintf(r.Stderr, "Statement: %s\n", preview(sql))
	if warning := query.MissingWhereWarning(sql); warning != "" {
		fmt.Fprintf(r.Stderr, "Warning: %s\n", warning)
	}

	if r.Confirmer == nil {
		return postgres.NewUnconfirmedUnsafeQueryError(sql)
	}
	ok, err := r.Confirmer.Confirm("Run it anyway?")
	if err != nil {
		return postgres.NewUnexpectedError(err)
	}
	if !ok {
		return postgres.NewUnconfirmedUnsafeQueryError(sql)
	}
	return nil
}

// fail prints the diagnostic for err and returns it as a *postgres.PgqError.
func (r *Runner) fail(err error) error {
	var pgqErr *postgres.PgqError
	if !errors.As(err, &pgqErr) {
		pgqErr = postgres.NewUnexpectedError(err)
	}

	switch pgqErr.Code {
	case postgres.ErrorCodeConnection:
		fmt.Fprintf(r.Stderr, "Error: %s\n  %s\n", pgqErr.Message, pgqErr.Detail)
		r.printConnectionHelp()
	case postgres.ErrorCodeQueryExecution:
		fmt.Fprintf(r.Stderr, "Error: %s: %s\n", pgqErr.Message, pgqErr.Detail)
		fmt.Fprintf(r.Stderr, "Query: %s\n", pgqErr.Query)
	case postgres.ErrorCodeUnconfirmedUnsafeQuery:
		fmt.Fprintln(r.Stderr, "Aborted: statement was not confirmed, nothing was executed.")
	case postgres.ErrorCodeInvalidArgument:
		if pgqErr.Detail != "" {
			fmt.Fprintf(r.Stderr, "Error: %s (%s)\n", pgqErr.Message, pgqErr.Detail)
		} else {
			fmt.Fprintf(r.Stderr, "Error: %s\n", pgqErr.Message)
		}
	default:
		fmt.Fprintf(r.Stderr, "Error: %s: %s\n", pgqErr.Message, pgqErr.Detail)
	}

	r.logger().Debug("run failed", zap.String("code", pgqErr.Code), zap.Error(err))
	return pgqErr
}

func (r *Runner) printConnectionHelp() {
	db := r.Config.Database
	fmt.Fprintln(r.Stderr, "\nTroubleshooting:")
	fmt.Fprintln(r.Stderr, "1. Check the PostgreSQL server or container is running: docker ps | grep postgres")
	fmt.Fprintln(r.Stderr, "2. Check DATABASE_HOST, DATABASE_PORT, DATABASE_NAME, DATABASE_USERNAME and DATABASE_PASSWORD")
	fmt.Fprintf(r.Stderr, "3. Check %s:%d is reachable from this machine\n", db.Host, db.Port)
}

func (r *Runner) connector() postgres.Connector {
	if r.Connect != nil {
		return r.Connect
	}
	return postgres.Connect
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}

func preview(sql string) string {
	sql = strings.TrimSpace(sql)
	runes := []rune(sql)
	if len(runes) <= previewLength {
		return sql
	}
	return string(runes[:previewLength]) + "..."
}

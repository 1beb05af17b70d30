package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibesql/pgq/internal/config"
	"github.com/vibesql/pgq/internal/logging"
	"github.com/vibesql/pgq/internal/postgres"
	"github.com/vibesql/pgq/internal/prompt"
	"github.com/vibesql/pgq/internal/render"
	"github.com/vibesql/pgq/internal/runner"
	"github.com/vibesql/pgq/internal/version"
)

const (
	longDescription = `pgq runs one SQL statement against a PostgreSQL database and prints the
result as a table, as JSON or as a row count.

Statements that do not start with SELECT, SHOW, DESCRIBE, EXPLAIN or WITH
must be confirmed interactively. This is a guard against accidents, not a
security control.

Connection settings come from the environment (primary or alternate name):
  DATABASE_HOST      POSTGRES_HOST       (default localhost)
  DATABASE_PORT      POSTGRES_PORT       (default 5432)
  DATABASE_NAME      POSTGRES_DB         (default aiminderdb)
  DATABASE_USERNAME  POSTGRES_USER       (default aiminder)
  DATABASE_PASSWORD  POSTGRES_PASSWORD   (default aiminder)
  DATABASE_SSLMODE   PGSSLMODE           (default disable)
  DATABASE_CONNECT_TIMEOUT               (default 10s)
  PGQ_DRIVER                             (pq or pgx, default pq)`

	examples = `  pgq "SELECT * FROM users LIMIT 5"
  pgq "SELECT * FROM goals" --json
  pgq "SELECT COUNT(*) FROM users" --count
  pgq "SELECT * FROM conversations" --limit 20
  pgq --help-queries`
)

type options struct {
	json        bool
	count       bool
	limit       int
	helpQueries bool
	verbose     bool
}

func (o options) mode() render.Mode {
	switch {
	case o.json:
		return render.ModeJSON
	case o.count:
		return render.ModeCount
	default:
		return render.ModeTable
	}
}

func newRootCommand(stdin *os.File, stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           `pgq "<SQL>" [--json | --count] [--limit N]`,
		Short:         "Run a SQL statement against PostgreSQL and print the result",
		Long:          longDescription,
		Example:       examples,
		Version:       version.Get().Short(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.helpQueries {
				printQuickCommands(cmd.OutOrStdout())
				return nil
			}

			if len(args) == 0 {
				fmt.Fprintf(stderr, "Error: missing SQL query\n\n")
				fmt.Fprint(stderr, cmd.UsageString())
				return postgres.NewInvalidArgumentError("missing SQL query")
			}

			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
				return postgres.NewInvalidArgumentError(err.Error())
			}

			logger, err := logging.New(opts.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			logger.Debug("starting", zap.String("version", version.Get().String()), zap.String("driver", cfg.Driver))

			r := &runner.Runner{
				Config:    cfg,
				Confirmer: prompt.New(stdin, stderr),
				Stdout:    stdout,
				Stderr:    stderr,
				Logger:    logger,
			}
			return r.Run(cmd.Context(), runner.Request{
				Query:    args[0],
				Mode:     opts.mode(),
				RowLimit: opts.limit,
			})
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.json, "json", false, "print rows as a JSON array")
	flags.BoolVar(&opts.count, "count", false, "print only the row count and column names")
	flags.IntVar(&opts.limit, "limit", 0, "show at most N rows (0 shows all)")
	flags.BoolVar(&opts.helpQueries, "help-queries", false, "list frequently used queries and exit")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	cmd.MarkFlagsMutuallyExclusive("json", "count")
	cmd.SetVersionTemplate(version.Get().Full())

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/vibesql/pgq/internal/postgres"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		// pgq errors have already been reported with their diagnostics
		var pgqErr *postgres.PgqError
		if !errors.As(err, &pgqErr) {
			fmt.Fprintf(stderr, "Error: %v\n\n", err)
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}

package main

import (
	"fmt"
	"io"
)

type quickCommand struct {
	description string
	sql         string
}

var quickCommands = []quickCommand{
	{"List tables", "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'"},
	{"List users", "SELECT user_id, provider, provider_id, created_at FROM users LIMIT 10"},
	{"Active goals", "SELECT title, description, target_date FROM goals WHERE status = 'ACTIVE' AND deleted_at IS NULL LIMIT 10"},
	{"Recent conversations", "SELECT conversation_id, created_at FROM conversations ORDER BY created_at DESC LIMIT 10"},
	{"Column statistics", "SELECT schemaname, tablename, attname, n_distinct, correlation FROM pg_stats WHERE schemaname = 'public'"},
	{"Table schema", "SELECT column_name, data_type FROM information_schema.columns WHERE table_name = 'users'"},
}

func printQuickCommands(w io.Writer) {
	fmt.Fprintln(w, "Frequently used queries:")
	fmt.Fprintln(w)
	for i, c := range quickCommands {
		fmt.Fprintf(w, "%d. %s\n", i+1, c.description)
		fmt.Fprintf(w, "   pgq %q\n", c.sql)
		fmt.Fprintln(w)
	}
}

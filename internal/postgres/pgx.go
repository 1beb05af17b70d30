package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v4"
)

// pgxSession runs statements on a native pgx connection.
type pgxSession struct {
	conn *pgx.Conn
}

func connectPGX(ctx context.Context, dsn string) (*pgxSession, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	// Allows multi-statement input, matching lib/pq.
	cfg.PreferSimpleProtocol = true

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &pgxSession{conn: conn}, nil
}

func (s *pgxSession) Execute(ctx context.Context, query string) (*ResultSet, error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// no-op once committed
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &ResultSet{}
	for _, fd := range rows.FieldDescriptions() {
		col := Column{Name: string(fd.Name)}
		if dt, ok := s.conn.ConnInfo().DataTypeForOID(fd.DataTypeOID); ok {
			col.DatabaseType = strings.ToUpper(dt.Name)
		}
		result.Columns = append(result.Columns, col)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			rows.Close()
			return nil, err
		}
		result.Rows = append(result.Rows, values)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !result.Described() {
		result.RowsAffected = rows.CommandTag().RowsAffected()
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *pgxSession) Close() error {
	return s.conn.Close(context.Background())
}

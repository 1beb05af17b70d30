package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"

	_ "github.com/lib/pq"
)

// pqSession runs statements through lib/pq. It works on the raw driver
// connection because database/sql hides the command tag of row-less queries.
type pqSession struct {
	db   *sql.DB
	conn *sql.Conn
}

func connectPQ(ctx context.Context, dsn string) (*pqSession, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, err
	}

	return &pqSession{db: db, conn: conn}, nil
}

func (s *pqSession) Execute(ctx context.Context, query string) (*ResultSet, error) {
	var result *ResultSet
	err := s.conn.Raw(func(driverConn any) error {
		var err error
		result, err = executeRaw(ctx, driverConn, query)
		return err
	})
	return result, err
}

func (s *pqSession) Close() error {
	var errs []error
	if s.conn != nil {
		errs = append(errs, s.conn.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}

func executeRaw(ctx context.Context, driverConn any, query string) (*ResultSet, error) {
	beginner, ok := driverConn.(driver.ConnBeginTx)
	if !ok {
		return nil, fmt.Errorf("driver connection %T cannot begin transactions", driverConn)
	}
	queryer, ok := driverConn.(driver.QueryerContext)
	if !ok {
		return nil, fmt.Errorf("driver connection %T cannot run queries", driverConn)
	}

	tx, err := beginner.BeginTx(ctx, driver.TxOptions{})
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// No arguments, so lib/pq uses the simple query protocol.
	rows, err := queryer.QueryContext(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	result, err := readDriverRows(rows)
	if closeErr := rows.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}

	if !result.Described() {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		committed = true
	}

	return result, nil
}

// commandResult is implemented by lib/pq rows and exposes the command tag.
type commandResult interface {
	Result() driver.Result
}

func readDriverRows(rows driver.Rows) (*ResultSet, error) {
	result := &ResultSet{}

	names := rows.Columns()
	if len(names) > 0 {
		typed, _ := rows.(driver.RowsColumnTypeDatabaseTypeName)
		result.Columns = make([]Column, len(names))
		for i, name := range names {
			result.Columns[i] = Column{Name: name}
			if typed != nil {
				result.Columns[i].DatabaseType = typed.ColumnTypeDatabaseTypeName(i)
			}
		}
	}

	for {
		dest := make([]driver.Value, len(names))
		if err := rows.Next(dest); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		row := make([]any, len(dest))
		for i, val := range dest {
			// driver buffers are reused between rows
			if b, ok := val.([]byte); ok {
				row[i] = bytes.Clone(b)
			} else {
				row[i] = val
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if tagged, ok := rows.(commandResult); ok && !result.Described() {
		if n, err := tagged.Result().RowsAffected(); err == nil {
			result.RowsAffected = n
		}
	}

	return result, nil
}

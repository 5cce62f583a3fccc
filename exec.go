package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Exec runs the given statements in order, stopping at the first failure.
// Statements are expected to produce no rows (DDL / DML).
//
// see: https://www.sqlite.org/c3ref/exec.html
func (c *Conn) Exec(ctx context.Context, statements ...string) error {
	for _, stmt := range statements {
		_, _ = fmt.Fprintf(c.progress, "exec query=[%s]\n", stmt)
		if _, err := c.conn.ExecContext(ctx, stmt); err != nil {
			c.log.Error("error executing statement", zap.String("query", stmt), zap.Error(err))
			return wrapError(StatementExecution, stmt, err)
		}
	}
	return nil
}

// Query runs a single read-only query and materialises its result as a Grid.
//
// The result cursor is released exactly once whichever way Query returns;
// a grid that was only partially built when an error occurred is dropped.
func (c *Conn) Query(ctx context.Context, query string) (grid *Grid, err error) {
	_, _ = fmt.Fprintf(c.progress, "select query=[%s]\n", query)

	var rows *sql.Rows
	if rows, err = c.conn.QueryContext(ctx, query); err != nil {
		c.log.Error("error running query", zap.String("query", query), zap.Error(err))
		return nil, wrapError(QueryExecution, query, err)
	}

	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			grid, err = nil, wrapError(QueryExecution, query, cerr)
		}
	}()

	if grid, err = scanGrid(rows); err != nil {
		c.log.Error("error reading query results", zap.String("query", query), zap.Error(err))
		return nil, wrapError(QueryExecution, query, err)
	}
	return grid, nil
}

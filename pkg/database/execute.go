package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/asaidimu/sqlrecord/internal/errors"
	"github.com/asaidimu/sqlrecord/pkg/core"
)

// Execute runs a query with positional values and returns a cursor over its
// rows. The caller must close the cursor; while it is open a file database
// cannot serve another statement.
func (d *DB) Execute(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	return d.query(ctx, query, nil, args)
}

// ExecuteNamed runs a query whose values are bound by ":name" placeholders.
func (d *DB) ExecuteNamed(ctx context.Context, query string, arg map[string]any) (*sqlx.Rows, error) {
	return d.query(ctx, query, arg, nil)
}

// Exec runs a statement that returns no rows.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.exec(ctx, query, nil, args)
}

// ExecNamed runs a statement that returns no rows, binding ":name"
// placeholders from arg.
func (d *DB) ExecNamed(ctx context.Context, query string, arg map[string]any) (sql.Result, error) {
	return d.exec(ctx, query, arg, nil)
}

// Rows runs the query and returns every row as a generic row.
func (d *DB) Rows(ctx context.Context, query string, args ...any) ([]core.Row, error) {
	rows, err := d.query(ctx, query, nil, args)
	if err != nil {
		return nil, err
	}
	defer errors.DeferClose(d.logger, rows, "failed to close rows")

	return readRows(rows)
}

// Row runs the query and returns its first row, or nil when there is none.
func (d *DB) Row(ctx context.Context, query string, args ...any) (core.Row, error) {
	rows, err := d.query(ctx, query, nil, args)
	if err != nil {
		return nil, err
	}
	defer errors.DeferClose(d.logger, rows, "failed to close rows")

	if !rows.Next() {
		return nil, rowsErr(rows)
	}
	return readRow(rows)
}

// Field runs the query and returns column zero of its first row, or nil when
// there is none.
func (d *DB) Field(ctx context.Context, query string, args ...any) (any, error) {
	rows, err := d.query(ctx, query, nil, args)
	if err != nil {
		return nil, err
	}
	defer errors.DeferClose(d.logger, rows, "failed to close rows")

	if !rows.Next() {
		return nil, rowsErr(rows)
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to get column types: %w", err)
	}
	values, err := rows.SliceScan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}
	if len(values) == 0 || len(columnTypes) == 0 {
		return nil, nil
	}
	return normalize(values[0], strings.ToUpper(columnTypes[0].DatabaseTypeName())), nil
}

// Select runs the query and materializes every row into dest, a pointer to a
// slice of structs or struct pointers mapped through their `db` tags.
// Columns without a destination field are ignored.
func (d *DB) Select(ctx context.Context, dest any, query string, args ...any) error {
	rows, err := d.query(ctx, query, nil, args)
	if err != nil {
		return err
	}
	defer errors.DeferClose(d.logger, rows, "failed to close rows")

	if err := sqlx.StructScan(rows, dest); err != nil {
		return fmt.Errorf("failed to scan rows: %w", err)
	}
	return nil
}

// Get runs the query and materializes its first row into dest, a pointer to
// a struct. found is false when the query returned no rows.
func (d *DB) Get(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	rows, err := d.query(ctx, query, nil, args)
	if err != nil {
		return false, err
	}
	return d.first(rows, dest)
}

// GetNamed is Get for ":name" placeholders.
func (d *DB) GetNamed(ctx context.Context, dest any, query string, arg map[string]any) (bool, error) {
	rows, err := d.query(ctx, query, arg, nil)
	if err != nil {
		return false, err
	}
	return d.first(rows, dest)
}

func (d *DB) first(rows *sqlx.Rows, dest any) (bool, error) {
	defer errors.DeferClose(d.logger, rows, "failed to close rows")

	if !rows.Next() {
		return false, rowsErr(rows)
	}
	if err := rows.StructScan(dest); err != nil {
		return false, fmt.Errorf("failed to scan row: %w", err)
	}
	return true, nil
}

// statement applies the interceptor and, when named is set, compiles ":name"
// placeholders into the driver's positional form. It returns the text kept in
// the statement log and the text sent to the driver.
func (d *DB) statement(conn *sqlx.DB, query string, named map[string]any, args []any) (string, string, []any, error) {
	if d.intercept != nil {
		query = d.intercept(query)
	}
	if named == nil {
		return query, conn.Rebind(query), args, nil
	}

	bound, args, err := sqlx.Named(query, named)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %w", core.ErrExecution, err)
	}
	return query, conn.Rebind(bound), args, nil
}

func (d *DB) query(ctx context.Context, query string, named map[string]any, args []any) (*sqlx.Rows, error) {
	conn, err := d.Connection()
	if err != nil {
		return nil, err
	}
	text, bound, args, err := d.statement(conn, query, named, args)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	stmt, err := conn.PreparexContext(ctx, bound)
	if err != nil {
		return nil, d.fail(bound, args, err)
	}
	defer errors.DeferClose(d.logger, stmt, "failed to close statement")

	rows, err := stmt.QueryxContext(ctx, args...)
	if err != nil {
		return nil, d.fail(bound, args, err)
	}
	d.record(text, bound, args, time.Since(start))
	return rows, nil
}

func (d *DB) exec(ctx context.Context, query string, named map[string]any, args []any) (sql.Result, error) {
	conn, err := d.Connection()
	if err != nil {
		return nil, err
	}
	text, bound, args, err := d.statement(conn, query, named, args)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	stmt, err := conn.PreparexContext(ctx, bound)
	if err != nil {
		return nil, d.fail(bound, args, err)
	}
	defer errors.DeferClose(d.logger, stmt, "failed to close statement")

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return nil, d.fail(bound, args, err)
	}
	d.record(text, bound, args, time.Since(start))
	return result, nil
}

func (d *DB) fail(bound string, args []any, err error) error {
	d.logger.Debug().
		Err(err).
		Str("sql", InterpolateQuery(bound, args)).
		Msg("statement failed")
	return fmt.Errorf("%w: %w", core.ErrExecution, err)
}

func rowsErr(rows *sqlx.Rows) error {
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrExecution, err)
	}
	return nil
}

// readRows reads all remaining rows into generic rows.
func readRows(rows *sqlx.Rows) ([]core.Row, error) {
	results := []core.Row{}
	for rows.Next() {
		row, err := readRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	if err := rowsErr(rows); err != nil {
		return nil, err
	}
	return results, nil
}

// readRow scans the current row, normalizing driver types the way callers
// expect them: TEXT as string and BOOLEAN as bool.
func readRow(rows *sqlx.Rows) (core.Row, error) {
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to get column types: %w", err)
	}

	raw := make(map[string]any, len(columnTypes))
	if err := rows.MapScan(raw); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	row := make(core.Row, len(raw))
	for _, ct := range columnTypes {
		row[ct.Name()] = normalize(raw[ct.Name()], strings.ToUpper(ct.DatabaseTypeName()))
	}
	return row, nil
}

func normalize(val any, typeName string) any {
	switch v := val.(type) {
	case nil:
		return nil
	case []byte:
		if strings.Contains(typeName, "BLOB") || strings.Contains(typeName, "BINARY") {
			return v
		}
		return string(v)
	case int64:
		if typeName == "BOOLEAN" || typeName == "BOOL" {
			return v != 0
		}
		return v
	default:
		return v
	}
}

package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/asaidimu/sqlrecord/pkg/core"
	"github.com/asaidimu/sqlrecord/pkg/query"
)

// ErrNoFields is returned when a record declares no columns to write.
var ErrNoFields = errors.New("record declares no fields")

// Store is the part of the connection holder the mapper relies on.
// *database.DB implements it.
type Store interface {
	core.Executor

	// ExecNamed runs a statement binding ":name" placeholders from arg.
	ExecNamed(ctx context.Context, query string, arg map[string]any) (sql.Result, error)

	// GetNamed materializes the first row of a ":name" query into dest.
	GetNamed(ctx context.Context, dest any, query string, arg map[string]any) (bool, error)
}

// Table maps records of type T to their table. PT is inferred:
// record.NewTable[User](db).
type Table[T any, PT interface {
	*T
	Record
}] struct {
	store Store
	table string
}

// NewTable creates the mapper for T.
func NewTable[T any, PT interface {
	*T
	Record
}](store Store) *Table[T, PT] {
	var zero T
	return &Table[T, PT]{
		store: store,
		table: PT(&zero).TableName(),
	}
}

// Name returns the table name.
func (t *Table[T, PT]) Name() string {
	return t.table
}

// Insert writes rec as a new row and stores the identifier the database
// assigned. It fails with core.ErrPrimaryKeySet, without touching the
// database, when rec already has an identifier.
func (t *Table[T, PT]) Insert(ctx context.Context, rec PT) error {
	if rec.PrimaryKey() != 0 {
		return fmt.Errorf("insert into %s: %w", t.table, core.ErrPrimaryKeySet)
	}
	columns, values, err := t.fields(rec)
	if err != nil {
		return err
	}

	// #nosec G201 - table and column names come from the record type, not user input
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s)",
		t.table,
		strings.Join(columns, ", "),
		strings.Join(columns, ", :"),
	)

	res, err := t.store.ExecNamed(ctx, stmt, values)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", t.table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert into %s: failed to get last insert id: %w", t.table, err)
	}
	rec.SetPrimaryKey(id)
	return nil
}

// Update writes every declared field of rec to its row. It fails with
// core.ErrPrimaryKeyNotSet when rec was never inserted.
func (t *Table[T, PT]) Update(ctx context.Context, rec PT) error {
	if rec.PrimaryKey() == 0 {
		return fmt.Errorf("update %s: %w", t.table, core.ErrPrimaryKeyNotSet)
	}
	columns, values, err := t.fields(rec)
	if err != nil {
		return err
	}

	set := make([]string, len(columns))
	for i, col := range columns {
		set[i] = col + " = :" + col
	}
	values[IDColumn] = rec.PrimaryKey()

	// #nosec G201 - table and column names come from the record type, not user input
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = :%s",
		t.table,
		strings.Join(set, ", "),
		IDColumn, IDColumn,
	)

	if _, err := t.store.ExecNamed(ctx, stmt, values); err != nil {
		return fmt.Errorf("update %s: %w", t.table, err)
	}
	return nil
}

// Delete removes the row of rec. It fails with core.ErrPrimaryKeyNotSet when
// rec was never inserted. The identifier is left in place.
func (t *Table[T, PT]) Delete(ctx context.Context, rec PT) error {
	if rec.PrimaryKey() == 0 {
		return fmt.Errorf("delete from %s: %w", t.table, core.ErrPrimaryKeyNotSet)
	}

	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = :%s", t.table, IDColumn, IDColumn)
	if _, err := t.store.ExecNamed(ctx, stmt, map[string]any{IDColumn: rec.PrimaryKey()}); err != nil {
		return fmt.Errorf("delete from %s: %w", t.table, err)
	}
	return nil
}

// Find returns the record with the given identifier, or nil when no row has
// it.
func (t *Table[T, PT]) Find(ctx context.Context, id int64) (*T, error) {
	stmt := fmt.Sprintf("SELECT * FROM %s WHERE %s = :%s", t.table, IDColumn, IDColumn)

	var rec T
	found, err := t.store.GetNamed(ctx, &rec, stmt, map[string]any{IDColumn: id})
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", t.table, err)
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

// Select starts a query over the table. With no columns every column is
// selected.
func (t *Table[T, PT]) Select(columns ...string) *Query[T, PT] {
	return &Query[T, PT]{sel: query.New(t.store, t.table, columns...)}
}

func (t *Table[T, PT]) fields(rec PT) ([]string, map[string]any, error) {
	fields := rec.Fields()
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", t.table, ErrNoFields)
	}
	columns := make([]string, len(fields))
	values := make(map[string]any, len(fields)+1)
	for i, f := range fields {
		columns[i] = f.Column
		values[f.Column] = f.Value
	}
	return columns, values, nil
}

package record

import (
	"context"

	"github.com/asaidimu/sqlrecord/pkg/core"
	"github.com/asaidimu/sqlrecord/pkg/query"
)

// Query is a SELECT over a record table whose results materialize as T.
// Columns left out of the projection stay at their zero value.
type Query[T any, PT interface {
	*T
	Record
}] struct {
	sel *query.Select
}

// Where adds the first predicate.
func (q *Query[T, PT]) Where(cond core.Condition) *Query[T, PT] {
	q.sel.Where(cond)
	return q
}

// And adds a predicate joined with AND.
func (q *Query[T, PT]) And(cond core.Condition) *Query[T, PT] {
	q.sel.And(cond)
	return q
}

// Or adds a predicate joined with OR.
func (q *Query[T, PT]) Or(cond core.Condition) *Query[T, PT] {
	q.sel.Or(cond)
	return q
}

// OrderBy sets the ORDER BY text.
func (q *Query[T, PT]) OrderBy(order string) *Query[T, PT] {
	q.sel.OrderBy(order)
	return q
}

// Limit caps the number of rows returned.
func (q *Query[T, PT]) Limit(count int) *Query[T, PT] {
	q.sel.Limit(count)
	return q
}

// LimitOffset skips offset rows and returns at most count.
func (q *Query[T, PT]) LimitOffset(offset, count int) *Query[T, PT] {
	q.sel.LimitOffset(offset, count)
	return q
}

// Build implements core.Builder.
func (q *Query[T, PT]) Build() (string, []any, error) {
	return q.sel.Build()
}

// Rows runs the query and returns every row as a record.
func (q *Query[T, PT]) Rows(ctx context.Context) ([]*T, error) {
	out := []*T{}
	if err := q.sel.Into(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Row runs the query and returns its first row as a record, or nil.
func (q *Query[T, PT]) Row(ctx context.Context) (*T, error) {
	var rec T
	found, err := q.sel.First(ctx, &rec)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

// Field runs the query and returns the first column of its first row.
func (q *Query[T, PT]) Field(ctx context.Context) (any, error) {
	return q.sel.Field(ctx)
}

// Maps runs the query and returns generic rows instead of records.
func (q *Query[T, PT]) Maps(ctx context.Context) ([]core.Row, error) {
	return q.sel.Rows(ctx)
}

// Map runs the query and returns its first row as a generic row, or nil.
func (q *Query[T, PT]) Map(ctx context.Context) (core.Row, error) {
	return q.sel.Row(ctx)
}

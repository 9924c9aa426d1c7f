package core

import (
	"context"
)

// Executor runs rendered statements and maps their results. It is the
// contract between the query builder and the connection holder.
type Executor interface {
	// Rows runs the query and returns every row as a generic Row.
	Rows(ctx context.Context, query string, args ...any) ([]Row, error)

	// Row runs the query and returns its first row, or nil when the result
	// is empty.
	Row(ctx context.Context, query string, args ...any) (Row, error)

	// Field runs the query and returns column zero of its first row, or nil
	// when the result is empty.
	Field(ctx context.Context, query string, args ...any) (any, error)

	// Select runs the query and materializes every row into dest, which must
	// be a pointer to a slice of structs or struct pointers.
	Select(ctx context.Context, dest any, query string, args ...any) error

	// Get runs the query and materializes its first row into dest. found is
	// false when the result is empty.
	Get(ctx context.Context, dest any, query string, args ...any) (found bool, err error)
}

package core

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNoConnection is returned when a statement is issued before any
	// connection has been established.
	ErrNoConnection = errors.New("no database connection found")

	// ErrExecution wraps failures reported by the driver while preparing or
	// running a statement.
	ErrExecution = errors.New("error executing query")

	// ErrInvalidClause is returned by the query builder for an unknown
	// operator, a misplaced connector or a malformed value.
	ErrInvalidClause = errors.New("invalid clause")

	// ErrPrimaryKeySet is returned when inserting a record that already has
	// an identifier.
	ErrPrimaryKeySet = errors.New("primary key is already set")

	// ErrPrimaryKeyNotSet is returned when updating or deleting a record that
	// has not been inserted yet.
	ErrPrimaryKeyNotSet = errors.New("primary key is not set")
)

// placeholders lists how many bound values each operator consumes. A
// negative count means one per element of the slice value.
var placeholders = map[Operator]int{
	OpEqual:          1,
	OpNot:            1,
	OpNull:           0,
	OpNotNull:        0,
	OpLike:           1,
	OpNotLike:        1,
	OpIn:             -1,
	OpNotIn:          -1,
	OpGreater:        1,
	OpLess:           1,
	OpGreaterOrEqual: 1,
	OpLessOrEqual:    1,
}

// IsValid reports whether o is one of the known operators.
func (o Operator) IsValid() bool {
	_, ok := placeholders[o]
	return ok
}

// IsList reports whether o expands a slice value into a placeholder list.
func (o Operator) IsList() bool {
	return placeholders[o] < 0
}

// IsValid reports whether c is one of the known connectors.
func (c Connector) IsValid() bool {
	switch c {
	case ConnectorWhere, ConnectorAnd, ConnectorOr:
		return true
	}
	return false
}

// Values returns the bound values the condition contributes, in placeholder
// order. It fails with ErrInvalidClause for unknown operators and for list
// operators whose value is not a non-empty slice.
func (c Condition) Values() ([]any, error) {
	if c.Column == "" {
		return nil, fmt.Errorf("%w: empty column name", ErrInvalidClause)
	}
	n, ok := placeholders[c.Operator]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidClause, c.Operator)
	}
	switch {
	case n == 0:
		return nil, nil
	case n > 0:
		return []any{c.Value}, nil
	}

	if vals, ok := c.Value.([]any); ok {
		if len(vals) == 0 {
			return nil, fmt.Errorf("%w: %s requires a non-empty array value", ErrInvalidClause, c.Operator)
		}
		return vals, nil
	}

	rv := reflect.ValueOf(c.Value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() == 0 {
		return nil, fmt.Errorf("%w: %s requires a non-empty array value", ErrInvalidClause, c.Operator)
	}
	vals := make([]any, rv.Len())
	for i := range vals {
		vals[i] = rv.Index(i).Interface()
	}
	return vals, nil
}

// Package query builds single-table SELECT statements from chained predicate
// calls and runs them through a core.Executor.
//
//	users, err := query.New(db, "users", "id", "first_name").
//	    Where(core.Greater("age", 18)).
//	    And(core.In("access_level", "standard", "premium")).
//	    OrderBy("age DESC").
//	    Limit(10).
//	    Rows(ctx)
//
// Table and column names are trusted literals supplied by the calling code;
// they are not quoted or escaped. Only values are bound.
package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/asaidimu/sqlrecord/pkg/core"
)

// Select accumulates one SELECT statement. A Select is meant to be built,
// run once and discarded; it is not safe for concurrent use.
type Select struct {
	exec    core.Executor
	table   string
	columns string
	where   strings.Builder
	values  []any
	orderBy string
	limit   string
	err     error
}

// New starts a SELECT over table. With no columns the projection is "*".
func New(exec core.Executor, table string, columns ...string) *Select {
	projection := core.AllColumns
	if len(columns) > 0 {
		projection = strings.Join(columns, ", ")
	}
	return &Select{
		exec:    exec,
		table:   table,
		columns: projection,
	}
}

// Table returns the table the statement selects from.
func (s *Select) Table() string {
	return s.table
}

// AllColumns reports whether the projection is "*".
func (s *Select) AllColumns() bool {
	return s.columns == core.AllColumns
}

// Where adds the first predicate.
func (s *Select) Where(cond core.Condition) *Select {
	return s.Add(core.ConnectorWhere, cond)
}

// And adds a predicate joined with AND.
func (s *Select) And(cond core.Condition) *Select {
	return s.Add(core.ConnectorAnd, cond)
}

// Or adds a predicate joined with OR.
func (s *Select) Or(cond core.Condition) *Select {
	return s.Add(core.ConnectorOr, cond)
}

// Add appends cond to the predicate text using connector. ConnectorWhere is
// only valid for the first predicate, ConnectorAnd and ConnectorOr only for
// the ones after it. The first invalid call is kept and reported by Build;
// later calls are ignored.
func (s *Select) Add(connector core.Connector, cond core.Condition) *Select {
	if s.err != nil {
		return s
	}

	first := s.where.Len() == 0
	switch connector {
	case core.ConnectorWhere:
		if !first {
			s.err = fmt.Errorf("%w: where used after a predicate, use and/or", core.ErrInvalidClause)
			return s
		}
	case core.ConnectorAnd, core.ConnectorOr:
		if first {
			s.err = fmt.Errorf("%w: %s used before where", core.ErrInvalidClause, connector)
			return s
		}
	default:
		s.err = fmt.Errorf("%w: unknown connector %q", core.ErrInvalidClause, connector)
		return s
	}

	values, err := cond.Values()
	if err != nil {
		s.err = err
		return s
	}
	fragment, err := buildCondition(cond, len(values))
	if err != nil {
		s.err = err
		return s
	}

	if !first {
		s.where.WriteString(" " + strings.ToUpper(string(connector)) + " ")
	}
	s.where.WriteString(fragment)
	s.values = append(s.values, values...)
	return s
}

// OrderBy sets the ORDER BY text, e.g. "age DESC, id".
func (s *Select) OrderBy(order string) *Select {
	s.orderBy = order
	return s
}

// Limit caps the number of rows returned. Zero removes the cap.
func (s *Select) Limit(count int) *Select {
	if count < 0 && s.err == nil {
		s.err = fmt.Errorf("%w: negative limit %d", core.ErrInvalidClause, count)
	}
	if count == 0 {
		s.limit = ""
		return s
	}
	s.limit = strconv.Itoa(count)
	return s
}

// LimitOffset skips offset rows and returns at most count, rendered as
// "LIMIT offset, count".
func (s *Select) LimitOffset(offset, count int) *Select {
	if (offset < 0 || count < 0) && s.err == nil {
		s.err = fmt.Errorf("%w: negative limit %d, %d", core.ErrInvalidClause, offset, count)
	}
	s.limit = strconv.Itoa(offset) + ", " + strconv.Itoa(count)
	return s
}

// Err returns the first error recorded while chaining, if any.
func (s *Select) Err() error {
	return s.err
}

// Build implements core.Builder.
func (s *Select) Build() (string, []any, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	if s.table == "" {
		return "", nil, fmt.Errorf("%w: table name cannot be empty", core.ErrInvalidClause)
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + s.columns + " FROM " + s.table)

	if s.where.Len() > 0 {
		sb.WriteString(" WHERE " + s.where.String())
	}
	if s.orderBy != "" {
		sb.WriteString(" ORDER BY " + s.orderBy)
	}
	if s.limit != "" {
		sb.WriteString(" LIMIT " + s.limit)
	}

	values := make([]any, len(s.values))
	copy(values, s.values)
	return sb.String(), values, nil
}

// Rows runs the statement and returns every row as a generic row.
func (s *Select) Rows(ctx context.Context) ([]core.Row, error) {
	sql, values, err := s.prepare()
	if err != nil {
		return nil, err
	}
	return s.exec.Rows(ctx, sql, values...)
}

// Row runs the statement and returns its first row, or nil.
func (s *Select) Row(ctx context.Context) (core.Row, error) {
	sql, values, err := s.prepare()
	if err != nil {
		return nil, err
	}
	return s.exec.Row(ctx, sql, values...)
}

// Field runs the statement and returns the first column of its first row,
// or nil.
func (s *Select) Field(ctx context.Context) (any, error) {
	sql, values, err := s.prepare()
	if err != nil {
		return nil, err
	}
	return s.exec.Field(ctx, sql, values...)
}

// Into runs the statement and materializes every row into dest, a pointer
// to a slice of structs.
func (s *Select) Into(ctx context.Context, dest any) error {
	sql, values, err := s.prepare()
	if err != nil {
		return err
	}
	return s.exec.Select(ctx, dest, sql, values...)
}

// First runs the statement and materializes its first row into dest.
func (s *Select) First(ctx context.Context, dest any) (bool, error) {
	sql, values, err := s.prepare()
	if err != nil {
		return false, err
	}
	return s.exec.Get(ctx, dest, sql, values...)
}

func (s *Select) prepare() (string, []any, error) {
	if s.exec == nil {
		return "", nil, core.ErrNoConnection
	}
	return s.Build()
}

// buildCondition translates a single condition into SQL with n placeholders.
func buildCondition(cond core.Condition, n int) (string, error) {
	switch cond.Operator {
	case core.OpEqual:
		return fmt.Sprintf("%s = ?", cond.Column), nil
	case core.OpNot:
		return fmt.Sprintf("%s != ?", cond.Column), nil
	case core.OpNull:
		return fmt.Sprintf("%s IS NULL", cond.Column), nil
	case core.OpNotNull:
		return fmt.Sprintf("%s IS NOT NULL", cond.Column), nil
	case core.OpLike:
		return fmt.Sprintf("%s LIKE ?", cond.Column), nil
	case core.OpNotLike:
		return fmt.Sprintf("%s NOT LIKE ?", cond.Column), nil
	case core.OpIn:
		return fmt.Sprintf("%s IN (%s)", cond.Column, placeholderList(n)), nil
	case core.OpNotIn:
		return fmt.Sprintf("%s NOT IN (%s)", cond.Column, placeholderList(n)), nil
	case core.OpGreater:
		return fmt.Sprintf("%s > ?", cond.Column), nil
	case core.OpLess:
		return fmt.Sprintf("%s < ?", cond.Column), nil
	case core.OpGreaterOrEqual:
		return fmt.Sprintf("%s >= ?", cond.Column), nil
	case core.OpLessOrEqual:
		return fmt.Sprintf("%s <= ?", cond.Column), nil
	default:
		return "", fmt.Errorf("%w: unsupported operator %q", core.ErrInvalidClause, cond.Operator)
	}
}

func placeholderList(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

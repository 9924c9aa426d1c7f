package core

import "reflect"

// Row represents a single record/row of data retrieved from the database when
// no record type is used to materialize it.
type Row map[string]any

// AllColumns is the projection used when no explicit column list is given.
const AllColumns = "*"

// Connector joins a predicate to the ones before it.
type Connector string

const (
	ConnectorWhere Connector = "where"
	ConnectorAnd   Connector = "and"
	ConnectorOr    Connector = "or"
)

// Operator is the comparison applied by a single predicate.
type Operator string

const (
	OpEqual          Operator = "eq"
	OpNot            Operator = "not"
	OpNull           Operator = "null"
	OpNotNull        Operator = "not_null"
	OpLike           Operator = "like"
	OpNotLike        Operator = "not_like"
	OpIn             Operator = "in"
	OpNotIn          Operator = "not_in"
	OpGreater        Operator = "greater"
	OpLess           Operator = "less"
	OpGreaterOrEqual Operator = "greater_equal"
	OpLessOrEqual    Operator = "less_equal"
)

// Condition defines a single filtering predicate.
type Condition struct {
	Column   string   // The column to filter on, trusted literal
	Operator Operator // The comparison operator
	Value    any      // The value to compare against; a slice for OpIn/OpNotIn, unused for null checks
}

// Eq builds a "column = ?" condition.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Operator: OpEqual, Value: value}
}

// Not builds a "column != ?" condition.
func Not(column string, value any) Condition {
	return Condition{Column: column, Operator: OpNot, Value: value}
}

// IsNull builds a "column IS NULL" condition.
func IsNull(column string) Condition {
	return Condition{Column: column, Operator: OpNull}
}

// IsNotNull builds a "column IS NOT NULL" condition.
func IsNotNull(column string) Condition {
	return Condition{Column: column, Operator: OpNotNull}
}

// Like builds a "column LIKE ?" condition. The pattern is passed through untouched.
func Like(column string, pattern string) Condition {
	return Condition{Column: column, Operator: OpLike, Value: pattern}
}

// NotLike builds a "column NOT LIKE ?" condition.
func NotLike(column string, pattern string) Condition {
	return Condition{Column: column, Operator: OpNotLike, Value: pattern}
}

// In builds a "column IN (?,...)" condition with one placeholder per value.
// A single slice argument, as in In("id", ids), supplies the values itself.
func In(column string, values ...any) Condition {
	return Condition{Column: column, Operator: OpIn, Value: listValue(values)}
}

// NotIn builds a "column NOT IN (?,...)" condition.
func NotIn(column string, values ...any) Condition {
	return Condition{Column: column, Operator: OpNotIn, Value: listValue(values)}
}

// listValue unwraps a lone slice or array argument. []byte stays a single
// value.
func listValue(values []any) any {
	if len(values) != 1 {
		return values
	}
	if _, ok := values[0].([]byte); ok {
		return values
	}
	switch reflect.ValueOf(values[0]).Kind() {
	case reflect.Slice, reflect.Array:
		return values[0]
	}
	return values
}

func Greater(column string, value any) Condition {
	return Condition{Column: column, Operator: OpGreater, Value: value}
}

func Less(column string, value any) Condition {
	return Condition{Column: column, Operator: OpLess, Value: value}
}

func GreaterOrEqual(column string, value any) Condition {
	return Condition{Column: column, Operator: OpGreaterOrEqual, Value: value}
}

func LessOrEqual(column string, value any) Condition {
	return Condition{Column: column, Operator: OpLessOrEqual, Value: value}
}

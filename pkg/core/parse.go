package core

import (
	"fmt"
	"strconv"
	"strings"
)

// operatorTokens is ordered so that longer tokens are tried before their
// prefixes ("<=" before "<", "is not null" before "is null").
var operatorTokens = []struct {
	token string
	op    Operator
}{
	{">=", OpGreaterOrEqual},
	{"<=", OpLessOrEqual},
	{"!=", OpNot},
	{"<>", OpNot},
	{"=", OpEqual},
	{">", OpGreater},
	{"<", OpLess},
	{"is not null", OpNotNull},
	{"is null", OpNull},
	{"not like ", OpNotLike},
	{"like ", OpLike},
	{"not in ", OpNotIn},
	{"in ", OpIn},
}

// ParseCondition parses a textual predicate such as "age >= 18",
// "email is not null" or "status in active,pending" into a Condition.
// Numeric values become int64 or float64, quoted values have their quotes
// removed and everything else is kept as a string.
func ParseCondition(expr string) (Condition, error) {
	s := strings.TrimSpace(expr)
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r == '_' || r == '.' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	if end <= 0 {
		return Condition{}, fmt.Errorf("%w: missing operator in %q", ErrInvalidClause, expr)
	}
	column := s[:end]
	rest := strings.TrimSpace(s[end:])
	lower := strings.ToLower(rest)

	for _, t := range operatorTokens {
		if !strings.HasPrefix(lower, t.token) {
			continue
		}
		value := strings.TrimSpace(rest[len(t.token):])
		switch {
		case t.op == OpNull || t.op == OpNotNull:
			if value != "" {
				return Condition{}, fmt.Errorf("%w: unexpected value after %q", ErrInvalidClause, t.token)
			}
			return Condition{Column: column, Operator: t.op}, nil
		case value == "":
			return Condition{}, fmt.Errorf("%w: missing value in %q", ErrInvalidClause, expr)
		case t.op.IsList():
			parts := strings.Split(value, ",")
			values := make([]any, len(parts))
			for i, p := range parts {
				values[i] = ParseValue(strings.TrimSpace(p))
			}
			return Condition{Column: column, Operator: t.op, Value: values}, nil
		case t.op == OpLike || t.op == OpNotLike:
			return Condition{Column: column, Operator: t.op, Value: unquote(value)}, nil
		default:
			return Condition{Column: column, Operator: t.op, Value: ParseValue(value)}, nil
		}
	}
	return Condition{}, fmt.Errorf("%w: unknown operator in %q", ErrInvalidClause, expr)
}

// ParseValue converts a literal taken from the command line into an int64,
// a float64 or a string with surrounding quotes removed.
func ParseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return unquote(s)
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

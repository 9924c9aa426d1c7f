package database

import (
	"fmt"
	"strings"
	"time"
)

// InterpolateQuery returns query with each "?" replaced by the literal form
// of the matching argument. The result is for logging only and must never be
// executed.
func InterpolateQuery(query string, args []any) string {
	pos := 0
	for _, arg := range args {
		var replacement string
		switch v := arg.(type) {
		case string:
			replacement = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		case []byte:
			replacement = "'" + strings.ReplaceAll(string(v), "'", "''") + "'"
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			replacement = fmt.Sprintf("%d", v)
		case float32, float64:
			replacement = fmt.Sprintf("%v", v)
		case bool:
			if v {
				replacement = "TRUE"
			} else {
				replacement = "FALSE"
			}
		case time.Time:
			replacement = "'" + v.Format(time.RFC3339Nano) + "'"
		case nil:
			replacement = "NULL"
		default:
			replacement = fmt.Sprintf("'%v'", v)
		}

		idx := strings.Index(query[pos:], "?")
		if idx < 0 {
			break
		}
		idx += pos
		query = query[:idx] + replacement + query[idx+1:]
		pos = idx + len(replacement)
	}
	return query
}

package platform

import (
	"strconv"
	"strings"
	"time"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Int64 returns the column as an integer, or 0 when absent or not numeric.
func (r Row) Int64(column string) int64 {
	n, _ := toInt64(r[column])
	return n
}

// String returns the column as text, or "" when absent or NULL.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return ""
	}
}

// Time returns the column as a timestamp. Integers are read as unix milliseconds.
func (r Row) Time(column string) time.Time {
	switch v := r[column].(type) {
	case time.Time:
		return v
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return time.UnixMilli(n)
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
		return time.Time{}
	default:
		if n, ok := toInt64(v); ok {
			return time.UnixMilli(n)
		}
		return time.Time{}
	}
}

// Has reports whether the column is present and not NULL.
func (r Row) Has(column string) bool {
	v, ok := r[column]
	return ok && v != nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case []byte:
		i, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	case time.Time:
		return n.UnixMilli(), true
	default:
		return 0, false
	}
}

// normalizeValue converts driver-owned byte slices so rows stay valid after the cursor moves.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

package export

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout renders timestamps as ISO-8601 UTC with milliseconds
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatCSV renders headers and rows as CSV with "\n" separators and no trailing newline.
// Fields containing a comma, quote or newline are quoted with inner quotes doubled.
func FormatCSV(headers []string, rows [][]any) string {
	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Escape(h))
	}
	for _, row := range rows {
		b.WriteByte('\n')
		for i, v := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Escape(Stringify(v)))
		}
	}
	return b.String()
}

// Escape quotes a single CSV field when needed
func Escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Stringify converts a cell value to its CSV text
func Stringify(v any) string {
	// Dereference first so a nil *T never reaches a value-receiver String().
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return Stringify(rv.Elem().Interface())
	}

	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case time.Time:
		return val.UTC().Format(TimestampLayout)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}

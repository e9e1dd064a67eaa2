package logger

import (
	"fmt"
	"time"

	"github.com/Philipp01105/logz/core"
)

// ErrorKey is the field key used by Err.
const ErrorKey = "error"

// String returns a string field.
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Int returns an integer field.
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

// Int64 returns an integer field.
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: val}
}

func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

func Bool(key string, val bool) core.Field {
	var n int64
	if val {
		n = 1
	}
	return core.Field{Key: key, Type: core.BoolType, Int64: n}
}

// Time returns a field rendered as RFC 3339.
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err returns an "error" field. On informational records it renders as
// error=<text>. On alert records the first error field becomes the
// record's attached error, so alert sinks print its trace the way
// Exception does.
func Err(err error) core.Field {
	return NamedErr(ErrorKey, err)
}

// NamedErr is Err under a custom key.
func NamedErr(key string, err error) core.Field {
	if err == nil {
		return core.Field{Key: key, Type: core.ErrorType, Str: "<nil>"}
	}
	return core.Field{Key: key, Type: core.ErrorType, Str: err.Error(), Any: err}
}

// Any picks the typed field for val when there is one, so Any("n", 3)
// renders like Int("n", 3). Other values are formatted with %v.
func Any(key string, val interface{}) core.Field {
	switch v := val.(type) {
	case string:
		return String(key, v)
	case int:
		return Int(key, v)
	case int64:
		return Int64(key, v)
	case int32:
		return Int64(key, int64(v))
	case float64:
		return Float64(key, v)
	case bool:
		return Bool(key, v)
	case time.Time:
		return Time(key, v)
	case time.Duration:
		return Duration(key, v)
	case error:
		return NamedErr(key, v)
	case fmt.Stringer:
		return String(key, v.String())
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: val}
	}
}

// attachFields appends fields to entry. On alert records the first field
// carrying an error is lifted into entry.Err unless one is attached.
func attachFields(entry *core.Entry, fields []core.Field) {
	for _, f := range fields {
		if entry.Err == nil && f.Type == core.ErrorType && entry.Level.IsAlert() {
			if err, ok := f.Any.(error); ok {
				entry.Err = err
				continue
			}
		}
		entry.Fields = append(entry.Fields, f)
	}
}

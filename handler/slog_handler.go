package handler

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/Philipp01105/logz/core"
)

// LevelCritical is the slog level that maps to core.CriticalLevel.
const LevelCritical = slog.LevelError + 4

// SlogHandler is an adapter that implements slog.Handler using a Handler.
// This lets code written against log/slog emit through the same sinks.
type SlogHandler struct {
	handler Handler
	name    string
	level   core.Level
	attrs   []core.Field
	err     error
	group   string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
// name is used as the logger name of every entry.
func NewSlogHandler(h Handler, name string, level core.Level) *SlogHandler {
	return &SlogHandler{
		handler: h,
		name:    name,
		level:   level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return SlogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record to a core.Entry and passes it to the wrapped handler.
// An attribute holding an error value becomes the entry's attached error.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = record.Time
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	entry.Logger = s.name
	entry.Level = SlogLevelToCore(record.Level)
	entry.Message = record.Message
	entry.Err = s.err
	entry.Origin = core.GetOrigin()
	if record.PC != 0 {
		entry.Caller = callerFromPC(record.PC)
	}

	// Add pre-configured attrs
	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.attrs...)
	}

	// Add record attrs
	record.Attrs(func(a slog.Attr) bool {
		if err, ok := a.Value.Resolve().Any().(error); ok && entry.Err == nil {
			entry.Err = err
			return true
		}
		entry.Fields = appendSlogAttr(entry.Fields, s.group, a)
		return true
	})

	return s.handler.Handle(entry)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *s
	clone.attrs = make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(clone.attrs, s.attrs)
	for _, a := range attrs {
		if err, ok := a.Value.Resolve().Any().(error); ok && clone.err == nil {
			clone.err = err
			continue
		}
		clone.attrs = appendSlogAttr(clone.attrs, s.group, a)
	}
	return &clone
}

// WithFields returns a new SlogHandler that prepends fields to every entry.
func (s *SlogHandler) WithFields(fields []core.Field) *SlogHandler {
	clone := *s
	clone.attrs = make([]core.Field, len(s.attrs), len(s.attrs)+len(fields))
	copy(clone.attrs, s.attrs)
	clone.attrs = append(clone.attrs, fields...)
	return &clone
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	clone := *s
	clone.group = name
	if s.group != "" {
		clone.group = s.group + "." + name
	}
	clone.attrs = make([]core.Field, len(s.attrs))
	copy(clone.attrs, s.attrs)
	return &clone
}

// SlogLevelToCore converts a slog.Level to a core.Level.
func SlogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= LevelCritical:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

func callerFromPC(pc uintptr) core.CallerInfo {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return core.CallerInfo{}
	}
	return core.CallerFromFrame(frame.Function, frame.File, frame.Line)
}

// appendSlogAttr appends a as fields, prepending the group prefix if present.
// Group values flatten to one field per member under "group.key"; a group
// with an empty key is inlined and an empty group is dropped.
func appendSlogAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() != slog.KindGroup {
		return append(fields, slogAttrToField(group, a))
	}

	prefix := group
	if a.Key != "" {
		prefix = a.Key
		if group != "" {
			prefix = group + "." + a.Key
		}
	}
	for _, member := range a.Value.Group() {
		fields = appendSlogAttr(fields, prefix, member)
	}
	return fields
}

// slogAttrToField converts a non-group slog.Attr to a core.Field.
func slogAttrToField(group string, a slog.Attr) core.Field {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return core.Field{Key: key, Type: core.StringType, Str: a.Value.String()}
	case slog.KindInt64:
		return core.Field{Key: key, Type: core.IntType, Int64: a.Value.Int64()}
	case slog.KindUint64:
		return core.Field{Key: key, Type: core.IntType, Int64: int64(a.Value.Uint64())}
	case slog.KindFloat64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()}
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: val}
	case slog.KindTime:
		return core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()}
	case slog.KindDuration:
		return core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())}
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()}
	}
}

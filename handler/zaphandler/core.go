package zaphandler

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/handler"
)

// Core implements zapcore.Core on top of a Handler, so packages that log
// through zap emit into the same sinks with the same tiers.
type Core struct {
	handler handler.Handler
	name    string
	level   core.Level
	fields  []core.Field
	err     error
}

var _ zapcore.Core = (*Core)(nil)

// NewCore creates a zap core writing to h. name prefixes zap logger names.
func NewCore(h handler.Handler, name string, level core.Level) *Core {
	return &Core{handler: h, name: name, level: level}
}

// New returns a zap.Logger backed by NewCore with caller capture enabled.
func New(h handler.Handler, name string, level core.Level, opts ...zap.Option) *zap.Logger {
	return zap.New(NewCore(h, name, level), append([]zap.Option{zap.AddCaller()}, opts...)...)
}

// Enabled reports whether the level passes the core's minimum level.
func (c *Core) Enabled(level zapcore.Level) bool {
	return ZapLevelToCore(level) >= c.level
}

// With returns a core carrying additional fields.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]core.Field, len(c.fields), len(c.fields)+len(fields))
	copy(clone.fields, c.fields)
	clone.fields, clone.err = appendZapFields(clone.fields, clone.err, fields)
	return &clone
}

// Check adds the core to ce when the entry's level is enabled.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the zap entry and hands it to the handler.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = ent.Time
	entry.Logger = c.loggerName(ent.LoggerName)
	entry.Level = ZapLevelToCore(ent.Level)
	entry.Message = ent.Message
	entry.Origin = core.GetOrigin()
	if ent.Caller.Defined {
		entry.Caller = core.CallerFromFrame(ent.Caller.Function, ent.Caller.File, ent.Caller.Line)
	}

	entry.Fields = append(entry.Fields, c.fields...)
	entry.Fields, entry.Err = appendZapFields(entry.Fields, c.err, fields)

	return c.handler.Handle(entry)
}

// Sync is a no-op; sinks write synchronously.
func (c *Core) Sync() error {
	return nil
}

func (c *Core) loggerName(zapName string) string {
	switch {
	case zapName == "":
		return c.name
	case c.name == "" || c.name == "root":
		return zapName
	default:
		return c.name + "." + zapName
	}
}

// ZapLevelToCore converts a zapcore.Level to a core.Level.
func ZapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.DPanicLevel:
		return core.CriticalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarningLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendZapFields encodes zap fields into core fields. The first error
// field becomes the attached error instead of a key=value pair.
func appendZapFields(dst []core.Field, err error, fields []zapcore.Field) ([]core.Field, error) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		if f.Type == zapcore.ErrorType && err == nil {
			if e, ok := f.Interface.(error); ok {
				err = e
				continue
			}
		}
		f.AddTo(enc)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		dst = append(dst, toField(k, enc.Fields[k]))
	}
	return dst, err
}

func toField(key string, v interface{}) core.Field {
	switch val := v.(type) {
	case string:
		return core.Field{Key: key, Type: core.StringType, Str: val}
	case int64:
		return core.Field{Key: key, Type: core.IntType, Int64: val}
	case int:
		return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
	case float64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: val}
	case bool:
		b := int64(0)
		if val {
			b = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: b}
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: v}
	}
}

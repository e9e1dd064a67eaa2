package logger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/handler"
)

// RootName is the name of a logger built without WithName. Children of
// the root logger are not prefixed with it.
const RootName = "root"

// Logger is the main logging interface (immutable)
type Logger struct {
	name          string
	handler       handler.Handler
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	clock         func() time.Time
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name          string
	handler       handler.Handler
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	clock         func() time.Time
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		name:          RootName,
		level:         core.InfoLevel, // Default level
		includeCaller: true,
		callerSkip:    2, // log + public method
		clock:         time.Now,
	}
}

// WithName sets the logger name
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCallerSkip skips n additional frames when resolving the call site,
// for helpers that wrap the Logger.
func (b *Builder) WithCallerSkip(n int) *Builder {
	b.callerSkip += n
	return b
}

// WithClock sets the time source for entry timestamps
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	if clock != nil {
		b.clock = clock
	}
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	return &Logger{
		name:          b.name,
		handler:       b.handler,
		level:         b.level,
		fields:        b.fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		clock:         b.clock,
	}
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Level returns the minimum level the logger emits
func (l *Logger) Level() core.Level {
	return l.level
}

// Handler returns the handler the logger writes to
func (l *Logger) Handler() handler.Handler {
	return l.handler
}

// Enabled reports whether a record at level would be emitted
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level && l.handler != nil
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	child := *l
	child.fields = newFields
	return &child
}

// Named creates a child Logger whose name is joined to the parent's with
// a dot. Children of the root logger take the bare name.
func (l *Logger) Named(name string) *Logger {
	if name == "" {
		return l
	}
	child := *l
	if l.name == "" || l.name == RootName {
		child.name = name
	} else {
		child.name = l.name + "." + name
	}
	return &child
}

// WithLevel creates a child Logger with a different minimum level
func (l *Logger) WithLevel(level core.Level) *Logger {
	child := *l
	child.level = level
	return &child
}

// Slog returns a *slog.Logger that writes through the same handler,
// carrying this logger's name, level and fields.
func (l *Logger) Slog() *slog.Logger {
	h := handler.NewSlogHandler(l.handler, l.name, l.level)
	if len(l.fields) > 0 {
		h = h.WithFields(l.fields)
	}
	return slog.New(h)
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) error {
	// Level check before any allocations
	if level < l.level {
		return nil
	}
	return l.log(level, msg, nil, fields)
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(level core.Level, msg string, err error, fields []core.Field) error {
	if l.handler == nil {
		return nil
	}

	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = l.clock()
	entry.Logger = l.name
	entry.Level = level
	entry.Message = msg
	entry.Err = err

	attachFields(entry, l.fields)
	attachFields(entry, fields)

	if l.includeCaller {
		entry.Caller = core.GetCaller(l.callerSkip)
	}
	if level.IsAlert() {
		entry.Origin = core.GetOrigin()
	}

	return l.handler.Handle(entry)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) error {
	if core.DebugLevel < l.level {
		return nil
	}
	return l.log(core.DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) error {
	if core.InfoLevel < l.level {
		return nil
	}
	return l.log(core.InfoLevel, msg, nil, fields)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, fields ...core.Field) error {
	if core.WarningLevel < l.level {
		return nil
	}
	return l.log(core.WarningLevel, msg, nil, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) error {
	if core.ErrorLevel < l.level {
		return nil
	}
	return l.log(core.ErrorLevel, msg, nil, fields)
}

// Critical logs a critical message
func (l *Logger) Critical(msg string, fields ...core.Field) error {
	if core.CriticalLevel < l.level {
		return nil
	}
	return l.log(core.CriticalLevel, msg, nil, fields)
}

// Exception logs msg at ERROR with err attached, so alert sinks print
// its trace.
func (l *Logger) Exception(msg string, err error, fields ...core.Field) error {
	if core.ErrorLevel < l.level {
		return nil
	}
	return l.log(core.ErrorLevel, msg, err, fields)
}

// LogError logs msg at level with err attached.
func (l *Logger) LogError(level core.Level, msg string, err error, fields ...core.Field) error {
	if level < l.level {
		return nil
	}
	return l.log(level, msg, err, fields)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) error {
	if core.DebugLevel < l.level {
		return nil
	}
	return l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) error {
	if core.InfoLevel < l.level {
		return nil
	}
	return l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Warningf logs a warning message with formatting
func (l *Logger) Warningf(format string, args ...interface{}) error {
	if core.WarningLevel < l.level {
		return nil
	}
	return l.log(core.WarningLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) error {
	if core.ErrorLevel < l.level {
		return nil
	}
	return l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) error {
	if core.CriticalLevel < l.level {
		return nil
	}
	return l.log(core.CriticalLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}

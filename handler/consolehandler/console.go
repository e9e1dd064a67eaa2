package consolehandler

import (
	"io"
	"os"

	"github.com/Philipp01105/logz/formatter"
	"github.com/Philipp01105/logz/handler"
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Name identifies the sink (default: "console")
	Name string
	// Writer to write to when Destination is nil (default: os.Stderr)
	Writer io.Writer
	// Destination to share with other console sinks; takes precedence over Writer
	Destination *handler.Destination
	// Filter selects accepted levels (default: all)
	Filter handler.Filter
	// Formatter to use (default: InfoFormatter without tag)
	Formatter formatter.Formatter
}

// NewDestination wraps w for console sinks. A nil w means os.Stderr.
// The destination never closes the stream.
func NewDestination(w io.Writer) *handler.Destination {
	if w == nil {
		return handler.NewDestination("stderr", os.Stderr)
	}
	if f, ok := w.(*os.File); ok {
		return handler.NewDestination(f.Name(), w)
	}
	return handler.NewDestination("console", w)
}

// NewConsoleHandler creates a new console sink
func NewConsoleHandler(cfg ConsoleConfig) *handler.Sink {
	if cfg.Destination == nil {
		cfg.Destination = NewDestination(cfg.Writer)
	}
	if cfg.Name == "" {
		cfg.Name = "console"
	}
	return handler.NewSink(handler.SinkConfig{
		Name:        cfg.Name,
		Destination: cfg.Destination,
		Filter:      cfg.Filter,
		Formatter:   cfg.Formatter,
	})
}

// NewInfoHandler returns the console sink for the informational tier:
// levels below WARNING, short single-line format, no tag.
func NewInfoHandler(dest *handler.Destination, fc formatter.Config) *handler.Sink {
	fc.WithTag = false
	return NewConsoleHandler(ConsoleConfig{
		Name:        "console-info",
		Destination: dest,
		Filter:      handler.InfoTier,
		Formatter:   formatter.NewInfoFormatter(fc),
	})
}

// NewAlertHandler returns the console sink for the alert tier:
// WARNING and above, multi-line diagnostic block, no tag.
func NewAlertHandler(dest *handler.Destination, fc formatter.Config) *handler.Sink {
	fc.WithTag = false
	return NewConsoleHandler(ConsoleConfig{
		Name:        "console-alert",
		Destination: dest,
		Filter:      handler.AlertTier,
		Formatter:   formatter.NewAlertFormatter(fc),
	})
}

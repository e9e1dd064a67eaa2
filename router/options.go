package router

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/handler/filehandler"
)

// Format selects the file sink encoding.
type Format string

const (
	// FormatText writes tagged info lines and alert blocks.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// Option configures a Router.
type Option func(*Router)

// WithName sets the logger name (default "root").
func WithName(name string) Option {
	return func(r *Router) {
		if name != "" {
			r.name = name
		}
	}
}

// WithLevel sets the minimum level of the router's logger (default DEBUG).
func WithLevel(level core.Level) Option {
	return func(r *Router) {
		r.level = level
	}
}

// WithFormat selects the file format (default FormatText).
func WithFormat(f Format) Option {
	return func(r *Router) {
		if f != "" {
			r.format = f
		}
	}
}

// WithRotation enables size-based rotation of log files.
func WithRotation(rot filehandler.Rotation) Option {
	return func(r *Router) {
		r.rotation = rot
	}
}

// WithConsoleWriter replaces os.Stderr as the console stream.
func WithConsoleWriter(w io.Writer) Option {
	return func(r *Router) {
		r.consoleWriter = w
	}
}

// WithClock sets the time source for file names and record timestamps.
func WithClock(clock func() time.Time) Option {
	return func(r *Router) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithHostInfo replaces DescribeHost in the start banner.
func WithHostInfo(describe func() string) Option {
	return func(r *Router) {
		if describe != nil {
			r.hostInfo = describe
		}
	}
}

// WithTimestampFormat sets the record timestamp layout.
func WithTimestampFormat(layout string) Option {
	return func(r *Router) {
		r.timestampFormat = layout
	}
}

// WithRegisterer registers the router's sink metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Router) {
		r.registerer = reg
	}
}

package handler

import (
	"github.com/pkg/errors"

	"github.com/Philipp01105/logz/core"
	"github.com/Philipp01105/logz/formatter"
)

// SinkConfig holds configuration for a sink
type SinkConfig struct {
	// Name identifies the sink in errors and metrics (e.g. "console-alert")
	Name string
	// Destination receives formatted records (required)
	Destination *Destination
	// Filter selects accepted levels (default: AllLevels)
	Filter Filter
	// Formatter to use (default: InfoFormatter)
	Formatter formatter.Formatter
}

// Sink is a destination plus its filter and formatter. A sink is never
// mutated after construction.
type Sink struct {
	name            string
	dest            *Destination
	filter          Filter
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	stats           *Stats
}

// NewSink creates a new sink
func NewSink(cfg SinkConfig) *Sink {
	if cfg.Filter == nil {
		cfg.Filter = AllLevels
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewInfoFormatter(formatter.Config{})
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Destination.Name()
	}

	s := &Sink{
		name:      cfg.Name,
		dest:      cfg.Destination,
		filter:    cfg.Filter,
		formatter: cfg.Formatter,
		stats:     NewStats(),
	}
	// Cache BufferFormatter for the pooled-buffer path
	s.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	return s
}

// Name returns the sink name
func (s *Sink) Name() string {
	return s.name
}

// Destination returns the sink's destination
func (s *Sink) Destination() *Destination {
	return s.dest
}

// Accepts reports whether the sink's filter accepts level.
func (s *Sink) Accepts(level core.Level) bool {
	return s.filter(level)
}

// Handle formats and writes the entry when the filter accepts it.
func (s *Sink) Handle(entry *core.Entry) error {
	if !s.filter(entry.Level) {
		s.stats.IncrementFiltered()
		return nil
	}

	var err error
	if s.bufferFormatter != nil {
		buf := formatter.GetBuffer()
		s.bufferFormatter.FormatEntry(entry, buf)
		_, err = s.dest.Write(buf.Bytes())
		formatter.PutBuffer(buf)
	} else {
		var data []byte
		if data, err = s.formatter.Format(entry); err == nil {
			_, err = s.dest.Write(data)
		}
	}

	if err != nil {
		s.stats.IncrementFailed(entry.Level)
		return errors.Wrapf(err, "sink %s", s.name)
	}
	s.stats.IncrementWritten(entry.Level)
	return nil
}

// Stats returns a snapshot of the current statistics
func (s *Sink) Stats() Snapshot {
	return s.stats.GetSnapshot()
}

// Close closes the destination. Shared destinations tolerate repeated Close.
func (s *Sink) Close() error {
	return s.dest.Close()
}

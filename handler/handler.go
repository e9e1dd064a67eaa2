package handler

import (
	"github.com/Philipp01105/logz/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry. The entry must not be retained after
	// Handle returns; a write failure is returned to the caller.
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// StatsProvider is implemented by handlers that count their traffic.
type StatsProvider interface {
	Name() string
	Stats() Snapshot
}

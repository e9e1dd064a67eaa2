// Package formatter defines how log entries are serialized into bytes.
//
// InfoFormatter produces the short single-line form used by the
// informational tier. AlertFormatter produces the multi-line diagnostic
// block used by the alert tier: message, timestamp, logger name, level,
// goroutine and process identity, source path and function, and the
// attached error rendered with %+v so stack traces recorded by
// github.com/pkg/errors survive. JSONFormatter is the machine-readable
// alternative for file sinks.
//
// Every record starts with a blank line and ends with a newline. With
// Config.WithTag set, the level's display tag is added; file sinks set
// it, console sinks do not.
//
// All formatters implement BufferFormatter so sinks can format into a
// pooled buffer and hand the destination a single Write. Buffers larger
// than 64 KiB are not returned to the pool.
package formatter

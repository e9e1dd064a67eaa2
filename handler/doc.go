// Package handler provides the Handler interface and the building blocks
// the router assembles into sinks.
//
// A Sink is a Destination plus a Filter and a Formatter. Filters are pure
// functions of the level (InfoTier, AlertTier, Between, AtLeast); each
// sink checks its own bounds and never relies on the logger's minimum
// level.
//
// A Destination serializes writes: the sink formats a record into a
// pooled buffer and hands it to the destination in one Write under the
// destination's mutex. Sinks that share a stream or file share one
// Destination, so concurrent records never interleave.
//
// All handlers are synchronous. A write failure is returned to the
// caller of Handle; MultiHandler keeps delivering to the remaining
// children and combines the failures with go.uber.org/multierr.
//
// SlogHandler adapts any Handler to log/slog.Handler. Sinks count
// written, failed and filtered records in Stats.
package handler
